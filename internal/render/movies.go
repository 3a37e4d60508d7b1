package render

import (
	"strconv"
	"strings"
	"time"

	"github.com/hollis/daybook/internal/models"
)

// BoxOffice renders box-office standings as a markdown table. Missing
// titles get a fixed placeholder and long descriptions are truncated so
// table rows stay bounded.
func BoxOffice(recs []models.DatedRecord, _ time.Time) Section {
	marker := models.KindMovies.Marker()

	var rows []string
	for _, r := range recs {
		entry, ok := r.Payload.(models.BoxOfficeEntry)
		if !ok {
			continue
		}
		title := cell(entry.Title)
		if title == "" {
			title = placeholderTitle
		}
		rows = append(rows, "| "+strconv.Itoa(entry.Rank)+" | "+title+" | "+
			orNA(cell(entry.Revenue))+" | "+
			orNA(truncate(cell(entry.Description), maxDescriptionLen))+" |")
	}
	rows = dedupeLines(rows)

	var b strings.Builder
	b.WriteString(marker + "\n\n")
	b.WriteString("| # | Title | Revenue | Description |\n")
	b.WriteString("|---|-------|---------|-------------|\n")
	b.WriteString(strings.Join(rows, "\n") + "\n")
	return Section{Marker: marker, Body: b.String()}
}
