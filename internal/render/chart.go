package render

import (
	"strconv"
	"strings"
	"time"

	"github.com/hollis/daybook/internal/models"
)

// Chart renders chart standings as a markdown table.
func Chart(recs []models.DatedRecord, _ time.Time) Section {
	marker := models.KindChart.Marker()

	var rows []string
	for _, r := range recs {
		entry, ok := r.Payload.(models.ChartEntry)
		if !ok {
			continue
		}
		title := cell(entry.Title)
		if title == "" {
			title = placeholderTitle
		}
		rows = append(rows, "| "+strconv.Itoa(entry.Rank)+" | "+title+" | "+orNA(cell(entry.Artist))+" |")
	}
	rows = dedupeLines(rows)

	var b strings.Builder
	b.WriteString(marker + "\n\n")
	b.WriteString("| # | Title | Artist |\n")
	b.WriteString("|---|-------|--------|\n")
	b.WriteString(strings.Join(rows, "\n") + "\n")
	return Section{Marker: marker, Body: b.String()}
}
