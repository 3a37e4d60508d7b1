package render

import (
	"strconv"
	"strings"
	"time"

	"github.com/hollis/daybook/internal/models"
)

// Reviews renders user reviews as a markdown table. Comments are
// truncated to keep rows readable.
func Reviews(recs []models.DatedRecord, _ time.Time) Section {
	marker := models.KindReview.Marker()

	var rows []string
	for _, r := range recs {
		rv, ok := r.Payload.(models.Review)
		if !ok {
			continue
		}
		rating := strconv.FormatFloat(rv.Rating, 'g', -1, 64)
		rows = append(rows, "| "+orNA(cell(rv.Business))+" | "+rating+" | "+
			orNA(truncate(cell(rv.Comment), maxCommentLen))+" |")
	}
	rows = dedupeLines(rows)

	var b strings.Builder
	b.WriteString(marker + "\n\n")
	b.WriteString("| Business | Rating | Review |\n")
	b.WriteString("|----------|--------|--------|\n")
	b.WriteString(strings.Join(rows, "\n") + "\n")
	return Section{Marker: marker, Body: b.String()}
}
