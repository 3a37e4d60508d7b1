package render

import (
	"strings"
	"time"

	"github.com/hollis/daybook/internal/models"
)

// News renders headlines as a bulleted link list.
func News(recs []models.DatedRecord, now time.Time) Section {
	marker := models.KindNews.Marker()

	var lines []string
	for _, r := range recs {
		item, ok := r.Payload.(models.NewsItem)
		if !ok || item.Title == "" || item.Link == "" {
			continue
		}
		lines = append(lines, "- ["+cell(item.Title)+"]("+item.Link+")")
	}
	lines = dedupeLines(lines)

	var b strings.Builder
	b.WriteString(marker + "\n\n")
	b.WriteString(stamp(now) + "\n")
	if len(lines) == 0 {
		b.WriteString("\nNo news items found\n")
	} else {
		b.WriteString("\n" + strings.Join(lines, "\n") + "\n")
	}
	return Section{Marker: marker, Body: b.String()}
}
