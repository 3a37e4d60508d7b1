package render

import (
	"strings"
	"time"

	"github.com/hollis/daybook/internal/models"
)

// Events renders attended events, one line per event with the date key
// and optional venue.
func Events(recs []models.DatedRecord, _ time.Time) Section {
	marker := models.KindEvent.Marker()

	var lines []string
	for _, r := range recs {
		ev, ok := r.Payload.(models.Event)
		if !ok || ev.Name == "" {
			continue
		}
		line := r.Date + ": " + ev.Name
		if ev.Location != "" {
			line += ", " + ev.Location
		}
		lines = append(lines, line)
	}
	lines = dedupeLines(lines)

	var b strings.Builder
	b.WriteString(marker + "\n\n")
	b.WriteString(strings.Join(lines, "\n") + "\n")
	return Section{Marker: marker, Body: b.String()}
}
