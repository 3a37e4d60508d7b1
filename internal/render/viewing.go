package render

import (
	"strings"
	"time"

	"github.com/hollis/daybook/internal/models"
)

// Streaming renders watched titles as a bullet list, one line per
// distinct title.
func Streaming(recs []models.DatedRecord, _ time.Time) Section {
	marker := models.KindStreaming.Marker()
	var lines []string
	for _, r := range recs {
		w, ok := r.Payload.(models.WatchedTitle)
		if !ok || w.Title == "" {
			continue
		}
		lines = append(lines, "* "+w.Title)
	}
	return bulletSection(marker, lines)
}

// Music renders played tracks as a bullet list, one line per distinct
// track.
func Music(recs []models.DatedRecord, _ time.Time) Section {
	marker := models.KindMusic.Marker()
	var lines []string
	for _, r := range recs {
		p, ok := r.Payload.(models.PlayedTrack)
		if !ok || p.Track == "" {
			continue
		}
		lines = append(lines, "* "+p.Track)
	}
	return bulletSection(marker, lines)
}

func bulletSection(marker string, lines []string) Section {
	lines = dedupeLines(lines)
	var b strings.Builder
	b.WriteString(marker + "\n\n")
	b.WriteString(strings.Join(lines, "\n") + "\n")
	return Section{Marker: marker, Body: b.String()}
}
