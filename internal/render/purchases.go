package render

import (
	"time"

	"github.com/hollis/daybook/internal/models"
)

// Purchases renders ticket purchases as a bullet list with the theater
// and its address when known.
func Purchases(recs []models.DatedRecord, _ time.Time) Section {
	marker := models.KindPurchase.Marker()

	var lines []string
	for _, r := range recs {
		p, ok := r.Payload.(models.TicketPurchase)
		if !ok {
			continue
		}
		movie := p.Movie
		if movie == "" {
			movie = placeholderTitle
		}
		line := "* " + movie
		if p.TheaterName != "" {
			line += " at " + p.TheaterName
			if p.TheaterAddress != "" {
				line += " (" + p.TheaterAddress + ")"
			}
		}
		lines = append(lines, line)
	}
	return bulletSection(marker, lines)
}
