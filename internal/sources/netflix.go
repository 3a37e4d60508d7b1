package sources

import (
	"context"

	"github.com/hollis/daybook/internal/dates"
	"github.com/hollis/daybook/internal/models"
)

// NetflixSource reads a Netflix viewing-history export: a CSV with
// Title and Date columns, dates in MM/DD/YY.
type NetflixSource struct {
	cfg FileConfig
}

// NewNetflixSource creates a Netflix history source for the configured file.
func NewNetflixSource(cfg FileConfig) *NetflixSource {
	return &NetflixSource{cfg: cfg}
}

// Kind returns models.KindStreaming.
func (s *NetflixSource) Kind() models.SourceKind { return models.KindStreaming }

// Records parses the export. Rows with a missing title or an
// unparseable date are dropped and counted.
func (s *NetflixSource) Records(_ context.Context) ([]models.DatedRecord, int, error) {
	rows, err := csvRows(s.cfg.Path)
	if err != nil {
		return nil, 0, err
	}

	var out []models.DatedRecord
	var dropped int
	for _, row := range rows {
		title := row["Title"]
		day, err := dates.Normalize(row["Date"])
		if title == "" || err != nil {
			dropped++
			continue
		}
		out = append(out, models.DatedRecord{
			Date:    day,
			Kind:    models.KindStreaming,
			Payload: models.WatchedTitle{Title: title},
		})
	}
	return out, dropped, nil
}
