package sources

import (
	"context"

	"github.com/hollis/daybook/internal/dates"
	"github.com/hollis/daybook/internal/models"
)

// MusicSource reads an Apple Music play-history export: a CSV with
// "Track Name" and "Last Played Date" columns, the latter in epoch
// milliseconds.
type MusicSource struct {
	cfg FileConfig
}

// NewMusicSource creates a play-history source for the configured file.
func NewMusicSource(cfg FileConfig) *MusicSource {
	return &MusicSource{cfg: cfg}
}

// Kind returns models.KindMusic.
func (s *MusicSource) Kind() models.SourceKind { return models.KindMusic }

// Records parses the export. Rows with a missing track name or an
// invalid timestamp are dropped and counted.
func (s *MusicSource) Records(_ context.Context) ([]models.DatedRecord, int, error) {
	rows, err := csvRows(s.cfg.Path)
	if err != nil {
		return nil, 0, err
	}

	var out []models.DatedRecord
	var dropped int
	for _, row := range rows {
		track := row["Track Name"]
		day, err := dates.Normalize(row["Last Played Date"])
		if track == "" || err != nil {
			dropped++
			continue
		}
		out = append(out, models.DatedRecord{
			Date:    day,
			Kind:    models.KindMusic,
			Payload: models.PlayedTrack{Track: track},
		})
	}
	return out, dropped, nil
}
