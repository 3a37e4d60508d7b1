package sources

import (
	"context"

	"github.com/hollis/daybook/internal/dates"
	"github.com/hollis/daybook/internal/models"
)

// FandangoSource reads a Fandango purchase-history export: a CSV with
// Movie, Date, Theater, and Address columns. Dates appear in several
// human formats, including "Monday, Mar 9 2020 at 2:15 PM".
type FandangoSource struct {
	cfg FileConfig
}

// NewFandangoSource creates a purchase-history source for the configured file.
func NewFandangoSource(cfg FileConfig) *FandangoSource {
	return &FandangoSource{cfg: cfg}
}

// Kind returns models.KindPurchase.
func (s *FandangoSource) Kind() models.SourceKind { return models.KindPurchase }

// Records parses the export. Rows whose purchase date cannot be
// normalized, even by embedded-date extraction, are dropped and counted.
func (s *FandangoSource) Records(_ context.Context) ([]models.DatedRecord, int, error) {
	rows, err := csvRows(s.cfg.Path)
	if err != nil {
		return nil, 0, err
	}

	var out []models.DatedRecord
	var dropped int
	for _, row := range rows {
		day, err := dates.Normalize(row["Date"])
		if err != nil {
			dropped++
			continue
		}
		out = append(out, models.DatedRecord{
			Date: day,
			Kind: models.KindPurchase,
			Payload: models.TicketPurchase{
				Movie:          row["Movie"],
				TheaterName:    row["Theater"],
				TheaterAddress: row["Address"],
			},
		})
	}
	return out, dropped, nil
}

// Cleanup removes the consumed export when configured to do so.
func (s *FandangoSource) Cleanup() error {
	return removeSourceFile(s.cfg)
}
