package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/hollis/daybook/internal/apperr"
	"github.com/hollis/daybook/internal/dates"
	"github.com/hollis/daybook/internal/models"
)

// ChartSource fetches a music chart (rank, title, artist) from an API
// endpoint.
type ChartSource struct {
	cfg    APIConfig
	client *resty.Client
	now    func() time.Time
}

// NewChartSource creates a chart source with the given client and config.
func NewChartSource(client *resty.Client, cfg APIConfig) *ChartSource {
	return &ChartSource{cfg: cfg, client: client, now: time.Now}
}

// Kind returns models.KindChart.
func (s *ChartSource) Kind() models.SourceKind { return models.KindChart }

type chartResponse struct {
	Date    string `json:"date"`
	Entries []struct {
		Rank   int    `json:"rank"`
		Title  string `json:"title"`
		Artist string `json:"artist"`
	} `json:"entries"`
}

// Records fetches the chart. All entries share the chart date; when the
// API omits it, the run date is used.
func (s *ChartSource) Records(ctx context.Context) ([]models.DatedRecord, int, error) {
	body, err := s.cfg.fetch(ctx, s.client)
	if err != nil {
		return nil, 0, err
	}

	var resp chartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, 0, fmt.Errorf("sources: parse chart response: %w: %v", apperr.ErrSourceUnavailable, err)
	}

	day := dates.FromTime(s.now())
	if resp.Date != "" {
		if d, err := dates.Normalize(resp.Date); err == nil {
			day = d
		}
	}

	var out []models.DatedRecord
	for _, e := range resp.Entries {
		out = append(out, models.DatedRecord{
			Date: day,
			Kind: models.KindChart,
			Payload: models.ChartEntry{
				Rank:   e.Rank,
				Title:  e.Title,
				Artist: e.Artist,
			},
		})
	}
	return out, 0, nil
}
