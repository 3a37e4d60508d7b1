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

// BoxOfficeSource fetches box-office standings from an API endpoint.
type BoxOfficeSource struct {
	cfg    APIConfig
	client *resty.Client
	now    func() time.Time
}

// NewBoxOfficeSource creates a box-office source with the given client and config.
func NewBoxOfficeSource(client *resty.Client, cfg APIConfig) *BoxOfficeSource {
	return &BoxOfficeSource{cfg: cfg, client: client, now: time.Now}
}

// Kind returns models.KindMovies.
func (s *BoxOfficeSource) Kind() models.SourceKind { return models.KindMovies }

type boxOfficeResponse struct {
	Date    string `json:"date"`
	Results []struct {
		Rank        int    `json:"rank"`
		Title       string `json:"title"`
		Revenue     string `json:"revenue"`
		Description string `json:"description"`
	} `json:"results"`
}

// Records fetches the current standings. All entries share the
// response-level date; when the API omits it, the run date is used.
func (s *BoxOfficeSource) Records(ctx context.Context) ([]models.DatedRecord, int, error) {
	body, err := s.cfg.fetch(ctx, s.client)
	if err != nil {
		return nil, 0, err
	}

	var resp boxOfficeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, 0, fmt.Errorf("sources: parse box-office response: %w: %v", apperr.ErrSourceUnavailable, err)
	}

	day := dates.FromTime(s.now())
	if resp.Date != "" {
		if d, err := dates.Normalize(resp.Date); err == nil {
			day = d
		}
	}

	var out []models.DatedRecord
	for _, r := range resp.Results {
		out = append(out, models.DatedRecord{
			Date: day,
			Kind: models.KindMovies,
			Payload: models.BoxOfficeEntry{
				Rank:        r.Rank,
				Title:       r.Title,
				Revenue:     r.Revenue,
				Description: r.Description,
			},
		})
	}
	return out, 0, nil
}
