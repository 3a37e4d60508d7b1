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

// NewsSource fetches headlines from a RapidAPI-style news endpoint.
type NewsSource struct {
	cfg    APIConfig
	client *resty.Client
	now    func() time.Time
}

// NewNewsSource creates a news source with the given client and config.
func NewNewsSource(client *resty.Client, cfg APIConfig) *NewsSource {
	return &NewsSource{cfg: cfg, client: client, now: time.Now}
}

// Kind returns models.KindNews.
func (s *NewsSource) Kind() models.SourceKind { return models.KindNews }

type newsResponse struct {
	Data []struct {
		Title       string `json:"title"`
		Link        string `json:"link"`
		PublishedAt string `json:"published_at"`
	} `json:"data"`
}

// Records fetches and parses the articles. Articles that carry a
// publication date are keyed by it; the rest are keyed to the day
// before the run, which is the day the journal entry describes.
func (s *NewsSource) Records(ctx context.Context) ([]models.DatedRecord, int, error) {
	body, err := s.cfg.fetch(ctx, s.client)
	if err != nil {
		return nil, 0, err
	}

	var resp newsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, 0, fmt.Errorf("sources: parse news response: %w: %v", apperr.ErrSourceUnavailable, err)
	}

	yesterday := dates.FromTime(s.now().AddDate(0, 0, -1))

	var out []models.DatedRecord
	var dropped int
	for _, a := range resp.Data {
		if a.Title == "" || a.Link == "" {
			dropped++
			continue
		}
		day := yesterday
		if a.PublishedAt != "" {
			if d, err := dates.Normalize(a.PublishedAt); err == nil {
				day = d
			}
		}
		out = append(out, models.DatedRecord{
			Date: day,
			Kind: models.KindNews,
			Payload: models.NewsItem{
				Title: a.Title,
				Link:  a.Link,
			},
		})
	}
	return out, dropped, nil
}
