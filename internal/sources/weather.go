package sources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/hollis/daybook/internal/apperr"
	"github.com/hollis/daybook/internal/dates"
	"github.com/hollis/daybook/internal/models"
)

// WeatherSource fetches the daily forecast from a WeatherKit-style
// endpoint (forecastDaily.days payload, metric units).
type WeatherSource struct {
	cfg    APIConfig
	client *resty.Client
}

// NewWeatherSource creates a weather source with the given client and config.
func NewWeatherSource(client *resty.Client, cfg APIConfig) *WeatherSource {
	return &WeatherSource{cfg: cfg, client: client}
}

// Kind returns models.KindWeather.
func (s *WeatherSource) Kind() models.SourceKind { return models.KindWeather }

type weatherResponse struct {
	ForecastDaily struct {
		Days []struct {
			ForecastStart   string  `json:"forecastStart"`
			TemperatureMax  float64 `json:"temperatureMax"`
			TemperatureMin  float64 `json:"temperatureMin"`
			DaytimeForecast *struct {
				ConditionCode       string  `json:"conditionCode"`
				PrecipitationChance float64 `json:"precipitationChance"`
				PrecipitationAmount float64 `json:"precipitationAmount"`
				WindSpeed           float64 `json:"windSpeed"`
			} `json:"daytimeForecast"`
		} `json:"days"`
	} `json:"forecastDaily"`
}

// Records fetches and parses the per-day forecast. Days whose start
// timestamp cannot be normalized are dropped and counted.
func (s *WeatherSource) Records(ctx context.Context) ([]models.DatedRecord, int, error) {
	body, err := s.cfg.fetch(ctx, s.client)
	if err != nil {
		return nil, 0, err
	}

	var resp weatherResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, 0, fmt.Errorf("sources: parse weather response: %w: %v", apperr.ErrSourceUnavailable, err)
	}
	if len(resp.ForecastDaily.Days) == 0 {
		return nil, 0, fmt.Errorf("sources: weather response has no forecast days: %w", apperr.ErrSourceUnavailable)
	}

	var out []models.DatedRecord
	var dropped int
	for _, d := range resp.ForecastDaily.Days {
		day, err := dates.Normalize(d.ForecastStart)
		if err != nil {
			dropped++
			continue
		}
		fc := models.ForecastDay{
			TempMaxC: d.TemperatureMax,
			TempMinC: d.TemperatureMin,
		}
		if dt := d.DaytimeForecast; dt != nil {
			fc.Condition = dt.ConditionCode
			fc.PrecipChance = dt.PrecipitationChance
			fc.PrecipMM = dt.PrecipitationAmount
			fc.WindKMH = dt.WindSpeed
			fc.HasConditions = true
		}
		out = append(out, models.DatedRecord{Date: day, Kind: models.KindWeather, Payload: fc})
	}
	return out, dropped, nil
}
