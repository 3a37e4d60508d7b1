package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hollis/daybook/internal/apperr"
	"github.com/hollis/daybook/internal/models"
)

func fixedNow() time.Time {
	return time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC)
}

func TestNewsSourceRecords(t *testing.T) {
	var gotKey, gotHost string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-rapidapi-key")
		gotHost = r.Header.Get("x-rapidapi-host")
		if r.URL.Query().Get("country") != "US" {
			t.Errorf("missing query param, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"title":"Dated story","link":"https://n/1","published_at":"2024-06-08"},
			{"title":"Undated story","link":"https://n/2"},
			{"title":"","link":"https://n/3"}
		]}`))
	}))
	defer srv.Close()

	src := NewNewsSource(NewClient(), APIConfig{
		Endpoint: srv.URL,
		Key:      "secret",
		Params:   map[string]string{"country": "US"},
	})
	src.now = fixedNow

	recs, dropped, err := src.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if gotKey != "secret" {
		t.Errorf("x-rapidapi-key = %q", gotKey)
	}
	if gotHost == "" {
		t.Error("x-rapidapi-host not set")
	}
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	if recs[0].Date != "2024-06-08" {
		t.Errorf("dated story keyed to %q", recs[0].Date)
	}
	// Undated articles land on the day before the run.
	if recs[1].Date != "2024-06-09" {
		t.Errorf("undated story keyed to %q, want 2024-06-09", recs[1].Date)
	}
}

func TestNewsSourceBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	src := NewNewsSource(NewClient().SetRetryCount(0), APIConfig{Endpoint: srv.URL})
	_, _, err := src.Records(context.Background())
	if !errors.Is(err, apperr.ErrSourceUnavailable) {
		t.Errorf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestWeatherSourceRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"forecastDaily":{"days":[
			{"forecastStart":"2024-06-10T07:00:00Z","temperatureMax":21.5,"temperatureMin":12.0,
			 "daytimeForecast":{"conditionCode":"PartlyCloudy","precipitationChance":0.3,
			                    "precipitationAmount":1.2,"windSpeed":14.0}},
			{"forecastStart":"2024-06-11T07:00:00Z","temperatureMax":24.0,"temperatureMin":13.5},
			{"forecastStart":"","temperatureMax":1,"temperatureMin":0}
		]}}`))
	}))
	defer srv.Close()

	src := NewWeatherSource(NewClient(), APIConfig{Endpoint: srv.URL})
	recs, dropped, err := src.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	first := recs[0].Payload.(models.ForecastDay)
	if !first.HasConditions || first.Condition != "PartlyCloudy" || first.WindKMH != 14.0 {
		t.Errorf("first day = %+v", first)
	}
	second := recs[1].Payload.(models.ForecastDay)
	if second.HasConditions {
		t.Errorf("second day should have no daytime block: %+v", second)
	}
	if recs[0].Date != "2024-06-10" {
		t.Errorf("first day date = %q", recs[0].Date)
	}
}

func TestWeatherSourceEmptyForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"forecastDaily":{"days":[]}}`))
	}))
	defer srv.Close()

	src := NewWeatherSource(NewClient(), APIConfig{Endpoint: srv.URL})
	_, _, err := src.Records(context.Background())
	if !errors.Is(err, apperr.ErrSourceUnavailable) {
		t.Errorf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestBoxOfficeSourceRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"date":"2024-06-07","results":[
			{"rank":1,"title":"Big Movie","revenue":"$12,345,678","description":"A film."},
			{"rank":2,"title":"","revenue":"","description":""}
		]}`))
	}))
	defer srv.Close()

	src := NewBoxOfficeSource(NewClient(), APIConfig{Endpoint: srv.URL})
	recs, _, err := src.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	if recs[0].Date != "2024-06-07" {
		t.Errorf("date = %q, want response date", recs[0].Date)
	}
	e := recs[0].Payload.(models.BoxOfficeEntry)
	if e.Rank != 1 || e.Title != "Big Movie" {
		t.Errorf("entry = %+v", e)
	}
}

func TestBoxOfficeSourceDateFallsBackToRunDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"rank":1,"title":"M"}]}`))
	}))
	defer srv.Close()

	src := NewBoxOfficeSource(NewClient(), APIConfig{Endpoint: srv.URL})
	src.now = fixedNow
	recs, _, err := src.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if recs[0].Date != "2024-06-10" {
		t.Errorf("date = %q, want run date", recs[0].Date)
	}
}

func TestChartSourceRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"date":"2024-06-08","entries":[
			{"rank":1,"title":"Hit Song","artist":"Some Band"},
			{"rank":2,"title":"Other Song","artist":"Other Act"}
		]}`))
	}))
	defer srv.Close()

	src := NewChartSource(NewClient(), APIConfig{Endpoint: srv.URL})
	recs, _, err := src.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	c := recs[1].Payload.(models.ChartEntry)
	if c.Rank != 2 || c.Artist != "Other Act" {
		t.Errorf("entry = %+v", c)
	}
}
