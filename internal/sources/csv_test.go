package sources

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hollis/daybook/internal/apperr"
	"github.com/hollis/daybook/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNetflixRecords(t *testing.T) {
	csv := "Title,Date\n" +
		"Show One: Season 1: Pilot,03/09/20\n" +
		"Show One: Season 1: Pilot,03/09/20\n" +
		"Another Movie,01/02/21\n" +
		",01/02/21\n" +
		"No Date Here,not-a-date\n"
	src := NewNetflixSource(FileConfig{Path: writeFile(t, "history.csv", csv)})

	recs, dropped, err := src.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
	// Duplicates survive here; deduplication happens at render time.
	if len(recs) != 3 {
		t.Fatalf("len(recs) = %d, want 3", len(recs))
	}
	if recs[0].Date != "2020-03-09" || recs[0].Kind != models.KindStreaming {
		t.Errorf("first record = %+v", recs[0])
	}
	if recs[2].Date != "2021-01-02" {
		t.Errorf("third record date = %q", recs[2].Date)
	}
}

func TestNetflixMissingFile(t *testing.T) {
	src := NewNetflixSource(FileConfig{Path: filepath.Join(t.TempDir(), "absent.csv")})
	_, _, err := src.Records(context.Background())
	if !errors.Is(err, apperr.ErrSourceUnavailable) {
		t.Errorf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestMusicRecordsEpochMillis(t *testing.T) {
	// 1609459200000 is 2021-01-01T00:00:00Z; expectation goes through
	// the same local-time interpretation the normalizer uses.
	wantDay := time.UnixMilli(1609459200000).Format("2006-01-02")
	csv := "Track Name,Last Played Date,Is User Initiated\n" +
		"Song A,1609459200000,true\n" +
		"Song A,1609459200000,true\n" +
		"Broken,notanumber,true\n"
	src := NewMusicSource(FileConfig{Path: writeFile(t, "plays.csv", csv)})

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
	if recs[0].Date != wantDay {
		t.Errorf("date = %q, want %q", recs[0].Date, wantDay)
	}
	if recs[0].Payload.(models.PlayedTrack).Track != "Song A" {
		t.Errorf("payload = %+v", recs[0].Payload)
	}
}

func TestFandangoRecordsMixedDates(t *testing.T) {
	csv := "Movie,Date,Theater,Address\n" +
		`Parasite,"Monday, Mar 9 2020 at 2:15 PM",Grand 14,1 Main St` + "\n" +
		"Dune,10/22/2021,Grand 14,1 Main St\n" +
		"Lost Film,garbled,Grand 14,1 Main St\n"
	src := NewFandangoSource(FileConfig{Path: writeFile(t, "purchases.csv", csv)})

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
	if recs[0].Date != "2020-03-09" {
		t.Errorf("date = %q, want 2020-03-09", recs[0].Date)
	}
	p := recs[0].Payload.(models.TicketPurchase)
	if p.Movie != "Parasite" || p.TheaterName != "Grand 14" || p.TheaterAddress != "1 Main St" {
		t.Errorf("payload = %+v", p)
	}
}

func TestFandangoCleanup(t *testing.T) {
	path := writeFile(t, "purchases.csv", "Movie,Date,Theater,Address\n")
	src := NewFandangoSource(FileConfig{Path: path, DeleteAfter: true})
	if err := src.Cleanup(); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("file still exists after cleanup")
	}
}

func TestFandangoCleanupDisabled(t *testing.T) {
	path := writeFile(t, "purchases.csv", "Movie,Date,Theater,Address\n")
	src := NewFandangoSource(FileConfig{Path: path})
	if err := src.Cleanup(); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file should be untouched: %v", err)
	}
}

func TestTicketmasterUnquotedDateCommas(t *testing.T) {
	data := "Date,Location,Event\n" +
		"Feb 29, 2020,Arena,Big Concert\n" +
		"2020-03-01,Stadium,Cup Final, Extra Time\n" +
		"garbage line with no date,x,y\n" +
		"\n"
	src := NewTicketmasterSource(FileConfig{Path: writeFile(t, "events.csv", data)})

	recs, dropped, err := src.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2: %+v", len(recs), recs)
	}
	if recs[0].Date != "2020-02-29" {
		t.Errorf("split-date record = %+v", recs[0])
	}
	ev := recs[0].Payload.(models.Event)
	if ev.Name != "Big Concert" || ev.Location != "Arena" {
		t.Errorf("payload = %+v", ev)
	}
	// Trailing commas in the event name stay part of the name.
	if got := recs[1].Payload.(models.Event).Name; got != "Cup Final, Extra Time" {
		t.Errorf("event name = %q", got)
	}
}
