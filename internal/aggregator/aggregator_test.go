package aggregator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hollis/daybook/internal/journal"
	"github.com/hollis/daybook/internal/models"
	"github.com/hollis/daybook/internal/sources"
)

type fakeSource struct {
	kind    models.SourceKind
	recs    []models.DatedRecord
	dropped int
	err     error
}

func (f *fakeSource) Kind() models.SourceKind { return f.kind }

func (f *fakeSource) Records(context.Context) ([]models.DatedRecord, int, error) {
	return f.recs, f.dropped, f.err
}

type fakeCleaningSource struct {
	fakeSource
	cleaned bool
}

func (f *fakeCleaningSource) Cleanup() error {
	f.cleaned = true
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newsRec(date, title string) models.DatedRecord {
	return models.DatedRecord{
		Date:    date,
		Kind:    models.KindNews,
		Payload: models.NewsItem{Title: title, Link: "https://example.com/" + title},
	}
}

func eventRec(date, name string) models.DatedRecord {
	return models.DatedRecord{
		Date:    date,
		Kind:    models.KindEvent,
		Payload: models.Event{Name: name, Location: "Hall"},
	}
}

func newAggregator(t *testing.T, srcs []sources.Source) (*Aggregator, string) {
	t.Helper()
	dir := t.TempDir()
	return New(dir, journal.NewEngine(discard()), srcs, discard()), dir
}

func TestRunWritesGroupedSections(t *testing.T) {
	news := &fakeSource{kind: models.KindNews, recs: []models.DatedRecord{
		newsRec("2024-06-09", "one"),
		newsRec("2024-06-10", "two"),
	}}
	events := &fakeSource{kind: models.KindEvent, recs: []models.DatedRecord{
		eventRec("2024-06-09", "Concert"),
	}, dropped: 2}

	agg, dir := newAggregator(t, []sources.Source{news, events})
	sum, err := agg.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Two distinct dates create two files; the second kind on June 9
	// appends to the file the first kind created.
	if sum.Created != 2 || sum.Appended != 1 || sum.Skipped != 0 || sum.Failed != 0 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.Dropped != 2 {
		t.Errorf("Dropped = %d, want 2", sum.Dropped)
	}

	path := filepath.Join(dir, "2024", "06-June", "2024-06-09.md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	content := string(data)
	if !strings.Contains(content, models.KindNews.Marker()) {
		t.Error("news section missing from shared day file")
	}
	if !strings.Contains(content, models.KindEvent.Marker()) {
		t.Error("event section missing from shared day file")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	src := &fakeSource{kind: models.KindNews, recs: []models.DatedRecord{
		newsRec("2024-06-09", "one"),
	}}
	agg, dir := newAggregator(t, []sources.Source{src})

	if _, err := agg.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	path := filepath.Join(dir, "2024", "06-June", "2024-06-09.md")
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	sum, err := agg.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if sum.Skipped != 1 || sum.Created != 0 || sum.Appended != 0 {
		t.Errorf("second run summary = %+v", sum)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("second run modified the journal file")
	}
}

func TestRunIsolatesFailingSource(t *testing.T) {
	broken := &fakeSource{kind: models.KindWeather, err: errors.New("api down")}
	healthy := &fakeSource{kind: models.KindNews, recs: []models.DatedRecord{
		newsRec("2024-06-09", "one"),
	}}

	agg, _ := newAggregator(t, []sources.Source{broken, healthy})
	sum, err := agg.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Errored != 1 {
		t.Errorf("Errored = %d, want 1", sum.Errored)
	}
	if sum.Created != 1 {
		t.Errorf("healthy source should still write, Created = %d", sum.Created)
	}
}

func TestRunCleansUpAfterSuccess(t *testing.T) {
	src := &fakeCleaningSource{fakeSource: fakeSource{
		kind: models.KindEvent,
		recs: []models.DatedRecord{eventRec("2024-06-09", "Concert")},
	}}
	agg, _ := newAggregator(t, []sources.Source{src})

	if _, err := agg.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !src.cleaned {
		t.Error("Cleanup not called after a clean run")
	}
}

func TestRunKeepsInputAfterWriteFailure(t *testing.T) {
	dir := t.TempDir()
	// A regular file where the year directory should go makes every
	// MkdirAll in the run fail.
	if err := os.WriteFile(filepath.Join(dir, "2024"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	src := &fakeCleaningSource{fakeSource: fakeSource{
		kind: models.KindEvent,
		recs: []models.DatedRecord{eventRec("2024-06-09", "Concert")},
	}}
	agg := New(dir, journal.NewEngine(discard()), []sources.Source{src}, discard())

	sum, err := agg.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Failed != 1 {
		t.Errorf("Failed = %d, want 1", sum.Failed)
	}
	if src.cleaned {
		t.Error("Cleanup must not run after a write failure")
	}
}
