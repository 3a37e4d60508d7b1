// Package aggregator runs the collection pipeline: pull records from
// every configured source, group them by kind and date, render each
// group into a markdown section, and hand the sections to the journal
// engine. One pass over all sources is a run.
package aggregator

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/hollis/daybook/internal/journal"
	"github.com/hollis/daybook/internal/models"
	"github.com/hollis/daybook/internal/render"
	"github.com/hollis/daybook/internal/sources"
)

// Summary is the per-run outcome tally reported to the caller.
type Summary struct {
	Created  int // journal files created
	Appended int // sections appended to existing files
	Skipped  int // sections already present
	Failed   int // (date, section) pairs that could not be written
	Dropped  int // records discarded for unparseable dates or fields
	Errored  int // sources that failed outright and contributed nothing
}

// cleaner is implemented by file-backed sources that remove their input
// once its records are safely in the journal.
type cleaner interface {
	Cleanup() error
}

// Aggregator owns one run of the pipeline. Failures are isolated twice
// over: a source that errors is logged and skipped, and within a
// source's output every (date, section) write failure is logged and
// counted without touching the other dates.
type Aggregator struct {
	targetDir string
	engine    *journal.Engine
	sources   []sources.Source
	logger    *slog.Logger
	now       func() time.Time
}

// New creates an aggregator writing journal files under targetDir.
func New(targetDir string, engine *journal.Engine, srcs []sources.Source, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		targetDir: targetDir,
		engine:    engine,
		sources:   srcs,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes one full pass and returns the tally. The returned error
// is always nil for per-source and per-date trouble; those are counted
// in the Summary. Run only fails when it cannot run at all, which
// currently never happens.
func (a *Aggregator) Run(ctx context.Context) (Summary, error) {
	var sum Summary
	buckets := make(map[models.SourceKind]*models.DateBucket)
	kindFailed := make(map[models.SourceKind]bool)
	collected := make(map[models.SourceKind]sources.Source)

	for _, src := range a.sources {
		recs, dropped, err := src.Records(ctx)
		sum.Dropped += dropped
		if err != nil {
			sum.Errored++
			a.logger.Warn("source failed, skipping",
				slog.String("kind", string(src.Kind())),
				slog.Any("error", err))
			continue
		}
		collected[src.Kind()] = src
		for _, rec := range recs {
			b, ok := buckets[rec.Kind]
			if !ok {
				b = models.NewDateBucket()
				buckets[rec.Kind] = b
			}
			b.Add(rec)
		}
	}

	runTime := a.now()
	for _, kind := range sortedKinds(buckets) {
		fn, ok := render.For(kind)
		if !ok {
			// Unreachable while the registry covers every kind, but a
			// missing renderer must not take down the run.
			a.logger.Error("no renderer registered", slog.String("kind", string(kind)))
			continue
		}
		bucket := buckets[kind]
		for _, date := range bucket.Dates() {
			section := fn(bucket.Records(date), runTime)
			res := a.write(date, section)
			switch res {
			case journal.Created:
				sum.Created++
			case journal.Appended:
				sum.Appended++
			case journal.Skipped:
				sum.Skipped++
			default:
				sum.Failed++
				kindFailed[kind] = true
			}
		}
	}

	a.cleanup(collected, kindFailed)

	a.logger.Info("run complete",
		slog.Int("created", sum.Created),
		slog.Int("appended", sum.Appended),
		slog.Int("skipped", sum.Skipped),
		slog.Int("failed", sum.Failed),
		slog.Int("dropped", sum.Dropped),
		slog.Int("errored", sum.Errored))
	return sum, nil
}

// write resolves the date's file path and ensures the section is in it.
// All errors are logged here and reported as a Failed result.
func (a *Aggregator) write(date string, section render.Section) journal.Result {
	path, err := journal.Resolve(date, a.targetDir)
	if err != nil {
		a.logger.Error("resolve failed",
			slog.String("date", date),
			slog.Any("error", err))
		return journal.Failed
	}
	res, err := a.engine.EnsureSection(path, section.Marker, section.Body)
	if err != nil {
		a.logger.Error("write failed",
			slog.String("path", path),
			slog.String("marker", section.Marker),
			slog.Any("error", err))
	}
	return res
}

// cleanup gives sources that opted in a chance to delete their input
// file, but only when every section built from that source landed. A
// failed write keeps the input around for the next run.
func (a *Aggregator) cleanup(collected map[models.SourceKind]sources.Source, kindFailed map[models.SourceKind]bool) {
	for kind, src := range collected {
		c, ok := src.(cleaner)
		if !ok {
			continue
		}
		if kindFailed[kind] {
			a.logger.Warn("keeping source file after write failure",
				slog.String("kind", string(kind)))
			continue
		}
		if err := c.Cleanup(); err != nil {
			a.logger.Warn("cleanup failed",
				slog.String("kind", string(kind)),
				slog.Any("error", err))
		}
	}
}

func sortedKinds(buckets map[models.SourceKind]*models.DateBucket) []models.SourceKind {
	kinds := make([]models.SourceKind, 0, len(buckets))
	for k := range buckets {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
