// Package models defines the domain types for Daybook.
package models

import (
	"sort"
	"time"
)

// SourceKind identifies where a record came from and which journal
// section it belongs to.
type SourceKind string

// All supported source kinds.
const (
	KindNews      SourceKind = "news"
	KindWeather   SourceKind = "weather"
	KindMovies    SourceKind = "movies"
	KindChart     SourceKind = "chart"
	KindStreaming SourceKind = "streaming"
	KindMusic     SourceKind = "music"
	KindPurchase  SourceKind = "purchase"
	KindReview    SourceKind = "review"
	KindEvent     SourceKind = "event"
)

// Marker returns the fixed section heading for the kind. The heading is
// the idempotence key: a journal file "has" the section iff its content
// contains this exact substring.
func (k SourceKind) Marker() string {
	switch k {
	case KindNews:
		return "## News Headlines"
	case KindWeather:
		return "## Weather Forecast"
	case KindMovies:
		return "## Box Office"
	case KindChart:
		return "## Music Charts"
	case KindStreaming:
		return "## Netflix Viewing History"
	case KindMusic:
		return "## Apple Music Play History"
	case KindPurchase:
		return "## Movies Attended"
	case KindReview:
		return "## Yelp Reviews"
	case KindEvent:
		return "## Events"
	}
	return ""
}

// DatedRecord is one unit of activity data pinned to a canonical
// YYYY-MM-DD date. Immutable once produced by a source.
type DatedRecord struct {
	Date    string // canonical YYYY-MM-DD
	Kind    SourceKind
	Payload any // one of the payload structs below, per Kind
}

// NewsItem is the payload for KindNews.
type NewsItem struct {
	Title string
	Link  string
}

// ForecastDay is the payload for KindWeather. Values are metric as
// delivered by the API; renderers convert for display.
type ForecastDay struct {
	Condition     string
	TempMaxC      float64
	TempMinC      float64
	PrecipChance  float64 // 0..1
	PrecipMM      float64
	WindKMH       float64
	HasConditions bool // false when the daytime forecast block was missing
}

// BoxOfficeEntry is the payload for KindMovies.
type BoxOfficeEntry struct {
	Rank        int
	Title       string
	Revenue     string
	Description string
}

// ChartEntry is the payload for KindChart.
type ChartEntry struct {
	Rank   int
	Title  string
	Artist string
}

// WatchedTitle is the payload for KindStreaming.
type WatchedTitle struct {
	Title string
}

// PlayedTrack is the payload for KindMusic.
type PlayedTrack struct {
	Track string
}

// TicketPurchase is the payload for KindPurchase.
type TicketPurchase struct {
	Movie          string
	TheaterName    string
	TheaterAddress string
}

// Review is the payload for KindReview.
type Review struct {
	Business string
	Rating   float64
	Comment  string
}

// Event is the payload for KindEvent.
type Event struct {
	Name     string
	Location string
}

// DayMetadata describes one journal file on disk, as seen by the
// read-only storage provider and the index.
type DayMetadata struct {
	Path      string // relative to the journal root
	Day       string // canonical date from the filename, empty when it does not parse
	Checksum  string // sha256 of the file content, hex encoded
	UpdatedAt time.Time
}

// DayEntry is an indexed journal file: its metadata plus the structure
// pulled out by the parser.
type DayEntry struct {
	DayMetadata
	Title    string
	Sections []string
	Body     string
}

// DateBucket groups records of a single kind by canonical date,
// preserving the order records were added within each date. Built fresh
// per run; never persisted.
type DateBucket struct {
	byDate map[string][]DatedRecord
}

// NewDateBucket returns an empty bucket.
func NewDateBucket() *DateBucket {
	return &DateBucket{byDate: make(map[string][]DatedRecord)}
}

// Add appends a record under its canonical date.
func (b *DateBucket) Add(rec DatedRecord) {
	b.byDate[rec.Date] = append(b.byDate[rec.Date], rec)
}

// Dates returns all dates in the bucket in ascending order, which for
// YYYY-MM-DD keys is chronological.
func (b *DateBucket) Dates() []string {
	out := make([]string, 0, len(b.byDate))
	for d := range b.byDate {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Records returns the records for one date in insertion order.
func (b *DateBucket) Records(date string) []DatedRecord {
	return b.byDate[date]
}

// Len returns the number of distinct dates in the bucket.
func (b *DateBucket) Len() int {
	return len(b.byDate)
}
