// Package render converts date-bucketed records into markdown sections.
//
// Each source kind has exactly one renderer registered in a static
// table; dispatch is by SourceKind value, never by constructing names at
// runtime. Renderers are deterministic: the same records in the same
// order produce byte-identical output, except for the run-date stamp
// carried by the news and weather sections.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/hollis/daybook/internal/models"
)

// Section is a rendered markdown section. Marker is the fixed heading
// used as the idempotence key; Body always begins with Marker.
type Section struct {
	Marker string
	Body   string
}

// Func renders the records of one (kind, date) group. now is the run
// time, used only for "generated on" stamps.
type Func func(recs []models.DatedRecord, now time.Time) Section

var registry = map[models.SourceKind]Func{
	models.KindNews:      News,
	models.KindWeather:   Weather,
	models.KindMovies:    BoxOffice,
	models.KindChart:     Chart,
	models.KindStreaming: Streaming,
	models.KindMusic:     Music,
	models.KindPurchase:  Purchases,
	models.KindReview:    Reviews,
	models.KindEvent:     Events,
}

// For returns the renderer registered for kind.
func For(kind models.SourceKind) (Func, bool) {
	f, ok := registry[kind]
	return f, ok
}

// Placeholders for missing table fields.
const (
	placeholderNA    = "N/A"
	placeholderTitle = "Unknown Title"
)

// Truncation thresholds for free-text table cells.
const (
	maxDescriptionLen = 300
	maxCommentLen     = 100
)

// truncate bounds s to max characters, replacing the tail with "..."
// when it is longer. Counting is in runes so multi-byte text is never
// cut mid-character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// cell sanitizes a value for use inside a markdown table row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

// orNA substitutes the N/A placeholder for empty values.
func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholderNA
	}
	return s
}

// dedupeLines removes later duplicates of identical rendered lines,
// preserving first-seen order. Upstream exports routinely contain exact
// duplicate rows for the same date.
func dedupeLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := lines[:0]
	for _, l := range lines {
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// Unit conversions used by the weather renderer, rounded to one decimal
// at format time.
func cToF(c float64) float64     { return c*9/5 + 32 }
func kmhToMPH(v float64) float64 { return v * 0.621371 }
func mmToIn(v float64) float64   { return v * 0.0393701 }

func fmt1(v float64) string { return fmt.Sprintf("%.1f", v) }

// pct converts a fractional chance (0..1) to an integer percentage.
func pct(fraction float64) string {
	return fmt.Sprintf("%d%%", int(fraction*100+0.5))
}

// stamp renders the run-date line used by the news and weather sections.
func stamp(now time.Time) string {
	return "_Generated on " + now.Format("2006-01-02") + "_"
}
