// Package dates normalizes heterogeneous date representations into the
// canonical YYYY-MM-DD key that joins records to journal files.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hollis/daybook/internal/apperr"
)

// Canonical is the layout of every normalized date.
const Canonical = "2006-01-02"

// layouts are tried in priority order. Bare numeric fields ("1", "2")
// accept both padded and unpadded digits, so MM/DD/YYYY and M/D/YYYY
// share one entry.
var layouts = []string{
	Canonical,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"1/2/2006",
	"1/2/06",
	"Monday, Jan 2 2006 at 3:04 PM",
	"Mon, Jan 2 2006 at 3:04 PM",
	"Monday, Jan 2 2006",
	"Mon, Jan 2 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// embedded date patterns used as a fallback when no exact layout
// matches; the first captured substring is re-parsed against layouts.
var embeddedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`\w+, \w+ \d{1,2} \d{4}`),
	regexp.MustCompile(`\w+ \d{1,2}, \d{4}`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`),
}

// Normalize parses raw into a canonical YYYY-MM-DD string.
//
// Exact layouts are tried first in a fixed priority order. All-digit
// strings of eleven or more characters are treated as epoch-millisecond
// timestamps and interpreted in local time (matching the historical
// behavior of the play-history importer). As a last resort an embedded
// date substring is extracted by pattern search and re-parsed. When
// nothing matches, apperr.ErrInvalidDate is returned and the caller is
// expected to drop (and count) the record.
func Normalize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("dates: empty input: %w", apperr.ErrInvalidDate)
	}

	if isDigits(s) && len(s) >= 11 {
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return "", fmt.Errorf("dates: epoch %q: %w", raw, apperr.ErrInvalidDate)
		}
		return time.UnixMilli(ms).Format(Canonical), nil
	}

	if d, ok := parseExact(s); ok {
		return d, nil
	}

	for _, re := range embeddedPatterns {
		m := re.FindString(s)
		if m == "" || m == s {
			continue
		}
		if d, ok := parseExact(m); ok {
			return d, nil
		}
	}

	return "", fmt.Errorf("dates: unparseable date %q: %w", raw, apperr.ErrInvalidDate)
}

// FromTime formats t as a canonical date string.
func FromTime(t time.Time) string {
	return t.Format(Canonical)
}

func parseExact(s string) (string, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(Canonical), true
		}
	}
	return "", false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
