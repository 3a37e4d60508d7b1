// Package journal implements the journal file layout and the idempotent
// merge-append engine that writes sections into per-day markdown files.
package journal

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/hollis/daybook/internal/apperr"
	"github.com/hollis/daybook/internal/dates"
)

// Resolve maps a canonical date to its journal file path:
//
//	targetDir/YYYY/MM-MonthName/YYYY-MM-DD.md
//
// The MM- prefix keeps month directories in chronological order when
// sorted lexically. Resolve is a pure function; it never touches the
// filesystem. Directories are created lazily at write time by the
// engine.
func Resolve(date, targetDir string) (string, error) {
	t, err := time.Parse(dates.Canonical, date)
	if err != nil {
		return "", fmt.Errorf("journal: resolve %q: %w", date, apperr.ErrInvalidDate)
	}
	monthDir := fmt.Sprintf("%02d-%s", int(t.Month()), t.Month().String())
	return filepath.Join(targetDir, t.Format("2006"), monthDir, date+".md"), nil
}
