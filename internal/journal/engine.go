package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hollis/daybook/internal/apperr"
)

// Result describes the outcome of one EnsureSection call.
type Result int

// EnsureSection outcomes.
const (
	Failed Result = iota
	Created
	Appended
	Skipped
)

// String returns the lowercase name of the result.
func (r Result) String() string {
	switch r {
	case Created:
		return "created"
	case Appended:
		return "appended"
	case Skipped:
		return "skipped"
	}
	return "failed"
}

// Engine appends rendered sections to journal files exactly once per
// marker. It is the only component that writes to the journal tree.
//
// The defining invariant: for a fixed (path, marker) pair, re-running
// EnsureSection any number of times after the first successful Created
// or Appended call yields Skipped, regardless of the body passed. The
// engine never duplicates a section and never replaces an existing
// section's content. This is an at-most-once guarantee, not a freshness
// guarantee: stale data already written stays as written.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates an engine that logs decisions to logger.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// EnsureSection makes sure the file at path contains a section
// identified by marker, creating the file (and parent directories) or
// appending the body as needed.
//
//   - parent directory missing        → create recursively, then proceed
//   - file missing                    → write body, Created
//   - file contains marker substring  → Skipped, content untouched
//   - otherwise                       → append "\n\n" + body, Appended
//
// body must itself begin with marker; callers get that for free from the
// section renderers. All failures come back as wrapped apperr sentinels
// and are meant to be logged and skipped by the caller; one bad
// (date, section) pair must not abort the rest of the run.
func (e *Engine) EnsureSection(path, marker, body string) (Result, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Failed, fmt.Errorf("journal: create dir %s: %w: %v", dir, apperr.ErrDirUnwritable, err)
	}

	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Substring match of the heading is the idempotence test.
		// Fragile against heading edits, but that is the documented
		// contract.
		if strings.Contains(string(existing), marker) {
			e.logger.Debug("section already present",
				slog.String("path", path),
				slog.String("marker", marker))
			return Skipped, nil
		}
		if err := appendSection(path, body); err != nil {
			return Failed, fmt.Errorf("journal: append %s: %w", path, err)
		}
		e.logger.Info("section appended",
			slog.String("path", path),
			slog.String("marker", marker))
		return Appended, nil

	case errors.Is(err, fs.ErrNotExist):
		if err := createSection(path, body); err != nil {
			return Failed, fmt.Errorf("journal: create %s: %w", path, err)
		}
		e.logger.Info("file created",
			slog.String("path", path),
			slog.String("marker", marker))
		return Created, nil

	default:
		return Failed, fmt.Errorf("journal: read %s: %w", path, classify(err, apperr.ErrIO))
	}
}

// appendSection opens the file in append mode and writes the body after
// a blank-line separator.
func appendSection(path, body string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return classify(err, apperr.ErrFileUnwritable)
	}
	defer f.Close()
	if _, err := f.WriteString("\n\n" + body); err != nil {
		return classify(err, apperr.ErrIO)
	}
	return nil
}

// createSection creates the file and writes the body with no leading
// separator. O_EXCL guards against the file appearing between the
// existence check and the create.
func createSection(path, body string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return classify(err, apperr.ErrDirUnwritable)
	}
	defer f.Close()
	if _, err := f.WriteString(body); err != nil {
		return classify(err, apperr.ErrIO)
	}
	return nil
}

// classify wraps err with the taxonomy sentinel that fits it: permission
// problems map to the unwritable sentinel given, everything else is a
// transient I/O failure.
func classify(err error, unwritable error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %v", unwritable, err)
	}
	return fmt.Errorf("%w: %v", apperr.ErrIO, err)
}
