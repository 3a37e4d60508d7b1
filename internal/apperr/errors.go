// Package apperr defines sentinel errors shared across Daybook components.
//
// Missing data and unwritable paths are expected, common outcomes of an
// aggregation run, so they are modeled as plain errors checked with
// errors.Is rather than panics or ad-hoc strings.
package apperr

import "errors"

var (
	// ErrInvalidDate marks a record whose date could not be parsed.
	// The record is dropped and counted; never fatal.
	ErrInvalidDate = errors.New("invalid date")

	// ErrDirUnwritable marks a journal directory that could not be
	// created or written. The (date, section) pair is skipped.
	ErrDirUnwritable = errors.New("directory unwritable")

	// ErrFileUnwritable marks a journal file that exists but rejects writes.
	ErrFileUnwritable = errors.New("file unwritable")

	// ErrIO marks a transient filesystem failure during read or write.
	// Isolated the same way as unwritable paths.
	ErrIO = errors.New("i/o failure")

	// ErrSourceUnavailable marks an upstream fetch or parse failure.
	// The whole source kind is skipped for the run; other sources proceed.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrNotFound is returned for lookups of days or files that do not exist.
	ErrNotFound = errors.New("not found")
)
