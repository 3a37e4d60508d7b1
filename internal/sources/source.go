// Package sources implements the record providers that feed the
// aggregation pipeline: HTTP APIs, CSV exports, and saved HTML.
//
// Sources are thin, swappable adapters: each one fetches raw data,
// normalizes dates, and emits immutable DatedRecords. All policy about
// where records end up lives in the renderers and the journal engine.
package sources

import (
	"context"

	"github.com/hollis/daybook/internal/models"
)

// Source produces date-keyed records for one source kind.
//
// Records returns the parsed records plus the number of rows dropped
// because their date could not be normalized. A non-nil error means the
// whole source is unavailable for this run (wrapped
// apperr.ErrSourceUnavailable); callers skip the kind and continue.
type Source interface {
	Kind() models.SourceKind
	Records(ctx context.Context) ([]models.DatedRecord, int, error)
}
