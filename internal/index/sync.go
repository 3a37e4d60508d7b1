package index

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/hollis/daybook/internal/dates"
	"github.com/hollis/daybook/internal/parser"
	"github.com/hollis/daybook/internal/storage"
)

// Sync walks the journal tree and brings the index up to date:
//   - new/changed files are parsed and upserted
//   - files removed from disk are deleted from the index
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List()
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexFile(db, m.Path, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteDay(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexFile parses data and upserts it into the DB.
func indexFile(db *DB, path string, data []byte) error {
	d := parser.Parse(data)

	row := DayRow{
		Path:      path,
		Day:       dayFromPath(path),
		Title:     d.Title,
		Sections:  d.Sections,
		Checksum:  storage.Checksum(data),
		UpdatedAt: time.Now(),
	}
	return db.UpsertDay(row, d.Body)
}

// dayFromPath derives the canonical date from a day-file name, or ""
// when the name does not follow the YYYY-MM-DD.md convention.
func dayFromPath(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), ".md")
	if _, err := time.Parse(dates.Canonical, base); err != nil {
		return ""
	}
	return base
}
