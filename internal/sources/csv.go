package sources

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/hollis/daybook/internal/apperr"
)

// csvRows reads a headered CSV file and returns one map per row keyed
// by column name. A missing file is a source-unavailable condition, not
// a crash: exports only exist after the user downloads them.
func csvRows(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sources: open %s: %w: %v", path, apperr.ErrSourceUnavailable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("sources: read header %s: %w: %v", path, apperr.ErrSourceUnavailable, err)
	}

	var rows []map[string]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sources: read %s: %w: %v", path, apperr.ErrSourceUnavailable, err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// removeSourceFile deletes a consumed export when the config asks for
// it. Purely housekeeping; failures are returned for logging only.
func removeSourceFile(cfg FileConfig) error {
	if !cfg.DeleteAfter {
		return nil
	}
	if err := os.Remove(cfg.Path); err != nil {
		return fmt.Errorf("sources: remove %s: %w", cfg.Path, err)
	}
	return nil
}
