package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hollis/daybook/internal/apperr"
)

// DayRow represents a row in the days table.
type DayRow struct {
	Path      string
	Day       string // canonical YYYY-MM-DD, empty for non-conventional files
	Title     string
	Sections  []string
	Checksum  string
	UpdatedAt time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	Path    string
	Day     string
	Title   string
	Snippet string
}

// UpsertDay inserts or replaces a day entry and its FTS row within a
// transaction.
func (db *DB) UpsertDay(row DayRow, body string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	sectionsJSON, _ := json.Marshal(row.Sections)

	// Body lives in the days table too, for the LIKE fallback search.
	_, err = tx.Exec(`
		INSERT INTO days (path, day, title, sections, checksum, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			day        = excluded.day,
			title      = excluded.title,
			sections   = excluded.sections,
			checksum   = excluded.checksum,
			body       = excluded.body,
			updated_at = excluded.updated_at
	`, row.Path, row.Day, row.Title, string(sectionsJSON), row.Checksum, body, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert day: %w", err)
	}

	// FTS upsert (no-op when the FTS5 tag is absent).
	if err := ftsUpsert(tx, row.Path, row.Day, row.Title, body, row.Sections); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteDay removes a day entry and its FTS row.
func (db *DB) DeleteDay(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, path)
	_, _ = tx.Exec(`DELETE FROM days WHERE path = ?`, path)

	return tx.Commit()
}

// GetDay returns the entry stored for path.
func (db *DB) GetDay(path string) (*DayRow, error) {
	return db.getWhere(`path = ?`, path)
}

// GetByDate returns the entry for a canonical date. With the one-file-
// per-day layout there is at most one.
func (db *DB) GetByDate(day string) (*DayRow, error) {
	return db.getWhere(`day = ?`, day)
}

func (db *DB) getWhere(cond string, arg string) (*DayRow, error) {
	var row DayRow
	var sectionsJSON string
	err := db.conn.QueryRow(
		`SELECT path, day, title, sections, checksum, updated_at FROM days WHERE `+cond, arg,
	).Scan(&row.Path, &row.Day, &row.Title, &sectionsJSON, &row.Checksum, &row.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("index: day %q: %w", arg, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("index: get day: %w", err)
	}
	_ = json.Unmarshal([]byte(sectionsJSON), &row.Sections)
	return &row, nil
}

// ListDays returns a page of entries, newest day first, plus the total
// count for the same filter. from and to bound the day column
// inclusively; either may be empty.
func (db *DB) ListDays(limit, offset int, from, to string) ([]DayRow, int, error) {
	if limit <= 0 {
		limit = 50
	}

	cond := `day != ''`
	args := []any{}
	if from != "" {
		cond += ` AND day >= ?`
		args = append(args, from)
	}
	if to != "" {
		cond += ` AND day <= ?`
		args = append(args, to)
	}

	var total int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM days WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count days: %w", err)
	}

	rows, err := db.conn.Query(
		`SELECT path, day, title, sections, checksum, updated_at FROM days WHERE `+cond+
			` ORDER BY day DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list days: %w", err)
	}
	defer rows.Close()

	var out []DayRow
	for rows.Next() {
		var r DayRow
		var sectionsJSON string
		if err := rows.Scan(&r.Path, &r.Day, &r.Title, &sectionsJSON, &r.Checksum, &r.UpdatedAt); err != nil {
			return nil, 0, err
		}
		_ = json.Unmarshal([]byte(sectionsJSON), &r.Sections)
		out = append(out, r)
	}
	return out, total, rows.Err()
}

// AllChecksums returns path → checksum for every indexed file. Sync and
// the watcher use it to decide what needs re-parsing.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM days`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}
