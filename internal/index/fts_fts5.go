//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS days_fts USING fts5(
			path UNINDEXED,
			day UNINDEXED,
			title,
			body,
			sections,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, path, day, title, body string, sections []string) error {
	_, _ = tx.Exec(`DELETE FROM days_fts WHERE path = ?`, path)
	_, err := tx.Exec(`INSERT INTO days_fts (path, day, title, body, sections) VALUES (?, ?, ?, ?, ?)`,
		path, day, title, body, strings.Join(sections, " "))
	if err != nil {
		return fmt.Errorf("index: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, path string) {
	_, _ = tx.Exec(`DELETE FROM days_fts WHERE path = ?`, path)
}

// Search performs an FTS5 full-text search and returns matching entries
// with snippets.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT path,
		       day,
		       title,
		       snippet(days_fts, 3, '<b>', '</b>', '...', 64)
		FROM days_fts
		WHERE days_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Path, &r.Day, &r.Title, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
