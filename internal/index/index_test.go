package index

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/hollis/daybook/internal/apperr"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "daybook-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func dayRow(path, day, checksum string) DayRow {
	return DayRow{
		Path:      path,
		Day:       day,
		Sections:  []string{"News Headlines"},
		Checksum:  checksum,
		UpdatedAt: time.Now(),
	}
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM days`).Scan(&count); err != nil {
		t.Fatalf("days table missing: %v", err)
	}
}

func TestUpsertAndGetDay(t *testing.T) {
	db := testDB(t)
	row := DayRow{
		Path:      "2024/06-June/2024-06-09.md",
		Day:       "2024-06-09",
		Sections:  []string{"News Headlines", "Events"},
		Checksum:  "abc123",
		UpdatedAt: time.Now(),
	}
	if err := db.UpsertDay(row, "## News Headlines\n"); err != nil {
		t.Fatalf("UpsertDay: %v", err)
	}

	got, err := db.GetDay(row.Path)
	if err != nil {
		t.Fatalf("GetDay: %v", err)
	}
	if got.Checksum != "abc123" || got.Day != "2024-06-09" {
		t.Errorf("row = %+v", got)
	}
	if len(got.Sections) != 2 || got.Sections[1] != "Events" {
		t.Errorf("sections = %v", got.Sections)
	}
}

func TestGetByDate(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDay(dayRow("2024/06-June/2024-06-09.md", "2024-06-09", "1"), "body")

	got, err := db.GetByDate("2024-06-09")
	if err != nil {
		t.Fatalf("GetByDate: %v", err)
	}
	if got.Path != "2024/06-June/2024-06-09.md" {
		t.Errorf("path = %q", got.Path)
	}

	_, err = db.GetByDate("1999-01-01")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteDay(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDay(dayRow("del.md", "2024-06-09", "x"), "body")

	if err := db.DeleteDay("del.md"); err != nil {
		t.Fatalf("DeleteDay: %v", err)
	}
	if _, err := db.GetDay("del.md"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("deleted entry still readable: %v", err)
	}
}

func TestUpsertUpdatesExisting(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDay(dayRow("up.md", "2024-06-09", "1"), "old body")
	_ = db.UpsertDay(dayRow("up.md", "2024-06-09", "2"), "new body")

	got, err := db.GetDay("up.md")
	if err != nil {
		t.Fatal(err)
	}
	if got.Checksum != "2" {
		t.Errorf("checksum = %q, want %q", got.Checksum, "2")
	}
}

func TestListDays(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDay(dayRow("a.md", "2024-06-08", "1"), "b")
	_ = db.UpsertDay(dayRow("b.md", "2024-06-09", "2"), "b")
	_ = db.UpsertDay(dayRow("c.md", "2024-06-10", "3"), "b")
	_ = db.UpsertDay(dayRow("scratch.md", "", "4"), "hand-written file")

	rows, total, err := db.ListDays(10, 0, "", "")
	if err != nil {
		t.Fatalf("ListDays: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3 (dayless files excluded)", total)
	}
	if len(rows) != 3 || rows[0].Day != "2024-06-10" {
		t.Errorf("rows not newest first: %+v", rows)
	}

	rows, total, err = db.ListDays(10, 0, "2024-06-09", "2024-06-09")
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(rows) != 1 || rows[0].Day != "2024-06-09" {
		t.Errorf("range filter: total=%d rows=%+v", total, rows)
	}

	rows, total, err = db.ListDays(2, 2, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || len(rows) != 1 || rows[0].Day != "2024-06-08" {
		t.Errorf("pagination: total=%d rows=%+v", total, rows)
	}
}

func TestAllChecksums(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDay(dayRow("a.md", "2024-06-08", "cs-a"), "b")
	_ = db.UpsertDay(dayRow("b.md", "2024-06-09", "cs-b"), "b")

	cs, err := db.AllChecksums()
	if err != nil {
		t.Fatalf("AllChecksums: %v", err)
	}
	if len(cs) != 2 || cs["a.md"] != "cs-a" {
		t.Errorf("checksums = %v", cs)
	}
}

func TestSearchBasic(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDay(dayRow("s.md", "2024-06-09", "1"), "uniqueword appears here")

	results, err := db.Search("uniqueword", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Path != "s.md" {
		t.Errorf("search results = %+v, want 1 hit for s.md", results)
	}
	if results[0].Day != "2024-06-09" {
		t.Errorf("result day = %q", results[0].Day)
	}
}
