package api

import (
	"context"
	"time"

	"github.com/hollis/daybook/internal/index"
	"github.com/hollis/daybook/internal/parser"
	"github.com/hollis/daybook/internal/storage"
)

// Service coordinates storage and index reads for the API layer. The
// API is read-only: journal files are written exclusively by the
// collection engine, so every endpoint here is a view over the tree
// and its index.
type Service struct {
	store storage.Provider
	db    index.DayIndex
}

// NewService creates a new API service.
func NewService(store storage.Provider, db index.DayIndex) *Service {
	return &Service{store: store, db: db}
}

// DayDetail is the response payload for a single day.
type DayDetail struct {
	Day       string    `json:"day"`
	Path      string    `json:"path"`
	Title     string    `json:"title,omitempty"`
	Sections  []string  `json:"sections"`
	Content   string    `json:"content"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DayListItem is a lightweight item in a list response.
type DayListItem struct {
	Day       string    `json:"day"`
	Path      string    `json:"path"`
	Title     string    `json:"title,omitempty"`
	Sections  []string  `json:"sections"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JournalSummary describes the whole journal at a glance.
type JournalSummary struct {
	Days     int    `json:"days"`
	FirstDay string `json:"first_day,omitempty"`
	LastDay  string `json:"last_day,omitempty"`
}

// GetDay looks up the file for a canonical date and returns its parsed
// content. The markdown on disk is the source of truth, so the content
// is re-read rather than served from the index.
func (s *Service) GetDay(_ context.Context, date string) (*DayDetail, error) {
	row, err := s.db.GetByDate(date)
	if err != nil {
		return nil, err
	}
	data, err := s.store.Read(row.Path)
	if err != nil {
		return nil, err
	}
	d := parser.Parse(data)
	sections := d.Sections
	if sections == nil {
		sections = []string{}
	}
	return &DayDetail{
		Day:       row.Day,
		Path:      row.Path,
		Title:     d.Title,
		Sections:  sections,
		Content:   string(data),
		Checksum:  storage.Checksum(data),
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// ListDays returns a paginated listing, newest first, optionally
// bounded to [from, to].
func (s *Service) ListDays(_ context.Context, limit, offset int, from, to string) ([]DayListItem, int, error) {
	rows, total, err := s.db.ListDays(limit, offset, from, to)
	if err != nil {
		return nil, 0, err
	}
	items := make([]DayListItem, len(rows))
	for i, r := range rows {
		sections := r.Sections
		if sections == nil {
			sections = []string{}
		}
		items[i] = DayListItem{
			Day:       r.Day,
			Path:      r.Path,
			Title:     r.Title,
			Sections:  sections,
			UpdatedAt: r.UpdatedAt,
		}
	}
	return items, total, nil
}

// Search delegates to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Summary reports the journal's span: how many days it covers and the
// oldest and newest dates.
func (s *Service) Summary(_ context.Context) (*JournalSummary, error) {
	newest, total, err := s.db.ListDays(1, 0, "", "")
	if err != nil {
		return nil, err
	}
	sum := &JournalSummary{Days: total}
	if total == 0 {
		return sum, nil
	}
	sum.LastDay = newest[0].Day

	oldest, _, err := s.db.ListDays(1, total-1, "", "")
	if err != nil {
		return nil, err
	}
	if len(oldest) == 1 {
		sum.FirstDay = oldest[0].Day
	}
	return sum, nil
}
