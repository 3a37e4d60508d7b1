package index

// DayIndex defines the interface for journal index operations.
// Consumers depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type DayIndex interface {
	UpsertDay(row DayRow, body string) error
	DeleteDay(path string) error
	GetDay(path string) (*DayRow, error)
	GetByDate(day string) (*DayRow, error)
	ListDays(limit, offset int, from, to string) ([]DayRow, int, error)
	Search(query string, limit int) ([]SearchResult, error)
	AllChecksums() (map[string]string, error)
	Close() error
}

// Verify *DB satisfies DayIndex at compile time.
var _ DayIndex = (*DB)(nil)
