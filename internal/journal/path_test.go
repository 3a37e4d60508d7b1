package journal

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/hollis/daybook/internal/apperr"
)

func TestResolveLayout(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2020-02-29", filepath.Join("journal", "2020", "02-February", "2020-02-29.md")},
		{"2021-12-01", filepath.Join("journal", "2021", "12-December", "2021-12-01.md")},
		{"1999-01-15", filepath.Join("journal", "1999", "01-January", "1999-01-15.md")},
	}
	for _, tc := range cases {
		got, err := Resolve(tc.date, "journal")
		if err != nil {
			t.Errorf("Resolve(%q): %v", tc.date, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Resolve(%q) = %q, want %q", tc.date, got, tc.want)
		}
	}
}

func TestResolveIsPure(t *testing.T) {
	a, err := Resolve("2024-06-10", "/data/journal")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	b, err := Resolve("2024-06-10", "/data/journal")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if a != b {
		t.Errorf("Resolve not deterministic: %q vs %q", a, b)
	}
}

func TestResolveInvalidDate(t *testing.T) {
	cases := []string{"", "2020/02/29", "Feb 29, 2020", "2020-13-01"}
	for _, d := range cases {
		if _, err := Resolve(d, "journal"); !errors.Is(err, apperr.ErrInvalidDate) {
			t.Errorf("Resolve(%q) err = %v, want ErrInvalidDate", d, err)
		}
	}
}
