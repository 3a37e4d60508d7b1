// Package storage defines the read-only journal tree abstraction used
// by the index and the API. The write engine is the only component that
// modifies journal files, so the provider deliberately has no write
// operations.
package storage

import "github.com/hollis/daybook/internal/models"

// Provider is the interface for journal tree reads.
type Provider interface {
	// List returns metadata for every .md file under the journal root.
	List() ([]models.DayMetadata, error)
	// Read returns the raw bytes of the file at path (relative to the
	// journal root).
	Read(path string) ([]byte, error)
}
