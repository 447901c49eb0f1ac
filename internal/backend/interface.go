// Package backend selects and wires the record store at startup.
package backend

import (
	"context"

	"github.com/obrienteixeira/tokyo-manicure/internal/records"
)

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Result contains the stores and a cleanup function.
//
// Store is the primary read/write store. Reader serves the reporting
// queries: it is the dedicated replica when one is configured, and the
// primary store otherwise.
type Result struct {
	Store   records.Store
	Reader  records.Reader
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Optional Postgres reporting replica. When set, report reads go
	// here instead of the primary store.
	ReportingDSN string
}

// Type represents the kind of primary store.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
