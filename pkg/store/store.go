package store

import (
	"fmt"

	"github.com/praetorian-inc/needle/pkg/types"
)

// Store provides persistence for recorded matcher runs.
// This interface abstracts the underlying storage implementation,
// allowing for different backends.
type Store interface {
	// AddRun stores a run and assigns its ID.
	AddRun(run *types.Run) error

	// GetRuns retrieves all runs in insertion order.
	GetRuns() ([]*types.Run, error)

	// GetRunsByText retrieves runs over the text with this ID.
	GetRunsByText(id types.TextID) ([]*types.Run, error)

	// GetRunsByPattern retrieves runs searching for the pattern with this ID.
	GetRunsByPattern(id types.PatternID) ([]*types.Run, error)

	// TextExists checks if a text has been searched before.
	TextExists(id types.TextID) (bool, error)

	// Close releases the underlying resources.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path.
	// Use ":memory:" for an in-memory store (useful for testing).
	Path string
}

// New creates a new Store. ":memory:" returns a MemoryStore; any other path
// opens (or creates) a SQLite database.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	if cfg.Path == ":memory:" {
		return NewMemory(), nil
	}

	return NewSQLite(cfg.Path)
}
