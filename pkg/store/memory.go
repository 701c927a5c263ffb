package store

import (
	"sync"

	"github.com/praetorian-inc/needle/pkg/types"
)

// MemoryStore implements Store using in-memory data structures.
// Used for ":memory:" paths and in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	texts  map[string]int // text size keyed by TextID.Hex()
	runs   []*types.Run
	nextID int64
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		texts:  make(map[string]int),
		runs:   make([]*types.Run, 0),
		nextID: 1,
	}
}

// AddRun stores a copy of the run and assigns its ID.
func (m *MemoryStore) AddRun(run *types.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	run.ID = m.nextID
	m.nextID++

	m.texts[run.TextID.Hex()] = run.TextLen
	m.runs = append(m.runs, cloneRun(run))
	return nil
}

// GetRuns retrieves all runs.
func (m *MemoryStore) GetRuns() ([]*types.Run, error) {
	return m.filter(func(*types.Run) bool { return true }), nil
}

// GetRunsByText retrieves runs over a specific text.
func (m *MemoryStore) GetRunsByText(id types.TextID) ([]*types.Run, error) {
	return m.filter(func(r *types.Run) bool { return r.TextID == id }), nil
}

// GetRunsByPattern retrieves runs for a specific pattern.
func (m *MemoryStore) GetRunsByPattern(id types.PatternID) ([]*types.Run, error) {
	return m.filter(func(r *types.Run) bool { return r.PatternID == id }), nil
}

// TextExists checks if a text has been recorded.
func (m *MemoryStore) TextExists(id types.TextID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.texts[id.Hex()]
	return exists, nil
}

// Close is a no-op for the memory store.
func (m *MemoryStore) Close() error {
	return nil
}

func (m *MemoryStore) filter(keep func(*types.Run) bool) []*types.Run {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*types.Run
	for _, r := range m.runs {
		if keep(r) {
			result = append(result, cloneRun(r))
		}
	}
	return result
}

func cloneRun(r *types.Run) *types.Run {
	c := *r
	c.Indices = append([]int{}, r.Indices...)
	return &c
}
