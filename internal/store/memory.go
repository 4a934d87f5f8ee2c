// apps/go-server/internal/store/memory.go
//
// In-memory registry of live matches, so HTTP routes can look up a match a
// WebSocket connection is playing.
//
// Characteristics:
//   - Stores *match.Match objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/jamo-archer/apps/go-server/internal/match"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("store: match not found")

// Store tracks live matches.
type Store interface {
	// Save adds or replaces a match.
	Save(ctx context.Context, m *match.Match) error

	// Get retrieves a match by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*match.Match, error)

	// Delete forgets a match. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Len reports how many matches are tracked.
	Len() int
}

type memory struct {
	mu      sync.RWMutex
	matches map[string]*match.Match
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{matches: make(map[string]*match.Match)}
}

func (m *memory) Save(_ context.Context, mt *match.Match) error {
	if mt == nil {
		return errors.New("store: nil match")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches[mt.ID] = mt
	return nil
}

func (m *memory) Get(_ context.Context, id string) (*match.Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if mt, ok := m.matches[id]; ok {
		return mt, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.matches, id)
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.matches)
}
