package history

import (
	"context"
	"slices"
	"sync"
)

// DefaultCapacity bounds a MemoryStore created with a non-positive capacity.
const DefaultCapacity = 1000

// MemoryStore keeps the most recent entries in memory.
// It is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
}

// NewMemoryStore returns a store holding at most capacity entries.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryStore{capacity: capacity}
}

func (s *MemoryStore) Record(ctx context.Context, e *Entry) error {
	prepare(e)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, *e)
	if over := len(s.entries) - s.capacity; over > 0 {
		s.entries = slices.Delete(s.entries, 0, over)
	}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.entries)
	if limit > 0 {
		n = min(n, limit)
	}
	out := make([]Entry, 0, n)
	for i := len(s.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
