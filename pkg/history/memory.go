package history

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/planline/planline/pkg/errors"
)

// MemoryStore keeps runs in memory, newest last. It backs the "memory"
// config backend and the tests of everything layered on a Store.
type MemoryStore struct {
	mu   sync.RWMutex
	runs []*Run
	byID map[uuid.UUID]*Run
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[uuid.UUID]*Run)}
}

// Save persists a run. Saving the same ID twice replaces the record.
func (s *MemoryStore) Save(ctx context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[run.ID]; !ok {
		s.runs = append(s.runs, run)
	} else {
		for i, r := range s.runs {
			if r.ID == run.ID {
				s.runs[i] = run
				break
			}
		}
	}
	s.byID[run.ID] = run
	return nil
}

// Get retrieves a run by ID.
func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.byID[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeRunNotFound, "run not found: %s", id.String())
	}
	return run, nil
}

// List returns the most recent runs, newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.runs)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*Run, 0, n)
	for i := len(s.runs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.runs[i])
	}
	return out, nil
}

// Close does nothing for the memory backend.
func (s *MemoryStore) Close() error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
