package play

import (
	"context"
	"sync"
)

// TablePersistence stores table snapshots by game id.
type TablePersistence interface {
	Save(ctx context.Context, gameID string, snap TableSnapshot) error
	Load(ctx context.Context, gameID string) (TableSnapshot, bool, error)
}

// MemoryTableStore keeps snapshots in process. Used offline and in tests.
type MemoryTableStore struct {
	mu sync.Mutex
	m  map[string]TableSnapshot
}

func NewMemoryTableStore() *MemoryTableStore {
	return &MemoryTableStore{m: make(map[string]TableSnapshot)}
}

func (s *MemoryTableStore) Save(_ context.Context, gameID string, snap TableSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[gameID] = snap
	return nil
}

func (s *MemoryTableStore) Load(_ context.Context, gameID string) (TableSnapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.m[gameID]
	return snap, ok, nil
}
