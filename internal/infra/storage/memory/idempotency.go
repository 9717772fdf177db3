package memory

import (
	"context"
	"sync"

	"stayhub/internal/app/idempotency"
)

// IdempotencyStore keeps replay records in memory.
type IdempotencyStore struct {
	mu    sync.RWMutex
	items map[string]idempotency.Record
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{items: make(map[string]idempotency.Record)}
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (idempotency.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.items[key]
	return rec, ok, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, rec idempotency.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[rec.Key] = rec
	return nil
}

var _ idempotency.Store = (*IdempotencyStore)(nil)
