package memory

import (
	"context"
	"sync"

	"bsc-pair-indexer/internal/domain"
	"bsc-pair-indexer/internal/storage"
)

// PairStore is an in-memory implementation of storage.PairStore.
type PairStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Pair // keyed by pair address
}

// NewPairStore creates a new in-memory pair store.
func NewPairStore() *PairStore {
	return &PairStore{data: make(map[string]*domain.Pair)}
}

// Compile-time interface check.
var _ storage.PairStore = (*PairStore)(nil)

// Get retrieves a pair by contract address. Returns ErrNotFound if absent.
func (s *PairStore) Get(_ context.Context, address string) (*domain.Pair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.data[address]
	if !exists {
		return nil, storage.ErrNotFound
	}

	// Return a copy to prevent external mutation
	pairCopy := *p
	return &pairCopy, nil
}

// Save creates or overwrites the pair.
func (s *PairStore) Save(_ context.Context, p *domain.Pair) error {
	if p == nil || p.Address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pairCopy := *p
	s.data[p.Address] = &pairCopy
	return nil
}
