package memory

import (
	"context"
	"sync"

	"bsc-pair-indexer/internal/domain"
	"bsc-pair-indexer/internal/storage"
)

// MintStore is an in-memory implementation of storage.MintStore.
type MintStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Mint // keyed by record id
}

// NewMintStore creates a new in-memory mint record store.
func NewMintStore() *MintStore {
	return &MintStore{data: make(map[string]*domain.Mint)}
}

// Compile-time interface check.
var _ storage.MintStore = (*MintStore)(nil)

// Get retrieves a mint record by id. Returns ErrNotFound if absent.
func (s *MintStore) Get(_ context.Context, id string) (*domain.Mint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	mintCopy := *m
	return &mintCopy, nil
}

// Save creates or overwrites the mint record.
func (s *MintStore) Save(_ context.Context, m *domain.Mint) error {
	if m == nil || m.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mintCopy := *m
	s.data[m.ID] = &mintCopy
	return nil
}

// Delete removes a mint record. Deleting an absent id is not an error.
func (s *MintStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, id)
	return nil
}

// BurnStore is an in-memory implementation of storage.BurnStore.
type BurnStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Burn
}

// NewBurnStore creates a new in-memory burn record store.
func NewBurnStore() *BurnStore {
	return &BurnStore{data: make(map[string]*domain.Burn)}
}

// Compile-time interface check.
var _ storage.BurnStore = (*BurnStore)(nil)

// Get retrieves a burn record by id. Returns ErrNotFound if absent.
func (s *BurnStore) Get(_ context.Context, id string) (*domain.Burn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	burnCopy := *b
	return &burnCopy, nil
}

// Save creates or overwrites the burn record.
func (s *BurnStore) Save(_ context.Context, b *domain.Burn) error {
	if b == nil || b.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	burnCopy := *b
	s.data[b.ID] = &burnCopy
	return nil
}

// SwapStore is an in-memory implementation of storage.SwapStore.
type SwapStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Swap
}

// NewSwapStore creates a new in-memory swap record store.
func NewSwapStore() *SwapStore {
	return &SwapStore{data: make(map[string]*domain.Swap)}
}

// Compile-time interface check.
var _ storage.SwapStore = (*SwapStore)(nil)

// Get retrieves a swap record by id. Returns ErrNotFound if absent.
func (s *SwapStore) Get(_ context.Context, id string) (*domain.Swap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sw, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	swapCopy := *sw
	return &swapCopy, nil
}

// Save creates or overwrites the swap record.
func (s *SwapStore) Save(_ context.Context, sw *domain.Swap) error {
	if sw == nil || sw.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	swapCopy := *sw
	s.data[sw.ID] = &swapCopy
	return nil
}
