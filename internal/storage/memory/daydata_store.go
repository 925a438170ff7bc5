package memory

import (
	"context"
	"sync"

	"bsc-pair-indexer/internal/domain"
	"bsc-pair-indexer/internal/storage"
)

// PairHourDataStore is an in-memory implementation of storage.PairHourDataStore.
type PairHourDataStore struct {
	mu   sync.RWMutex
	data map[string]*domain.PairHourData // keyed by <pair>-<hourIndex>
}

// NewPairHourDataStore creates a new in-memory hourly pair rollup store.
func NewPairHourDataStore() *PairHourDataStore {
	return &PairHourDataStore{data: make(map[string]*domain.PairHourData)}
}

var _ storage.PairHourDataStore = (*PairHourDataStore)(nil)

// Get retrieves a bucket by id. Returns ErrNotFound if absent.
func (s *PairHourDataStore) Get(_ context.Context, id string) (*domain.PairHourData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	bucketCopy := *d
	return &bucketCopy, nil
}

// Save creates or overwrites the bucket.
func (s *PairHourDataStore) Save(_ context.Context, d *domain.PairHourData) error {
	if d == nil || d.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bucketCopy := *d
	s.data[d.ID] = &bucketCopy
	return nil
}

// Len reports the number of buckets; used by tests asserting lazy creation.
func (s *PairHourDataStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// PairDayDataStore is an in-memory implementation of storage.PairDayDataStore.
type PairDayDataStore struct {
	mu   sync.RWMutex
	data map[string]*domain.PairDayData
}

// NewPairDayDataStore creates a new in-memory daily pair rollup store.
func NewPairDayDataStore() *PairDayDataStore {
	return &PairDayDataStore{data: make(map[string]*domain.PairDayData)}
}

var _ storage.PairDayDataStore = (*PairDayDataStore)(nil)

// Get retrieves a bucket by id. Returns ErrNotFound if absent.
func (s *PairDayDataStore) Get(_ context.Context, id string) (*domain.PairDayData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	bucketCopy := *d
	return &bucketCopy, nil
}

// Save creates or overwrites the bucket.
func (s *PairDayDataStore) Save(_ context.Context, d *domain.PairDayData) error {
	if d == nil || d.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bucketCopy := *d
	s.data[d.ID] = &bucketCopy
	return nil
}

// Len reports the number of buckets.
func (s *PairDayDataStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// TokenDayDataStore is an in-memory implementation of storage.TokenDayDataStore.
type TokenDayDataStore struct {
	mu   sync.RWMutex
	data map[string]*domain.TokenDayData
}

// NewTokenDayDataStore creates a new in-memory daily token rollup store.
func NewTokenDayDataStore() *TokenDayDataStore {
	return &TokenDayDataStore{data: make(map[string]*domain.TokenDayData)}
}

var _ storage.TokenDayDataStore = (*TokenDayDataStore)(nil)

// Get retrieves a bucket by id. Returns ErrNotFound if absent.
func (s *TokenDayDataStore) Get(_ context.Context, id string) (*domain.TokenDayData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	bucketCopy := *d
	return &bucketCopy, nil
}

// Save creates or overwrites the bucket.
func (s *TokenDayDataStore) Save(_ context.Context, d *domain.TokenDayData) error {
	if d == nil || d.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bucketCopy := *d
	s.data[d.ID] = &bucketCopy
	return nil
}

// FactoryDayDataStore is an in-memory implementation of storage.FactoryDayDataStore.
type FactoryDayDataStore struct {
	mu   sync.RWMutex
	data map[string]*domain.FactoryDayData
}

// NewFactoryDayDataStore creates a new in-memory exchange-wide rollup store.
func NewFactoryDayDataStore() *FactoryDayDataStore {
	return &FactoryDayDataStore{data: make(map[string]*domain.FactoryDayData)}
}

var _ storage.FactoryDayDataStore = (*FactoryDayDataStore)(nil)

// Get retrieves a bucket by id. Returns ErrNotFound if absent.
func (s *FactoryDayDataStore) Get(_ context.Context, id string) (*domain.FactoryDayData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	bucketCopy := *d
	return &bucketCopy, nil
}

// Save creates or overwrites the bucket.
func (s *FactoryDayDataStore) Save(_ context.Context, d *domain.FactoryDayData) error {
	if d == nil || d.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bucketCopy := *d
	s.data[d.ID] = &bucketCopy
	return nil
}
