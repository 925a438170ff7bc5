package memory

import (
	"context"
	"sync"

	"bsc-pair-indexer/internal/domain"
	"bsc-pair-indexer/internal/storage"
)

// FactoryStore is an in-memory implementation of storage.FactoryStore.
type FactoryStore struct {
	mu      sync.RWMutex
	factory *domain.Factory
}

// NewFactoryStore creates a new in-memory factory store.
func NewFactoryStore() *FactoryStore {
	return &FactoryStore{}
}

// Compile-time interface check.
var _ storage.FactoryStore = (*FactoryStore)(nil)

// Get retrieves the factory singleton. Returns ErrNotFound before bootstrap.
func (s *FactoryStore) Get(_ context.Context) (*domain.Factory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.factory == nil {
		return nil, storage.ErrNotFound
	}

	factoryCopy := *s.factory
	return &factoryCopy, nil
}

// Save creates or overwrites the factory singleton.
func (s *FactoryStore) Save(_ context.Context, f *domain.Factory) error {
	if f == nil || f.Address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	factoryCopy := *f
	s.factory = &factoryCopy
	return nil
}

// BundleStore is an in-memory implementation of storage.BundleStore.
type BundleStore struct {
	mu     sync.RWMutex
	bundle *domain.Bundle
}

// NewBundleStore creates a new in-memory bundle store.
func NewBundleStore() *BundleStore {
	return &BundleStore{}
}

// Compile-time interface check.
var _ storage.BundleStore = (*BundleStore)(nil)

// Get retrieves the bundle singleton. Returns ErrNotFound before bootstrap.
func (s *BundleStore) Get(_ context.Context) (*domain.Bundle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.bundle == nil {
		return nil, storage.ErrNotFound
	}

	bundleCopy := *s.bundle
	return &bundleCopy, nil
}

// Save creates or overwrites the bundle singleton.
func (s *BundleStore) Save(_ context.Context, b *domain.Bundle) error {
	if b == nil {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bundleCopy := *b
	s.bundle = &bundleCopy
	return nil
}
