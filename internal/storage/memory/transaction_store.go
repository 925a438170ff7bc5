package memory

import (
	"context"
	"sync"

	"bsc-pair-indexer/internal/domain"
	"bsc-pair-indexer/internal/storage"
)

// TransactionStore is an in-memory implementation of storage.TransactionStore.
type TransactionStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Transaction // keyed by transaction hash
}

// NewTransactionStore creates a new in-memory transaction store.
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{data: make(map[string]*domain.Transaction)}
}

// Compile-time interface check.
var _ storage.TransactionStore = (*TransactionStore)(nil)

// Get retrieves a transaction by hash. Returns ErrNotFound if absent.
func (s *TransactionStore) Get(_ context.Context, hash string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.data[hash]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return copyTransaction(t), nil
}

// Save creates or overwrites the transaction.
func (s *TransactionStore) Save(_ context.Context, t *domain.Transaction) error {
	if t == nil || t.Hash == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[t.Hash] = copyTransaction(t)
	return nil
}

// copyTransaction deep-copies the record sequences so callers cannot mutate
// stored state through the returned slices.
func copyTransaction(t *domain.Transaction) *domain.Transaction {
	txCopy := *t
	txCopy.Mints = append([]string(nil), t.Mints...)
	txCopy.Burns = append([]string(nil), t.Burns...)
	txCopy.Swaps = append([]string(nil), t.Swaps...)
	return &txCopy
}
