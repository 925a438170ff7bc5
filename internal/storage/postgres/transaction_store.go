package postgres

import (
	"context"
	"fmt"

	"bsc-pair-indexer/internal/domain"
	"bsc-pair-indexer/internal/storage"
)

// TransactionStore implements storage.TransactionStore using PostgreSQL.
// The Mint/Burn/Swap sequences are TEXT[] columns written wholesale; the
// Transaction entity owns their mutation order.
type TransactionStore struct {
	pool *Pool
}

// NewTransactionStore creates a new TransactionStore.
func NewTransactionStore(pool *Pool) *TransactionStore {
	return &TransactionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TransactionStore = (*TransactionStore)(nil)

// Get retrieves a transaction by hash. Returns ErrNotFound if absent.
func (s *TransactionStore) Get(ctx context.Context, hash string) (*domain.Transaction, error) {
	if hash == "" {
		return nil, storage.ErrInvalidInput
	}

	query := `
		SELECT hash, block, ts, mints, burns, swaps, next_mint, next_burn, next_swap
		FROM transactions
		WHERE hash = $1
	`

	var tx domain.Transaction
	err := s.pool.QueryRow(ctx, query, hash).Scan(
		&tx.Hash, &tx.Block, &tx.Timestamp,
		&tx.Mints, &tx.Burns, &tx.Swaps,
		&tx.NextMint, &tx.NextBurn, &tx.NextSwap,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &tx, nil
}

// Save upserts a transaction.
func (s *TransactionStore) Save(ctx context.Context, tx *domain.Transaction) error {
	if tx == nil || tx.Hash == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO transactions (
			hash, block, ts, mints, burns, swaps, next_mint, next_burn, next_swap
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (hash) DO UPDATE SET
			block = EXCLUDED.block,
			ts = EXCLUDED.ts,
			mints = EXCLUDED.mints,
			burns = EXCLUDED.burns,
			swaps = EXCLUDED.swaps,
			next_mint = EXCLUDED.next_mint,
			next_burn = EXCLUDED.next_burn,
			next_swap = EXCLUDED.next_swap
	`

	_, err := s.pool.Exec(ctx, query,
		tx.Hash, tx.Block, tx.Timestamp,
		emptyIfNil(tx.Mints), emptyIfNil(tx.Burns), emptyIfNil(tx.Swaps),
		tx.NextMint, tx.NextBurn, tx.NextSwap,
	)
	if err != nil {
		return fmt.Errorf("save transaction: %w", err)
	}
	return nil
}

// emptyIfNil keeps TEXT[] columns non-null.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
