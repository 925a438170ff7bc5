package storage

import (
	"context"

	"bsc-pair-indexer/internal/domain"
)

// Stores are keyed load/save with last-write-wins semantics per key. There
// are no cross-key transactions: the single-writer event loop is the only
// serialization mechanism.

// PairStore provides access to pair state.
type PairStore interface {
	// Get retrieves a pair by contract address. Returns ErrNotFound if absent.
	Get(ctx context.Context, address string) (*domain.Pair, error)

	// Save creates or overwrites the pair.
	Save(ctx context.Context, p *domain.Pair) error
}

// TokenStore provides access to token state.
type TokenStore interface {
	Get(ctx context.Context, address string) (*domain.Token, error)
	Save(ctx context.Context, t *domain.Token) error
}

// FactoryStore provides access to the factory singleton.
type FactoryStore interface {
	// Get retrieves the singleton. Returns ErrNotFound before bootstrap.
	Get(ctx context.Context) (*domain.Factory, error)
	Save(ctx context.Context, f *domain.Factory) error
}

// BundleStore provides access to the price-bundle singleton.
type BundleStore interface {
	Get(ctx context.Context) (*domain.Bundle, error)
	Save(ctx context.Context, b *domain.Bundle) error
}

// TransactionStore provides access to reconstructed transactions.
type TransactionStore interface {
	Get(ctx context.Context, hash string) (*domain.Transaction, error)
	Save(ctx context.Context, t *domain.Transaction) error
}

// MintStore provides access to logical mint records.
type MintStore interface {
	Get(ctx context.Context, id string) (*domain.Mint, error)
	Save(ctx context.Context, m *domain.Mint) error

	// Delete removes a mint that was absorbed as a fee distribution.
	// Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}

// BurnStore provides access to logical burn records.
type BurnStore interface {
	Get(ctx context.Context, id string) (*domain.Burn, error)
	Save(ctx context.Context, b *domain.Burn) error
}

// SwapStore provides access to logical swap records. The core only ever
// writes swaps; reads are for query surfaces and tests.
type SwapStore interface {
	Get(ctx context.Context, id string) (*domain.Swap, error)
	Save(ctx context.Context, s *domain.Swap) error
}

// PairHourDataStore provides access to hourly pair rollups.
type PairHourDataStore interface {
	Get(ctx context.Context, id string) (*domain.PairHourData, error)
	Save(ctx context.Context, d *domain.PairHourData) error
}

// PairDayDataStore provides access to daily pair rollups.
type PairDayDataStore interface {
	Get(ctx context.Context, id string) (*domain.PairDayData, error)
	Save(ctx context.Context, d *domain.PairDayData) error
}

// TokenDayDataStore provides access to daily token rollups.
type TokenDayDataStore interface {
	Get(ctx context.Context, id string) (*domain.TokenDayData, error)
	Save(ctx context.Context, d *domain.TokenDayData) error
}

// FactoryDayDataStore provides access to exchange-wide daily rollups.
type FactoryDayDataStore interface {
	Get(ctx context.Context, id string) (*domain.FactoryDayData, error)
	Save(ctx context.Context, d *domain.FactoryDayData) error
}
