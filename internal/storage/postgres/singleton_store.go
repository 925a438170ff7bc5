package postgres

import (
	"context"
	"fmt"

	"bsc-pair-indexer/internal/domain"
	"bsc-pair-indexer/internal/storage"
)

// FactoryStore implements storage.FactoryStore using PostgreSQL. The table
// holds at most one row.
type FactoryStore struct {
	pool *Pool
}

// NewFactoryStore creates a new FactoryStore.
func NewFactoryStore(pool *Pool) *FactoryStore {
	return &FactoryStore{pool: pool}
}

// Compile-time interface check.
var _ storage.FactoryStore = (*FactoryStore)(nil)

// Get retrieves the factory singleton. Returns ErrNotFound before seeding.
func (s *FactoryStore) Get(ctx context.Context) (*domain.Factory, error) {
	query := `
		SELECT address,
			total_liquidity_usd::text, total_liquidity_bnb::text,
			total_volume_usd::text,
			total_transactions, pair_count
		FROM factory
		LIMIT 1
	`

	var f domain.Factory
	var liquidityUSD, liquidityBNB, volumeUSD string

	err := s.pool.QueryRow(ctx, query).Scan(
		&f.Address,
		&liquidityUSD, &liquidityBNB,
		&volumeUSD,
		&f.TotalTransactions, &f.PairCount,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get factory: %w", err)
	}

	if f.TotalLiquidityUSD, err = parseDecimal(liquidityUSD); err != nil {
		return nil, err
	}
	if f.TotalLiquidityBNB, err = parseDecimal(liquidityBNB); err != nil {
		return nil, err
	}
	if f.TotalVolumeUSD, err = parseDecimal(volumeUSD); err != nil {
		return nil, err
	}

	return &f, nil
}

// Save upserts the factory singleton.
func (s *FactoryStore) Save(ctx context.Context, f *domain.Factory) error {
	if f == nil || f.Address == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO factory (
			address, total_liquidity_usd, total_liquidity_bnb,
			total_volume_usd, total_transactions, pair_count
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (address) DO UPDATE SET
			total_liquidity_usd = EXCLUDED.total_liquidity_usd,
			total_liquidity_bnb = EXCLUDED.total_liquidity_bnb,
			total_volume_usd = EXCLUDED.total_volume_usd,
			total_transactions = EXCLUDED.total_transactions,
			pair_count = EXCLUDED.pair_count
	`

	_, err := s.pool.Exec(ctx, query,
		f.Address,
		f.TotalLiquidityUSD.String(), f.TotalLiquidityBNB.String(),
		f.TotalVolumeUSD.String(),
		f.TotalTransactions, f.PairCount,
	)
	if err != nil {
		return fmt.Errorf("save factory: %w", err)
	}
	return nil
}

// BundleStore implements storage.BundleStore using PostgreSQL. The table is
// constrained to a single row with id 1.
type BundleStore struct {
	pool *Pool
}

// NewBundleStore creates a new BundleStore.
func NewBundleStore(pool *Pool) *BundleStore {
	return &BundleStore{pool: pool}
}

// Compile-time interface check.
var _ storage.BundleStore = (*BundleStore)(nil)

// Get retrieves the price bundle. Returns ErrNotFound before seeding.
func (s *BundleStore) Get(ctx context.Context) (*domain.Bundle, error) {
	var price string
	err := s.pool.QueryRow(ctx, `SELECT bnb_price::text FROM bundle WHERE id = 1`).Scan(&price)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get bundle: %w", err)
	}

	var b domain.Bundle
	if b.BNBPrice, err = parseDecimal(price); err != nil {
		return nil, err
	}
	return &b, nil
}

// Save upserts the price bundle.
func (s *BundleStore) Save(ctx context.Context, b *domain.Bundle) error {
	if b == nil {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO bundle (id, bnb_price) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET bnb_price = EXCLUDED.bnb_price
	`
	if _, err := s.pool.Exec(ctx, query, b.BNBPrice.String()); err != nil {
		return fmt.Errorf("save bundle: %w", err)
	}
	return nil
}
