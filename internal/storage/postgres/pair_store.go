package postgres

import (
	"context"
	"fmt"

	"bsc-pair-indexer/internal/domain"
	"bsc-pair-indexer/internal/storage"
)

// PairStore implements storage.PairStore using PostgreSQL.
type PairStore struct {
	pool *Pool
}

// NewPairStore creates a new PairStore.
func NewPairStore(pool *Pool) *PairStore {
	return &PairStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PairStore = (*PairStore)(nil)

// Get retrieves a pair by address. Returns ErrNotFound if absent.
func (s *PairStore) Get(ctx context.Context, address string) (*domain.Pair, error) {
	if address == "" {
		return nil, storage.ErrInvalidInput
	}

	query := `
		SELECT address, token0, token1,
			reserve0::text, reserve1::text,
			token0_price::text, token1_price::text,
			reserve0_liquidity_usd::text, reserve1_liquidity_usd::text,
			tracked_reserve_usd::text, tracked_reserve_bnb::text,
			reserve_usd::text, reserve_bnb::text,
			volume_token0::text, volume_token1::text, volume_usd::text,
			total_transactions, created_at_block, created_at_timestamp
		FROM pairs
		WHERE address = $1
	`

	var p domain.Pair
	var reserve0, reserve1, token0Price, token1Price string
	var r0USD, r1USD, trackedUSD, trackedBNB, reserveUSD, reserveBNB string
	var volToken0, volToken1, volUSD string

	err := s.pool.QueryRow(ctx, query, address).Scan(
		&p.Address, &p.Token0, &p.Token1,
		&reserve0, &reserve1,
		&token0Price, &token1Price,
		&r0USD, &r1USD,
		&trackedUSD, &trackedBNB,
		&reserveUSD, &reserveBNB,
		&volToken0, &volToken1, &volUSD,
		&p.TotalTransactions, &p.CreatedAtBlock, &p.CreatedAtTimestamp,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get pair: %w", err)
	}

	if p.Reserve0, err = parseDecimal(reserve0); err != nil {
		return nil, err
	}
	if p.Reserve1, err = parseDecimal(reserve1); err != nil {
		return nil, err
	}
	if p.Token0Price, err = parseDecimal(token0Price); err != nil {
		return nil, err
	}
	if p.Token1Price, err = parseDecimal(token1Price); err != nil {
		return nil, err
	}
	if p.Reserve0LiquidityUSD, err = parseDecimal(r0USD); err != nil {
		return nil, err
	}
	if p.Reserve1LiquidityUSD, err = parseDecimal(r1USD); err != nil {
		return nil, err
	}
	if p.TrackedReserveUSD, err = parseDecimal(trackedUSD); err != nil {
		return nil, err
	}
	if p.TrackedReserveBNB, err = parseDecimal(trackedBNB); err != nil {
		return nil, err
	}
	if p.ReserveUSD, err = parseDecimal(reserveUSD); err != nil {
		return nil, err
	}
	if p.ReserveBNB, err = parseDecimal(reserveBNB); err != nil {
		return nil, err
	}
	if p.VolumeToken0, err = parseDecimal(volToken0); err != nil {
		return nil, err
	}
	if p.VolumeToken1, err = parseDecimal(volToken1); err != nil {
		return nil, err
	}
	if p.VolumeUSD, err = parseDecimal(volUSD); err != nil {
		return nil, err
	}

	return &p, nil
}

// Save upserts a pair.
func (s *PairStore) Save(ctx context.Context, p *domain.Pair) error {
	if p == nil || p.Address == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO pairs (
			address, token0, token1, reserve0, reserve1,
			token0_price, token1_price,
			reserve0_liquidity_usd, reserve1_liquidity_usd,
			tracked_reserve_usd, tracked_reserve_bnb,
			reserve_usd, reserve_bnb,
			volume_token0, volume_token1, volume_usd,
			total_transactions, created_at_block, created_at_timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (address) DO UPDATE SET
			token0 = EXCLUDED.token0,
			token1 = EXCLUDED.token1,
			reserve0 = EXCLUDED.reserve0,
			reserve1 = EXCLUDED.reserve1,
			token0_price = EXCLUDED.token0_price,
			token1_price = EXCLUDED.token1_price,
			reserve0_liquidity_usd = EXCLUDED.reserve0_liquidity_usd,
			reserve1_liquidity_usd = EXCLUDED.reserve1_liquidity_usd,
			tracked_reserve_usd = EXCLUDED.tracked_reserve_usd,
			tracked_reserve_bnb = EXCLUDED.tracked_reserve_bnb,
			reserve_usd = EXCLUDED.reserve_usd,
			reserve_bnb = EXCLUDED.reserve_bnb,
			volume_token0 = EXCLUDED.volume_token0,
			volume_token1 = EXCLUDED.volume_token1,
			volume_usd = EXCLUDED.volume_usd,
			total_transactions = EXCLUDED.total_transactions,
			created_at_block = EXCLUDED.created_at_block,
			created_at_timestamp = EXCLUDED.created_at_timestamp
	`

	_, err := s.pool.Exec(ctx, query,
		p.Address, p.Token0, p.Token1,
		p.Reserve0.String(), p.Reserve1.String(),
		p.Token0Price.String(), p.Token1Price.String(),
		p.Reserve0LiquidityUSD.String(), p.Reserve1LiquidityUSD.String(),
		p.TrackedReserveUSD.String(), p.TrackedReserveBNB.String(),
		p.ReserveUSD.String(), p.ReserveBNB.String(),
		p.VolumeToken0.String(), p.VolumeToken1.String(), p.VolumeUSD.String(),
		p.TotalTransactions, p.CreatedAtBlock, p.CreatedAtTimestamp,
	)
	if err != nil {
		return fmt.Errorf("save pair: %w", err)
	}
	return nil
}
