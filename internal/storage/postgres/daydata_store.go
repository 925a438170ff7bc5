package postgres

import (
	"context"
	"fmt"

	"bsc-pair-indexer/internal/domain"
	"bsc-pair-indexer/internal/storage"
)

// PairHourDataStore implements storage.PairHourDataStore using PostgreSQL.
type PairHourDataStore struct {
	pool *Pool
}

// NewPairHourDataStore creates a new PairHourDataStore.
func NewPairHourDataStore(pool *Pool) *PairHourDataStore {
	return &PairHourDataStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PairHourDataStore = (*PairHourDataStore)(nil)

// Get retrieves an hourly pair rollup by id. Returns ErrNotFound if absent.
func (s *PairHourDataStore) Get(ctx context.Context, id string) (*domain.PairHourData, error) {
	if id == "" {
		return nil, storage.ErrInvalidInput
	}

	query := `
		SELECT id, hour_start_unix, pair,
			reserve0::text, reserve1::text, reserve_usd::text,
			hourly_volume_token0::text, hourly_volume_token1::text,
			hourly_volume_usd::text, hourly_txns
		FROM pair_hour_data
		WHERE id = $1
	`

	var d domain.PairHourData
	var reserve0, reserve1, reserveUSD, vol0, vol1, volUSD string
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.HourStartUnix, &d.Pair,
		&reserve0, &reserve1, &reserveUSD,
		&vol0, &vol1, &volUSD, &d.HourlyTxns,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get pair hour data: %w", err)
	}

	if d.Reserve0, err = parseDecimal(reserve0); err != nil {
		return nil, err
	}
	if d.Reserve1, err = parseDecimal(reserve1); err != nil {
		return nil, err
	}
	if d.ReserveUSD, err = parseDecimal(reserveUSD); err != nil {
		return nil, err
	}
	if d.HourlyVolumeToken0, err = parseDecimal(vol0); err != nil {
		return nil, err
	}
	if d.HourlyVolumeToken1, err = parseDecimal(vol1); err != nil {
		return nil, err
	}
	if d.HourlyVolumeUSD, err = parseDecimal(volUSD); err != nil {
		return nil, err
	}
	return &d, nil
}

// Save upserts an hourly pair rollup.
func (s *PairHourDataStore) Save(ctx context.Context, d *domain.PairHourData) error {
	if d == nil || d.ID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO pair_hour_data (
			id, hour_start_unix, pair, reserve0, reserve1, reserve_usd,
			hourly_volume_token0, hourly_volume_token1, hourly_volume_usd, hourly_txns
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			hour_start_unix = EXCLUDED.hour_start_unix,
			pair = EXCLUDED.pair,
			reserve0 = EXCLUDED.reserve0,
			reserve1 = EXCLUDED.reserve1,
			reserve_usd = EXCLUDED.reserve_usd,
			hourly_volume_token0 = EXCLUDED.hourly_volume_token0,
			hourly_volume_token1 = EXCLUDED.hourly_volume_token1,
			hourly_volume_usd = EXCLUDED.hourly_volume_usd,
			hourly_txns = EXCLUDED.hourly_txns
	`

	_, err := s.pool.Exec(ctx, query,
		d.ID, d.HourStartUnix, d.Pair,
		d.Reserve0.String(), d.Reserve1.String(), d.ReserveUSD.String(),
		d.HourlyVolumeToken0.String(), d.HourlyVolumeToken1.String(),
		d.HourlyVolumeUSD.String(), d.HourlyTxns,
	)
	if err != nil {
		return fmt.Errorf("save pair hour data: %w", err)
	}
	return nil
}

// PairDayDataStore implements storage.PairDayDataStore using PostgreSQL.
type PairDayDataStore struct {
	pool *Pool
}

// NewPairDayDataStore creates a new PairDayDataStore.
func NewPairDayDataStore(pool *Pool) *PairDayDataStore {
	return &PairDayDataStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PairDayDataStore = (*PairDayDataStore)(nil)

// Get retrieves a daily pair rollup by id. Returns ErrNotFound if absent.
func (s *PairDayDataStore) Get(ctx context.Context, id string) (*domain.PairDayData, error) {
	if id == "" {
		return nil, storage.ErrInvalidInput
	}

	query := `
		SELECT id, date, pair_address, token0, token1,
			reserve0::text, reserve1::text, reserve_usd::text,
			daily_volume_token0::text, daily_volume_token1::text,
			daily_volume_usd::text, daily_txns
		FROM pair_day_data
		WHERE id = $1
	`

	var d domain.PairDayData
	var reserve0, reserve1, reserveUSD, vol0, vol1, volUSD string
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Date, &d.PairAddress, &d.Token0, &d.Token1,
		&reserve0, &reserve1, &reserveUSD,
		&vol0, &vol1, &volUSD, &d.DailyTxns,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get pair day data: %w", err)
	}

	if d.Reserve0, err = parseDecimal(reserve0); err != nil {
		return nil, err
	}
	if d.Reserve1, err = parseDecimal(reserve1); err != nil {
		return nil, err
	}
	if d.ReserveUSD, err = parseDecimal(reserveUSD); err != nil {
		return nil, err
	}
	if d.DailyVolumeToken0, err = parseDecimal(vol0); err != nil {
		return nil, err
	}
	if d.DailyVolumeToken1, err = parseDecimal(vol1); err != nil {
		return nil, err
	}
	if d.DailyVolumeUSD, err = parseDecimal(volUSD); err != nil {
		return nil, err
	}
	return &d, nil
}

// Save upserts a daily pair rollup.
func (s *PairDayDataStore) Save(ctx context.Context, d *domain.PairDayData) error {
	if d == nil || d.ID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO pair_day_data (
			id, date, pair_address, token0, token1, reserve0, reserve1, reserve_usd,
			daily_volume_token0, daily_volume_token1, daily_volume_usd, daily_txns
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			date = EXCLUDED.date,
			pair_address = EXCLUDED.pair_address,
			token0 = EXCLUDED.token0,
			token1 = EXCLUDED.token1,
			reserve0 = EXCLUDED.reserve0,
			reserve1 = EXCLUDED.reserve1,
			reserve_usd = EXCLUDED.reserve_usd,
			daily_volume_token0 = EXCLUDED.daily_volume_token0,
			daily_volume_token1 = EXCLUDED.daily_volume_token1,
			daily_volume_usd = EXCLUDED.daily_volume_usd,
			daily_txns = EXCLUDED.daily_txns
	`

	_, err := s.pool.Exec(ctx, query,
		d.ID, d.Date, d.PairAddress, d.Token0, d.Token1,
		d.Reserve0.String(), d.Reserve1.String(), d.ReserveUSD.String(),
		d.DailyVolumeToken0.String(), d.DailyVolumeToken1.String(),
		d.DailyVolumeUSD.String(), d.DailyTxns,
	)
	if err != nil {
		return fmt.Errorf("save pair day data: %w", err)
	}
	return nil
}

// TokenDayDataStore implements storage.TokenDayDataStore using PostgreSQL.
type TokenDayDataStore struct {
	pool *Pool
}

// NewTokenDayDataStore creates a new TokenDayDataStore.
func NewTokenDayDataStore(pool *Pool) *TokenDayDataStore {
	return &TokenDayDataStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TokenDayDataStore = (*TokenDayDataStore)(nil)

// Get retrieves a daily token rollup by id. Returns ErrNotFound if absent.
func (s *TokenDayDataStore) Get(ctx context.Context, id string) (*domain.TokenDayData, error) {
	if id == "" {
		return nil, storage.ErrInvalidInput
	}

	query := `
		SELECT id, date, token, price_usd::text,
			total_liquidity_token::text, total_liquidity_usd::text,
			daily_volume_token::text, daily_volume_usd::text, daily_txns
		FROM token_day_data
		WHERE id = $1
	`

	var d domain.TokenDayData
	var priceUSD, liqToken, liqUSD, volToken, volUSD string
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Date, &d.Token, &priceUSD,
		&liqToken, &liqUSD, &volToken, &volUSD, &d.DailyTxns,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get token day data: %w", err)
	}

	if d.PriceUSD, err = parseDecimal(priceUSD); err != nil {
		return nil, err
	}
	if d.TotalLiquidityToken, err = parseDecimal(liqToken); err != nil {
		return nil, err
	}
	if d.TotalLiquidityUSD, err = parseDecimal(liqUSD); err != nil {
		return nil, err
	}
	if d.DailyVolumeToken, err = parseDecimal(volToken); err != nil {
		return nil, err
	}
	if d.DailyVolumeUSD, err = parseDecimal(volUSD); err != nil {
		return nil, err
	}
	return &d, nil
}

// Save upserts a daily token rollup.
func (s *TokenDayDataStore) Save(ctx context.Context, d *domain.TokenDayData) error {
	if d == nil || d.ID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO token_day_data (
			id, date, token, price_usd, total_liquidity_token, total_liquidity_usd,
			daily_volume_token, daily_volume_usd, daily_txns
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			date = EXCLUDED.date,
			token = EXCLUDED.token,
			price_usd = EXCLUDED.price_usd,
			total_liquidity_token = EXCLUDED.total_liquidity_token,
			total_liquidity_usd = EXCLUDED.total_liquidity_usd,
			daily_volume_token = EXCLUDED.daily_volume_token,
			daily_volume_usd = EXCLUDED.daily_volume_usd,
			daily_txns = EXCLUDED.daily_txns
	`

	_, err := s.pool.Exec(ctx, query,
		d.ID, d.Date, d.Token, d.PriceUSD.String(),
		d.TotalLiquidityToken.String(), d.TotalLiquidityUSD.String(),
		d.DailyVolumeToken.String(), d.DailyVolumeUSD.String(), d.DailyTxns,
	)
	if err != nil {
		return fmt.Errorf("save token day data: %w", err)
	}
	return nil
}

// FactoryDayDataStore implements storage.FactoryDayDataStore using PostgreSQL.
type FactoryDayDataStore struct {
	pool *Pool
}

// NewFactoryDayDataStore creates a new FactoryDayDataStore.
func NewFactoryDayDataStore(pool *Pool) *FactoryDayDataStore {
	return &FactoryDayDataStore{pool: pool}
}

// Compile-time interface check.
var _ storage.FactoryDayDataStore = (*FactoryDayDataStore)(nil)

// Get retrieves an exchange-wide daily rollup by id. Returns ErrNotFound if
// absent.
func (s *FactoryDayDataStore) Get(ctx context.Context, id string) (*domain.FactoryDayData, error) {
	if id == "" {
		return nil, storage.ErrInvalidInput
	}

	query := `
		SELECT id, date, daily_volume_usd::text, total_volume_usd::text,
			total_liquidity_usd::text, total_transactions
		FROM factory_day_data
		WHERE id = $1
	`

	var d domain.FactoryDayData
	var dailyVolUSD, totalVolUSD, totalLiqUSD string
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Date, &dailyVolUSD, &totalVolUSD, &totalLiqUSD, &d.TotalTransactions,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get factory day data: %w", err)
	}

	if d.DailyVolumeUSD, err = parseDecimal(dailyVolUSD); err != nil {
		return nil, err
	}
	if d.TotalVolumeUSD, err = parseDecimal(totalVolUSD); err != nil {
		return nil, err
	}
	if d.TotalLiquidityUSD, err = parseDecimal(totalLiqUSD); err != nil {
		return nil, err
	}
	return &d, nil
}

// Save upserts an exchange-wide daily rollup.
func (s *FactoryDayDataStore) Save(ctx context.Context, d *domain.FactoryDayData) error {
	if d == nil || d.ID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO factory_day_data (
			id, date, daily_volume_usd, total_volume_usd, total_liquidity_usd, total_transactions
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			date = EXCLUDED.date,
			daily_volume_usd = EXCLUDED.daily_volume_usd,
			total_volume_usd = EXCLUDED.total_volume_usd,
			total_liquidity_usd = EXCLUDED.total_liquidity_usd,
			total_transactions = EXCLUDED.total_transactions
	`

	_, err := s.pool.Exec(ctx, query,
		d.ID, d.Date, d.DailyVolumeUSD.String(), d.TotalVolumeUSD.String(),
		d.TotalLiquidityUSD.String(), d.TotalTransactions,
	)
	if err != nil {
		return fmt.Errorf("save factory day data: %w", err)
	}
	return nil
}
