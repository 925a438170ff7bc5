package postgres

import (
	"context"
	"fmt"

	"bsc-pair-indexer/internal/domain"
	"bsc-pair-indexer/internal/storage"
)

// TokenStore implements storage.TokenStore using PostgreSQL.
type TokenStore struct {
	pool *Pool
}

// NewTokenStore creates a new TokenStore.
func NewTokenStore(pool *Pool) *TokenStore {
	return &TokenStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TokenStore = (*TokenStore)(nil)

// Get retrieves a token by address. Returns ErrNotFound if absent.
func (s *TokenStore) Get(ctx context.Context, address string) (*domain.Token, error) {
	if address == "" {
		return nil, storage.ErrInvalidInput
	}

	query := `
		SELECT address, symbol, name, decimals,
			total_liquidity::text,
			tracked_total_liquidity::text, tracked_total_liquidity_usd::text,
			derived_usd::text, derived_bnb::text,
			trade_volume::text, trade_volume_usd::text,
			total_transactions
		FROM tokens
		WHERE address = $1
	`

	var t domain.Token
	var totalLiquidity, trackedLiquidity, trackedLiquidityUSD string
	var derivedUSD, derivedBNB, tradeVolume, tradeVolumeUSD string

	err := s.pool.QueryRow(ctx, query, address).Scan(
		&t.Address, &t.Symbol, &t.Name, &t.Decimals,
		&totalLiquidity,
		&trackedLiquidity, &trackedLiquidityUSD,
		&derivedUSD, &derivedBNB,
		&tradeVolume, &tradeVolumeUSD,
		&t.TotalTransactions,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get token: %w", err)
	}

	if t.TotalLiquidity, err = parseDecimal(totalLiquidity); err != nil {
		return nil, err
	}
	if t.TrackedTotalLiquidity, err = parseDecimal(trackedLiquidity); err != nil {
		return nil, err
	}
	if t.TrackedTotalLiquidityUSD, err = parseDecimal(trackedLiquidityUSD); err != nil {
		return nil, err
	}
	if t.DerivedUSD, err = parseDecimal(derivedUSD); err != nil {
		return nil, err
	}
	if t.DerivedBNB, err = parseDecimal(derivedBNB); err != nil {
		return nil, err
	}
	if t.TradeVolume, err = parseDecimal(tradeVolume); err != nil {
		return nil, err
	}
	if t.TradeVolumeUSD, err = parseDecimal(tradeVolumeUSD); err != nil {
		return nil, err
	}

	return &t, nil
}

// Save upserts a token.
func (s *TokenStore) Save(ctx context.Context, t *domain.Token) error {
	if t == nil || t.Address == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO tokens (
			address, symbol, name, decimals,
			total_liquidity, tracked_total_liquidity, tracked_total_liquidity_usd,
			derived_usd, derived_bnb, trade_volume, trade_volume_usd,
			total_transactions
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (address) DO UPDATE SET
			symbol = EXCLUDED.symbol,
			name = EXCLUDED.name,
			decimals = EXCLUDED.decimals,
			total_liquidity = EXCLUDED.total_liquidity,
			tracked_total_liquidity = EXCLUDED.tracked_total_liquidity,
			tracked_total_liquidity_usd = EXCLUDED.tracked_total_liquidity_usd,
			derived_usd = EXCLUDED.derived_usd,
			derived_bnb = EXCLUDED.derived_bnb,
			trade_volume = EXCLUDED.trade_volume,
			trade_volume_usd = EXCLUDED.trade_volume_usd,
			total_transactions = EXCLUDED.total_transactions
	`

	_, err := s.pool.Exec(ctx, query,
		t.Address, t.Symbol, t.Name, t.Decimals,
		t.TotalLiquidity.String(), t.TrackedTotalLiquidity.String(), t.TrackedTotalLiquidityUSD.String(),
		t.DerivedUSD.String(), t.DerivedBNB.String(), t.TradeVolume.String(), t.TradeVolumeUSD.String(),
		t.TotalTransactions,
	)
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}
