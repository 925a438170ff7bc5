package postgres

import (
	"context"
	"fmt"

	"bsc-pair-indexer/internal/domain"
	"bsc-pair-indexer/internal/storage"
)

// MintStore implements storage.MintStore using PostgreSQL.
type MintStore struct {
	pool *Pool
}

// NewMintStore creates a new MintStore.
func NewMintStore(pool *Pool) *MintStore {
	return &MintStore{pool: pool}
}

// Compile-time interface check.
var _ storage.MintStore = (*MintStore)(nil)

// Get retrieves a mint by id. Returns ErrNotFound if absent.
func (s *MintStore) Get(ctx context.Context, id string) (*domain.Mint, error) {
	if id == "" {
		return nil, storage.ErrInvalidInput
	}

	query := `
		SELECT id, tx_hash, pair, to_address, liquidity::text, sender,
			amount0::text, amount1::text, amount_usd::text, log_index, ts
		FROM mints
		WHERE id = $1
	`

	var m domain.Mint
	var liquidity, amount0, amount1, amountUSD string
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Transaction, &m.Pair, &m.To, &liquidity, &m.Sender,
		&amount0, &amount1, &amountUSD, &m.LogIndex, &m.Timestamp,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get mint: %w", err)
	}

	if m.Liquidity, err = parseDecimal(liquidity); err != nil {
		return nil, err
	}
	if m.Amount0, err = parseDecimal(amount0); err != nil {
		return nil, err
	}
	if m.Amount1, err = parseDecimal(amount1); err != nil {
		return nil, err
	}
	if m.AmountUSD, err = parseDecimal(amountUSD); err != nil {
		return nil, err
	}
	return &m, nil
}

// Save upserts a mint.
func (s *MintStore) Save(ctx context.Context, m *domain.Mint) error {
	if m == nil || m.ID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO mints (
			id, tx_hash, pair, to_address, liquidity, sender,
			amount0, amount1, amount_usd, log_index, ts
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			tx_hash = EXCLUDED.tx_hash,
			pair = EXCLUDED.pair,
			to_address = EXCLUDED.to_address,
			liquidity = EXCLUDED.liquidity,
			sender = EXCLUDED.sender,
			amount0 = EXCLUDED.amount0,
			amount1 = EXCLUDED.amount1,
			amount_usd = EXCLUDED.amount_usd,
			log_index = EXCLUDED.log_index,
			ts = EXCLUDED.ts
	`

	_, err := s.pool.Exec(ctx, query,
		m.ID, m.Transaction, m.Pair, m.To, m.Liquidity.String(), m.Sender,
		m.Amount0.String(), m.Amount1.String(), m.AmountUSD.String(), m.LogIndex, m.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("save mint: %w", err)
	}
	return nil
}

// Delete removes a mint absorbed as a fee distribution. Deleting an absent
// id is not an error.
func (s *MintStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return storage.ErrInvalidInput
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM mints WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete mint: %w", err)
	}
	return nil
}

// BurnStore implements storage.BurnStore using PostgreSQL.
type BurnStore struct {
	pool *Pool
}

// NewBurnStore creates a new BurnStore.
func NewBurnStore(pool *Pool) *BurnStore {
	return &BurnStore{pool: pool}
}

// Compile-time interface check.
var _ storage.BurnStore = (*BurnStore)(nil)

// Get retrieves a burn by id. Returns ErrNotFound if absent.
func (s *BurnStore) Get(ctx context.Context, id string) (*domain.Burn, error) {
	if id == "" {
		return nil, storage.ErrInvalidInput
	}

	query := `
		SELECT id, tx_hash, pair, liquidity::text, sender, to_address,
			needs_complete, fee_to, fee_liquidity::text,
			amount0::text, amount1::text, amount_usd::text, log_index, ts
		FROM burns
		WHERE id = $1
	`

	var b domain.Burn
	var liquidity, feeLiquidity, amount0, amount1, amountUSD string
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Transaction, &b.Pair, &liquidity, &b.Sender, &b.To,
		&b.NeedsComplete, &b.FeeTo, &feeLiquidity,
		&amount0, &amount1, &amountUSD, &b.LogIndex, &b.Timestamp,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get burn: %w", err)
	}

	if b.Liquidity, err = parseDecimal(liquidity); err != nil {
		return nil, err
	}
	if b.FeeLiquidity, err = parseDecimal(feeLiquidity); err != nil {
		return nil, err
	}
	if b.Amount0, err = parseDecimal(amount0); err != nil {
		return nil, err
	}
	if b.Amount1, err = parseDecimal(amount1); err != nil {
		return nil, err
	}
	if b.AmountUSD, err = parseDecimal(amountUSD); err != nil {
		return nil, err
	}
	return &b, nil
}

// Save upserts a burn.
func (s *BurnStore) Save(ctx context.Context, b *domain.Burn) error {
	if b == nil || b.ID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO burns (
			id, tx_hash, pair, liquidity, sender, to_address,
			needs_complete, fee_to, fee_liquidity,
			amount0, amount1, amount_usd, log_index, ts
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			tx_hash = EXCLUDED.tx_hash,
			pair = EXCLUDED.pair,
			liquidity = EXCLUDED.liquidity,
			sender = EXCLUDED.sender,
			to_address = EXCLUDED.to_address,
			needs_complete = EXCLUDED.needs_complete,
			fee_to = EXCLUDED.fee_to,
			fee_liquidity = EXCLUDED.fee_liquidity,
			amount0 = EXCLUDED.amount0,
			amount1 = EXCLUDED.amount1,
			amount_usd = EXCLUDED.amount_usd,
			log_index = EXCLUDED.log_index,
			ts = EXCLUDED.ts
	`

	_, err := s.pool.Exec(ctx, query,
		b.ID, b.Transaction, b.Pair, b.Liquidity.String(), b.Sender, b.To,
		b.NeedsComplete, b.FeeTo, b.FeeLiquidity.String(),
		b.Amount0.String(), b.Amount1.String(), b.AmountUSD.String(), b.LogIndex, b.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("save burn: %w", err)
	}
	return nil
}

// SwapStore implements storage.SwapStore using PostgreSQL.
type SwapStore struct {
	pool *Pool
}

// NewSwapStore creates a new SwapStore.
func NewSwapStore(pool *Pool) *SwapStore {
	return &SwapStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SwapStore = (*SwapStore)(nil)

// Get retrieves a swap by id. Returns ErrNotFound if absent.
func (s *SwapStore) Get(ctx context.Context, id string) (*domain.Swap, error) {
	if id == "" {
		return nil, storage.ErrInvalidInput
	}

	query := `
		SELECT id, tx_hash, pair, sender, from_address, to_address,
			amount0_in::text, amount1_in::text, amount0_out::text, amount1_out::text,
			amount_usd::text, log_index, ts
		FROM swaps
		WHERE id = $1
	`

	var sw domain.Swap
	var amount0In, amount1In, amount0Out, amount1Out, amountUSD string
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&sw.ID, &sw.Transaction, &sw.Pair, &sw.Sender, &sw.From, &sw.To,
		&amount0In, &amount1In, &amount0Out, &amount1Out,
		&amountUSD, &sw.LogIndex, &sw.Timestamp,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get swap: %w", err)
	}

	if sw.Amount0In, err = parseDecimal(amount0In); err != nil {
		return nil, err
	}
	if sw.Amount1In, err = parseDecimal(amount1In); err != nil {
		return nil, err
	}
	if sw.Amount0Out, err = parseDecimal(amount0Out); err != nil {
		return nil, err
	}
	if sw.Amount1Out, err = parseDecimal(amount1Out); err != nil {
		return nil, err
	}
	if sw.AmountUSD, err = parseDecimal(amountUSD); err != nil {
		return nil, err
	}
	return &sw, nil
}

// Save upserts a swap.
func (s *SwapStore) Save(ctx context.Context, sw *domain.Swap) error {
	if sw == nil || sw.ID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO swaps (
			id, tx_hash, pair, sender, from_address, to_address,
			amount0_in, amount1_in, amount0_out, amount1_out,
			amount_usd, log_index, ts
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			tx_hash = EXCLUDED.tx_hash,
			pair = EXCLUDED.pair,
			sender = EXCLUDED.sender,
			from_address = EXCLUDED.from_address,
			to_address = EXCLUDED.to_address,
			amount0_in = EXCLUDED.amount0_in,
			amount1_in = EXCLUDED.amount1_in,
			amount0_out = EXCLUDED.amount0_out,
			amount1_out = EXCLUDED.amount1_out,
			amount_usd = EXCLUDED.amount_usd,
			log_index = EXCLUDED.log_index,
			ts = EXCLUDED.ts
	`

	_, err := s.pool.Exec(ctx, query,
		sw.ID, sw.Transaction, sw.Pair, sw.Sender, sw.From, sw.To,
		sw.Amount0In.String(), sw.Amount1In.String(), sw.Amount0Out.String(), sw.Amount1Out.String(),
		sw.AmountUSD.String(), sw.LogIndex, sw.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("save swap: %w", err)
	}
	return nil
}
