package clickhouse

import (
	"context"
	"fmt"
	"sync"

	"bsc-pair-indexer/internal/domain"
	"bsc-pair-indexer/internal/indexer"
	"bsc-pair-indexer/internal/observability"
)

// DefaultArchiveBatchSize is the flush threshold for buffered records.
const DefaultArchiveBatchSize = 100

// RecordArchive buffers finalized records and batch-inserts them into the
// *_records tables. Archive writes are best-effort; the runner logs failures
// and moves on, so the archive may lag the entity stores.
type RecordArchive struct {
	conn      *Conn
	batchSize int

	mu    sync.Mutex
	mints []*domain.Mint
	burns []*domain.Burn
	swaps []*domain.Swap
}

// NewRecordArchive creates an archive over the given connection.
// batchSize <= 0 uses DefaultArchiveBatchSize.
func NewRecordArchive(conn *Conn, batchSize int) *RecordArchive {
	if batchSize <= 0 {
		batchSize = DefaultArchiveBatchSize
	}
	return &RecordArchive{conn: conn, batchSize: batchSize}
}

// Compile-time interface check.
var _ indexer.RecordSink = (*RecordArchive)(nil)

// ArchiveMint buffers a finalized mint, flushing when the batch fills.
func (a *RecordArchive) ArchiveMint(ctx context.Context, m *domain.Mint) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mints = append(a.mints, m)
	if len(a.mints) >= a.batchSize {
		return a.flushMints(ctx)
	}
	return nil
}

// ArchiveBurn buffers a finalized burn, flushing when the batch fills.
func (a *RecordArchive) ArchiveBurn(ctx context.Context, b *domain.Burn) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.burns = append(a.burns, b)
	if len(a.burns) >= a.batchSize {
		return a.flushBurns(ctx)
	}
	return nil
}

// ArchiveSwap buffers a swap, flushing when the batch fills.
func (a *RecordArchive) ArchiveSwap(ctx context.Context, s *domain.Swap) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.swaps = append(a.swaps, s)
	if len(a.swaps) >= a.batchSize {
		return a.flushSwaps(ctx)
	}
	return nil
}

// Flush writes out every buffered record. Call on shutdown.
func (a *RecordArchive) Flush(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.flushMints(ctx); err != nil {
		return err
	}
	if err := a.flushBurns(ctx); err != nil {
		return err
	}
	return a.flushSwaps(ctx)
}

func (a *RecordArchive) flushMints(ctx context.Context) error {
	if len(a.mints) == 0 {
		return nil
	}
	batch, err := a.conn.PrepareBatch(ctx, `
		INSERT INTO mint_records (
			id, tx_hash, pair, to_address, liquidity, sender,
			amount0, amount1, amount_usd, log_index, ts
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare mint batch: %w", err)
	}
	for _, m := range a.mints {
		err = batch.Append(
			m.ID, m.Transaction, m.Pair, m.To, m.Liquidity, m.Sender,
			m.Amount0, m.Amount1, m.AmountUSD, m.LogIndex, m.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("append mint %s: %w", m.ID, err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("send mint batch: %w", err)
	}
	observability.RecordArchived("mint", len(a.mints))
	a.mints = a.mints[:0]
	return nil
}

func (a *RecordArchive) flushBurns(ctx context.Context) error {
	if len(a.burns) == 0 {
		return nil
	}
	batch, err := a.conn.PrepareBatch(ctx, `
		INSERT INTO burn_records (
			id, tx_hash, pair, liquidity, sender, to_address, fee_to,
			fee_liquidity, amount0, amount1, amount_usd, log_index, ts
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare burn batch: %w", err)
	}
	for _, b := range a.burns {
		err = batch.Append(
			b.ID, b.Transaction, b.Pair, b.Liquidity, b.Sender, b.To, b.FeeTo,
			b.FeeLiquidity, b.Amount0, b.Amount1, b.AmountUSD, b.LogIndex, b.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("append burn %s: %w", b.ID, err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("send burn batch: %w", err)
	}
	observability.RecordArchived("burn", len(a.burns))
	a.burns = a.burns[:0]
	return nil
}

func (a *RecordArchive) flushSwaps(ctx context.Context) error {
	if len(a.swaps) == 0 {
		return nil
	}
	batch, err := a.conn.PrepareBatch(ctx, `
		INSERT INTO swap_records (
			id, tx_hash, pair, sender, from_address, to_address,
			amount0_in, amount1_in, amount0_out, amount1_out,
			amount_usd, log_index, ts
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare swap batch: %w", err)
	}
	for _, s := range a.swaps {
		err = batch.Append(
			s.ID, s.Transaction, s.Pair, s.Sender, s.From, s.To,
			s.Amount0In, s.Amount1In, s.Amount0Out, s.Amount1Out,
			s.AmountUSD, s.LogIndex, s.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("append swap %s: %w", s.ID, err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("send swap batch: %w", err)
	}
	observability.RecordArchived("swap", len(a.swaps))
	a.swaps = a.swaps[:0]
	return nil
}
