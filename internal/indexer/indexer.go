// Package indexer reconstructs logical AMM trading activity from raw pair
// events: it assembles multi-event mints and burns per transaction, maintains
// pair reserves and prices on sync, records swap volume, and folds everything
// into hour/day rollups. Processing is strictly sequential; the single event
// loop is the only writer, so multi-step read-modify-write sequences against
// the shared stores need no locking.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"bsc-pair-indexer/internal/domain"
	"bsc-pair-indexer/internal/pricing"
	"bsc-pair-indexer/internal/storage"
)

// Stores bundles every store the indexer mutates.
type Stores struct {
	Pairs        storage.PairStore
	Tokens       storage.TokenStore
	Factory      storage.FactoryStore
	Bundle       storage.BundleStore
	Transactions storage.TransactionStore
	Mints        storage.MintStore
	Burns        storage.BurnStore
	Swaps        storage.SwapStore
	PairHours    storage.PairHourDataStore
	PairDays     storage.PairDayDataStore
	TokenDays    storage.TokenDayDataStore
	FactoryDays  storage.FactoryDayDataStore
}

// RecordSink receives finalized logical records for analytical archival.
// Sink failures are logged, never propagated: the archive is write-behind.
type RecordSink interface {
	ArchiveMint(ctx context.Context, m *domain.Mint) error
	ArchiveBurn(ctx context.Context, b *domain.Burn) error
	ArchiveSwap(ctx context.Context, s *domain.Swap) error
}

// Indexer applies raw pair events to the entity stores.
type Indexer struct {
	stores Stores
	oracle pricing.Oracle
	sink   RecordSink // optional
	logger *log.Logger
	debug  bool
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithRecordSink attaches an analytical archive for finalized records.
func WithRecordSink(sink RecordSink) Option {
	return func(ix *Indexer) { ix.sink = sink }
}

// WithDebug enables missing-prerequisite diagnostics.
func WithDebug(debug bool) Option {
	return func(ix *Indexer) { ix.debug = debug }
}

// New creates an indexer over the given stores and price oracle.
func New(stores Stores, oracle pricing.Oracle, logger *log.Logger, opts ...Option) *Indexer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	ix := &Indexer{stores: stores, oracle: oracle, logger: logger}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// skip emits the missing-prerequisite diagnostic and the matching outcome.
func (ix *Indexer) skip(event, kind, key string) Outcome {
	if ix.debug {
		ix.logger.Printf("%s event, but %s doesn't exist: %s", event, kind, key)
	}
	return SkippedMissing(kind, key)
}

// loadPairTokens loads both tokens of a pair. An absent token comes back nil
// with a nil error so callers can skip instead of fail.
func (ix *Indexer) loadPairTokens(ctx context.Context, pair *domain.Pair) (*domain.Token, *domain.Token, error) {
	token0, err := ix.stores.Tokens.Get(ctx, pair.Token0)
	if err != nil && !notFound(err) {
		return nil, nil, fmt.Errorf("load token0 %s: %w", pair.Token0, err)
	}
	token1, err := ix.stores.Tokens.Get(ctx, pair.Token1)
	if err != nil && !notFound(err) {
		return nil, nil, fmt.Errorf("load token1 %s: %w", pair.Token1, err)
	}
	return token0, token1, nil
}

// notFound reports whether a store error means the record is simply absent.
func notFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}

// archiveMint forwards a finalized mint to the sink, if any.
func (ix *Indexer) archiveMint(ctx context.Context, m *domain.Mint) {
	if ix.sink == nil {
		return
	}
	if err := ix.sink.ArchiveMint(ctx, m); err != nil {
		ix.logger.Printf("archive mint %s: %v", m.ID, err)
	}
}

func (ix *Indexer) archiveBurn(ctx context.Context, b *domain.Burn) {
	if ix.sink == nil {
		return
	}
	if err := ix.sink.ArchiveBurn(ctx, b); err != nil {
		ix.logger.Printf("archive burn %s: %v", b.ID, err)
	}
}

func (ix *Indexer) archiveSwap(ctx context.Context, s *domain.Swap) {
	if ix.sink == nil {
		return
	}
	if err := ix.sink.ArchiveSwap(ctx, s); err != nil {
		ix.logger.Printf("archive swap %s: %v", s.ID, err)
	}
}
