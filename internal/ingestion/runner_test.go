package ingestion

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bsc-pair-indexer/internal/domain"
	"bsc-pair-indexer/internal/indexer"
	"bsc-pair-indexer/internal/pricing"
	"bsc-pair-indexer/internal/storage/memory"
)

// chanSource feeds a fixed slice of events and closes the channel.
type chanSource struct {
	events []domain.Event
}

func (s *chanSource) Subscribe(_ context.Context) (<-chan domain.Event, error) {
	ch := make(chan domain.Event, len(s.events))
	for _, ev := range s.events {
		ch <- ev
	}
	close(ch)
	return ch, nil
}

func newRunnerFixture(t *testing.T, events []domain.Event, startBlock, startLogIndex int64) (*Runner, indexer.Stores) {
	t.Helper()

	stores := indexer.Stores{
		Pairs:        memory.NewPairStore(),
		Tokens:       memory.NewTokenStore(),
		Factory:      memory.NewFactoryStore(),
		Bundle:       memory.NewBundleStore(),
		Transactions: memory.NewTransactionStore(),
		Mints:        memory.NewMintStore(),
		Burns:        memory.NewBurnStore(),
		Swaps:        memory.NewSwapStore(),
		PairHours:    memory.NewPairHourDataStore(),
		PairDays:     memory.NewPairDayDataStore(),
		TokenDays:    memory.NewTokenDayDataStore(),
		FactoryDays:  memory.NewFactoryDayDataStore(),
	}
	ctx := context.Background()
	require.NoError(t, stores.Factory.Save(ctx, &domain.Factory{Address: "0xfactory"}))
	require.NoError(t, stores.Bundle.Save(ctx, &domain.Bundle{}))
	require.NoError(t, stores.Tokens.Save(ctx, &domain.Token{Address: "0xa", Decimals: 18}))
	require.NoError(t, stores.Tokens.Save(ctx, &domain.Token{Address: "0xb", Decimals: 6}))
	require.NoError(t, stores.Pairs.Save(ctx, &domain.Pair{Address: "0xpair1", Token0: "0xa", Token1: "0xb"}))

	ix := indexer.New(stores, pricing.NewStaticOracle(), nil)
	runner := NewRunner(RunnerOptions{
		Source:        &chanSource{events: events},
		Indexer:       ix,
		StartBlock:    startBlock,
		StartLogIndex: startLogIndex,
	})
	return runner, stores
}

func syncEvent(block, logIndex int64, reserve0, reserve1 string) *domain.SyncEvent {
	r0, _ := new(big.Int).SetString(reserve0, 10)
	r1, _ := new(big.Int).SetString(reserve1, 10)
	return &domain.SyncEvent{
		EventMeta: domain.EventMeta{
			PairAddress: "0xpair1",
			TxHash:      "0xtx1",
			Block:       block,
			Timestamp:   1700000000,
			LogIndex:    logIndex,
		},
		Reserve0: r0,
		Reserve1: r1,
	}
}

func TestRunner_ProcessesFeedToEnd(t *testing.T) {
	events := []domain.Event{
		syncEvent(100, 0, "100000000000000000000", "100000000"),
		syncEvent(100, 1, "101000000000000000000", "99000000"),
	}
	runner, stores := newRunnerFixture(t, events, 0, 0)

	require.NoError(t, runner.Run(context.Background()))

	pair, err := stores.Pairs.Get(context.Background(), "0xpair1")
	require.NoError(t, err)
	assert.True(t, pair.Reserve0.Equal(decimalFromString(t, "101")))
}

func TestRunner_DropsReplayedCoordinates(t *testing.T) {
	events := []domain.Event{
		syncEvent(100, 0, "100000000000000000000", "100000000"),
		// Same coordinate again with different reserves: must be dropped.
		syncEvent(100, 0, "999000000000000000000", "1000000"),
	}
	runner, stores := newRunnerFixture(t, events, 0, 0)

	require.NoError(t, runner.Run(context.Background()))

	pair, err := stores.Pairs.Get(context.Background(), "0xpair1")
	require.NoError(t, err)
	assert.True(t, pair.Reserve0.Equal(decimalFromString(t, "100")))
}

func TestRunner_ResumesFromStartCoordinate(t *testing.T) {
	events := []domain.Event{
		// At and below the resume point: dropped.
		syncEvent(100, 5, "999000000000000000000", "1000000"),
		// Past it: applied.
		syncEvent(100, 6, "100000000000000000000", "100000000"),
	}
	runner, stores := newRunnerFixture(t, events, 100, 5)

	require.NoError(t, runner.Run(context.Background()))

	pair, err := stores.Pairs.Get(context.Background(), "0xpair1")
	require.NoError(t, err)
	assert.True(t, pair.Reserve0.Equal(decimalFromString(t, "100")))
}

func TestRunner_ContextCancellation(t *testing.T) {
	runner, _ := newRunnerFixture(t, nil, 0, 0)

	// A source that never produces keeps Run blocked until cancellation.
	runner.source = &blockingSource{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop on cancellation")
	}
}

type blockingSource struct{}

func (s *blockingSource) Subscribe(_ context.Context) (<-chan domain.Event, error) {
	return make(chan domain.Event), nil
}

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
