package indexer

import (
	"context"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bsc-pair-indexer/internal/domain"
	"bsc-pair-indexer/internal/pricing"
	"bsc-pair-indexer/internal/storage/memory"
)

const (
	testPair    = "0xpair1"
	testToken0  = "0xtoken0"
	testToken1  = "0xtoken1"
	testFactory = "0xfactory"
	testTxHash  = "0xtx1"
	testUser    = "0xalice"
	testRouter  = "0xrouter"
)

// newTestIndexer builds an indexer over fresh in-memory stores with a
// static oracle the test can pin prices on.
func newTestIndexer(t *testing.T) (*Indexer, Stores, *pricing.StaticOracle) {
	t.Helper()

	stores := Stores{
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
	oracle := pricing.NewStaticOracle()
	ix := New(stores, oracle, nil)
	return ix, stores, oracle
}

// seedEntities registers the standard factory, bundle, token pair (18 and 6
// decimals) and pair used by most tests.
func seedEntities(t *testing.T, stores Stores) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, stores.Factory.Save(ctx, &domain.Factory{Address: testFactory, PairCount: 1}))
	require.NoError(t, stores.Bundle.Save(ctx, &domain.Bundle{}))
	require.NoError(t, stores.Tokens.Save(ctx, &domain.Token{
		Address: testToken0, Symbol: "WBNB", Decimals: 18,
	}))
	require.NoError(t, stores.Tokens.Save(ctx, &domain.Token{
		Address: testToken1, Symbol: "USDT", Decimals: 6,
	}))
	require.NoError(t, stores.Pairs.Save(ctx, &domain.Pair{
		Address: testPair, Token0: testToken0, Token1: testToken1,
	}))
}

func meta(block, logIndex, ts int64) domain.EventMeta {
	return domain.EventMeta{
		PairAddress: testPair,
		TxHash:      testTxHash,
		TxFrom:      testUser,
		Block:       block,
		Timestamp:   ts,
		LogIndex:    logIndex,
	}
}

// raw builds a big.Int from a base-10 string.
func raw(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "bad big int literal %q", s)
	return v
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
