package pricing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bsc-pair-indexer/internal/domain"
	"bsc-pair-indexer/internal/storage/memory"
)

const (
	wbnb      = "0xwbnb"
	usdt      = "0xusdt"
	cake      = "0xcake"
	junk      = "0xjunk"
	quotePair = "0xwbnb-usdt"
	cakePair  = "0xcake-wbnb"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newQuoteOracle(t *testing.T) (*QuoteOracle, *memory.PairStore) {
	t.Helper()
	pairs := memory.NewPairStore()
	oracle := NewQuoteOracle(pairs, QuoteConfig{
		WBNB:          wbnb,
		Stables:       []string{usdt},
		BNBStablePair: quotePair,
		RoutePairs:    map[string]string{cake: cakePair},
	})
	return oracle, pairs
}

func TestQuoteOracle_BNBPriceFromReserveRatio(t *testing.T) {
	oracle, pairs := newQuoteOracle(t)
	ctx := context.Background()

	// No quote pair yet: rate is zero, not an error.
	rate, err := oracle.BNBPriceUSD(ctx)
	require.NoError(t, err)
	assert.True(t, rate.IsZero())

	require.NoError(t, pairs.Save(ctx, &domain.Pair{
		Address:  quotePair,
		Token0:   wbnb,
		Token1:   usdt,
		Reserve0: dec("100"),
		Reserve1: dec("30000"),
	}))

	rate, err = oracle.BNBPriceUSD(ctx)
	require.NoError(t, err)
	assert.True(t, rate.Equal(dec("300")), "rate: %s", rate)
}

func TestQuoteOracle_DeriveUSDPrice(t *testing.T) {
	oracle, pairs := newQuoteOracle(t)
	ctx := context.Background()

	require.NoError(t, pairs.Save(ctx, &domain.Pair{
		Address:  quotePair,
		Token0:   wbnb,
		Token1:   usdt,
		Reserve0: dec("100"),
		Reserve1: dec("30000"),
	}))

	token0 := &domain.Token{Address: cake}
	token1 := &domain.Token{Address: wbnb}

	// CAKE pairs directly with WBNB: 1000 CAKE vs 10 WBNB -> 0.01 BNB each.
	prices, err := oracle.DeriveUSDPrice(ctx, dec("1000"), dec("10"), token0, token1)
	require.NoError(t, err)
	assert.True(t, prices.Token1USD.Equal(dec("300")), "wbnb: %s", prices.Token1USD)
	assert.True(t, prices.Token0USD.Equal(dec("3")), "cake: %s", prices.Token0USD)
}

func TestQuoteOracle_RoutePairPricing(t *testing.T) {
	oracle, pairs := newQuoteOracle(t)
	ctx := context.Background()

	require.NoError(t, pairs.Save(ctx, &domain.Pair{
		Address:  quotePair,
		Token0:   wbnb,
		Token1:   usdt,
		Reserve0: dec("100"),
		Reserve1: dec("30000"),
	}))
	require.NoError(t, pairs.Save(ctx, &domain.Pair{
		Address:  cakePair,
		Token0:   cake,
		Token1:   wbnb,
		Reserve0: dec("1000"),
		Reserve1: dec("10"),
	}))

	// CAKE traded against some junk token prices through its route pair.
	token0 := &domain.Token{Address: cake}
	token1 := &domain.Token{Address: junk}
	prices, err := oracle.DeriveUSDPrice(ctx, dec("500"), dec("12345"), token0, token1)
	require.NoError(t, err)
	assert.True(t, prices.Token0USD.Equal(dec("3")), "cake via route: %s", prices.Token0USD)
	assert.True(t, prices.Token1USD.IsZero(), "junk stays unpriced")
}

func TestQuoteOracle_StableIsAlwaysOneUSD(t *testing.T) {
	oracle, _ := newQuoteOracle(t)

	prices, err := oracle.DeriveUSDPrice(context.Background(), dec("1"), dec("1"),
		&domain.Token{Address: usdt}, &domain.Token{Address: junk})
	require.NoError(t, err)
	assert.True(t, prices.Token0USD.Equal(dec("1")))
}

func TestQuoteOracle_TrackedVolume(t *testing.T) {
	oracle, _ := newQuoteOracle(t)
	ctx := context.Background()

	priced0 := &domain.Token{Address: wbnb, DerivedUSD: dec("300")}
	priced1 := &domain.Token{Address: usdt, DerivedUSD: dec("1")}
	unpriced := &domain.Token{Address: junk, DerivedUSD: dec("99")} // not whitelisted

	// Both sides whitelisted and priced: average of the two legs.
	v, err := oracle.TrackedVolumeUSD(ctx, dec("1"), priced0, dec("298"), priced1)
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("299")), "volume: %s", v)

	// One side: that side counts in full.
	v, err = oracle.TrackedVolumeUSD(ctx, dec("1"), priced0, dec("298"), unpriced)
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("300")))

	// Neither side: zero, even with a stored price on a non-whitelisted token.
	v, err = oracle.TrackedVolumeUSD(ctx, dec("1"), unpriced, dec("1"), unpriced)
	require.NoError(t, err)
	assert.True(t, v.IsZero())
}

func TestQuoteOracle_TrackedLiquidity(t *testing.T) {
	oracle, _ := newQuoteOracle(t)
	ctx := context.Background()

	priced0 := &domain.Token{Address: wbnb, DerivedUSD: dec("300")}
	priced1 := &domain.Token{Address: usdt, DerivedUSD: dec("1")}
	unpriced := &domain.Token{Address: junk}

	// Both sides: plain sum.
	v, err := oracle.TrackedLiquidityUSD(ctx, dec("100"), priced0, dec("30000"), priced1)
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("60000")))

	// One side: doubled.
	v, err = oracle.TrackedLiquidityUSD(ctx, dec("100"), priced0, dec("5"), unpriced)
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("60000")))

	// Neither: zero.
	v, err = oracle.TrackedLiquidityUSD(ctx, dec("100"), unpriced, dec("5"), unpriced)
	require.NoError(t, err)
	assert.True(t, v.IsZero())
}

func TestStaticOracle(t *testing.T) {
	oracle := NewStaticOracle()
	oracle.SetBNBPrice(dec("250"))
	oracle.SetPrice(wbnb, dec("250"))
	ctx := context.Background()

	rate, err := oracle.BNBPriceUSD(ctx)
	require.NoError(t, err)
	assert.True(t, rate.Equal(dec("250")))

	prices, err := oracle.DeriveUSDPrice(ctx, dec("1"), dec("1"),
		&domain.Token{Address: wbnb}, &domain.Token{Address: junk})
	require.NoError(t, err)
	assert.True(t, prices.Token0USD.Equal(dec("250")))
	assert.True(t, prices.Token1USD.IsZero())
}
