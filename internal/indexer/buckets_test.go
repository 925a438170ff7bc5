package indexer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bsc-pair-indexer/internal/domain"
)

func TestBucketLazyCreation(t *testing.T) {
	ix, stores, _ := newTestIndexer(t)
	seedEntities(t, stores)
	ctx := context.Background()

	pair, err := stores.Pairs.Get(ctx, testPair)
	require.NoError(t, err)
	pair.Reserve0 = dec("100")
	pair.Reserve0LiquidityUSD = dec("100")
	pair.Reserve1LiquidityUSD = dec("100")

	ts := int64(1700003599) // one second before the hour rolls over

	hour, err := ix.updatePairHourData(ctx, ts, pair)
	require.NoError(t, err)
	assert.Equal(t, bucketKey(testPair, ts/domain.BucketHour), hour.ID)
	assert.Equal(t, (ts/domain.BucketHour)*domain.BucketHour, hour.HourStartUnix)
	assert.True(t, hour.Reserve0.Equal(dec("100")))
	assert.True(t, hour.ReserveUSD.Equal(dec("200")))
	assert.Equal(t, int64(1), hour.HourlyTxns)

	// A second touch in the same hour reuses the row.
	pair.Reserve0 = dec("101")
	hour, err = ix.updatePairHourData(ctx, ts+1, pair)
	require.NoError(t, err)
	assert.Equal(t, int64(2), hour.HourlyTxns)
	assert.True(t, hour.Reserve0.Equal(dec("101")), "snapshot refreshes on every touch")

	// The next hour opens a fresh row.
	next, err := ix.updatePairHourData(ctx, ts+2, pair)
	require.NoError(t, err)
	assert.NotEqual(t, hour.ID, next.ID)
	assert.Equal(t, int64(1), next.HourlyTxns)
}

func TestPairDayDataCopiesTokensAtCreation(t *testing.T) {
	ix, stores, _ := newTestIndexer(t)
	seedEntities(t, stores)
	ctx := context.Background()

	pair, err := stores.Pairs.Get(ctx, testPair)
	require.NoError(t, err)

	ts := int64(1700000000)
	day, err := ix.updatePairDayData(ctx, ts, pair)
	require.NoError(t, err)
	assert.Equal(t, testToken0, day.Token0)
	assert.Equal(t, testToken1, day.Token1)
	assert.Equal(t, (ts/domain.BucketDay)*domain.BucketDay, day.Date)
}

func TestTokenDayDataSnapshotsLiquidity(t *testing.T) {
	ix, stores, _ := newTestIndexer(t)
	seedEntities(t, stores)
	ctx := context.Background()

	token, err := stores.Tokens.Get(ctx, testToken0)
	require.NoError(t, err)
	token.DerivedUSD = dec("2")
	token.TotalLiquidity = dec("100")
	// Part of the liquidity sits in unpriced pairs; only the tracked share
	// carries a USD valuation.
	token.TrackedTotalLiquidityUSD = dec("40")

	day, err := ix.updateTokenDayData(ctx, 1700000000, token)
	require.NoError(t, err)
	assert.True(t, day.PriceUSD.Equal(dec("2")))
	assert.True(t, day.TotalLiquidityToken.Equal(dec("100")))
	assert.True(t, day.TotalLiquidityUSD.Equal(dec("40")), "USD snapshot is the tracked valuation, not liquidity times price")
	assert.Equal(t, int64(1), day.DailyTxns)
}

func TestPairBucketsGateUnpricedReserves(t *testing.T) {
	ix, stores, _ := newTestIndexer(t)
	seedEntities(t, stores)
	ctx := context.Background()

	pair, err := stores.Pairs.Get(ctx, testPair)
	require.NoError(t, err)
	// One side unpriced: the running ReserveUSD sum still counts the priced
	// side, but both per-side valuations are zeroed.
	pair.Reserve0 = dec("100")
	pair.Reserve1 = dec("100")
	pair.ReserveUSD = dec("200")
	pair.Reserve0LiquidityUSD = dec("0")
	pair.Reserve1LiquidityUSD = dec("0")

	hour, err := ix.updatePairHourData(ctx, 1700000000, pair)
	require.NoError(t, err)
	assert.True(t, hour.ReserveUSD.IsZero(), "half-priced pair snapshots zero")
	assert.True(t, hour.Reserve0.Equal(dec("100")), "raw reserves still snapshot")

	day, err := ix.updatePairDayData(ctx, 1700000000, pair)
	require.NoError(t, err)
	assert.True(t, day.ReserveUSD.IsZero())
	assert.True(t, day.Reserve1.Equal(dec("100")))
}

func TestFactoryDayDataSnapshotsCounters(t *testing.T) {
	ix, stores, _ := newTestIndexer(t)
	seedEntities(t, stores)
	ctx := context.Background()

	factory, err := stores.Factory.Get(ctx)
	require.NoError(t, err)
	factory.TotalVolumeUSD = dec("1000")
	factory.TotalLiquidityUSD = dec("5000")
	factory.TotalTransactions = 42

	day, err := ix.updateFactoryDayData(ctx, 1700000000, factory)
	require.NoError(t, err)
	assert.Equal(t, "19675", day.ID)
	assert.True(t, day.TotalVolumeUSD.Equal(dec("1000")))
	assert.True(t, day.TotalLiquidityUSD.Equal(dec("5000")))
	assert.Equal(t, int64(42), day.TotalTransactions)
	assert.True(t, day.DailyVolumeUSD.IsZero(), "daily volume folds in via swaps only")
}
