package indexer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bsc-pair-indexer/internal/domain"
	"bsc-pair-indexer/internal/storage"
)

func TestHandleSwap_RecordsTradeAndVolume(t *testing.T) {
	ix, stores, oracle := newTestIndexer(t)
	seedEntities(t, stores)
	oracle.SetPrice(testToken0, dec("300"))
	oracle.SetPrice(testToken1, dec("1"))
	ctx := context.Background()

	out, err := ix.HandleSwap(ctx, &domain.SwapRawEvent{
		EventMeta:  meta(100, 7, 1700000000),
		Sender:     testRouter,
		To:         testUser,
		Amount0In:  raw(t, "1000000000000000000"), // 1.0 token0 in
		Amount1Out: raw(t, "298000000"),           // 298 token1 out
	})
	require.NoError(t, err)
	require.False(t, out.Skipped())

	// Tracked value is the average of both priced legs: (1*300 + 298*1)/2.
	tracked := dec("299")

	swap, err := stores.Swaps.Get(ctx, testTxHash+"-0")
	require.NoError(t, err)
	assert.Equal(t, testUser, swap.From, "from is the outer transaction originator")
	assert.Equal(t, testRouter, swap.Sender)
	assert.True(t, swap.Amount0In.Equal(dec("1")))
	assert.True(t, swap.Amount1Out.Equal(dec("298")))
	assert.True(t, swap.AmountUSD.Equal(tracked), "amountUSD: %s", swap.AmountUSD)

	pair, err := stores.Pairs.Get(ctx, testPair)
	require.NoError(t, err)
	assert.True(t, pair.VolumeToken0.Equal(dec("1")))
	assert.True(t, pair.VolumeToken1.Equal(dec("298")))
	assert.True(t, pair.VolumeUSD.Equal(tracked))
	assert.Equal(t, int64(1), pair.TotalTransactions)

	tok0, err := stores.Tokens.Get(ctx, testToken0)
	require.NoError(t, err)
	assert.True(t, tok0.TradeVolume.Equal(dec("1")))
	assert.True(t, tok0.TradeVolumeUSD.Equal(tracked))

	factory, err := stores.Factory.Get(ctx)
	require.NoError(t, err)
	assert.True(t, factory.TotalVolumeUSD.Equal(tracked))
	assert.Equal(t, int64(1), factory.TotalTransactions)

	tx, err := stores.Transactions.Get(ctx, testTxHash)
	require.NoError(t, err)
	assert.Equal(t, []string{testTxHash + "-0"}, tx.Swaps)
}

func TestHandleSwap_FoldsVolumeIntoBuckets(t *testing.T) {
	ix, stores, oracle := newTestIndexer(t)
	seedEntities(t, stores)
	oracle.SetPrice(testToken0, dec("300"))
	oracle.SetPrice(testToken1, dec("1"))
	ctx := context.Background()

	ts := int64(1700000000)
	for i := int64(0); i < 2; i++ {
		_, err := ix.HandleSwap(ctx, &domain.SwapRawEvent{
			EventMeta:  meta(100, 7+i, ts),
			Sender:     testRouter,
			To:         testUser,
			Amount0In:  raw(t, "1000000000000000000"),
			Amount1Out: raw(t, "298000000"),
		})
		require.NoError(t, err)
	}

	pairDay, err := stores.PairDays.Get(ctx, bucketKey(testPair, ts/domain.BucketDay))
	require.NoError(t, err)
	assert.True(t, pairDay.DailyVolumeToken0.Equal(dec("2")))
	assert.True(t, pairDay.DailyVolumeToken1.Equal(dec("596")))
	assert.True(t, pairDay.DailyVolumeUSD.Equal(dec("598")))
	assert.Equal(t, int64(2), pairDay.DailyTxns)

	pairHour, err := stores.PairHours.Get(ctx, bucketKey(testPair, ts/domain.BucketHour))
	require.NoError(t, err)
	assert.True(t, pairHour.HourlyVolumeToken0.Equal(dec("2")))
	assert.True(t, pairHour.HourlyVolumeUSD.Equal(dec("598")))

	factoryDay, err := stores.FactoryDays.Get(ctx, "19675")
	require.NoError(t, err)
	assert.True(t, factoryDay.DailyVolumeUSD.Equal(dec("598")))
	assert.True(t, factoryDay.TotalVolumeUSD.Equal(dec("598")))
	assert.Equal(t, int64(2), factoryDay.TotalTransactions)
}

func TestHandleSwap_TokenDayVolumeUsesStoredPrice(t *testing.T) {
	ix, stores, oracle := newTestIndexer(t)
	seedEntities(t, stores)
	oracle.SetPrice(testToken0, dec("300"))
	oracle.SetPrice(testToken1, dec("1"))
	ctx := context.Background()

	// Stamp the tokens' stored derived prices, as a prior sync would.
	tok0, err := stores.Tokens.Get(ctx, testToken0)
	require.NoError(t, err)
	tok0.DerivedUSD = dec("300")
	require.NoError(t, stores.Tokens.Save(ctx, tok0))

	ts := int64(1700000000)
	_, err = ix.HandleSwap(ctx, &domain.SwapRawEvent{
		EventMeta:  meta(100, 7, ts),
		Sender:     testRouter,
		To:         testUser,
		Amount0In:  raw(t, "1000000000000000000"),
		Amount1Out: raw(t, "298000000"),
	})
	require.NoError(t, err)

	tok0Day, err := stores.TokenDays.Get(ctx, bucketKey(testToken0, ts/domain.BucketDay))
	require.NoError(t, err)
	assert.True(t, tok0Day.DailyVolumeToken.Equal(dec("1")))
	// Token-day USD volume is raw amount times the token's own price, not the
	// tracked trade value.
	assert.True(t, tok0Day.DailyVolumeUSD.Equal(dec("300")), "dailyVolumeUSD: %s", tok0Day.DailyVolumeUSD)

	tok1Day, err := stores.TokenDays.Get(ctx, bucketKey(testToken1, ts/domain.BucketDay))
	require.NoError(t, err)
	assert.True(t, tok1Day.DailyVolumeToken.Equal(dec("298")))
	assert.True(t, tok1Day.DailyVolumeUSD.IsZero(), "token1 has no stored derived price")
}

func TestHandleSwap_UnpricedTradeContributesNoTrackedVolume(t *testing.T) {
	ix, stores, _ := newTestIndexer(t)
	seedEntities(t, stores)
	ctx := context.Background()

	_, err := ix.HandleSwap(ctx, &domain.SwapRawEvent{
		EventMeta:  meta(100, 7, 1700000000),
		Sender:     testRouter,
		To:         testUser,
		Amount0In:  raw(t, "1000000000000000000"),
		Amount1Out: raw(t, "298000000"),
	})
	require.NoError(t, err)

	pair, err := stores.Pairs.Get(ctx, testPair)
	require.NoError(t, err)
	assert.True(t, pair.VolumeUSD.IsZero())
	assert.True(t, pair.VolumeToken0.Equal(dec("1")), "raw volume still accumulates")

	factory, err := stores.Factory.Get(ctx)
	require.NoError(t, err)
	assert.True(t, factory.TotalVolumeUSD.IsZero())
}

func TestHandleSwap_SkipsWithoutBundle(t *testing.T) {
	ix, stores, _ := newTestIndexer(t)
	ctx := context.Background()

	// Everything seeded except the price bundle.
	require.NoError(t, stores.Factory.Save(ctx, &domain.Factory{Address: testFactory, PairCount: 1}))
	require.NoError(t, stores.Tokens.Save(ctx, &domain.Token{
		Address: testToken0, Symbol: "WBNB", Decimals: 18,
	}))
	require.NoError(t, stores.Tokens.Save(ctx, &domain.Token{
		Address: testToken1, Symbol: "USDT", Decimals: 6,
	}))
	require.NoError(t, stores.Pairs.Save(ctx, &domain.Pair{
		Address: testPair, Token0: testToken0, Token1: testToken1,
	}))

	out, err := ix.HandleSwap(ctx, &domain.SwapRawEvent{
		EventMeta:  meta(100, 7, 1700000000),
		Sender:     testRouter,
		To:         testUser,
		Amount0In:  raw(t, "1000000000000000000"),
		Amount1Out: raw(t, "298000000"),
	})
	require.NoError(t, err)
	require.True(t, out.Skipped())
	assert.Equal(t, EntityBundle, out.MissingKind)

	pair, err := stores.Pairs.Get(ctx, testPair)
	require.NoError(t, err)
	assert.True(t, pair.VolumeToken0.IsZero(), "skipped swap leaves aggregates untouched")
	assert.Equal(t, int64(0), pair.TotalTransactions)

	_, err = stores.Swaps.Get(ctx, testTxHash+"-0")
	assert.ErrorIs(t, err, storage.ErrNotFound, "no record is written for a skipped swap")
}

func TestHandleSwap_CreatesTransactionLazily(t *testing.T) {
	ix, stores, _ := newTestIndexer(t)
	seedEntities(t, stores)
	ctx := context.Background()

	_, err := ix.HandleSwap(ctx, &domain.SwapRawEvent{
		EventMeta:  meta(123, 7, 1700000000),
		Sender:     testRouter,
		To:         testUser,
		Amount0In:  raw(t, "1000000000000000000"),
		Amount1Out: raw(t, "298000000"),
	})
	require.NoError(t, err)

	tx, err := stores.Transactions.Get(ctx, testTxHash)
	require.NoError(t, err)
	assert.Equal(t, int64(123), tx.Block)
	assert.Equal(t, int64(1), tx.NextSwap)
}
