package postgres

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bsc-pair-indexer/internal/domain"
	"bsc-pair-indexer/internal/storage"
)

func TestMintStore_RoundTripAndDelete(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewMintStore(pool)
	ctx := context.Background()

	mint := &domain.Mint{
		ID:          "0xabc-0",
		Transaction: "0xabc",
		Pair:        "0xpair1",
		To:          "0xalice",
		Liquidity:   decimal.RequireFromString("10.5"),
		Sender:      "0xrouter",
		Amount0:     decimal.RequireFromString("5"),
		Amount1:     decimal.RequireFromString("5"),
		AmountUSD:   decimal.RequireFromString("3100"),
		LogIndex:    4,
		Timestamp:   1700000100,
	}
	require.NoError(t, store.Save(ctx, mint))

	got, err := store.Get(ctx, "0xabc-0")
	require.NoError(t, err)
	assert.Equal(t, "0xabc", got.Transaction)
	assert.Equal(t, "0xalice", got.To)
	assert.True(t, got.Liquidity.Equal(mint.Liquidity))
	assert.True(t, got.AmountUSD.Equal(mint.AmountUSD))
	assert.True(t, got.Complete())

	require.NoError(t, store.Delete(ctx, "0xabc-0"))
	_, err = store.Get(ctx, "0xabc-0")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Deleting an absent id is not an error.
	require.NoError(t, store.Delete(ctx, "0xabc-0"))
}

func TestBurnStore_RoundTrip(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewBurnStore(pool)
	ctx := context.Background()

	burn := &domain.Burn{
		ID:            "0xdef-0",
		Transaction:   "0xdef",
		Pair:          "0xpair1",
		Liquidity:     decimal.RequireFromString("2.25"),
		Sender:        "0xbob",
		To:            "0xbob",
		NeedsComplete: true,
		FeeTo:         "0xfee",
		FeeLiquidity:  decimal.RequireFromString("0.01"),
		Amount0:       decimal.RequireFromString("1"),
		Amount1:       decimal.RequireFromString("2"),
		LogIndex:      7,
		Timestamp:     1700000200,
	}
	require.NoError(t, store.Save(ctx, burn))

	got, err := store.Get(ctx, "0xdef-0")
	require.NoError(t, err)
	assert.True(t, got.NeedsComplete)
	assert.Equal(t, "0xfee", got.FeeTo)
	assert.True(t, got.FeeLiquidity.Equal(burn.FeeLiquidity))
	assert.True(t, got.Liquidity.Equal(burn.Liquidity))

	got.NeedsComplete = false
	require.NoError(t, store.Save(ctx, got))

	got, err = store.Get(ctx, "0xdef-0")
	require.NoError(t, err)
	assert.False(t, got.NeedsComplete)
}

func TestSwapStore_RoundTrip(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewSwapStore(pool)
	ctx := context.Background()

	swap := &domain.Swap{
		ID:          "0xaaa-0",
		Transaction: "0xaaa",
		Pair:        "0xpair1",
		Sender:      "0xrouter",
		From:        "0xcarol",
		To:          "0xcarol",
		Amount0In:   decimal.RequireFromString("1.5"),
		Amount1Out:  decimal.RequireFromString("450"),
		AmountUSD:   decimal.RequireFromString("465.75"),
		LogIndex:    2,
		Timestamp:   1700000300,
	}
	require.NoError(t, store.Save(ctx, swap))

	got, err := store.Get(ctx, "0xaaa-0")
	require.NoError(t, err)
	assert.Equal(t, "0xcarol", got.From)
	assert.True(t, got.Amount0In.Equal(swap.Amount0In))
	assert.True(t, got.Amount1In.IsZero())
	assert.True(t, got.Amount1Out.Equal(swap.Amount1Out))
	assert.True(t, got.AmountUSD.Equal(swap.AmountUSD))

	_, err = store.Get(ctx, "0xaaa-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
