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

func TestTransactionStore_RoundTrip(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTransactionStore(pool)
	ctx := context.Background()

	tx := domain.NewTransaction("0xabc", 1500, 1700000100)
	tx.AppendMint(tx.NextMintID())
	tx.AppendMint(tx.NextMintID())
	tx.AppendSwap(tx.NextSwapID())

	require.NoError(t, store.Save(ctx, tx))

	got, err := store.Get(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, int64(1500), got.Block)
	assert.Equal(t, int64(1700000100), got.Timestamp)
	assert.Equal(t, []string{"0xabc-0", "0xabc-1"}, got.Mints)
	assert.Empty(t, got.Burns)
	assert.Equal(t, []string{"0xabc-0"}, got.Swaps)
	assert.Equal(t, int64(2), got.NextMint)
	assert.Equal(t, int64(1), got.NextSwap)
}

func TestTransactionStore_CounterSurvivesPop(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTransactionStore(pool)
	ctx := context.Background()

	tx := domain.NewTransaction("0xdef", 1, 100)
	tx.AppendMint(tx.NextMintID())
	_, ok := tx.PopLastMint()
	require.True(t, ok)
	require.NoError(t, store.Save(ctx, tx))

	got, err := store.Get(ctx, "0xdef")
	require.NoError(t, err)
	assert.Empty(t, got.Mints)
	assert.Equal(t, int64(1), got.NextMint, "counter must not rewind when the sequence shrinks")

	// The next reserved id skips the popped slot.
	assert.Equal(t, "0xdef-1", got.NextMintID())
}

func TestTransactionStore_GetNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTransactionStore(pool)

	_, err := store.Get(context.Background(), "0xmissing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFactoryStore_RoundTrip(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewFactoryStore(pool)
	ctx := context.Background()

	_, err := store.Get(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	factory := &domain.Factory{
		Address:           "0xfactory",
		TotalLiquidityUSD: decimal.RequireFromString("100000.5"),
		TotalVolumeUSD:    decimal.RequireFromString("250.25"),
		TotalTransactions: 40,
		PairCount:         3,
	}
	require.NoError(t, store.Save(ctx, factory))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0xfactory", got.Address)
	assert.True(t, got.TotalLiquidityUSD.Equal(factory.TotalLiquidityUSD))
	assert.True(t, got.TotalVolumeUSD.Equal(factory.TotalVolumeUSD))
	assert.Equal(t, int64(40), got.TotalTransactions)
	assert.Equal(t, int64(3), got.PairCount)
}

func TestBundleStore_RoundTrip(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewBundleStore(pool)
	ctx := context.Background()

	_, err := store.Get(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.Save(ctx, &domain.Bundle{BNBPrice: decimal.RequireFromString("312.5")}))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.True(t, got.BNBPrice.Equal(decimal.RequireFromString("312.5")))

	// The bundle row is a singleton; saving again overwrites it.
	require.NoError(t, store.Save(ctx, &domain.Bundle{BNBPrice: decimal.RequireFromString("299")}))
	got, err = store.Get(ctx)
	require.NoError(t, err)
	assert.True(t, got.BNBPrice.Equal(decimal.RequireFromString("299")))
}
