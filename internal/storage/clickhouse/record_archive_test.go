package clickhouse

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bsc-pair-indexer/internal/domain"
)

func TestRecordArchive_FlushWritesAllKinds(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	archive := NewRecordArchive(conn, 100)

	mint := &domain.Mint{
		ID:          "0xabc-0",
		Transaction: "0xabc",
		Pair:        "0xpair",
		To:          "0xuser",
		Liquidity:   decimal.RequireFromString("5"),
		Sender:      "0xuser",
		Amount0:     decimal.RequireFromString("5"),
		Amount1:     decimal.RequireFromString("5"),
		AmountUSD:   decimal.RequireFromString("10"),
		LogIndex:    2,
		Timestamp:   1700000000,
	}
	burn := &domain.Burn{
		ID:          "0xdef-0",
		Transaction: "0xdef",
		Pair:        "0xpair",
		Liquidity:   decimal.RequireFromString("2"),
		Sender:      "0xuser",
		To:          "0xpair",
		Amount0:     decimal.RequireFromString("2"),
		Amount1:     decimal.RequireFromString("2"),
		AmountUSD:   decimal.RequireFromString("4"),
		LogIndex:    5,
		Timestamp:   1700000060,
	}
	swap := &domain.Swap{
		ID:          "0xghi-0",
		Transaction: "0xghi",
		Pair:        "0xpair",
		Sender:      "0xrouter",
		From:        "0xuser",
		To:          "0xuser",
		Amount0In:   decimal.RequireFromString("1"),
		Amount1Out:  decimal.RequireFromString("0.99"),
		AmountUSD:   decimal.RequireFromString("1"),
		LogIndex:    1,
		Timestamp:   1700000120,
	}

	require.NoError(t, archive.ArchiveMint(ctx, mint))
	require.NoError(t, archive.ArchiveBurn(ctx, burn))
	require.NoError(t, archive.ArchiveSwap(ctx, swap))

	// Batch size not reached, nothing visible yet
	assert.Equal(t, uint64(0), countRows(t, conn, "swap_records"))

	require.NoError(t, archive.Flush(ctx))

	assert.Equal(t, uint64(1), countRows(t, conn, "mint_records"))
	assert.Equal(t, uint64(1), countRows(t, conn, "burn_records"))
	assert.Equal(t, uint64(1), countRows(t, conn, "swap_records"))

	var id string
	var amountUSD decimal.Decimal
	row := conn.QueryRow(ctx, "SELECT id, amount_usd FROM swap_records WHERE tx_hash = ?", "0xghi")
	require.NoError(t, row.Scan(&id, &amountUSD))
	assert.Equal(t, "0xghi-0", id)
	assert.True(t, amountUSD.Equal(decimal.RequireFromString("1")))
}

func TestRecordArchive_AutoFlushOnBatchSize(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	archive := NewRecordArchive(conn, 2)

	for i := 0; i < 2; i++ {
		swap := &domain.Swap{
			ID:          "0xaaa-" + string(rune('0'+i)),
			Transaction: "0xaaa",
			Pair:        "0xpair",
			AmountUSD:   decimal.RequireFromString("3"),
			Timestamp:   1700000000,
		}
		require.NoError(t, archive.ArchiveSwap(ctx, swap))
	}

	assert.Equal(t, uint64(2), countRows(t, conn, "swap_records"))
}

func countRows(t *testing.T, conn *Conn, table string) uint64 {
	t.Helper()
	var count uint64
	row := conn.QueryRow(context.Background(), "SELECT count() FROM "+table)
	require.NoError(t, row.Scan(&count))
	return count
}
