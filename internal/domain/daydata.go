package domain

import "github.com/shopspring/decimal"

// Time bucket lengths in seconds.
const (
	BucketHour = 3600
	BucketDay  = 86400
)

// PairHourData is the hourly rollup for a single pair. Keyed by
// <pairAddress>-<hourIndex> where hourIndex = timestamp/3600. Created lazily
// on the first event of the hour, mutated until the hour elapses, never
// deleted.
type PairHourData struct {
	ID            string
	HourStartUnix int64  // hourIndex * 3600
	Pair          string // pair address

	// Snapshot of the pair's post-update state, refreshed on every touch.
	Reserve0   decimal.Decimal
	Reserve1   decimal.Decimal
	ReserveUSD decimal.Decimal

	HourlyVolumeToken0 decimal.Decimal
	HourlyVolumeToken1 decimal.Decimal
	HourlyVolumeUSD    decimal.Decimal
	HourlyTxns         int64
}

// PairDayData is the daily rollup for a single pair, keyed by
// <pairAddress>-<dayIndex>.
type PairDayData struct {
	ID          string
	Date        int64 // dayIndex * 86400
	PairAddress string
	Token0      string // copied from the pair at creation time only
	Token1      string

	Reserve0   decimal.Decimal
	Reserve1   decimal.Decimal
	ReserveUSD decimal.Decimal

	DailyVolumeToken0 decimal.Decimal
	DailyVolumeToken1 decimal.Decimal
	DailyVolumeUSD    decimal.Decimal
	DailyTxns         int64
}

// TokenDayData is the daily rollup for a single token, keyed by
// <tokenAddress>-<dayIndex>.
type TokenDayData struct {
	ID    string
	Date  int64
	Token string

	PriceUSD            decimal.Decimal // token's derived USD price, refreshed on touch
	TotalLiquidityToken decimal.Decimal
	TotalLiquidityUSD   decimal.Decimal

	DailyVolumeToken decimal.Decimal
	DailyVolumeUSD   decimal.Decimal
	DailyTxns        int64
}

// FactoryDayData is the exchange-wide daily rollup, keyed by the day index.
type FactoryDayData struct {
	ID   string // decimal dayIndex
	Date int64

	DailyVolumeUSD    decimal.Decimal
	TotalVolumeUSD    decimal.Decimal // factory cumulative volume at last touch
	TotalLiquidityUSD decimal.Decimal
	TotalTransactions int64
}
