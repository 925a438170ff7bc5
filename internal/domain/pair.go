package domain

import "github.com/shopspring/decimal"

// Pair represents an AMM pair contract and its current reconstructed state.
// Corresponds to the pairs table in PostgreSQL. Mutated by every handler,
// never deleted.
type Pair struct {
	Address string // pair contract address (lowercase hex)
	Token0  string // token0 contract address
	Token1  string // token1 contract address

	Reserve0 decimal.Decimal // current token0 reserve, decimal units
	Reserve1 decimal.Decimal // current token1 reserve, decimal units

	Token0Price decimal.Decimal // reserve0/reserve1, zero when reserve1 is zero
	Token1Price decimal.Decimal // reserve1/reserve0, zero when reserve0 is zero

	// Per-side USD valuations. Zero while either token is unpriced; the sync
	// handler relies on this to avoid double-subtracting tracked liquidity.
	Reserve0LiquidityUSD decimal.Decimal
	Reserve1LiquidityUSD decimal.Decimal

	TrackedReserveUSD decimal.Decimal // liquidity eligible for global totals, USD
	TrackedReserveBNB decimal.Decimal // same, reference currency
	ReserveUSD        decimal.Decimal // unfiltered reserve0*p0 + reserve1*p1, USD
	ReserveBNB        decimal.Decimal // unfiltered, reference currency

	VolumeToken0 decimal.Decimal // cumulative token0 trade volume
	VolumeToken1 decimal.Decimal // cumulative token1 trade volume
	VolumeUSD    decimal.Decimal // cumulative tracked trade volume, USD

	TotalTransactions int64 // cumulative event count (mint+burn+swap)

	CreatedAtBlock     int64 // block the pair was registered at
	CreatedAtTimestamp int64 // Unix timestamp of registration
}
