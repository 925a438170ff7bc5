package domain

import "github.com/shopspring/decimal"

// Token represents an ERC20-style token shared by every pair that contains it.
// Corresponds to the tokens table in PostgreSQL.
type Token struct {
	Address  string // token contract address (lowercase hex)
	Symbol   string
	Name     string
	Decimals int32 // declared decimal count, used for raw amount conversion

	TotalLiquidity decimal.Decimal // sum of this token's reserves across all pairs

	// Tracked counters only include reserves of pairs whose both sides are
	// currently priced.
	TrackedTotalLiquidity    decimal.Decimal
	TrackedTotalLiquidityUSD decimal.Decimal

	DerivedUSD decimal.Decimal // instantaneous USD price, zero when unpriced
	DerivedBNB decimal.Decimal // instantaneous reference-currency price

	TradeVolume    decimal.Decimal // cumulative in+out trade volume, token units
	TradeVolumeUSD decimal.Decimal // cumulative tracked trade volume, USD

	TotalTransactions int64
}
