package domain

import "github.com/shopspring/decimal"

// Factory is the exchange-wide aggregate singleton. Exactly one instance
// exists; it is keyed by the factory contract address.
type Factory struct {
	Address string

	TotalLiquidityUSD decimal.Decimal // tracked liquidity across all pairs, USD
	TotalLiquidityBNB decimal.Decimal // tracked liquidity, reference currency
	TotalVolumeUSD    decimal.Decimal // tracked volume across all pairs, USD

	TotalTransactions int64
	PairCount         int64
}

// Bundle holds the current reference-currency-to-USD conversion rate.
// Singleton, refreshed on every Sync event.
type Bundle struct {
	BNBPrice decimal.Decimal // USD price of one BNB, zero when unknown
}
