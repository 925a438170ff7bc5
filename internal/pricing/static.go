package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"bsc-pair-indexer/internal/domain"
)

// StaticOracle prices tokens from a fixed table. Used by tests and by replay
// runs that pin a historical rate.
type StaticOracle struct {
	prices   map[string]decimal.Decimal // token address -> USD price
	bnbPrice decimal.Decimal
}

// NewStaticOracle creates an oracle with no priced tokens and a zero rate.
func NewStaticOracle() *StaticOracle {
	return &StaticOracle{prices: make(map[string]decimal.Decimal)}
}

// Compile-time interface check.
var _ Oracle = (*StaticOracle)(nil)

// SetPrice pins a token's USD price. A zero price marks it unpriced.
func (o *StaticOracle) SetPrice(address string, usd decimal.Decimal) {
	o.prices[address] = usd
}

// SetBNBPrice pins the reference-currency-to-USD rate.
func (o *StaticOracle) SetBNBPrice(usd decimal.Decimal) {
	o.bnbPrice = usd
}

// BNBPriceUSD returns the pinned rate.
func (o *StaticOracle) BNBPriceUSD(_ context.Context) (decimal.Decimal, error) {
	return o.bnbPrice, nil
}

// DeriveUSDPrice returns the pinned prices for both tokens.
func (o *StaticOracle) DeriveUSDPrice(_ context.Context, _, _ decimal.Decimal, token0, token1 *domain.Token) (DerivedPrices, error) {
	return DerivedPrices{
		Token0USD: o.prices[token0.Address],
		Token1USD: o.prices[token1.Address],
	}, nil
}

// TrackedVolumeUSD values a trade using the pinned prices.
func (o *StaticOracle) TrackedVolumeUSD(_ context.Context, amount0Total decimal.Decimal, token0 *domain.Token, amount1Total decimal.Decimal, token1 *domain.Token) (decimal.Decimal, error) {
	p0, p1 := o.prices[token0.Address], o.prices[token1.Address]
	return trackedVolume(amount0Total, p0, p0.IsPositive(), amount1Total, p1, p1.IsPositive()), nil
}

// TrackedLiquidityUSD values reserves using the pinned prices.
func (o *StaticOracle) TrackedLiquidityUSD(_ context.Context, reserve0 decimal.Decimal, token0 *domain.Token, reserve1 decimal.Decimal, token1 *domain.Token) (decimal.Decimal, error) {
	p0, p1 := o.prices[token0.Address], o.prices[token1.Address]
	return trackedLiquidity(reserve0, p0, p0.IsPositive(), reserve1, p1, p1.IsPositive()), nil
}
