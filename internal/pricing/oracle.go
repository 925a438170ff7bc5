// Package pricing derives USD and reference-currency prices for tokens from
// pair reserves, and applies the eligibility rules that decide how much of a
// trade or a pool counts toward tracked (global) aggregates.
package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"bsc-pair-indexer/internal/domain"
)

// DerivedPrices carries the instantaneous USD price of both sides of a pair.
// A zero price means the token is currently unpriced.
type DerivedPrices struct {
	Token0USD decimal.Decimal
	Token1USD decimal.Decimal
}

// Oracle is the price-derivation collaborator consumed by the indexer core.
type Oracle interface {
	// BNBPriceUSD returns the current reference-currency-to-USD rate.
	// Zero when the rate cannot be determined.
	BNBPriceUSD(ctx context.Context) (decimal.Decimal, error)

	// DeriveUSDPrice derives both tokens' USD prices from the pair's fresh
	// reserves. Either side may come back zero (unpriced).
	DeriveUSDPrice(ctx context.Context, reserve0, reserve1 decimal.Decimal, token0, token1 *domain.Token) (DerivedPrices, error)

	// TrackedVolumeUSD values a trade for global volume aggregates, applying
	// the whitelist eligibility filter.
	TrackedVolumeUSD(ctx context.Context, amount0Total decimal.Decimal, token0 *domain.Token, amount1Total decimal.Decimal, token1 *domain.Token) (decimal.Decimal, error)

	// TrackedLiquidityUSD values a pool's reserves for global liquidity
	// aggregates, applying the whitelist eligibility filter.
	TrackedLiquidityUSD(ctx context.Context, reserve0 decimal.Decimal, token0 *domain.Token, reserve1 decimal.Decimal, token1 *domain.Token) (decimal.Decimal, error)
}

var two = decimal.NewFromInt(2)

// trackedVolume applies the shared volume eligibility rule: both sides priced
// take the average of both legs, a single priced side counts in full, and a
// trade between two unpriced tokens contributes nothing.
func trackedVolume(amount0 decimal.Decimal, price0 decimal.Decimal, priced0 bool, amount1 decimal.Decimal, price1 decimal.Decimal, priced1 bool) decimal.Decimal {
	switch {
	case priced0 && priced1:
		return amount0.Mul(price0).Add(amount1.Mul(price1)).Div(two)
	case priced0:
		return amount0.Mul(price0)
	case priced1:
		return amount1.Mul(price1)
	default:
		return decimal.Zero
	}
}

// trackedLiquidity applies the shared liquidity eligibility rule: both sides
// priced sum up, a single priced side is doubled, neither counts zero.
func trackedLiquidity(reserve0 decimal.Decimal, price0 decimal.Decimal, priced0 bool, reserve1 decimal.Decimal, price1 decimal.Decimal, priced1 bool) decimal.Decimal {
	switch {
	case priced0 && priced1:
		return reserve0.Mul(price0).Add(reserve1.Mul(price1))
	case priced0:
		return reserve0.Mul(price0).Mul(two)
	case priced1:
		return reserve1.Mul(price1).Mul(two)
	default:
		return decimal.Zero
	}
}
