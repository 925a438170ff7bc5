package indexer

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"bsc-pair-indexer/internal/amounts"
	"bsc-pair-indexer/internal/domain"
)

// HandleSync recomputes a pair's reserves, prices and liquidity valuations
// and rolls the delta into token and factory aggregates. Step order matters:
// the pair's previous contribution is removed from the aggregates before the
// new one is added, and the tracked counters are only unwound when they were
// actually counted (both per-side USD valuations strictly positive).
func (ix *Indexer) HandleSync(ctx context.Context, ev *domain.SyncEvent) (Outcome, error) {
	pair, err := ix.stores.Pairs.Get(ctx, ev.PairAddress)
	if err != nil {
		if notFound(err) {
			return ix.skip("sync", EntityPair, ev.PairAddress), nil
		}
		return Outcome{}, fmt.Errorf("load pair %s: %w", ev.PairAddress, err)
	}
	token0, token1, err := ix.loadPairTokens(ctx, pair)
	if err != nil {
		return Outcome{}, err
	}
	if token0 == nil {
		return ix.skip("sync", EntityToken, pair.Token0), nil
	}
	if token1 == nil {
		return ix.skip("sync", EntityToken, pair.Token1), nil
	}
	factory, err := ix.stores.Factory.Get(ctx)
	if err != nil {
		if notFound(err) {
			return ix.skip("sync", EntityFactory, "singleton"), nil
		}
		return Outcome{}, fmt.Errorf("load factory: %w", err)
	}
	bundle, err := ix.stores.Bundle.Get(ctx)
	if err != nil {
		if notFound(err) {
			return ix.skip("sync", EntityBundle, "singleton"), nil
		}
		return Outcome{}, fmt.Errorf("load bundle: %w", err)
	}

	rate, err := ix.oracle.BNBPriceUSD(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("refresh bnb price: %w", err)
	}
	bundle.BNBPrice = rate
	if err := ix.stores.Bundle.Save(ctx, bundle); err != nil {
		return Outcome{}, fmt.Errorf("save bundle: %w", err)
	}

	// Remove the pair's previous contribution before recomputing.
	factory.TotalLiquidityBNB = factory.TotalLiquidityBNB.Sub(pair.TrackedReserveBNB)
	factory.TotalLiquidityUSD = factory.TotalLiquidityUSD.Sub(pair.TrackedReserveUSD)

	token0.TotalLiquidity = token0.TotalLiquidity.Sub(pair.Reserve0)
	token1.TotalLiquidity = token1.TotalLiquidity.Sub(pair.Reserve1)

	// The tracked counters were only bumped when both sides were priced, so
	// only unwind them under the same condition.
	wasTracked := pair.Reserve0LiquidityUSD.IsPositive() && pair.Reserve1LiquidityUSD.IsPositive()
	if wasTracked {
		token0.TrackedTotalLiquidity = token0.TrackedTotalLiquidity.Sub(pair.Reserve0)
		token0.TrackedTotalLiquidityUSD = token0.TrackedTotalLiquidityUSD.Sub(pair.Reserve0LiquidityUSD)
		token1.TrackedTotalLiquidity = token1.TrackedTotalLiquidity.Sub(pair.Reserve1)
		token1.TrackedTotalLiquidityUSD = token1.TrackedTotalLiquidityUSD.Sub(pair.Reserve1LiquidityUSD)
	}

	pair.Reserve0 = amounts.ConvertTokenToDecimal(ev.Reserve0, token0.Decimals)
	pair.Reserve1 = amounts.ConvertTokenToDecimal(ev.Reserve1, token1.Decimals)
	token0.TotalLiquidity = token0.TotalLiquidity.Add(pair.Reserve0)
	token1.TotalLiquidity = token1.TotalLiquidity.Add(pair.Reserve1)

	if pair.Reserve1.IsZero() {
		pair.Token0Price = decimal.Zero
	} else {
		pair.Token0Price = pair.Reserve0.Div(pair.Reserve1)
	}
	if pair.Reserve0.IsZero() {
		pair.Token1Price = decimal.Zero
	} else {
		pair.Token1Price = pair.Reserve1.Div(pair.Reserve0)
	}

	prices, err := ix.oracle.DeriveUSDPrice(ctx, pair.Reserve0, pair.Reserve1, token0, token1)
	if err != nil {
		return Outcome{}, fmt.Errorf("derive prices for pair %s: %w", pair.Address, err)
	}
	derivedBNB0 := bnbPrice(prices.Token0USD, rate)
	derivedBNB1 := bnbPrice(prices.Token1USD, rate)

	if prices.Token0USD.IsPositive() && prices.Token1USD.IsPositive() {
		pair.Reserve0LiquidityUSD = pair.Reserve0.Mul(prices.Token0USD)
		pair.Reserve1LiquidityUSD = pair.Reserve1.Mul(prices.Token1USD)
		token0.TrackedTotalLiquidity = token0.TrackedTotalLiquidity.Add(pair.Reserve0)
		token0.TrackedTotalLiquidityUSD = token0.TrackedTotalLiquidityUSD.Add(pair.Reserve0LiquidityUSD)
		token1.TrackedTotalLiquidity = token1.TrackedTotalLiquidity.Add(pair.Reserve1)
		token1.TrackedTotalLiquidityUSD = token1.TrackedTotalLiquidityUSD.Add(pair.Reserve1LiquidityUSD)
		token0.DerivedUSD = prices.Token0USD
		token0.DerivedBNB = derivedBNB0
		token1.DerivedUSD = prices.Token1USD
		token1.DerivedBNB = derivedBNB1
	} else {
		pair.Reserve0LiquidityUSD = decimal.Zero
		pair.Reserve1LiquidityUSD = decimal.Zero
	}

	trackedUSD, err := ix.oracle.TrackedLiquidityUSD(ctx, pair.Reserve0, token0, pair.Reserve1, token1)
	if err != nil {
		return Outcome{}, fmt.Errorf("tracked liquidity for pair %s: %w", pair.Address, err)
	}
	trackedBNB := decimal.Zero
	if !rate.IsZero() {
		trackedBNB = trackedUSD.Div(rate)
	}
	pair.TrackedReserveUSD = trackedUSD
	pair.TrackedReserveBNB = trackedBNB
	pair.ReserveUSD = pair.Reserve0.Mul(prices.Token0USD).Add(pair.Reserve1.Mul(prices.Token1USD))
	if rate.IsZero() {
		pair.ReserveBNB = decimal.Zero
	} else {
		pair.ReserveBNB = pair.ReserveUSD.Div(rate)
	}

	factory.TotalLiquidityUSD = factory.TotalLiquidityUSD.Add(trackedUSD)
	factory.TotalLiquidityBNB = factory.TotalLiquidityBNB.Add(trackedBNB)

	if err := ix.saveEntities(ctx, token0, token1, pair, factory); err != nil {
		return Outcome{}, err
	}
	return OK(), nil
}

func bnbPrice(usd, rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return decimal.Zero
	}
	return usd.Div(rate)
}
