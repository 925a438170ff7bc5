package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"bsc-pair-indexer/internal/domain"
	"bsc-pair-indexer/internal/storage"
)

// QuoteConfig describes how prices are derived from on-ledger pairs.
type QuoteConfig struct {
	// WBNB is the wrapped reference-currency token address.
	WBNB string

	// Stables are tokens pinned to 1.0 USD.
	Stables []string

	// BNBStablePair is the pair whose reserve ratio defines the BNB/USD rate.
	BNBStablePair string

	// RoutePairs maps a token address to the pair used to price it against
	// WBNB or a stable when the token is not paired with one directly.
	RoutePairs map[string]string
}

// QuoteOracle derives prices from the current reserves of designated quote
// pairs: stables are 1.0 USD, WBNB follows the configured WBNB/stable pair,
// and any other whitelisted token prices through its route pair. Tokens
// outside the whitelist derive zero.
type QuoteOracle struct {
	pairs   storage.PairStore
	cfg     QuoteConfig
	stables map[string]struct{}
}

// NewQuoteOracle creates a reserve-ratio price oracle.
func NewQuoteOracle(pairs storage.PairStore, cfg QuoteConfig) *QuoteOracle {
	stables := make(map[string]struct{}, len(cfg.Stables))
	for _, s := range cfg.Stables {
		stables[s] = struct{}{}
	}
	return &QuoteOracle{pairs: pairs, cfg: cfg, stables: stables}
}

// Compile-time interface check.
var _ Oracle = (*QuoteOracle)(nil)

// BNBPriceUSD reads the configured WBNB/stable pair and returns the stable
// reserve per WBNB reserve. Zero when the pair is absent or empty.
func (o *QuoteOracle) BNBPriceUSD(ctx context.Context) (decimal.Decimal, error) {
	pair, err := o.pairs.Get(ctx, o.cfg.BNBStablePair)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("load bnb quote pair: %w", err)
	}

	switch o.cfg.WBNB {
	case pair.Token0:
		if pair.Reserve0.IsPositive() {
			return pair.Reserve1.Div(pair.Reserve0), nil
		}
	case pair.Token1:
		if pair.Reserve1.IsPositive() {
			return pair.Reserve0.Div(pair.Reserve1), nil
		}
	}
	return decimal.Zero, nil
}

// DeriveUSDPrice derives both sides of the pair being synced. The fresh
// reserves are used when a side prices directly against its counterpart;
// otherwise the token's route pair supplies the ratio.
func (o *QuoteOracle) DeriveUSDPrice(ctx context.Context, reserve0, reserve1 decimal.Decimal, token0, token1 *domain.Token) (DerivedPrices, error) {
	p0, err := o.priceUSD(ctx, token0.Address, token1.Address, reserve0, reserve1)
	if err != nil {
		return DerivedPrices{}, err
	}
	p1, err := o.priceUSD(ctx, token1.Address, token0.Address, reserve1, reserve0)
	if err != nil {
		return DerivedPrices{}, err
	}
	return DerivedPrices{Token0USD: p0, Token1USD: p1}, nil
}

// TrackedVolumeUSD values a trade using the tokens' stored derived prices.
func (o *QuoteOracle) TrackedVolumeUSD(_ context.Context, amount0Total decimal.Decimal, token0 *domain.Token, amount1Total decimal.Decimal, token1 *domain.Token) (decimal.Decimal, error) {
	w0 := o.whitelisted(token0.Address) && token0.DerivedUSD.IsPositive()
	w1 := o.whitelisted(token1.Address) && token1.DerivedUSD.IsPositive()
	return trackedVolume(amount0Total, token0.DerivedUSD, w0, amount1Total, token1.DerivedUSD, w1), nil
}

// TrackedLiquidityUSD values reserves using the tokens' stored derived prices.
func (o *QuoteOracle) TrackedLiquidityUSD(_ context.Context, reserve0 decimal.Decimal, token0 *domain.Token, reserve1 decimal.Decimal, token1 *domain.Token) (decimal.Decimal, error) {
	w0 := o.whitelisted(token0.Address) && token0.DerivedUSD.IsPositive()
	w1 := o.whitelisted(token1.Address) && token1.DerivedUSD.IsPositive()
	return trackedLiquidity(reserve0, token0.DerivedUSD, w0, reserve1, token1.DerivedUSD, w1), nil
}

// priceUSD derives one token's USD price. counterAddr plus the fresh in-pair
// reserves take priority over the configured route pair.
func (o *QuoteOracle) priceUSD(ctx context.Context, addr, counterAddr string, selfReserve, counterReserve decimal.Decimal) (decimal.Decimal, error) {
	if o.stable(addr) {
		return decimal.NewFromInt(1), nil
	}
	if addr == o.cfg.WBNB {
		return o.BNBPriceUSD(ctx)
	}

	// Direct pairing against a quote token uses the reserves being synced.
	if counterPrice, ok, err := o.quotePrice(ctx, counterAddr); err != nil {
		return decimal.Zero, err
	} else if ok && selfReserve.IsPositive() && counterPrice.IsPositive() {
		return counterReserve.Div(selfReserve).Mul(counterPrice), nil
	}

	return o.routePrice(ctx, addr)
}

// routePrice prices a token through its configured route pair's stored
// reserves.
func (o *QuoteOracle) routePrice(ctx context.Context, addr string) (decimal.Decimal, error) {
	routeAddr, ok := o.cfg.RoutePairs[addr]
	if !ok {
		return decimal.Zero, nil
	}

	pair, err := o.pairs.Get(ctx, routeAddr)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("load route pair %s: %w", routeAddr, err)
	}

	selfReserve, counterReserve := pair.Reserve0, pair.Reserve1
	counterAddr := pair.Token1
	if pair.Token1 == addr {
		selfReserve, counterReserve = pair.Reserve1, pair.Reserve0
		counterAddr = pair.Token0
	} else if pair.Token0 != addr {
		return decimal.Zero, nil
	}

	counterPrice, ok, err := o.quotePrice(ctx, counterAddr)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok || !selfReserve.IsPositive() || !counterPrice.IsPositive() {
		return decimal.Zero, nil
	}
	return counterReserve.Div(selfReserve).Mul(counterPrice), nil
}

// quotePrice returns the USD price of a quote-side token (stable or WBNB).
// ok is false for any other token.
func (o *QuoteOracle) quotePrice(ctx context.Context, addr string) (decimal.Decimal, bool, error) {
	if o.stable(addr) {
		return decimal.NewFromInt(1), true, nil
	}
	if addr == o.cfg.WBNB {
		p, err := o.BNBPriceUSD(ctx)
		return p, true, err
	}
	return decimal.Zero, false, nil
}

func (o *QuoteOracle) stable(addr string) bool {
	_, ok := o.stables[addr]
	return ok
}

// whitelisted reports whether a token participates in tracked aggregates.
func (o *QuoteOracle) whitelisted(addr string) bool {
	if o.stable(addr) || addr == o.cfg.WBNB {
		return true
	}
	_, ok := o.cfg.RoutePairs[addr]
	return ok
}
