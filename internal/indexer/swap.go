package indexer

import (
	"context"
	"fmt"

	"bsc-pair-indexer/internal/amounts"
	"bsc-pair-indexer/internal/domain"
)

// HandleSwap records a logical trade and rolls its volume into the pair,
// token, factory and bucket aggregates. Unlike mints and burns a swap is a
// single raw event; no assembly is needed and the record is always fresh.
func (ix *Indexer) HandleSwap(ctx context.Context, ev *domain.SwapRawEvent) (Outcome, error) {
	pair, err := ix.stores.Pairs.Get(ctx, ev.PairAddress)
	if err != nil {
		if notFound(err) {
			return ix.skip("swap", EntityPair, ev.PairAddress), nil
		}
		return Outcome{}, fmt.Errorf("load pair %s: %w", ev.PairAddress, err)
	}
	token0, token1, err := ix.loadPairTokens(ctx, pair)
	if err != nil {
		return Outcome{}, err
	}
	if token0 == nil {
		return ix.skip("swap", EntityToken, pair.Token0), nil
	}
	if token1 == nil {
		return ix.skip("swap", EntityToken, pair.Token1), nil
	}
	factory, err := ix.stores.Factory.Get(ctx)
	if err != nil {
		if notFound(err) {
			return ix.skip("swap", EntityFactory, "singleton"), nil
		}
		return Outcome{}, fmt.Errorf("load factory: %w", err)
	}
	// The trade itself is priced off the tokens' stored derived prices, but
	// a missing bundle means pricing never ran and the event is not safe to
	// fold into the aggregates.
	if _, err := ix.stores.Bundle.Get(ctx); err != nil {
		if notFound(err) {
			return ix.skip("swap", EntityBundle, "singleton"), nil
		}
		return Outcome{}, fmt.Errorf("load bundle: %w", err)
	}

	amount0In := amounts.ConvertTokenToDecimal(ev.Amount0In, token0.Decimals)
	amount1In := amounts.ConvertTokenToDecimal(ev.Amount1In, token1.Decimals)
	amount0Out := amounts.ConvertTokenToDecimal(ev.Amount0Out, token0.Decimals)
	amount1Out := amounts.ConvertTokenToDecimal(ev.Amount1Out, token1.Decimals)

	amount0Total := amount0In.Add(amount0Out)
	amount1Total := amount1In.Add(amount1Out)

	trackedUSD, err := ix.oracle.TrackedVolumeUSD(ctx, amount0Total, token0, amount1Total, token1)
	if err != nil {
		return Outcome{}, fmt.Errorf("tracked volume for pair %s: %w", pair.Address, err)
	}

	token0.TradeVolume = token0.TradeVolume.Add(amount0Total)
	token0.TradeVolumeUSD = token0.TradeVolumeUSD.Add(trackedUSD)
	token0.TotalTransactions++
	token1.TradeVolume = token1.TradeVolume.Add(amount1Total)
	token1.TradeVolumeUSD = token1.TradeVolumeUSD.Add(trackedUSD)
	token1.TotalTransactions++

	pair.VolumeUSD = pair.VolumeUSD.Add(trackedUSD)
	pair.VolumeToken0 = pair.VolumeToken0.Add(amount0Total)
	pair.VolumeToken1 = pair.VolumeToken1.Add(amount1Total)
	pair.TotalTransactions++

	factory.TotalVolumeUSD = factory.TotalVolumeUSD.Add(trackedUSD)
	factory.TotalTransactions++

	if err := ix.saveEntities(ctx, token0, token1, pair, factory); err != nil {
		return Outcome{}, err
	}

	tx, err := ix.stores.Transactions.Get(ctx, ev.TxHash)
	if err != nil {
		if !notFound(err) {
			return Outcome{}, fmt.Errorf("load transaction %s: %w", ev.TxHash, err)
		}
		tx = domain.NewTransaction(ev.TxHash, ev.Block, ev.Timestamp)
	}

	swap := &domain.Swap{
		ID:          tx.NextSwapID(),
		Transaction: tx.Hash,
		Pair:        pair.Address,
		Sender:      ev.Sender,
		From:        ev.TxFrom,
		To:          ev.To,
		Amount0In:   amount0In,
		Amount1In:   amount1In,
		Amount0Out:  amount0Out,
		Amount1Out:  amount1Out,
		AmountUSD:   trackedUSD,
		LogIndex:    ev.LogIndex,
		Timestamp:   tx.Timestamp,
	}
	if err := ix.stores.Swaps.Save(ctx, swap); err != nil {
		return Outcome{}, fmt.Errorf("save swap %s: %w", swap.ID, err)
	}
	tx.AppendSwap(swap.ID)
	if err := ix.stores.Transactions.Save(ctx, tx); err != nil {
		return Outcome{}, fmt.Errorf("save transaction %s: %w", tx.Hash, err)
	}
	ix.archiveSwap(ctx, swap)

	// Refresh the rollups, then fold this trade's volume into each.
	pairDay, err := ix.updatePairDayData(ctx, ev.Timestamp, pair)
	if err != nil {
		return Outcome{}, err
	}
	pairHour, err := ix.updatePairHourData(ctx, ev.Timestamp, pair)
	if err != nil {
		return Outcome{}, err
	}
	factoryDay, err := ix.updateFactoryDayData(ctx, ev.Timestamp, factory)
	if err != nil {
		return Outcome{}, err
	}
	token0Day, err := ix.updateTokenDayData(ctx, ev.Timestamp, token0)
	if err != nil {
		return Outcome{}, err
	}
	token1Day, err := ix.updateTokenDayData(ctx, ev.Timestamp, token1)
	if err != nil {
		return Outcome{}, err
	}

	factoryDay.DailyVolumeUSD = factoryDay.DailyVolumeUSD.Add(trackedUSD)
	if err := ix.stores.FactoryDays.Save(ctx, factoryDay); err != nil {
		return Outcome{}, fmt.Errorf("save factory day %s: %w", factoryDay.ID, err)
	}

	pairDay.DailyVolumeToken0 = pairDay.DailyVolumeToken0.Add(amount0Total)
	pairDay.DailyVolumeToken1 = pairDay.DailyVolumeToken1.Add(amount1Total)
	pairDay.DailyVolumeUSD = pairDay.DailyVolumeUSD.Add(trackedUSD)
	if err := ix.stores.PairDays.Save(ctx, pairDay); err != nil {
		return Outcome{}, fmt.Errorf("save pair day %s: %w", pairDay.ID, err)
	}

	pairHour.HourlyVolumeToken0 = pairHour.HourlyVolumeToken0.Add(amount0Total)
	pairHour.HourlyVolumeToken1 = pairHour.HourlyVolumeToken1.Add(amount1Total)
	pairHour.HourlyVolumeUSD = pairHour.HourlyVolumeUSD.Add(trackedUSD)
	if err := ix.stores.PairHours.Save(ctx, pairHour); err != nil {
		return Outcome{}, fmt.Errorf("save pair hour %s: %w", pairHour.ID, err)
	}

	token0Day.DailyVolumeToken = token0Day.DailyVolumeToken.Add(amount0Total)
	token0Day.DailyVolumeUSD = token0Day.DailyVolumeUSD.Add(amount0Total.Mul(token0.DerivedUSD))
	if err := ix.stores.TokenDays.Save(ctx, token0Day); err != nil {
		return Outcome{}, fmt.Errorf("save token day %s: %w", token0Day.ID, err)
	}

	token1Day.DailyVolumeToken = token1Day.DailyVolumeToken.Add(amount1Total)
	token1Day.DailyVolumeUSD = token1Day.DailyVolumeUSD.Add(amount1Total.Mul(token1.DerivedUSD))
	if err := ix.stores.TokenDays.Save(ctx, token1Day); err != nil {
		return Outcome{}, fmt.Errorf("save token day %s: %w", token1Day.ID, err)
	}

	return OK(), nil
}
