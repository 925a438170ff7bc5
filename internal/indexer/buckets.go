package indexer

import (
	"context"
	"fmt"
	"strconv"

	"bsc-pair-indexer/internal/domain"
)

// The bucket updaters lazily create the row for the event's period, refresh
// its snapshot fields from the owning entity's post-update state, and bump
// its transaction counter. Volume deltas are folded in by the swap handler
// after the refresh, never here.

func bucketKey(scope string, index int64) string {
	return fmt.Sprintf("%s-%d", scope, index)
}

func (ix *Indexer) updatePairHourData(ctx context.Context, ts int64, pair *domain.Pair) (*domain.PairHourData, error) {
	index := ts / domain.BucketHour
	id := bucketKey(pair.Address, index)
	row, err := ix.stores.PairHours.Get(ctx, id)
	if err != nil {
		if !notFound(err) {
			return nil, fmt.Errorf("load pair hour %s: %w", id, err)
		}
		row = &domain.PairHourData{
			ID:            id,
			HourStartUnix: index * domain.BucketHour,
			Pair:          pair.Address,
		}
	}
	row.Reserve0 = pair.Reserve0
	row.Reserve1 = pair.Reserve1
	row.ReserveUSD = pair.Reserve0LiquidityUSD.Add(pair.Reserve1LiquidityUSD)
	row.HourlyTxns++
	if err := ix.stores.PairHours.Save(ctx, row); err != nil {
		return nil, fmt.Errorf("save pair hour %s: %w", id, err)
	}
	return row, nil
}

func (ix *Indexer) updatePairDayData(ctx context.Context, ts int64, pair *domain.Pair) (*domain.PairDayData, error) {
	index := ts / domain.BucketDay
	id := bucketKey(pair.Address, index)
	row, err := ix.stores.PairDays.Get(ctx, id)
	if err != nil {
		if !notFound(err) {
			return nil, fmt.Errorf("load pair day %s: %w", id, err)
		}
		row = &domain.PairDayData{
			ID:          id,
			Date:        index * domain.BucketDay,
			PairAddress: pair.Address,
			Token0:      pair.Token0,
			Token1:      pair.Token1,
		}
	}
	row.Reserve0 = pair.Reserve0
	row.Reserve1 = pair.Reserve1
	row.ReserveUSD = pair.Reserve0LiquidityUSD.Add(pair.Reserve1LiquidityUSD)
	row.DailyTxns++
	if err := ix.stores.PairDays.Save(ctx, row); err != nil {
		return nil, fmt.Errorf("save pair day %s: %w", id, err)
	}
	return row, nil
}

func (ix *Indexer) updateTokenDayData(ctx context.Context, ts int64, token *domain.Token) (*domain.TokenDayData, error) {
	index := ts / domain.BucketDay
	id := bucketKey(token.Address, index)
	row, err := ix.stores.TokenDays.Get(ctx, id)
	if err != nil {
		if !notFound(err) {
			return nil, fmt.Errorf("load token day %s: %w", id, err)
		}
		row = &domain.TokenDayData{
			ID:    id,
			Date:  index * domain.BucketDay,
			Token: token.Address,
		}
	}
	row.PriceUSD = token.DerivedUSD
	row.TotalLiquidityToken = token.TotalLiquidity
	row.TotalLiquidityUSD = token.TrackedTotalLiquidityUSD
	row.DailyTxns++
	if err := ix.stores.TokenDays.Save(ctx, row); err != nil {
		return nil, fmt.Errorf("save token day %s: %w", id, err)
	}
	return row, nil
}

func (ix *Indexer) updateFactoryDayData(ctx context.Context, ts int64, factory *domain.Factory) (*domain.FactoryDayData, error) {
	index := ts / domain.BucketDay
	id := strconv.FormatInt(index, 10)
	row, err := ix.stores.FactoryDays.Get(ctx, id)
	if err != nil {
		if !notFound(err) {
			return nil, fmt.Errorf("load factory day %s: %w", id, err)
		}
		row = &domain.FactoryDayData{
			ID:   id,
			Date: index * domain.BucketDay,
		}
	}
	row.TotalVolumeUSD = factory.TotalVolumeUSD
	row.TotalLiquidityUSD = factory.TotalLiquidityUSD
	row.TotalTransactions = factory.TotalTransactions
	if err := ix.stores.FactoryDays.Save(ctx, row); err != nil {
		return nil, fmt.Errorf("save factory day %s: %w", id, err)
	}
	return row, nil
}
