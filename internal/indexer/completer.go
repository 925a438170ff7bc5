package indexer

import (
	"context"
	"fmt"

	"bsc-pair-indexer/internal/amounts"
	"bsc-pair-indexer/internal/domain"
)

// HandleMint finalizes the pending logical mint opened by the mint-side
// transfer: it writes the sender and converted token amounts onto the record,
// bumps transaction counters, and refreshes the time buckets.
func (ix *Indexer) HandleMint(ctx context.Context, ev *domain.PairMintEvent) (Outcome, error) {
	tx, err := ix.stores.Transactions.Get(ctx, ev.TxHash)
	if err != nil {
		if notFound(err) {
			return ix.skip("mint", EntityTransaction, ev.TxHash), nil
		}
		return Outcome{}, fmt.Errorf("load transaction %s: %w", ev.TxHash, err)
	}

	lastID, ok := tx.LastMint()
	if !ok {
		return ix.skip("mint", EntityMint, ev.TxHash), nil
	}
	mint, err := ix.stores.Mints.Get(ctx, lastID)
	if err != nil {
		if notFound(err) {
			return ix.skip("mint", EntityMint, lastID), nil
		}
		return Outcome{}, fmt.Errorf("load mint %s: %w", lastID, err)
	}

	pair, err := ix.stores.Pairs.Get(ctx, ev.PairAddress)
	if err != nil {
		if notFound(err) {
			return ix.skip("mint", EntityPair, ev.PairAddress), nil
		}
		return Outcome{}, fmt.Errorf("load pair %s: %w", ev.PairAddress, err)
	}

	factory, err := ix.stores.Factory.Get(ctx)
	if err != nil {
		if notFound(err) {
			return ix.skip("mint", EntityFactory, "singleton"), nil
		}
		return Outcome{}, fmt.Errorf("load factory: %w", err)
	}

	token0, token1, err := ix.loadPairTokens(ctx, pair)
	if err != nil {
		return Outcome{}, err
	}
	if token0 == nil {
		return ix.skip("mint", EntityToken, pair.Token0), nil
	}
	if token1 == nil {
		return ix.skip("mint", EntityToken, pair.Token1), nil
	}

	// Reserve balances are covered by the accompanying Sync event.
	amount0 := amounts.ConvertTokenToDecimal(ev.Amount0, token0.Decimals)
	amount1 := amounts.ConvertTokenToDecimal(ev.Amount1, token1.Decimals)

	token0.TotalTransactions++
	token1.TotalTransactions++
	pair.TotalTransactions++
	factory.TotalTransactions++

	amountUSD := amount0.Mul(token0.DerivedUSD).Add(amount1.Mul(token1.DerivedUSD))

	if err := ix.saveEntities(ctx, token0, token1, pair, factory); err != nil {
		return Outcome{}, err
	}

	mint.Sender = ev.Sender
	mint.Amount0 = amount0
	mint.Amount1 = amount1
	mint.AmountUSD = amountUSD
	mint.LogIndex = ev.LogIndex
	if err := ix.stores.Mints.Save(ctx, mint); err != nil {
		return Outcome{}, fmt.Errorf("save mint %s: %w", mint.ID, err)
	}
	ix.archiveMint(ctx, mint)

	if err := ix.refreshBuckets(ctx, ev.Timestamp, pair, factory, token0, token1); err != nil {
		return Outcome{}, err
	}
	return OK(), nil
}

// HandleBurn finalizes the pending logical burn, regardless of its
// needsComplete flag — that flag only governs how the transfer handler pairs
// custody and fee events, not this step.
func (ix *Indexer) HandleBurn(ctx context.Context, ev *domain.PairBurnEvent) (Outcome, error) {
	tx, err := ix.stores.Transactions.Get(ctx, ev.TxHash)
	if err != nil {
		if notFound(err) {
			return ix.skip("burn", EntityTransaction, ev.TxHash), nil
		}
		return Outcome{}, fmt.Errorf("load transaction %s: %w", ev.TxHash, err)
	}

	lastID, ok := tx.LastBurn()
	if !ok {
		return ix.skip("burn", EntityBurn, ev.TxHash), nil
	}
	burn, err := ix.stores.Burns.Get(ctx, lastID)
	if err != nil {
		if notFound(err) {
			return ix.skip("burn", EntityBurn, lastID), nil
		}
		return Outcome{}, fmt.Errorf("load burn %s: %w", lastID, err)
	}

	pair, err := ix.stores.Pairs.Get(ctx, ev.PairAddress)
	if err != nil {
		if notFound(err) {
			return ix.skip("burn", EntityPair, ev.PairAddress), nil
		}
		return Outcome{}, fmt.Errorf("load pair %s: %w", ev.PairAddress, err)
	}

	factory, err := ix.stores.Factory.Get(ctx)
	if err != nil {
		if notFound(err) {
			return ix.skip("burn", EntityFactory, "singleton"), nil
		}
		return Outcome{}, fmt.Errorf("load factory: %w", err)
	}

	token0, token1, err := ix.loadPairTokens(ctx, pair)
	if err != nil {
		return Outcome{}, err
	}
	if token0 == nil {
		return ix.skip("burn", EntityToken, pair.Token0), nil
	}
	if token1 == nil {
		return ix.skip("burn", EntityToken, pair.Token1), nil
	}

	amount0 := amounts.ConvertTokenToDecimal(ev.Amount0, token0.Decimals)
	amount1 := amounts.ConvertTokenToDecimal(ev.Amount1, token1.Decimals)

	token0.TotalTransactions++
	token1.TotalTransactions++
	pair.TotalTransactions++
	factory.TotalTransactions++

	amountUSD := amount0.Mul(token0.DerivedUSD).Add(amount1.Mul(token1.DerivedUSD))

	if err := ix.saveEntities(ctx, token0, token1, pair, factory); err != nil {
		return Outcome{}, err
	}

	burn.Amount0 = amount0
	burn.Amount1 = amount1
	burn.AmountUSD = amountUSD
	burn.LogIndex = ev.LogIndex
	if err := ix.stores.Burns.Save(ctx, burn); err != nil {
		return Outcome{}, fmt.Errorf("save burn %s: %w", burn.ID, err)
	}
	ix.archiveBurn(ctx, burn)

	if err := ix.refreshBuckets(ctx, ev.Timestamp, pair, factory, token0, token1); err != nil {
		return Outcome{}, err
	}
	return OK(), nil
}

// saveEntities persists the four entities every finalizer touches.
func (ix *Indexer) saveEntities(ctx context.Context, token0, token1 *domain.Token, pair *domain.Pair, factory *domain.Factory) error {
	if err := ix.stores.Tokens.Save(ctx, token0); err != nil {
		return fmt.Errorf("save token0 %s: %w", token0.Address, err)
	}
	if err := ix.stores.Tokens.Save(ctx, token1); err != nil {
		return fmt.Errorf("save token1 %s: %w", token1.Address, err)
	}
	if err := ix.stores.Pairs.Save(ctx, pair); err != nil {
		return fmt.Errorf("save pair %s: %w", pair.Address, err)
	}
	if err := ix.stores.Factory.Save(ctx, factory); err != nil {
		return fmt.Errorf("save factory: %w", err)
	}
	return nil
}

// refreshBuckets touches all five rollups without folding volume; volume
// deltas are folded by the swap handler only.
func (ix *Indexer) refreshBuckets(ctx context.Context, ts int64, pair *domain.Pair, factory *domain.Factory, token0, token1 *domain.Token) error {
	if _, err := ix.updatePairDayData(ctx, ts, pair); err != nil {
		return err
	}
	if _, err := ix.updatePairHourData(ctx, ts, pair); err != nil {
		return err
	}
	if _, err := ix.updateFactoryDayData(ctx, ts, factory); err != nil {
		return err
	}
	if _, err := ix.updateTokenDayData(ctx, ts, token0); err != nil {
		return err
	}
	if _, err := ix.updateTokenDayData(ctx, ts, token1); err != nil {
		return err
	}
	return nil
}
