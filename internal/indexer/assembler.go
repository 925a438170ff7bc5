package indexer

import (
	"context"
	"fmt"

	"bsc-pair-indexer/internal/amounts"
	"bsc-pair-indexer/internal/domain"
)

// HandleTransfer stitches liquidity-token transfers into logical Mint and
// Burn records. A single user-level add or remove produces two or three raw
// transfers, possibly interleaved with an automatic protocol fee mint; this
// state machine normalizes them into exactly one logical record per action.
func (ix *Indexer) HandleTransfer(ctx context.Context, ev *domain.TransferEvent) (Outcome, error) {
	// The pair's very first mint locks MinimumLiquidity at the zero address.
	// Designed no-op, not a failure.
	if ev.To == domain.ZeroAddress && ev.Value != nil && ev.Value.Cmp(domain.MinimumLiquidity) == 0 {
		return OK(), nil
	}

	pair, err := ix.stores.Pairs.Get(ctx, ev.PairAddress)
	if err != nil {
		if notFound(err) {
			return ix.skip("transfer", EntityPair, ev.PairAddress), nil
		}
		return Outcome{}, fmt.Errorf("load pair %s: %w", ev.PairAddress, err)
	}

	value := amounts.ConvertLiquidityToDecimal(ev.Value)

	tx, err := ix.stores.Transactions.Get(ctx, ev.TxHash)
	if err != nil {
		if !notFound(err) {
			return Outcome{}, fmt.Errorf("load transaction %s: %w", ev.TxHash, err)
		}
		tx = domain.NewTransaction(ev.TxHash, ev.Block, ev.Timestamp)
	}

	// Mint-side transfer: open a new logical mint unless one is already
	// waiting for its contract Mint event.
	if ev.From == domain.ZeroAddress {
		openMint := false
		if lastID, ok := tx.LastMint(); ok {
			last, err := ix.stores.Mints.Get(ctx, lastID)
			if err != nil {
				if notFound(err) {
					return ix.skip("transfer", EntityMint, lastID), nil
				}
				return Outcome{}, fmt.Errorf("load mint %s: %w", lastID, err)
			}
			openMint = !last.Complete()
		}
		if !openMint {
			mint := &domain.Mint{
				ID:          tx.NextMintID(),
				Transaction: tx.Hash,
				Pair:        pair.Address,
				To:          ev.To,
				Liquidity:   value,
				Timestamp:   tx.Timestamp,
			}
			if err := ix.stores.Mints.Save(ctx, mint); err != nil {
				return Outcome{}, fmt.Errorf("save mint %s: %w", mint.ID, err)
			}
			tx.AppendMint(mint.ID)
		}
	}

	// Direct liquidity-token deposit to the pair: custody captured, burn not
	// yet confirmed by the contract.
	if ev.To == pair.Address {
		burn := &domain.Burn{
			ID:            tx.NextBurnID(),
			Transaction:   tx.Hash,
			Pair:          pair.Address,
			Liquidity:     value,
			Sender:        ev.From,
			To:            ev.To,
			NeedsComplete: true,
			Timestamp:     tx.Timestamp,
		}
		if err := ix.stores.Burns.Save(ctx, burn); err != nil {
			return Outcome{}, fmt.Errorf("save burn %s: %w", burn.ID, err)
		}
		tx.AppendBurn(burn.ID)
	}

	// Burn-to-zero from the pair: resolve the current logical burn, absorbing
	// an attached fee mint if one is still open.
	if ev.To == domain.ZeroAddress && ev.From == pair.Address {
		var burn *domain.Burn
		reused := false
		if lastID, ok := tx.LastBurn(); ok {
			last, err := ix.stores.Burns.Get(ctx, lastID)
			if err != nil {
				if notFound(err) {
					return ix.skip("transfer", EntityBurn, lastID), nil
				}
				return Outcome{}, fmt.Errorf("load burn %s: %w", lastID, err)
			}
			if last.NeedsComplete {
				burn = last
				reused = true
			}
		}
		if burn == nil {
			burn = &domain.Burn{
				ID:          tx.NextBurnID(),
				Transaction: tx.Hash,
				Pair:        pair.Address,
				Liquidity:   value,
				Timestamp:   tx.Timestamp,
			}
		}

		// An incomplete mint at the tail is the protocol fee distribution
		// riding along with this burn, not an independent deposit.
		if lastID, ok := tx.LastMint(); ok {
			last, err := ix.stores.Mints.Get(ctx, lastID)
			if err != nil {
				if notFound(err) {
					return ix.skip("transfer", EntityMint, lastID), nil
				}
				return Outcome{}, fmt.Errorf("load mint %s: %w", lastID, err)
			}
			if !last.Complete() {
				burn.FeeTo = last.To
				burn.FeeLiquidity = last.Liquidity
				if err := ix.stores.Mints.Delete(ctx, lastID); err != nil {
					return Outcome{}, fmt.Errorf("delete fee mint %s: %w", lastID, err)
				}
				tx.PopLastMint()
			}
		}

		burn.NeedsComplete = false
		if err := ix.stores.Burns.Save(ctx, burn); err != nil {
			return Outcome{}, fmt.Errorf("save burn %s: %w", burn.ID, err)
		}
		if !reused {
			tx.AppendBurn(burn.ID)
		}
	}

	if err := ix.stores.Transactions.Save(ctx, tx); err != nil {
		return Outcome{}, fmt.Errorf("save transaction %s: %w", tx.Hash, err)
	}
	return OK(), nil
}
