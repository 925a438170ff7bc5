package domain

import "math/big"

// ZeroAddress is the ledger's burn/mint sentinel address.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// MinimumLiquidity is the liquidity permanently locked by a pair on its first
// mint. The bootstrap transfer of exactly this amount to the zero address is
// a designed no-op for the assembler.
var MinimumLiquidity = big.NewInt(1000)

// EventMeta carries the ledger coordinates common to every raw pair event.
// Events are delivered exactly once, ordered by (Block, LogIndex).
type EventMeta struct {
	PairAddress string // emitting pair contract
	TxHash      string // outer transaction hash
	TxFrom      string // outer transaction originator
	Block       int64
	Timestamp   int64 // block timestamp, Unix seconds
	LogIndex    int64 // position within the block
}

// Event is a raw pair-contract event consumed by the indexer.
type Event interface {
	Meta() *EventMeta
}

// TransferEvent is a liquidity-token transfer on the pair contract.
type TransferEvent struct {
	EventMeta
	From  string
	To    string
	Value *big.Int // raw liquidity token units (18 decimals)
}

// PairMintEvent is the pair contract's Mint event, finalizing a deposit.
type PairMintEvent struct {
	EventMeta
	Sender  string
	Amount0 *big.Int // raw token0 units
	Amount1 *big.Int // raw token1 units
}

// PairBurnEvent is the pair contract's Burn event, finalizing a withdrawal.
type PairBurnEvent struct {
	EventMeta
	Amount0 *big.Int
	Amount1 *big.Int
}

// SwapRawEvent is the pair contract's Swap event.
type SwapRawEvent struct {
	EventMeta
	Sender     string
	To         string
	Amount0In  *big.Int
	Amount1In  *big.Int
	Amount0Out *big.Int
	Amount1Out *big.Int
}

// SyncEvent reports the pair's post-operation reserves.
type SyncEvent struct {
	EventMeta
	Reserve0 *big.Int
	Reserve1 *big.Int
}

func (m *EventMeta) Meta() *EventMeta { return m }
