package domain

import "github.com/shopspring/decimal"

// Mint is a logical liquidity deposit assembled from a mint-side Transfer and
// the pair contract's Mint event. The record is incomplete until the contract
// event supplies the sender; an incomplete mint sitting at the tail of its
// transaction when a burn completes is reinterpreted as a fee distribution
// and deleted.
type Mint struct {
	ID          string // <txHash>-<seq>
	Transaction string // owning transaction hash
	Pair        string // pair address

	To        string          // liquidity token recipient
	Liquidity decimal.Decimal // liquidity token amount

	Sender    string          // set only once the contract Mint event arrives
	Amount0   decimal.Decimal // token0 amount, decimal units
	Amount1   decimal.Decimal // token1 amount, decimal units
	AmountUSD decimal.Decimal // amount0*p0 + amount1*p1 at completion time

	LogIndex  int64
	Timestamp int64 // owning transaction timestamp
}

// Complete reports whether the contract-level Mint event has been applied.
func (m *Mint) Complete() bool { return m.Sender != "" }
