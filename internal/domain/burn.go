package domain

import "github.com/shopspring/decimal"

// Burn is a logical liquidity withdrawal assembled from up to three raw
// events: a direct liquidity-token deposit to the pair, the burn-to-zero
// transfer, and the pair contract's Burn event. At most one rides per
// withdrawal; an absorbed fee mint is recorded on FeeTo/FeeLiquidity.
type Burn struct {
	ID          string // <txHash>-<seq>
	Transaction string // owning transaction hash
	Pair        string // pair address

	Liquidity decimal.Decimal // liquidity token amount burned
	Sender    string
	To        string

	// NeedsComplete marks a burn opened by a deposit-to-pair transfer that is
	// still awaiting its burn-to-zero transfer.
	NeedsComplete bool

	FeeTo        string          // fee mint recipient, empty when no fee rode along
	FeeLiquidity decimal.Decimal // fee mint liquidity amount

	Amount0   decimal.Decimal // token0 amount, decimal units
	Amount1   decimal.Decimal // token1 amount, decimal units
	AmountUSD decimal.Decimal

	LogIndex  int64
	Timestamp int64
}
