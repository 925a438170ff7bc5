package domain

import "github.com/shopspring/decimal"

// Swap is a logical trade. Unlike mints and burns a swap maps 1:1 to its raw
// event and is always created fresh, never reused.
type Swap struct {
	ID          string // <txHash>-<seq>
	Transaction string // owning transaction hash
	Pair        string // pair address

	Sender string // swap caller reported by the pair contract
	From   string // outer transaction originator
	To     string // output recipient

	Amount0In  decimal.Decimal
	Amount1In  decimal.Decimal
	Amount0Out decimal.Decimal
	Amount1Out decimal.Decimal

	AmountUSD decimal.Decimal // tracked USD value of the trade

	LogIndex  int64
	Timestamp int64
}
