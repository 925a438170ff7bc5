// Package amounts converts raw integer ledger quantities into exact decimal
// amounts using each token's declared decimal count.
package amounts

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// LiquidityDecimals is the decimal count of every pair's liquidity token.
const LiquidityDecimals int32 = 18

// ConvertTokenToDecimal divides a raw integer amount by 10^decimals.
// A nil amount converts to zero.
func ConvertTokenToDecimal(raw *big.Int, decimals int32) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -decimals)
}

// ConvertLiquidityToDecimal converts a raw liquidity token amount.
func ConvertLiquidityToDecimal(raw *big.Int) decimal.Decimal {
	return ConvertTokenToDecimal(raw, LiquidityDecimals)
}
