package amounts

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConvertTokenToDecimal(t *testing.T) {
	wei, _ := new(big.Int).SetString("5000000000000000000", 10)
	assert.True(t, ConvertTokenToDecimal(wei, 18).Equal(decimal.RequireFromString("5")))

	micro := big.NewInt(5_000_000)
	assert.True(t, ConvertTokenToDecimal(micro, 6).Equal(decimal.RequireFromString("5")))

	// Zero decimals passes the raw value through.
	assert.True(t, ConvertTokenToDecimal(big.NewInt(42), 0).Equal(decimal.RequireFromString("42")))

	// Sub-unit amounts keep full precision.
	assert.True(t, ConvertTokenToDecimal(big.NewInt(1), 18).Equal(decimal.RequireFromString("0.000000000000000001")))

	assert.True(t, ConvertTokenToDecimal(nil, 18).IsZero())
}

func TestConvertLiquidityToDecimal(t *testing.T) {
	raw, _ := new(big.Int).SetString("1500000000000000000", 10)
	assert.True(t, ConvertLiquidityToDecimal(raw).Equal(decimal.RequireFromString("1.5")))
}
