// internal/commission/engine_test.go
package commission

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	buyerAddr  = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	sellerAddr = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func TestCalculateInvariants(t *testing.T) {
	engine := NewEngine(DefaultRates())

	for _, raw := range []string{"0", "0.5", "1", "42.42", "100", "1234.5678", "999999999"} {
		price := decimal.RequireFromString(raw)
		b := engine.Calculate(price, buyerAddr, sellerAddr)

		assert.True(t, b.BuyerCommission.Equal(price.Mul(decimal.RequireFromString("0.03"))), "buyer commission for %s", raw)
		assert.True(t, b.SellerCommission.Equal(price.Mul(decimal.RequireFromString("0.03"))), "seller commission for %s", raw)
		assert.True(t, b.PlatformDonation.Equal(price.Mul(decimal.RequireFromString("0.01"))), "donation for %s", raw)
		assert.True(t, b.TotalBuyerPayment.Equal(price.Add(b.BuyerCommission).Add(b.GasFee)), "buyer total for %s", raw)
		assert.True(t, b.SellerNetEarnings.Equal(price.Sub(b.SellerCommission).Sub(b.GasFee)), "seller net for %s", raw)
		assert.True(t, b.PlatformEarnings.Equal(b.BuyerCommission.Add(b.SellerCommission).Add(b.PlatformDonation)), "platform earnings for %s", raw)
		assert.True(t, b.AdminBudgetTransfer.Equal(b.PlatformEarnings), "admin budget for %s", raw)
	}
}

func TestCalculateExample(t *testing.T) {
	engine := NewEngine(DefaultRates())

	b := engine.Calculate(decimal.NewFromInt(100), buyerAddr, sellerAddr)

	assert.True(t, b.BuyerCommission.Equal(decimal.NewFromInt(3)))
	assert.True(t, b.SellerCommission.Equal(decimal.NewFromInt(3)))
	assert.True(t, b.PlatformDonation.Equal(decimal.NewFromInt(1)))
	assert.True(t, b.GasFee.Equal(decimal.RequireFromString("0.00001")))
	assert.True(t, b.TotalBuyerPayment.Equal(decimal.RequireFromString("103.00001")))
	assert.True(t, b.SellerNetEarnings.Equal(decimal.RequireFromString("96.99999")))
	assert.True(t, b.PlatformEarnings.Equal(decimal.NewFromInt(7)))
}

func TestCalculateWithGasFeeOverride(t *testing.T) {
	engine := NewEngine(DefaultRates())
	gasFee := decimal.RequireFromString("0.5")

	b := engine.CalculateWithGasFee(decimal.NewFromInt(100), buyerAddr, sellerAddr, gasFee)

	assert.True(t, b.GasFee.Equal(gasFee))
	assert.True(t, b.TotalBuyerPayment.Equal(decimal.RequireFromString("103.5")))
	assert.True(t, b.SellerNetEarnings.Equal(decimal.RequireFromString("96.5")))
}

func TestCalculateIgnoresAddresses(t *testing.T) {
	engine := NewEngine(DefaultRates())
	price := decimal.RequireFromString("12.34")

	a := engine.Calculate(price, buyerAddr, sellerAddr)
	b := engine.Calculate(price, sellerAddr, buyerAddr)
	c := engine.Calculate(price, "", "")

	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
}

func TestFormat(t *testing.T) {
	engine := NewEngine(DefaultRates())
	b := engine.Calculate(decimal.NewFromInt(100), buyerAddr, sellerAddr)

	f := Format(b, 5)
	require.Equal(t, "103.00001", f.TotalBuyerPayment)
	require.Equal(t, "96.99999", f.SellerNetEarnings)
	require.Equal(t, "3.00000", f.BuyerCommission)
	require.Equal(t, "0.00001", f.GasFee)

	// Formatting rounds for display only; the breakdown stays exact.
	f2 := Format(b, 2)
	require.Equal(t, "103.00", f2.TotalBuyerPayment)
	assert.True(t, b.TotalBuyerPayment.Equal(decimal.RequireFromString("103.00001")))
}
