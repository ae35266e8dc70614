// internal/commission/engine.go
package commission

import "github.com/shopspring/decimal"

// Rates holds the fee configuration. Percentage rates are fractions of the
// sale price and never compound; the gas fee is a flat amount.
type Rates struct {
	BuyerRate    decimal.Decimal
	SellerRate   decimal.Decimal
	DonationRate decimal.Decimal
	GasFee       decimal.Decimal
}

// DefaultRates returns the platform defaults: 3% buyer commission, 3%
// seller commission, 1% platform donation, 0.00001 flat gas fee.
func DefaultRates() Rates {
	return Rates{
		BuyerRate:    decimal.NewFromFloat(0.03),
		SellerRate:   decimal.NewFromFloat(0.03),
		DonationRate: decimal.NewFromFloat(0.01),
		GasFee:       decimal.RequireFromString("0.00001"),
	}
}

// Breakdown is the full fee decomposition of one sale price. It is derived,
// never persisted, and carries exact amounts; rounding for display happens
// in Format.
type Breakdown struct {
	SalePrice           decimal.Decimal `json:"sale_price"`
	BuyerCommission     decimal.Decimal `json:"buyer_commission"`
	SellerCommission    decimal.Decimal `json:"seller_commission"`
	PlatformDonation    decimal.Decimal `json:"platform_donation"`
	GasFee              decimal.Decimal `json:"gas_fee"`
	TotalBuyerPayment   decimal.Decimal `json:"total_buyer_payment"`
	SellerNetEarnings   decimal.Decimal `json:"seller_net_earnings"`
	PlatformEarnings    decimal.Decimal `json:"platform_earnings"`
	AdminBudgetTransfer decimal.Decimal `json:"admin_budget_transfer"`
}

// Engine computes commission breakdowns. It is pure and total: any finite
// non-negative sale price produces a result. Callers reject non-positive
// prices before asking for a breakdown.
type Engine struct {
	rates Rates
}

func NewEngine(rates Rates) *Engine {
	return &Engine{rates: rates}
}

// Calculate returns the breakdown for salePrice with the configured flat gas
// fee. The buyer and seller addresses are accepted for future address-based
// fee overrides and do not influence the result yet.
func (e *Engine) Calculate(salePrice decimal.Decimal, buyerAddress, sellerAddress string) Breakdown {
	return e.CalculateWithGasFee(salePrice, buyerAddress, sellerAddress, e.rates.GasFee)
}

// CalculateWithGasFee is Calculate with a per-call gas fee override.
func (e *Engine) CalculateWithGasFee(salePrice decimal.Decimal, buyerAddress, sellerAddress string, gasFee decimal.Decimal) Breakdown {
	_ = buyerAddress
	_ = sellerAddress

	buyerCommission := salePrice.Mul(e.rates.BuyerRate)
	sellerCommission := salePrice.Mul(e.rates.SellerRate)
	platformDonation := salePrice.Mul(e.rates.DonationRate)
	platformEarnings := buyerCommission.Add(sellerCommission).Add(platformDonation)

	return Breakdown{
		SalePrice:           salePrice,
		BuyerCommission:     buyerCommission,
		SellerCommission:    sellerCommission,
		PlatformDonation:    platformDonation,
		GasFee:              gasFee,
		TotalBuyerPayment:   salePrice.Add(buyerCommission).Add(gasFee),
		SellerNetEarnings:   salePrice.Sub(sellerCommission).Sub(gasFee),
		PlatformEarnings:    platformEarnings,
		AdminBudgetTransfer: platformEarnings,
	}
}

// FormattedBreakdown renders every amount at a fixed number of decimal
// places. Formatting is a presentation concern; the Breakdown itself stays
// exact.
type FormattedBreakdown struct {
	SalePrice           string `json:"sale_price"`
	BuyerCommission     string `json:"buyer_commission"`
	SellerCommission    string `json:"seller_commission"`
	PlatformDonation    string `json:"platform_donation"`
	GasFee              string `json:"gas_fee"`
	TotalBuyerPayment   string `json:"total_buyer_payment"`
	SellerNetEarnings   string `json:"seller_net_earnings"`
	PlatformEarnings    string `json:"platform_earnings"`
	AdminBudgetTransfer string `json:"admin_budget_transfer"`
}

func Format(b Breakdown, places int32) FormattedBreakdown {
	return FormattedBreakdown{
		SalePrice:           b.SalePrice.StringFixed(places),
		BuyerCommission:     b.BuyerCommission.StringFixed(places),
		SellerCommission:    b.SellerCommission.StringFixed(places),
		PlatformDonation:    b.PlatformDonation.StringFixed(places),
		GasFee:              b.GasFee.StringFixed(places),
		TotalBuyerPayment:   b.TotalBuyerPayment.StringFixed(places),
		SellerNetEarnings:   b.SellerNetEarnings.StringFixed(places),
		PlatformEarnings:    b.PlatformEarnings.StringFixed(places),
		AdminBudgetTransfer: b.AdminBudgetTransfer.StringFixed(places),
	}
}
