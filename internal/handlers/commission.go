// internal/handlers/commission.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/openmint/marketplace-backend/internal/commission"
	"github.com/openmint/marketplace-backend/internal/utils"
)

type CommissionHandler struct {
	engine        *commission.Engine
	displayPlaces int32
}

func NewCommissionHandler(engine *commission.Engine, displayPlaces int) *CommissionHandler {
	return &CommissionHandler{
		engine:        engine,
		displayPlaces: int32(displayPlaces),
	}
}

// Preview returns the fee breakdown for a prospective sale price. Buyer and
// seller addresses are optional query parameters; the price must be a
// positive decimal.
func (h *CommissionHandler) Preview(c *gin.Context) {
	price, err := decimal.NewFromString(c.Query("price"))
	if err != nil || !price.IsPositive() {
		utils.BadRequestResponse(c, "price must be a positive decimal", nil)
		return
	}

	buyer := c.Query("buyer")
	seller := c.Query("seller")

	var breakdown commission.Breakdown
	if rawGas := c.Query("gas_fee"); rawGas != "" {
		gasFee, err := decimal.NewFromString(rawGas)
		if err != nil || gasFee.IsNegative() {
			utils.BadRequestResponse(c, "gas_fee must be a non-negative decimal", nil)
			return
		}
		breakdown = h.engine.CalculateWithGasFee(price, buyer, seller, gasFee)
	} else {
		breakdown = h.engine.Calculate(price, buyer, seller)
	}

	utils.SuccessResponse(c, gin.H{
		"breakdown": breakdown,
		"formatted": commission.Format(breakdown, h.displayPlaces),
	})
}
