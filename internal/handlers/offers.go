// internal/handlers/offers.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openmint/marketplace-backend/internal/offers"
	"github.com/openmint/marketplace-backend/internal/utils"
)

type OfferHandler struct {
	offers *offers.Manager
}

func NewOfferHandler(manager *offers.Manager) *OfferHandler {
	return &OfferHandler{offers: manager}
}

type createOfferRequest struct {
	NFTID              string   `json:"nft_id" binding:"required"`
	NFTTitle           string   `json:"nft_title"`
	NFTImage           string   `json:"nft_image"`
	NFTContractAddress string   `json:"nft_contract_address"`
	NFTTokenID         string   `json:"nft_token_id"`
	Amount             float64  `json:"amount" binding:"required,gt=0"`
	AmountUSD          float64  `json:"amount_usd"`
	ToAddress          string   `json:"to_address" binding:"required,wallet_address"`
	Message            string   `json:"message"`
	ExpiresInHours     int      `json:"expires_in_hours" binding:"omitempty,gt=0"`
}

// Create files a new offer from the calling wallet.
func (h *OfferHandler) Create(c *gin.Context) {
	wallet, ok := utils.GetWalletFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req createOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid offer payload", utils.GetValidationErrors(err))
		return
	}

	params := offers.CreateParams{
		NFTID:              req.NFTID,
		NFTTitle:           req.NFTTitle,
		NFTImage:           req.NFTImage,
		NFTContractAddress: req.NFTContractAddress,
		NFTTokenID:         req.NFTTokenID,
		Amount:             req.Amount,
		AmountUSD:          req.AmountUSD,
		FromAddress:        wallet,
		ToAddress:          req.ToAddress,
		Message:            req.Message,
	}
	if req.ExpiresInHours > 0 {
		params.ExpiresAt = time.Now().Add(time.Duration(req.ExpiresInHours) * time.Hour)
	}

	offer, ok := h.offers.Create(params)
	if !ok {
		utils.BadRequestResponse(c, "Could not create offer", nil)
		return
	}
	utils.CreatedResponse(c, offer)
}

// Accept transitions a pending offer to accepted. The follow-up NFT
// transfer is the front end's next call.
func (h *OfferHandler) Accept(c *gin.Context) {
	h.transition(c, h.offers.Accept)
}

// Reject transitions a pending offer to rejected.
func (h *OfferHandler) Reject(c *gin.Context) {
	h.transition(c, h.offers.Reject)
}

// Cancel withdraws the caller's own pending offer.
func (h *OfferHandler) Cancel(c *gin.Context) {
	h.transition(c, h.offers.Cancel)
}

func (h *OfferHandler) transition(c *gin.Context, op func(offerID, actor string) bool) {
	wallet, ok := utils.GetWalletFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	offerID := c.Param("id")
	if !op(offerID, wallet) {
		// One failure shape for not-found, wrong actor and terminal
		// status: the managers do not distinguish, by contract.
		utils.BadRequestResponse(c, "Offer not found, not pending, or not yours to act on", nil)
		return
	}

	offer, _ := h.offers.Get(offerID)
	utils.SuccessResponse(c, offer)
}

// ForNFT lists all offers on one NFT, expiring stale ones first.
func (h *OfferHandler) ForNFT(c *gin.Context) {
	h.offers.MarkExpired()
	utils.SuccessResponse(c, h.offers.ForNFT(c.Param("nftId")))
}

// PendingForNFT lists the live offers on one NFT.
func (h *OfferHandler) PendingForNFT(c *gin.Context) {
	h.offers.MarkExpired()
	utils.SuccessResponse(c, h.offers.PendingForNFT(c.Param("nftId")))
}

// Sent lists the calling wallet's outgoing offers.
func (h *OfferHandler) Sent(c *gin.Context) {
	wallet, ok := utils.GetWalletFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	h.offers.MarkExpired()
	utils.SuccessResponse(c, h.offers.SentBy(wallet))
}

// Received lists the calling wallet's incoming offers.
func (h *OfferHandler) Received(c *gin.Context) {
	wallet, ok := utils.GetWalletFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	h.offers.MarkExpired()
	utils.SuccessResponse(c, h.offers.ReceivedBy(wallet))
}

// Actions exposes the append-only audit log to admins, paginated newest
// first.
func (h *OfferHandler) Actions(c *gin.Context) {
	actions := h.offers.Actions()
	// newest first
	for i, j := 0, len(actions)-1; i < j; i, j = i+1, j-1 {
		actions[i], actions[j] = actions[j], actions[i]
	}

	params := utils.GetPaginationParams(c)
	start, end := utils.PageBounds(params, len(actions))
	utils.PaginatedResponse(c, utils.CreatePaginationResult(actions[start:end], int64(len(actions)), params))
}
