// internal/handlers/nfts.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openmint/marketplace-backend/internal/models"
	"github.com/openmint/marketplace-backend/internal/nft"
	"github.com/openmint/marketplace-backend/internal/utils"
	"github.com/openmint/marketplace-backend/internal/whitelist"
)

type NFTHandler struct {
	nfts      *nft.Manager
	whitelist *whitelist.Manager
}

func NewNFTHandler(nfts *nft.Manager, whitelist *whitelist.Manager) *NFTHandler {
	return &NFTHandler{nfts: nfts, whitelist: whitelist}
}

type mintRequest struct {
	ID              string  `json:"id" binding:"required"`
	Title           string  `json:"title" binding:"required"`
	Description     string  `json:"description"`
	Image           string  `json:"image"`
	Category        string  `json:"category"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	ContractAddress string  `json:"contract_address"`
	TokenID         string  `json:"token_id"`
}

// Mint adds a new NFT owned by the calling wallet. Minting is gated on the
// whitelist; the check is advisory in this trust model but mirrors the
// marketplace rules.
func (h *NFTHandler) Mint(c *gin.Context) {
	wallet, ok := utils.GetWalletFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	if !h.whitelist.IsWhitelisted(wallet) {
		utils.ForbiddenResponse(c, "Wallet is not whitelisted for minting")
		return
	}

	var req mintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	record := models.NFT{
		ID:              req.ID,
		Title:           req.Title,
		Description:     req.Description,
		Image:           req.Image,
		Category:        req.Category,
		Creator:         wallet,
		Price:           req.Price,
		ContractAddress: req.ContractAddress,
		TokenID:         req.TokenID,
	}
	if !h.nfts.Mint(record) {
		utils.ConflictResponse(c, "NFT id already exists")
		return
	}
	utils.CreatedResponse(c, record)
}

// List returns the canonical marketplace list, paginated.
func (h *NFTHandler) List(c *gin.Context) {
	all := h.nfts.All()
	params := utils.GetPaginationParams(c)
	start, end := utils.PageBounds(params, len(all))
	utils.PaginatedResponse(c, utils.CreatePaginationResult(all[start:end], int64(len(all)), params))
}

// Get returns one canonical record.
func (h *NFTHandler) Get(c *gin.Context) {
	record, ok := h.nfts.Get(c.Param("id"))
	if !ok {
		utils.NotFoundResponse(c, "NFT")
		return
	}
	utils.SuccessResponse(c, record)
}

// Status returns the four status facets of an NFT as seen by the calling
// wallet.
func (h *NFTHandler) Status(c *gin.Context) {
	wallet, _ := utils.GetWalletFromContext(c)
	utils.SuccessResponse(c, h.nfts.GetStatus(c.Param("id"), wallet))
}

// Delist takes the caller's NFT off sale.
func (h *NFTHandler) Delist(c *gin.Context) {
	h.ownerOp(c, func(nftID, wallet string) bool {
		return h.nfts.Delist(nftID, wallet)
	})
}

type relistRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

// Relist puts the caller's NFT back on sale at a new price.
func (h *NFTHandler) Relist(c *gin.Context) {
	var req relistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "price must be positive", nil)
		return
	}
	h.ownerOp(c, func(nftID, wallet string) bool {
		return h.nfts.Relist(nftID, wallet, req.Price)
	})
}

// Hide removes an NFT from the caller's own view.
func (h *NFTHandler) Hide(c *gin.Context) {
	h.ownerOp(c, func(nftID, wallet string) bool {
		return h.nfts.Hide(nftID, wallet)
	})
}

// Unhide restores a hidden NFT to the caller's view.
func (h *NFTHandler) Unhide(c *gin.Context) {
	h.ownerOp(c, func(nftID, wallet string) bool {
		return h.nfts.Unhide(nftID, wallet)
	})
}

type transferRequest struct {
	ToAddress string `json:"to_address" binding:"required,wallet_address"`
}

// Transfer moves the NFT from the caller to another wallet.
func (h *NFTHandler) Transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "to_address must be a wallet address", utils.GetValidationErrors(err))
		return
	}
	h.ownerOp(c, func(nftID, wallet string) bool {
		return h.nfts.Transfer(nftID, wallet, req.ToAddress)
	})
}

// Burn destroys the caller's NFT permanently.
func (h *NFTHandler) Burn(c *gin.Context) {
	h.ownerOp(c, func(nftID, wallet string) bool {
		return h.nfts.Burn(nftID, wallet)
	})
}

func (h *NFTHandler) ownerOp(c *gin.Context, op func(nftID, wallet string) bool) {
	wallet, ok := utils.GetWalletFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	nftID := c.Param("id")
	if !op(nftID, wallet) {
		utils.BadRequestResponse(c, "NFT not found or not yours to act on", nil)
		return
	}
	utils.SuccessResponse(c, h.nfts.GetStatus(nftID, wallet))
}

// Owned lists the calling wallet's holdings.
func (h *NFTHandler) Owned(c *gin.Context) {
	wallet, ok := utils.GetWalletFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	utils.SuccessResponse(c, h.nfts.Owned(wallet))
}

// TransferHistory lists the transfers the calling wallet has sent.
func (h *NFTHandler) TransferHistory(c *gin.Context) {
	wallet, ok := utils.GetWalletFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	utils.SuccessResponse(c, h.nfts.TransferHistory(wallet))
}
