// internal/handlers/favorites.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openmint/marketplace-backend/internal/favorites"
	"github.com/openmint/marketplace-backend/internal/utils"
)

type FavoritesHandler struct {
	favorites *favorites.Manager
}

func NewFavoritesHandler(manager *favorites.Manager) *FavoritesHandler {
	return &FavoritesHandler{favorites: manager}
}

// Toggle flips the favorite state of an NFT for the calling wallet.
func (h *FavoritesHandler) Toggle(c *gin.Context) {
	wallet, ok := utils.GetWalletFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	nftID := c.Param("nftId")
	favorited, ok := h.favorites.Toggle(wallet, nftID)
	if !ok {
		utils.BadRequestResponse(c, "Could not update favorites", nil)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"nft_id":    nftID,
		"favorited": favorited,
	})
}

// List returns the calling wallet's favorites.
func (h *FavoritesHandler) List(c *gin.Context) {
	wallet, ok := utils.GetWalletFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	utils.SuccessResponse(c, h.favorites.List(wallet))
}

// Count returns how many wallets have favorited the NFT.
func (h *FavoritesHandler) Count(c *gin.Context) {
	nftID := c.Param("id")
	utils.SuccessResponse(c, gin.H{
		"nft_id": nftID,
		"count":  h.favorites.Count(nftID),
	})
}
