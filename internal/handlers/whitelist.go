// internal/handlers/whitelist.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openmint/marketplace-backend/internal/utils"
	"github.com/openmint/marketplace-backend/internal/whitelist"
)

type WhitelistHandler struct {
	whitelist *whitelist.Manager
}

func NewWhitelistHandler(manager *whitelist.Manager) *WhitelistHandler {
	return &WhitelistHandler{whitelist: manager}
}

type whitelistApplyRequest struct {
	Note string `json:"note"`
}

// Apply files a whitelist application for the calling wallet.
func (h *WhitelistHandler) Apply(c *gin.Context) {
	wallet, ok := utils.GetWalletFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req whitelistApplyRequest
	c.ShouldBindJSON(&req) // note is optional; an empty body is fine

	entry, ok := h.whitelist.Apply(wallet, req.Note)
	if !ok {
		utils.ConflictResponse(c, "An application is already pending or approved")
		return
	}
	utils.CreatedResponse(c, entry)
}

// Status returns the calling wallet's whitelist state.
func (h *WhitelistHandler) Status(c *gin.Context) {
	wallet, ok := utils.GetWalletFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	entry, found := h.whitelist.Entry(wallet)
	if !found {
		utils.SuccessResponse(c, gin.H{"whitelisted": false})
		return
	}
	utils.SuccessResponse(c, gin.H{
		"whitelisted": h.whitelist.IsWhitelisted(wallet),
		"entry":       entry,
	})
}

// All lists every whitelist entry for admins.
func (h *WhitelistHandler) All(c *gin.Context) {
	utils.SuccessResponse(c, h.whitelist.All())
}

type whitelistReviewRequest struct {
	Approve bool `json:"approve"`
}

// Review resolves a pending application.
func (h *WhitelistHandler) Review(c *gin.Context) {
	admin, _ := utils.GetAdminFromContext(c)

	var req whitelistReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	address := c.Param("address")
	if !h.whitelist.Review(address, admin, req.Approve) {
		utils.NotFoundResponse(c, "Pending application")
		return
	}
	entry, _ := h.whitelist.Entry(address)
	utils.SuccessResponse(c, entry)
}

// Remove deletes a wallet's entry.
func (h *WhitelistHandler) Remove(c *gin.Context) {
	if !h.whitelist.Remove(c.Param("address")) {
		utils.NotFoundResponse(c, "Whitelist entry")
		return
	}
	utils.SuccessResponse(c, gin.H{"removed": true})
}
