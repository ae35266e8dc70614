// internal/handlers/verification.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openmint/marketplace-backend/internal/utils"
	"github.com/openmint/marketplace-backend/internal/verification"
)

type VerificationHandler struct {
	verification *verification.Manager
}

func NewVerificationHandler(manager *verification.Manager) *VerificationHandler {
	return &VerificationHandler{verification: manager}
}

type verificationSubmitRequest struct {
	DisplayName string   `json:"display_name" binding:"required"`
	Links       []string `json:"links"`
}

// Submit files a verification request for the calling wallet.
func (h *VerificationHandler) Submit(c *gin.Context) {
	wallet, ok := utils.GetWalletFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req verificationSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	request, ok := h.verification.Submit(wallet, req.DisplayName, req.Links)
	if !ok {
		utils.ConflictResponse(c, "A request is already pending or the wallet is verified")
		return
	}
	utils.CreatedResponse(c, request)
}

// Status returns the calling wallet's verification state.
func (h *VerificationHandler) Status(c *gin.Context) {
	wallet, ok := utils.GetWalletFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	response := gin.H{"verified": h.verification.IsVerified(wallet)}
	if latest, found := h.verification.Latest(wallet); found {
		response["request"] = latest
	}
	utils.SuccessResponse(c, response)
}

// All lists verification requests for admins; ?status=pending narrows to
// the queue.
func (h *VerificationHandler) All(c *gin.Context) {
	if c.Query("status") == "pending" {
		utils.SuccessResponse(c, h.verification.Pending())
		return
	}
	utils.SuccessResponse(c, h.verification.All())
}

type verificationReviewRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// Review resolves a pending request.
func (h *VerificationHandler) Review(c *gin.Context) {
	admin, _ := utils.GetAdminFromContext(c)

	var req verificationReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	if !h.verification.Review(c.Param("id"), admin, req.Approve, req.Note) {
		utils.NotFoundResponse(c, "Pending verification request")
		return
	}
	utils.SuccessResponse(c, gin.H{"reviewed": true})
}
