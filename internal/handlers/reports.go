// internal/handlers/reports.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openmint/marketplace-backend/internal/models"
	"github.com/openmint/marketplace-backend/internal/reports"
	"github.com/openmint/marketplace-backend/internal/utils"
)

type ReportsHandler struct {
	reports *reports.Manager
}

func NewReportsHandler(manager *reports.Manager) *ReportsHandler {
	return &ReportsHandler{reports: manager}
}

type createReportRequest struct {
	TargetType string `json:"target_type" binding:"required,oneof=nft user"`
	TargetID   string `json:"target_id" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
	Details    string `json:"details"`
}

// Create files a report from the calling wallet.
func (h *ReportsHandler) Create(c *gin.Context) {
	wallet, ok := utils.GetWalletFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	report, ok := h.reports.Create(reports.CreateParams{
		Reporter:   wallet,
		TargetType: models.ReportTargetType(req.TargetType),
		TargetID:   req.TargetID,
		Reason:     req.Reason,
		Details:    req.Details,
	})
	if !ok {
		utils.ConflictResponse(c, "A report against this target is already pending")
		return
	}
	utils.CreatedResponse(c, report)
}

// All lists reports for admins; ?status=pending narrows to the queue.
func (h *ReportsHandler) All(c *gin.Context) {
	if c.Query("status") == "pending" {
		utils.SuccessResponse(c, h.reports.Pending())
		return
	}
	utils.SuccessResponse(c, h.reports.All())
}

type reviewReportRequest struct {
	Dismiss bool   `json:"dismiss"`
	Note    string `json:"note"`
}

// Review resolves a pending report.
func (h *ReportsHandler) Review(c *gin.Context) {
	admin, _ := utils.GetAdminFromContext(c)

	var req reviewReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	if !h.reports.Review(c.Param("id"), admin, req.Dismiss, req.Note) {
		utils.NotFoundResponse(c, "Pending report")
		return
	}
	utils.SuccessResponse(c, gin.H{"reviewed": true})
}
