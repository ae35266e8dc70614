// internal/handlers/auth.go
package handlers

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/gin-gonic/gin"

	"github.com/openmint/marketplace-backend/internal/config"
	"github.com/openmint/marketplace-backend/internal/utils"
)

type AuthHandler struct {
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type adminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin checks the configured admin credentials and issues a bearer
// token for the admin routes.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Username and password are required", nil)
		return
	}

	if h.cfg.Admin.PasswordHash == "" || req.Username != h.cfg.Admin.Username {
		utils.UnauthorizedResponse(c, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.Admin.PasswordHash), []byte(req.Password)); err != nil {
		utils.UnauthorizedResponse(c, "Invalid credentials")
		return
	}

	token, err := utils.GenerateAdminJWT(req.Username, h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"token":      token,
		"expires_in": h.cfg.JWT.AccessTokenTTL * 3600,
	})
}
