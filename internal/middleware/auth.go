// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openmint/marketplace-backend/internal/utils"
)

// WalletRequired extracts the caller's wallet address from the
// X-Wallet-Address header. The address is identification, not
// authentication: the deployment model trusts the client, and managers
// re-check actor authorization on every mutation.
func WalletRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		address := c.GetHeader("X-Wallet-Address")
		if address == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Wallet address required",
			})
			c.Abort()
			return
		}

		if !utils.IsWalletAddress(address) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid wallet address",
			})
			c.Abort()
			return
		}

		c.Set("wallet_address", address)
		c.Next()
	}
}

// OptionalWallet sets the wallet address in context when a valid header is
// present and passes through otherwise.
func OptionalWallet() gin.HandlerFunc {
	return func(c *gin.Context) {
		address := c.GetHeader("X-Wallet-Address")
		if address != "" && utils.IsWalletAddress(address) {
			c.Set("wallet_address", address)
		}
		c.Next()
	}
}

// AdminRequired validates the bearer token issued by the admin login
// endpoint.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header",
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateAdminJWT(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set("admin_username", claims.Username)
		c.Next()
	}
}
