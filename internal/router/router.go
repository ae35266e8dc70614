// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/openmint/marketplace-backend/internal/commission"
	"github.com/openmint/marketplace-backend/internal/config"
	"github.com/openmint/marketplace-backend/internal/favorites"
	"github.com/openmint/marketplace-backend/internal/handlers"
	"github.com/openmint/marketplace-backend/internal/middleware"
	"github.com/openmint/marketplace-backend/internal/nft"
	"github.com/openmint/marketplace-backend/internal/offers"
	"github.com/openmint/marketplace-backend/internal/reports"
	"github.com/openmint/marketplace-backend/internal/storage"
	"github.com/openmint/marketplace-backend/internal/utils"
	"github.com/openmint/marketplace-backend/internal/verification"
	"github.com/openmint/marketplace-backend/internal/whitelist"
)

func Initialize(store *storage.Store, cfg *config.Config, log *logrus.Logger) *gin.Engine {
	// Initialize managers
	commissionEngine := commission.NewEngine(commission.Rates{
		BuyerRate:    cfg.Commission.BuyerRate,
		SellerRate:   cfg.Commission.SellerRate,
		DonationRate: cfg.Commission.DonationRate,
		GasFee:       cfg.Commission.GasFee,
	})
	offerManager := offers.NewManager(store, log,
		offers.WithDefaultExpiry(timeHours(cfg.Offers.DefaultExpiryHours)))
	nftManager := nft.NewManager(store, log)
	favoritesManager := favorites.NewManager(store, log)
	whitelistManager := whitelist.NewManager(store, log)
	reportsManager := reports.NewManager(store, log)
	verificationManager := verification.NewManager(store, log)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg)
	commissionHandler := handlers.NewCommissionHandler(commissionEngine, cfg.Commission.DisplayPlaces)
	offerHandler := handlers.NewOfferHandler(offerManager)
	nftHandler := handlers.NewNFTHandler(nftManager, whitelistManager)
	favoritesHandler := handlers.NewFavoritesHandler(favoritesManager)
	whitelistHandler := handlers.NewWhitelistHandler(whitelistManager)
	reportsHandler := handlers.NewReportsHandler(reportsManager)
	verificationHandler := handlers.NewVerificationHandler(verificationManager)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/admin/login", authHandler.AdminLogin)
		}

		v1.GET("/commission/preview", commissionHandler.Preview)

		offerRoutes := v1.Group("/offers")
		{
			offerRoutes.GET("/nft/:nftId", offerHandler.ForNFT)
			offerRoutes.GET("/nft/:nftId/pending", offerHandler.PendingForNFT)

			protected := offerRoutes.Group("")
			protected.Use(middleware.WalletRequired())
			{
				protected.POST("", offerHandler.Create)
				protected.GET("/sent", offerHandler.Sent)
				protected.GET("/received", offerHandler.Received)
				protected.POST("/:id/accept", offerHandler.Accept)
				protected.POST("/:id/reject", offerHandler.Reject)
				protected.POST("/:id/cancel", offerHandler.Cancel)
			}
		}

		nftRoutes := v1.Group("/nfts")
		{
			nftRoutes.GET("", nftHandler.List)
			nftRoutes.GET("/:id", nftHandler.Get)
			nftRoutes.GET("/:id/status", middleware.OptionalWallet(), nftHandler.Status)
			nftRoutes.GET("/:id/favorites/count", favoritesHandler.Count)

			protected := nftRoutes.Group("")
			protected.Use(middleware.WalletRequired())
			{
				protected.POST("", nftHandler.Mint)
				protected.GET("/owned", nftHandler.Owned)
				protected.GET("/history", nftHandler.TransferHistory)
				protected.POST("/:id/delist", nftHandler.Delist)
				protected.POST("/:id/relist", nftHandler.Relist)
				protected.POST("/:id/hide", nftHandler.Hide)
				protected.POST("/:id/unhide", nftHandler.Unhide)
				protected.POST("/:id/transfer", nftHandler.Transfer)
				protected.POST("/:id/burn", nftHandler.Burn)
			}
		}

		favoriteRoutes := v1.Group("/favorites")
		favoriteRoutes.Use(middleware.WalletRequired())
		{
			favoriteRoutes.GET("", favoritesHandler.List)
			favoriteRoutes.POST("/:nftId/toggle", favoritesHandler.Toggle)
		}

		whitelistRoutes := v1.Group("/whitelist")
		whitelistRoutes.Use(middleware.WalletRequired())
		{
			whitelistRoutes.POST("/apply", whitelistHandler.Apply)
			whitelistRoutes.GET("/status", whitelistHandler.Status)
		}

		reportRoutes := v1.Group("/reports")
		reportRoutes.Use(middleware.WalletRequired())
		{
			reportRoutes.POST("", reportsHandler.Create)
		}

		verificationRoutes := v1.Group("/verification")
		verificationRoutes.Use(middleware.WalletRequired())
		{
			verificationRoutes.POST("/request", verificationHandler.Submit)
			verificationRoutes.GET("/status", verificationHandler.Status)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminRequired())
		{
			admin.GET("/offers/actions", offerHandler.Actions)
			admin.GET("/whitelist", whitelistHandler.All)
			admin.POST("/whitelist/:address/review", whitelistHandler.Review)
			admin.DELETE("/whitelist/:address", whitelistHandler.Remove)
			admin.GET("/reports", reportsHandler.All)
			admin.POST("/reports/:id/review", reportsHandler.Review)
			admin.GET("/verification", verificationHandler.All)
			admin.POST("/verification/:id/review", verificationHandler.Review)
		}
	}

	return r
}

func timeHours(h int) time.Duration {
	return time.Duration(h) * time.Hour
}
