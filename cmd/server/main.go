// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/openmint/marketplace-backend/internal/config"
	"github.com/openmint/marketplace-backend/internal/router"
	"github.com/openmint/marketplace-backend/internal/storage"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	// Initialize storage
	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize storage")
	}
	defer closeBackend()

	opts := storage.DefaultOptions()
	opts.Retention = time.Duration(cfg.Storage.RetentionDays) * 24 * time.Hour
	opts.ListCaps = map[string]int{
		storage.KeyOfferActions:       cfg.Storage.ActionLogCap,
		storage.PrefixTransferHistory: cfg.Storage.HistoryCap,
	}
	store := storage.NewStore(backend, log, opts)

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := router.Initialize(store, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server exited")
}

func openBackend(cfg *config.Config) (storage.Backend, func(), error) {
	if cfg.Storage.Driver == "memory" {
		return storage.NewMemoryBackend(cfg.Storage.MaxBytes), func() {}, nil
	}

	backend, err := storage.OpenGormBackend(cfg.Storage.Path, cfg.Storage.MaxBytes, cfg.Storage.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return backend, func() { backend.Close() }, nil
}
