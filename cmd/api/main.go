// Command api is the IPL Dashboard backend-for-frontend server.
//
// Usage:
//
//	ipl-api
//	BACKEND_URL=http://stats:8000/api API_PORT=8080 ipl-api

// @title IPL Dashboard API
// @version 1.0
// @description View models and rendered charts for the IPL statistics dashboard. Every request fetches fresh data from the statistics backend; only rendered charts are cached.
// @BasePath /
// @schemes http https
// @contact.name IPL Dashboard
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/ipl-dashboard/internal/api"
	"github.com/albapepper/ipl-dashboard/internal/cache"
	"github.com/albapepper/ipl-dashboard/internal/config"
	"github.com/albapepper/ipl-dashboard/internal/iplapi"
	"github.com/albapepper/ipl-dashboard/internal/logger"

	_ "github.com/albapepper/ipl-dashboard/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "development").Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.Environment)
	slog.SetDefault(log)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Backend client
	client := iplapi.NewClient(cfg.BackendURL, cfg.BackendTimeout, cfg.BackendRateLimitRPM, log)
	log.Info("Backend configured",
		"url", client.BaseURL(),
		"timeout", cfg.BackendTimeout,
		"rate_limit_rpm", cfg.BackendRateLimitRPM)

	// Initialize chart cache
	chartCache := cache.New(cfg.CacheEnabled, cfg.ChartTTL)
	go chartCache.Run(ctx)
	log.Info("Chart cache initialized", "enabled", cfg.CacheEnabled, "ttl", cfg.ChartTTL)

	// Create router
	router := api.NewRouter(client, chartCache, cfg, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.BackendTimeout + 20*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		log.Info("Starting IPL Dashboard API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	log.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Shutdown error", "error", err)
	}
	log.Info("Server stopped")
}
