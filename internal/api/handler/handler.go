// Package handler provides HTTP handlers for all API endpoints.
// Every request runs its own page controller against the backend; only
// rendered charts are cached.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/albapepper/ipl-dashboard/internal/api/respond"
	"github.com/albapepper/ipl-dashboard/internal/cache"
	"github.com/albapepper/ipl-dashboard/internal/config"
	"github.com/albapepper/ipl-dashboard/internal/dashboard"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	backend dashboard.Backend
	cache   *cache.Cache
	cfg     *config.Config
	logger  *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(backend dashboard.Backend, c *cache.Cache, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		backend: backend,
		cache:   c,
		cfg:     cfg,
		logger:  logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status and the available pages.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "IPL Dashboard API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"views":   append([]string{config.ViewHome}, config.PeriodViews...),
		"features": []string{
			"view_snapshots",
			"rendered_charts",
			"gzip_compression",
			"chart_cache",
			"etag_support",
		},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckBackend verifies the statistics backend answers.
// @Summary Backend health check
// @Description Requests the season list from the statistics backend.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/backend [get]
func (h *Handler) HealthCheckBackend(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.BackendTimeout)
	defer cancel()

	start := time.Now()
	env, err := h.backend.AvailableYears(ctx)
	if err == nil {
		err = env.Err("Backend reported a failure")
	}
	if err != nil {
		h.logger.Warn("Backend health check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"backend":   "unreachable",
			"error":     err.Error(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":     "healthy",
		"backend":    "connected",
		"latency_ms": time.Since(start).Milliseconds(),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns chart cache statistics.
// @Summary Cache health check
// @Description Returns rendered chart cache statistics (keys, hits, misses).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
