// Package api wires the backend-for-frontend HTTP server: middleware stack,
// Swagger UI and the /api/v1 view and chart routes.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/ipl-dashboard/internal/api/handler"
	"github.com/albapepper/ipl-dashboard/internal/cache"
	"github.com/albapepper/ipl-dashboard/internal/config"
	"github.com/albapepper/ipl-dashboard/internal/dashboard"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(backend dashboard.Backend, chartCache *cache.Cache, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5, "application/json", "image/svg+xml")) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(backend, chartCache, cfg, logger)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/backend", h.HealthCheckBackend)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Catalog
		r.Get("/years", h.GetYears)
		r.Get("/teams", h.GetTeams)

		// Page snapshots
		r.Get("/views/home", h.GetHomeView)
		r.Get("/views/{view}", h.GetView)

		// Rendered charts
		r.Get("/charts/{chart}.{format}", h.GetChart)
	})

	return r
}
