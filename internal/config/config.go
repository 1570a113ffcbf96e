// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/board.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// --------------------------------------------------------------------------
// Dashboard pages exposed by the API and the CLI
// --------------------------------------------------------------------------

const (
	ViewHome      = "home"
	ViewBowlers   = "bowlers"
	ViewExtraRuns = "extra-runs"
	ViewTeamStats = "team-stats"
)

// PeriodViews lists the pages scoped by a season selector, in menu order.
var PeriodViews = []string{ViewBowlers, ViewExtraRuns, ViewTeamStats}

// Home page charts. Season-scoped pages draw one chart named after the view.
const (
	ChartMatchesPerYear = "matches-per-year"
	ChartTeamWins       = "team-wins"
)

// --------------------------------------------------------------------------
// Config struct: populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Backend (the IPL stats REST API)
	BackendURL          string        `validate:"required,url"`
	BackendTimeout      time.Duration `validate:"gt=0"`
	BackendRateLimitRPM int           `validate:"gte=0"`

	// API server
	APIHost     string `validate:"required"`
	APIPort     int    `validate:"gt=0,lte=65535"`
	Environment string `validate:"oneof=development staging production"`
	LogLevel    string `validate:"oneof=debug info warn error"`

	// CORS
	CORSAllowOrigins []string `validate:"min=1"`

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int           `validate:"gt=0"`
	RateLimitWindow   time.Duration `validate:"gt=0"`

	// Cache (rendered charts only)
	CacheEnabled bool
	ChartTTL     time.Duration `validate:"gt=0"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		BackendURL:          strings.TrimRight(envOr("BACKEND_URL", "http://localhost:8000/api"), "/"),
		BackendTimeout:      time.Duration(envInt("BACKEND_TIMEOUT_SECONDS", 10)) * time.Second,
		BackendRateLimitRPM: envInt("BACKEND_RATE_LIMIT_RPM", 0),

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8080)),
		Environment: envOr("ENVIRONMENT", "development"),
		LogLevel:    strings.ToLower(envOr("LOG_LEVEL", "info")),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),
		ChartTTL:     time.Duration(envInt("CHART_TTL_MINUTES", 10)) * time.Minute,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and reports the first offending variable.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config %s: failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
