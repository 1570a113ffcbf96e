// Package iplapi provides the HTTP client for the IPL statistics backend.
//
// Every endpoint answers with the same JSON envelope
// {success, data, error?, message?}. The client surfaces transport failures
// as errors and hands application-level failures (success=false) back to the
// caller inside the envelope. No retries, no caching.
package iplapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTimeout is the connect/read ceiling applied to every request.
const DefaultTimeout = 10 * time.Second

// ErrTransport marks failures below the envelope: dial errors, timeouts,
// unreadable or non-JSON bodies.
var ErrTransport = errors.New("transport failure")

// Client is the HTTP client for all backend endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a backend client. requestsPerMinute <= 0 disables the
// client-side limiter; timeout <= 0 uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Limit(float64(requestsPerMinute) / 60.0)
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
}

// BaseURL returns the backend base URL the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// get performs a GET request against a backend endpoint and decodes the envelope.
func (c *Client) get(ctx context.Context, path string) (*Envelope, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: http request %s: %w", ErrTransport, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %w", ErrTransport, err)
	}

	c.logger.Debug("Backend request",
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start).Round(time.Millisecond))

	var env Envelope
	decodeErr := json.Unmarshal(body, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Django answers failures with a 500 carrying {success:false, error}.
		// That is the application channel, not a transport failure.
		if decodeErr == nil && !env.Success && (env.Error != "" || env.Message != "") {
			return &env, nil
		}
		return nil, fmt.Errorf("%w: backend %s returned %d: %s", ErrTransport, path, resp.StatusCode, truncate(body, 200))
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("%w: decode response %s: %w", ErrTransport, path, decodeErr)
	}
	return &env, nil
}

// yearPath builds "/<prefix>/<year>/" with the year path-escaped.
func yearPath(prefix string, year Period) string {
	return "/" + prefix + "/" + url.PathEscape(string(year)) + "/"
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}

// formatNumber renders a JSON number as a period identifier: integral values
// without a fractional part, anything else as the shortest float form.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
