package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/albapepper/ipl-dashboard/docs"
	"github.com/albapepper/ipl-dashboard/internal/cache"
	"github.com/albapepper/ipl-dashboard/internal/config"
	"github.com/albapepper/ipl-dashboard/internal/iplapi"
	"github.com/albapepper/ipl-dashboard/internal/logger"
)

// backendRoutes mimics the statistics backend: path -> (status, body).
var backendRoutes = map[string]struct {
	status int
	body   string
}{
	"/api/available-years/":            {200, `{"success": true, "data": [2016, 2017]}`},
	"/api/teams-list/":                 {200, `{"success": true, "data": ["Mumbai Indians", {"name": "Delhi Daredevils"}]}`},
	"/api/matches-per-year/":           {200, `{"success": true, "data": [{"year": 2016, "matches_count": 60}, {"year": 2017, "matches_count": 59}]}`},
	"/api/team-wins-stacked/":          {500, `{"success": false, "error": "team wins view missing"}`},
	"/api/economical-bowlers/2016/":    {200, `{"success": true, "data": [{"bowler": "Dhawal Kulkarni", "economy_rate": 6.38, "overs_bowled": 48.5}]}`},
	"/api/economical-bowlers/2017/":    {200, `{"success": true, "data": [{"bowler": "Rashid Khan", "economy_rate": 6.18, "overs_bowled": 58}]}`},
	"/api/extra-runs-per-team/2017/":   {500, `{"success": false, "error": "No deliveries for 2017"}`},
	"/api/matches-played-vs-won/2017/": {200, `{"success": true, "data": [{"team": "Mumbai Indians", "matches_played": 17, "matches_won": 12, "win_percentage": 70.59}]}`},
}

type testEnv struct {
	router  http.Handler
	backend *httptest.Server

	mu   sync.Mutex
	hits map[string]int
}

func (e *testEnv) hitCount(path string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hits[path]
}

func newTestEnv(t *testing.T, mutate func(*config.Config)) *testEnv {
	t.Helper()
	env := &testEnv{hits: map[string]int{}}
	env.backend = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.mu.Lock()
		env.hits[r.URL.Path]++
		env.mu.Unlock()
		route, ok := backendRoutes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("<h1>Not Found</h1>"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(route.status)
		w.Write([]byte(route.body))
	}))
	t.Cleanup(env.backend.Close)

	cfg := &config.Config{
		BackendURL:        env.backend.URL + "/api",
		BackendTimeout:    2 * time.Second,
		CORSAllowOrigins:  []string{"http://localhost:3000"},
		RateLimitEnabled:  false,
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		CacheEnabled:      true,
		ChartTTL:          time.Minute,
	}
	if mutate != nil {
		mutate(cfg)
	}
	client := iplapi.NewClient(cfg.BackendURL, cfg.BackendTimeout, 0, logger.Discard())
	env.router = NewRouter(client, cache.New(cfg.CacheEnabled, cfg.ChartTTL), cfg, logger.Discard())
	return env
}

func (e *testEnv) get(t *testing.T, path string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestRootAndHealth(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get(t, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "IPL Dashboard API", decode(t, rec)["name"])
	assert.NotEmpty(t, rec.Header().Get("X-Process-Time"))

	rec = env.get(t, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode(t, rec)["status"])

	rec = env.get(t, "/health/backend")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "connected", decode(t, rec)["backend"])

	rec = env.get(t, "/health/cache")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode(t, rec), "cache")
}

func TestHealthBackend_Unreachable(t *testing.T) {
	env := newTestEnv(t, nil)
	env.backend.Close()

	rec := env.get(t, "/health/backend")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy", decode(t, rec)["status"])
}

func TestYearsAndTeams(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get(t, "/api/v1/years")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"years": ["2016", "2017"], "count": 2}`, rec.Body.String())

	rec = env.get(t, "/api/v1/teams")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"teams": ["Mumbai Indians", "Delhi Daredevils"], "count": 2}`, rec.Body.String())
}

func TestGetView(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get(t, "/api/v1/views/bowlers")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "dataset_loaded", body["state"])
	assert.Equal(t, "2016", body["selected"], "bowlers opens on the first season")
	data := body["data"].(map[string]any)
	assert.Equal(t, "Dhawal Kulkarni", data["summary"].(map[string]any)["best_bowler"])

	rec = env.get(t, "/api/v1/views/bowlers?year=2017")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2017", decode(t, rec)["selected"])

	rec = env.get(t, "/api/v1/views/team-stats")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, "2017", body["selected"], "team stats opens on the latest season")
	teams := body["data"].(map[string]any)["teams"].([]any)
	assert.Equal(t, "Excellent", teams[0].(map[string]any)["tier"])
}

func TestGetView_DatasetErrorIsStill200(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get(t, "/api/v1/views/extra-runs")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "dataset_error", body["state"])
	assert.Equal(t, "No deliveries for 2017", body["error"])
	assert.Nil(t, body["data"])
}

func TestGetView_Rejections(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get(t, "/api/v1/views/umpires")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, rec)["error"].(map[string]any)["code"])

	rec = env.get(t, "/api/v1/views/bowlers?year=1999")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, env.hitCount("/api/economical-bowlers/1999/"))
}

func TestGetView_ETag(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get(t, "/api/v1/views/team-stats")
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	rec = env.get(t, "/api/v1/views/team-stats", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Equal(t, 2, env.hitCount("/api/matches-played-vs-won/2017/"), "datasets are always refetched")
}

func TestGetHomeView(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get(t, "/api/v1/views/home")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)

	matches := body["matches"].(map[string]any)
	assert.Equal(t, float64(119), matches["data"].(map[string]any)["summary"].(map[string]any)["total_matches"])

	wins := body["team_wins"].(map[string]any)
	assert.Equal(t, "team wins view missing", wins["error"])
	assert.Nil(t, wins["data"])
}

func TestGetChart(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get(t, "/api/v1/charts/bowlers.png?year=2017")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"))
	etag := rec.Header().Get("ETag")

	rec = env.get(t, "/api/v1/charts/bowlers.png?year=2017")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, 2, env.hitCount("/api/economical-bowlers/2017/"))

	rec = env.get(t, "/api/v1/charts/bowlers.png?year=2017", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, rec.Code)

	rec = env.get(t, "/api/v1/charts/matches-per-year.svg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
}

func TestGetChart_Errors(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/api/v1/charts/bowlers.gif", http.StatusBadRequest, "BAD_REQUEST"},
		{"/api/v1/charts/umpires.png", http.StatusNotFound, "NOT_FOUND"},
		{"/api/v1/charts/bowlers.png?year=1999", http.StatusBadRequest, "BAD_REQUEST"},
		{"/api/v1/charts/extra-runs.png", http.StatusBadGateway, "BACKEND_ERROR"},
		{"/api/v1/charts/team-wins.png", http.StatusBadGateway, "BACKEND_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := env.get(t, tt.path)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decode(t, rec)["error"].(map[string]any)["code"])
		})
	}
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.RateLimitEnabled = true
		cfg.RateLimitRequests = 2
		cfg.RateLimitWindow = time.Hour
	})

	assert.Equal(t, http.StatusOK, env.get(t, "/health").Code)
	rec := env.get(t, "/health")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "3600", rec.Header().Get("Retry-After"))
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get(t, "/health", "Origin", "http://localhost:3000")
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = env.get(t, "/health", "Origin", "http://evil.example")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSwaggerDoc(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get(t, "/docs/doc.json")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "IPL Dashboard API", body["info"].(map[string]any)["title"])
	assert.Contains(t, body["paths"], "/api/v1/views/{view}")
}
