package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/ipl-dashboard/internal/api/respond"
	"github.com/albapepper/ipl-dashboard/internal/cache"
	"github.com/albapepper/ipl-dashboard/internal/chart"
	"github.com/albapepper/ipl-dashboard/internal/dashboard"
	"github.com/albapepper/ipl-dashboard/internal/iplapi"
)

// chartError carries the HTTP status for a failed chart lookup.
type chartError struct {
	status  int
	code    string
	message string
}

// GetChart renders a page chart as an image.
// @Summary Rendered chart
// @Description Renders the chart of a page for a season. Images are cached per dataset content, so a changed dataset is always redrawn.
// @Tags charts
// @Produce png
// @Produce image/svg+xml
// @Produce application/pdf
// @Param chart path string true "Chart" Enums(matches-per-year, team-wins, bowlers, extra-runs, team-stats)
// @Param format path string true "Image format" Enums(png, svg, pdf)
// @Param year query string false "Season (season pages only)"
// @Success 200 {file} binary
// @Success 304 "Not modified"
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/charts/{chart}.{format} [get]
func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "chart")
	format := strings.ToLower(chi.URLParam(r, "format"))
	if !chart.IsFormat(format) {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeBadRequest,
			"Format must be one of "+strings.Join(chart.Formats(), ", "))
		return
	}

	year := iplapi.Period(strings.TrimSpace(r.URL.Query().Get("year")))
	data, season, cerr := h.chartData(r, name, year)
	if cerr != nil {
		respond.WriteError(w, cerr.status, cerr.code, cerr.message)
		return
	}

	dataset, err := json.Marshal(data)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusInternalServerError, respond.CodeInternal, "Failed to encode dataset", err.Error())
		return
	}
	key := cache.Key{Chart: name, Season: season, Format: format, Dataset: cache.ComputeETag(dataset)}

	if img, etag, ok := h.cache.Get(key); ok {
		respond.Bytes(w, r, chart.ContentType(format), img, etag, h.cache.TTL(), true)
		return
	}

	p, err := chart.Build(data, season)
	if errors.Is(err, chart.ErrNoData) {
		respond.WriteError(w, http.StatusNotFound, respond.CodeNoData, "No data available")
		return
	}
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusInternalServerError, respond.CodeInternal, "Failed to build chart", err.Error())
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(p, format, &buf); err != nil {
		respond.WriteErrorDetail(w, http.StatusInternalServerError, respond.CodeInternal, "Failed to render chart", err.Error())
		return
	}

	etag := h.cache.Set(key, buf.Bytes())
	respond.Bytes(w, r, chart.ContentType(format), buf.Bytes(), etag, h.cache.TTL(), false)
}

// chartData runs the controller behind a chart and returns its view model.
func (h *Handler) chartData(r *http.Request, name string, year iplapi.Period) (any, iplapi.Period, *chartError) {
	data, season, err := dashboard.Dataset(r.Context(), h.backend, name, year, h.logger)
	switch {
	case err == nil:
		return data, season, nil
	case errors.Is(err, dashboard.ErrUnknownView):
		return nil, "", &chartError{http.StatusNotFound, respond.CodeNotFound, "Unknown chart " + name}
	case errors.Is(err, dashboard.ErrUnknownPeriod):
		return nil, "", &chartError{http.StatusBadRequest, respond.CodeBadRequest, err.Error()}
	case errors.Is(err, dashboard.ErrNoPeriods):
		return nil, "", &chartError{http.StatusNotFound, respond.CodeNoData, "No seasons available"}
	default:
		h.logger.Warn("Chart dataset unavailable", "chart", name, "year", year, "error", err)
		return nil, "", &chartError{http.StatusBadGateway, respond.CodeBackend, err.Error()}
	}
}
