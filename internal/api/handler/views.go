package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/ipl-dashboard/internal/api/respond"
	"github.com/albapepper/ipl-dashboard/internal/dashboard"
	"github.com/albapepper/ipl-dashboard/internal/iplapi"
)

// GetHomeView returns the home page snapshot.
// @Summary Home page
// @Description Loads matches per season and the team-wins pivot concurrently. Each dataset carries its own error; the response is always 200.
// @Tags views
// @Produce json
// @Success 200 {object} dashboard.HomeSnapshot
// @Success 304 "Not modified"
// @Router /api/v1/views/home [get]
func (h *Handler) GetHomeView(w http.ResponseWriter, r *http.Request) {
	home := dashboard.NewHome(h.backend, h.logger)
	_ = home.Mount(r.Context()) // failures live in the snapshot
	respond.JSON(w, r, home.Snapshot())
}

// GetView returns a season-scoped page snapshot.
// @Summary Season page
// @Description Loads the season list, selects the requested season (or the page default) and returns the shaped dataset. Backend failures are reported inside the snapshot with a 200.
// @Tags views
// @Produce json
// @Param view path string true "Page" Enums(bowlers, extra-runs, team-stats)
// @Param year query string false "Season (defaults to first season for bowlers, latest otherwise)"
// @Success 200 {object} dashboard.Snapshot
// @Success 304 "Not modified"
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/views/{view} [get]
func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	page, err := dashboard.NewPage(chi.URLParam(r, "view"), h.backend, h.logger)
	if err != nil {
		respond.WriteError(w, http.StatusNotFound, respond.CodeNotFound, err.Error())
		return
	}

	year := iplapi.Period(strings.TrimSpace(r.URL.Query().Get("year")))
	if err := page.Open(r.Context(), year); errors.Is(err, dashboard.ErrUnknownPeriod) {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeBadRequest, err.Error())
		return
	}
	respond.JSON(w, r, page.Snapshot())
}
