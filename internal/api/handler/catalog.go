package handler

import (
	"net/http"

	"github.com/albapepper/ipl-dashboard/internal/api/respond"
	"github.com/albapepper/ipl-dashboard/internal/iplapi"
)

// YearsResponse lists the seasons available in the backend.
type YearsResponse struct {
	Years []iplapi.Period `json:"years"`
	Count int             `json:"count"`
}

// TeamsResponse lists every team known to the backend.
type TeamsResponse struct {
	Teams []string `json:"teams"`
	Count int      `json:"count"`
}

// GetYears returns the season list.
// @Summary List seasons
// @Description Returns the seasons available in the statistics backend, in backend order.
// @Tags catalog
// @Produce json
// @Success 200 {object} YearsResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/years [get]
func (h *Handler) GetYears(w http.ResponseWriter, r *http.Request) {
	env, err := h.backend.AvailableYears(r.Context())
	if err == nil {
		err = env.Err("Failed to fetch available years")
	}
	if err != nil {
		h.backendError(w, "Failed to fetch available years", err)
		return
	}
	years, err := env.Periods()
	if err != nil {
		h.backendError(w, "Failed to decode available years", err)
		return
	}
	respond.JSON(w, r, YearsResponse{Years: years, Count: len(years)})
}

// GetTeams returns the team list.
// @Summary List teams
// @Description Returns every team known to the statistics backend.
// @Tags catalog
// @Produce json
// @Success 200 {object} TeamsResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/teams [get]
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	env, err := h.backend.TeamsList(r.Context())
	if err == nil {
		err = env.Err("Failed to fetch teams")
	}
	if err != nil {
		h.backendError(w, "Failed to fetch teams", err)
		return
	}
	teams, err := env.Teams()
	if err != nil {
		h.backendError(w, "Failed to decode teams", err)
		return
	}
	respond.JSON(w, r, TeamsResponse{Teams: teams, Count: len(teams)})
}

func (h *Handler) backendError(w http.ResponseWriter, message string, err error) {
	h.logger.Warn(message, "error", err)
	respond.WriteErrorDetail(w, http.StatusBadGateway, respond.CodeBackend, message, err.Error())
}
