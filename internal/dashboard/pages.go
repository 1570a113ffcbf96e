package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/albapepper/ipl-dashboard/internal/config"
	"github.com/albapepper/ipl-dashboard/internal/iplapi"
	"github.com/albapepper/ipl-dashboard/internal/transform"
)

// NewBowlers builds the economical-bowlers page. It opens on the first season.
func NewBowlers(b Backend, logger *slog.Logger) *PeriodController[transform.BowlersView] {
	return newPeriodController(config.ViewBowlers, b,
		func(ctx context.Context, b Backend, year iplapi.Period) (*iplapi.Envelope, error) {
			return b.EconomicalBowlers(ctx, year)
		},
		transform.Bowlers, FirstPeriod, "Failed to fetch bowlers data", logger)
}

// NewExtraRuns builds the extra-runs page. It opens on the latest season.
func NewExtraRuns(b Backend, logger *slog.Logger) *PeriodController[transform.ExtraRunsView] {
	return newPeriodController(config.ViewExtraRuns, b,
		func(ctx context.Context, b Backend, year iplapi.Period) (*iplapi.Envelope, error) {
			return b.ExtraRunsPerTeam(ctx, year)
		},
		transform.ExtraRuns, LastPeriod, "Failed to fetch extra runs data", logger)
}

// NewTeamStats builds the matches-played-vs-won page. It opens on the latest season.
func NewTeamStats(b Backend, logger *slog.Logger) *PeriodController[transform.TeamStatsView] {
	return newPeriodController(config.ViewTeamStats, b,
		func(ctx context.Context, b Backend, year iplapi.Period) (*iplapi.Envelope, error) {
			return b.MatchesPlayedVsWon(ctx, year)
		},
		transform.TeamStats, LastPeriod, "Failed to fetch team stats data", logger)
}

// NewPage builds a season-scoped page by name.
func NewPage(name string, b Backend, logger *slog.Logger) (Page, error) {
	switch name {
	case config.ViewBowlers:
		return NewBowlers(b, logger), nil
	case config.ViewExtraRuns:
		return NewExtraRuns(b, logger), nil
	case config.ViewTeamStats:
		return NewTeamStats(b, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
}
