package dashboard

import (
	"context"
	"log/slog"

	"github.com/albapepper/ipl-dashboard/internal/config"
	"github.com/albapepper/ipl-dashboard/internal/iplapi"
)

// Dataset runs one controller cycle for a chart and returns its view model
// along with the season it covers. name is a season-scoped view or one of
// the home charts; year is ignored for home charts and defaults to the
// page's default season otherwise.
//
// A page with no seasons returns ErrNoPeriods. Backend failures are returned
// as they were recorded by the controller.
func Dataset(ctx context.Context, b Backend, name string, year iplapi.Period, logger *slog.Logger) (any, iplapi.Period, error) {
	switch name {
	case config.ChartMatchesPerYear:
		home := NewHome(b, logger)
		if err := home.LoadMatches(ctx); err != nil {
			return nil, "", err
		}
		v, _ := home.Matches()
		return v, "", nil
	case config.ChartTeamWins:
		home := NewHome(b, logger)
		if err := home.LoadTeamWins(ctx); err != nil {
			return nil, "", err
		}
		v, _ := home.TeamWins()
		return v, "", nil
	}

	page, err := NewPage(name, b, logger)
	if err != nil {
		return nil, "", err
	}
	if err := page.Open(ctx, year); err != nil {
		return nil, "", err
	}
	snap := page.Snapshot()
	if snap.Data == nil {
		return nil, "", ErrNoPeriods
	}
	return snap.Data, snap.Selected, nil
}
