package transform

import (
	"math"
	"sort"

	"github.com/albapepper/ipl-dashboard/internal/iplapi"
)

// TeamLabelWidth is the display width of a team label on the extra-runs chart.
const TeamLabelWidth = 20

// ExtraRunsRow is one bowling team in the extra-runs chart.
type ExtraRunsRow struct {
	ID        int    `json:"id" yaml:"id"`
	TeamName  string `json:"team_name" yaml:"team_name"`
	ExtraRuns int    `json:"extra_runs" yaml:"extra_runs"`
	Wickets   int    `json:"wickets" yaml:"wickets"`
	NoBalls   int    `json:"no_balls" yaml:"no_balls"`
	Byes      int    `json:"byes" yaml:"byes"`
}

// TopExtraRuns is a highlight card with the full team name.
type TopExtraRuns struct {
	Team      string `json:"team" yaml:"team"`
	ExtraRuns int    `json:"extra_runs" yaml:"extra_runs"`
	Wickets   int    `json:"wickets" yaml:"wickets"`
	NoBalls   int    `json:"no_balls" yaml:"no_balls"`
	Byes      int    `json:"byes" yaml:"byes"`
}

// ExtraRunsSummary aggregates the full sorted list.
type ExtraRunsSummary struct {
	MaxExtraRuns int    `json:"max_extra_runs" yaml:"max_extra_runs"`
	AvgExtraRuns int    `json:"avg_extra_runs" yaml:"avg_extra_runs"`
	Count        int    `json:"count" yaml:"count"`
	Leader       string `json:"leader,omitempty" yaml:"leader,omitempty"`
}

// ExtraRunsView is the extra-runs page model.
type ExtraRunsView struct {
	Teams   []ExtraRunsRow   `json:"teams" yaml:"teams"`
	Top     []TopExtraRuns   `json:"top" yaml:"top"`
	Summary ExtraRunsSummary `json:"summary" yaml:"summary"`
}

// ExtraRuns shapes extra-run rows for one season, sorted descending by
// extra runs. Ties keep backend order.
func ExtraRuns(rows []iplapi.RawRecord) ExtraRunsView {
	all := make([]TopExtraRuns, 0, len(rows))
	for _, rec := range rows {
		all = append(all, TopExtraRuns{
			Team:      Name(rec, "team", "team_name"),
			ExtraRuns: Int(rec, "extra_runs"),
			Wickets:   Int(rec, "wickets"),
			NoBalls:   Int(rec, "no_balls"),
			Byes:      Int(rec, "byes"),
		})
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].ExtraRuns > all[j].ExtraRuns
	})

	view := ExtraRunsView{
		Teams: make([]ExtraRunsRow, 0, len(all)),
		Top:   make([]TopExtraRuns, 0, min(len(all), TopN)),
	}
	view.Top = append(view.Top, all[:min(len(all), TopN)]...)

	sum := 0
	for i, t := range all {
		view.Teams = append(view.Teams, ExtraRunsRow{
			ID:        i,
			TeamName:  Label(t.Team, TeamLabelWidth),
			ExtraRuns: t.ExtraRuns,
			Wickets:   t.Wickets,
			NoBalls:   t.NoBalls,
			Byes:      t.Byes,
		})
		sum += t.ExtraRuns
	}

	if n := len(all); n > 0 {
		view.Summary = ExtraRunsSummary{
			MaxExtraRuns: all[0].ExtraRuns,
			AvgExtraRuns: int(math.Round(float64(sum) / float64(n))),
			Count:        n,
			Leader:       all[0].Team,
		}
	}
	return view
}
