package transform

import (
	"sort"

	"github.com/albapepper/ipl-dashboard/internal/iplapi"
)

// TeamChartLabelWidth is the display width of a team label on the played/won chart.
const TeamChartLabelWidth = 15

// TeamStatsRow is one team in the standings table.
type TeamStatsRow struct {
	Rank          int     `json:"rank" yaml:"rank"`
	TeamName      string  `json:"team_name" yaml:"team_name"`
	MatchesPlayed int     `json:"matches_played" yaml:"matches_played"`
	MatchesWon    int     `json:"matches_won" yaml:"matches_won"`
	MatchesLost   int     `json:"matches_lost" yaml:"matches_lost"`
	WinPercentage float64 `json:"win_percentage" yaml:"win_percentage"`
	Tier          Tier    `json:"tier" yaml:"tier"`
}

// TeamChartRow is one category of the played-vs-won bar chart.
type TeamChartRow struct {
	TeamName      string `json:"team_name" yaml:"team_name"`
	MatchesPlayed int    `json:"matches_played" yaml:"matches_played"`
	MatchesWon    int    `json:"matches_won" yaml:"matches_won"`
}

// TeamStatsSummary aggregates every team in the season.
type TeamStatsSummary struct {
	TotalMatches     int     `json:"total_matches" yaml:"total_matches"`
	AvgWinPercentage float64 `json:"avg_win_percentage" yaml:"avg_win_percentage"`
	Count            int     `json:"count" yaml:"count"`
	Leader           string  `json:"leader,omitempty" yaml:"leader,omitempty"`
}

// TeamStatsView is the matches-played-vs-won page model.
type TeamStatsView struct {
	Teams   []TeamStatsRow   `json:"teams" yaml:"teams"`
	Chart   []TeamChartRow   `json:"chart" yaml:"chart"`
	Summary TeamStatsSummary `json:"summary" yaml:"summary"`
}

// TeamStats shapes played/won rows for one season. Rows are sorted
// descending by win percentage (ties keep backend order) and ranked after
// sorting.
func TeamStats(rows []iplapi.RawRecord) TeamStatsView {
	teams := make([]TeamStatsRow, 0, len(rows))
	for _, rec := range rows {
		played := Int(rec, "matches_played")
		won := Int(rec, "matches_won")
		pct := Float(rec, "win_percentage")
		teams = append(teams, TeamStatsRow{
			TeamName:      Name(rec, "team", "team_name"),
			MatchesPlayed: played,
			MatchesWon:    won,
			MatchesLost:   played - won,
			WinPercentage: pct,
			Tier:          PerformanceTier(pct),
		})
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].WinPercentage > teams[j].WinPercentage
	})

	view := TeamStatsView{
		Teams: teams,
		Chart: make([]TeamChartRow, 0, len(teams)),
	}

	var pctSum float64
	for i := range teams {
		teams[i].Rank = i + 1
		view.Chart = append(view.Chart, TeamChartRow{
			TeamName:      Label(teams[i].TeamName, TeamChartLabelWidth),
			MatchesPlayed: teams[i].MatchesPlayed,
			MatchesWon:    teams[i].MatchesWon,
		})
		view.Summary.TotalMatches += teams[i].MatchesPlayed
		pctSum += teams[i].WinPercentage
	}

	if n := len(teams); n > 0 {
		view.Summary.AvgWinPercentage = Round(pctSum/float64(n), 1)
		view.Summary.Count = n
		view.Summary.Leader = teams[0].TeamName
	}
	return view
}
