package transform

import (
	"sort"

	"github.com/albapepper/ipl-dashboard/internal/iplapi"
)

const (
	// BowlersChartLimit caps the bowlers shown in the chart and table.
	BowlersChartLimit = 10
	// BowlerLabelWidth is the display width of a bowler chart label.
	BowlerLabelWidth = 15
)

// BowlerRow is one bowler in the chart/table list.
type BowlerRow struct {
	Rank         int     `json:"rank" yaml:"rank"`
	BowlerName   string  `json:"bowler_name" yaml:"bowler_name"`
	EconomyRate  float64 `json:"economy_rate" yaml:"economy_rate"`
	OversBowled  float64 `json:"overs_bowled" yaml:"overs_bowled"`
	RunsConceded int     `json:"runs_conceded" yaml:"runs_conceded"`
	WicketsTaken int     `json:"wickets_taken" yaml:"wickets_taken"`
}

// TopBowler is a highlight card; the name is never truncated.
type TopBowler struct {
	Bowler       string  `json:"bowler" yaml:"bowler"`
	EconomyRate  float64 `json:"economy_rate" yaml:"economy_rate"`
	OversBowled  float64 `json:"overs_bowled" yaml:"overs_bowled"`
	RunsConceded int     `json:"runs_conceded" yaml:"runs_conceded"`
	WicketsTaken int     `json:"wickets_taken" yaml:"wickets_taken"`
}

// BowlersSummary aggregates the capped list.
type BowlersSummary struct {
	BestEconomy float64 `json:"best_economy" yaml:"best_economy"`
	AvgEconomy  float64 `json:"avg_economy" yaml:"avg_economy"`
	Count       int     `json:"count" yaml:"count"`
	BestBowler  string  `json:"best_bowler,omitempty" yaml:"best_bowler,omitempty"`
}

// BowlersView is the economical-bowlers page model.
type BowlersView struct {
	Bowlers []BowlerRow    `json:"bowlers" yaml:"bowlers"`
	Top     []TopBowler    `json:"top" yaml:"top"`
	Summary BowlersSummary `json:"summary" yaml:"summary"`
}

// Bowlers shapes economical-bowler rows for one season.
//
// The backend promises ascending economy order; rows are stable-sorted by
// economy anyway so rankings hold even if it does not. For sorted input the
// result is identical to trusting the backend order.
func Bowlers(rows []iplapi.RawRecord) BowlersView {
	all := make([]TopBowler, 0, len(rows))
	for _, rec := range rows {
		all = append(all, TopBowler{
			Bowler:       Name(rec, "bowler", "bowler_name"),
			EconomyRate:  Float(rec, "economy_rate"),
			OversBowled:  Float(rec, "overs_bowled"),
			RunsConceded: Int(rec, "runs_conceded"),
			WicketsTaken: Int(rec, "wickets_taken"),
		})
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].EconomyRate < all[j].EconomyRate
	})

	view := BowlersView{
		Bowlers: make([]BowlerRow, 0, min(len(all), BowlersChartLimit)),
		Top:     make([]TopBowler, 0, min(len(all), TopN)),
	}
	view.Top = append(view.Top, all[:min(len(all), TopN)]...)

	var sum float64
	for i, b := range all[:min(len(all), BowlersChartLimit)] {
		view.Bowlers = append(view.Bowlers, BowlerRow{
			Rank:         i + 1,
			BowlerName:   Label(b.Bowler, BowlerLabelWidth),
			EconomyRate:  b.EconomyRate,
			OversBowled:  b.OversBowled,
			RunsConceded: b.RunsConceded,
			WicketsTaken: b.WicketsTaken,
		})
		sum += b.EconomyRate
	}

	if n := len(view.Bowlers); n > 0 {
		view.Summary = BowlersSummary{
			BestEconomy: Round(view.Bowlers[0].EconomyRate, 2),
			AvgEconomy:  Round(sum/float64(n), 2),
			Count:       n,
			BestBowler:  all[0].Bowler,
		}
	}
	return view
}
