package transform

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/albapepper/ipl-dashboard/internal/iplapi"
)

// HomeChartTeams caps the team series drawn on the stacked wins chart.
const HomeChartTeams = 10

// --------------------------------------------------------------------------
// Matches per year
// --------------------------------------------------------------------------

// MatchesRow is one season of the matches-per-year chart.
type MatchesRow struct {
	Year         iplapi.Period `json:"year" yaml:"year"`
	MatchesCount int           `json:"matches_count" yaml:"matches_count"`
}

// MatchesSummary aggregates all seasons.
type MatchesSummary struct {
	TotalMatches int           `json:"total_matches" yaml:"total_matches"`
	Count        int           `json:"count" yaml:"count"`
	PeakYear     iplapi.Period `json:"peak_year,omitempty" yaml:"peak_year,omitempty"`
	PeakMatches  int           `json:"peak_matches" yaml:"peak_matches"`
}

// MatchesView is the matches-per-year chart model.
type MatchesView struct {
	Years   []MatchesRow   `json:"years" yaml:"years"`
	Summary MatchesSummary `json:"summary" yaml:"summary"`
}

// MatchesPerYear keeps backend order (ascending by season). Rows without a
// usable year are dropped.
func MatchesPerYear(rows []iplapi.RawRecord) MatchesView {
	view := MatchesView{Years: make([]MatchesRow, 0, len(rows))}
	for _, rec := range rows {
		year, ok := iplapi.PeriodOf(rec["year"])
		if !ok {
			continue
		}
		n := Int(rec, "matches_count")
		view.Years = append(view.Years, MatchesRow{Year: year, MatchesCount: n})
		view.Summary.TotalMatches += n
		if view.Summary.PeakYear == "" || n > view.Summary.PeakMatches {
			view.Summary.PeakYear = year
			view.Summary.PeakMatches = n
		}
	}
	view.Summary.Count = len(view.Years)
	return view
}

// --------------------------------------------------------------------------
// Team wins pivot
// --------------------------------------------------------------------------

// PivotRow holds one season with a win count per team that won there.
// Teams without a win in the season have no entry.
type PivotRow struct {
	Year iplapi.Period
	Wins map[string]int
	// teams keeps first-appearance order for stable encoding.
	teams []string
}

// Teams returns the teams present in this season, in first-appearance order.
func (r PivotRow) Teams() []string { return r.teams }

// MarshalJSON flattens the row: {"year": "2008", "A": 3, "B": 1}.
func (r PivotRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"year":`)
	y, err := json.Marshal(r.Year)
	if err != nil {
		return nil, err
	}
	buf.Write(y)
	for _, team := range r.teams {
		k, err := json.Marshal(team)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(k)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(r.Wins[team]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML flattens the row the same way as MarshalJSON.
func (r PivotRow) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "year"},
		&yaml.Node{Kind: yaml.ScalarNode, Value: string(r.Year), Style: yaml.DoubleQuotedStyle},
	)
	for _, team := range r.teams {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: team},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(r.Wins[team])},
		)
	}
	return node, nil
}

// TeamWinsView is the stacked team-wins chart model.
type TeamWinsView struct {
	Years      []iplapi.Period `json:"years" yaml:"years"`
	Teams      []string        `json:"teams" yaml:"teams"`
	ChartTeams []string        `json:"chart_teams" yaml:"chart_teams"`
	Rows       []PivotRow      `json:"data" yaml:"data"`
}

// TeamWinsPivot groups flat {year, team, wins} rows by season then team.
// There is no aggregation: a repeated (season, team) pair overwrites the
// earlier one. Rows without a usable year are dropped.
func TeamWinsPivot(rows []iplapi.RawRecord) TeamWinsView {
	byYear := make(map[iplapi.Period]*PivotRow)
	seenTeam := make(map[string]bool)
	view := TeamWinsView{
		Years: []iplapi.Period{},
		Teams: []string{},
	}

	for _, rec := range rows {
		year, ok := iplapi.PeriodOf(rec["year"])
		if !ok {
			continue
		}
		team := Name(rec, "team", "team_name")

		row, exists := byYear[year]
		if !exists {
			row = &PivotRow{Year: year, Wins: make(map[string]int)}
			byYear[year] = row
			view.Years = append(view.Years, year)
		}
		if _, has := row.Wins[team]; !has {
			row.teams = append(row.teams, team)
		}
		row.Wins[team] = Int(rec, "wins")

		if !seenTeam[team] {
			seenTeam[team] = true
			view.Teams = append(view.Teams, team)
		}
	}

	SortPeriods(view.Years)
	view.ChartTeams = append([]string{}, view.Teams[:min(len(view.Teams), HomeChartTeams)]...)
	view.Rows = make([]PivotRow, 0, len(view.Years))
	for _, y := range view.Years {
		view.Rows = append(view.Rows, *byYear[y])
	}
	return view
}

// SortPeriods orders periods numerically when every one is an integer and
// lexically otherwise.
func SortPeriods(periods []iplapi.Period) {
	numeric := true
	for _, p := range periods {
		if _, err := strconv.Atoi(string(p)); err != nil {
			numeric = false
			break
		}
	}
	sort.SliceStable(periods, func(i, j int) bool {
		if numeric {
			a, _ := strconv.Atoi(string(periods[i]))
			b, _ := strconv.Atoi(string(periods[j]))
			return a < b
		}
		return periods[i] < periods[j]
	})
}
