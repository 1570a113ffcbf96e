package render

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/albapepper/ipl-dashboard/internal/dashboard"
	"github.com/albapepper/ipl-dashboard/internal/iplapi"
	"github.com/albapepper/ipl-dashboard/internal/transform"
)

func TestTable_AlignsByDisplayWidth(t *testing.T) {
	tbl := NewTable("Team", "Wins").AlignRight(1)
	tbl.Append("Mumbai", "5")
	tbl.Append("チーム", "12")
	tbl.Append("Only one cell")

	var buf bytes.Buffer
	_, err := tbl.WriteTo(&buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Team           Wins", lines[0])
	assert.Equal(t, "-------------  ----", lines[1])
	assert.Equal(t, "Mumbai            5", lines[2])
	assert.Equal(t, "チーム           12", lines[3])
	assert.Equal(t, "Only one cell", lines[4])
}

func TestEncode(t *testing.T) {
	v := map[string]any{"season": "2017", "count": 3}

	var js bytes.Buffer
	require.NoError(t, Encode(&js, FormatJSON, v))
	assert.JSONEq(t, `{"season":"2017","count":3}`, js.String())

	var ym bytes.Buffer
	require.NoError(t, Encode(&ym, FormatYAML, v))
	assert.Equal(t, "count: 3\nseason: \"2017\"\n", ym.String())

	assert.ErrorIs(t, Encode(&bytes.Buffer{}, "xml", v), ErrUnsupportedFormat)
}

func rows(t *testing.T, data string) []iplapi.RawRecord {
	t.Helper()
	env := &iplapi.Envelope{Success: true, Data: json.RawMessage(data)}
	recs, err := env.Records()
	require.NoError(t, err)
	return recs
}

func TestPage_BowlersTable(t *testing.T) {
	snap := dashboard.Snapshot{
		View:     "bowlers",
		State:    dashboard.DatasetLoaded,
		Periods:  []iplapi.Period{"2016", "2017"},
		Selected: "2017",
		Data: transform.Bowlers(rows(t, `[
			{"bowler": "Rashid Khan", "economy_rate": 6.18, "overs_bowled": 58, "runs_conceded": 359, "wickets_taken": 17},
			{"bowler": "B Kumar", "economy_rate": 6.5, "overs_bowled": 52.2, "runs_conceded": 340, "wickets_taken": 26}]`)),
	}

	var buf bytes.Buffer
	require.NoError(t, Page(&buf, FormatTable, snap))
	out := buf.String()

	assert.Contains(t, out, "Most Economical Bowlers (2017)\n")
	assert.Contains(t, out, "Seasons: 2016, 2017")
	assert.Contains(t, out, "#1 Rashid Khan  economy 6.18  (58.0 overs, 359 runs, 17 wickets)")
	assert.Contains(t, out, "Best economy: 6.18 (Rashid Khan)  Average: 6.34  Bowlers: 2")
	assert.Contains(t, out, "Rank  Bowler       Economy  Overs  Runs  Wickets")
}

func TestPage_ErrorAndEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Page(&buf, FormatTable, dashboard.Snapshot{
		View: "team-stats", State: dashboard.DatasetError, Selected: "2017", Error: "backend down",
	}))
	assert.Contains(t, buf.String(), "Error: backend down")
	assert.Contains(t, buf.String(), "Seasons: none")

	buf.Reset()
	require.NoError(t, Page(&buf, FormatTable, dashboard.Snapshot{
		View: "extra-runs", State: dashboard.DatasetLoaded, Data: transform.ExtraRuns(nil),
	}))
	assert.Contains(t, buf.String(), "No data available")
}

func TestPage_TeamStatsTable(t *testing.T) {
	snap := dashboard.Snapshot{
		View: "team-stats",
		Data: transform.TeamStats(rows(t, `[
			{"team": "Mumbai Indians", "matches_played": 17, "matches_won": 12, "win_percentage": 70.59}]`)),
	}
	var buf bytes.Buffer
	require.NoError(t, Page(&buf, FormatTable, snap))
	assert.Contains(t, buf.String(), "Top team: Mumbai Indians  Total matches: 17  Average win rate: 70.6%  Teams: 1")
	assert.Contains(t, buf.String(), "Excellent")
}

func TestPage_YAMLUsesStateNames(t *testing.T) {
	snap := dashboard.Snapshot{
		View:     "extra-runs",
		State:    dashboard.DatasetLoaded,
		Periods:  []iplapi.Period{"2017"},
		Selected: "2017",
		Data:     transform.ExtraRuns(rows(t, `[{"team": "Delhi Daredevils", "extra_runs": 106}]`)),
	}
	var buf bytes.Buffer
	require.NoError(t, Page(&buf, FormatYAML, snap))

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, "dataset_loaded", back["state"])
	assert.Equal(t, "2017", back["selected"])
	assert.Equal(t, []any{"2017"}, back["periods"])
}

type homeBackend struct{ dashboard.Backend }

func (homeBackend) MatchesPerYear(context.Context) (*iplapi.Envelope, error) {
	return &iplapi.Envelope{Success: true, Data: json.RawMessage(`[{"year": 2008, "matches_count": 58}]`)}, nil
}

func (homeBackend) TeamWinsStacked(context.Context) (*iplapi.Envelope, error) {
	return &iplapi.Envelope{Success: true, Data: json.RawMessage(`[
		{"year": 2008, "team": "A", "wins": 3},
		{"year": 2009, "team": "B", "wins": 2}]`)}, nil
}

func TestHome_Table(t *testing.T) {
	h := dashboard.NewHome(homeBackend{}, nil)
	require.NoError(t, h.Mount(context.Background()))

	var buf bytes.Buffer
	require.NoError(t, Home(&buf, FormatTable, h.Snapshot()))
	out := buf.String()

	assert.Contains(t, out, "IPL Dashboard\n=============\n")
	assert.Contains(t, out, "Total matches: 58 across 1 seasons (peak 2008 with 58)")
	assert.Contains(t, out, "Season  A  B\n")
	assert.Contains(t, out, "2008    3  -\n")
	assert.Contains(t, out, "2009    -  2\n")
}
