package chart

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/ipl-dashboard/internal/iplapi"
	"github.com/albapepper/ipl-dashboard/internal/transform"
)

func records(t *testing.T, data string) []iplapi.RawRecord {
	t.Helper()
	env := &iplapi.Envelope{Success: true, Data: json.RawMessage(data)}
	rows, err := env.Records()
	require.NoError(t, err)
	return rows
}

func views(t *testing.T) map[string]any {
	return map[string]any{
		Bowlers: transform.Bowlers(records(t, `[
			{"bowler": "Rashid Khan", "economy_rate": 6.18},
			{"bowler": "B Kumar", "economy_rate": 6.5}]`)),
		ExtraRuns: transform.ExtraRuns(records(t, `[
			{"team": "Mumbai Indians", "extra_runs": 129},
			{"team": "Delhi Daredevils", "extra_runs": 106}]`)),
		TeamStats: transform.TeamStats(records(t, `[
			{"team": "Mumbai Indians", "matches_played": 17, "matches_won": 12, "win_percentage": 70.59},
			{"team": "Gujarat Lions", "matches_played": 14, "matches_won": 4, "win_percentage": 28.57}]`)),
		MatchesPerYear: transform.MatchesPerYear(records(t, `[
			{"year": 2008, "matches_count": 58},
			{"year": 2009, "matches_count": 57}]`)),
		TeamWins: transform.TeamWinsPivot(records(t, `[
			{"year": 2008, "team": "A", "wins": 3},
			{"year": 2008, "team": "B", "wins": 1},
			{"year": 2009, "team": "A", "wins": 5}]`)),
	}
}

func TestBuildAndRender_PNG(t *testing.T) {
	for name, view := range views(t) {
		t.Run(name, func(t *testing.T) {
			p, err := Build(view, "2017")
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, Render(p, PNG, &buf))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")))
		})
	}
}

func TestRender_Formats(t *testing.T) {
	p, err := Build(views(t)[Bowlers], "2017")
	require.NoError(t, err)

	var svg bytes.Buffer
	require.NoError(t, Render(p, SVG, &svg))
	assert.Contains(t, svg.String(), "<svg")

	var pdf bytes.Buffer
	require.NoError(t, Render(p, PDF, &pdf))
	assert.True(t, bytes.HasPrefix(pdf.Bytes(), []byte("%PDF")))

	err = Render(p, "gif", &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestBuild_EmptyViews(t *testing.T) {
	empty := []any{
		transform.Bowlers(nil),
		transform.ExtraRuns(nil),
		transform.TeamStats(nil),
		transform.MatchesPerYear(nil),
		transform.TeamWinsPivot(nil),
		nil,
	}
	for _, v := range empty {
		_, err := Build(v, "")
		assert.ErrorIs(t, err, ErrNoData, "%T", v)
	}
	assert.Equal(t, "no data available", ErrNoData.Error())
}

func TestBuild_UnsupportedView(t *testing.T) {
	_, err := Build("bowlers", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoData)
}

func TestNamesAndFormats(t *testing.T) {
	assert.Len(t, Names(), 5)
	assert.True(t, IsHome(TeamWins))
	assert.False(t, IsHome(Bowlers))
	assert.True(t, IsFormat(SVG))
	assert.False(t, IsFormat("jpg"))
	assert.Equal(t, "image/png", ContentType(PNG))
	assert.Equal(t, "Extra Runs Conceded per Team (2016)", titled("Extra Runs Conceded per Team", "2016"))
}
