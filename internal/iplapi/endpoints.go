package iplapi

import "context"

// AvailableYears returns the seasons present in the backend.
func (c *Client) AvailableYears(ctx context.Context) (*Envelope, error) {
	return c.get(ctx, "/available-years/")
}

// MatchesPerYear returns {year, matches_count} rows.
func (c *Client) MatchesPerYear(ctx context.Context) (*Envelope, error) {
	return c.get(ctx, "/matches-per-year/")
}

// TeamWinsStacked returns flat {year, team, wins} rows.
func (c *Client) TeamWinsStacked(ctx context.Context) (*Envelope, error) {
	return c.get(ctx, "/team-wins-stacked/")
}

// ExtraRunsPerTeam returns extra runs conceded per bowling team in a season.
func (c *Client) ExtraRunsPerTeam(ctx context.Context, year Period) (*Envelope, error) {
	return c.get(ctx, yearPath("extra-runs-per-team", year))
}

// EconomicalBowlers returns bowler rows for a season, sorted ascending by
// economy rate on the backend.
func (c *Client) EconomicalBowlers(ctx context.Context, year Period) (*Envelope, error) {
	return c.get(ctx, yearPath("economical-bowlers", year))
}

// MatchesPlayedVsWon returns played/won/win-percentage rows per team in a season.
func (c *Client) MatchesPlayedVsWon(ctx context.Context, year Period) (*Envelope, error) {
	return c.get(ctx, yearPath("matches-played-vs-won", year))
}

// TeamsList returns every team known to the backend.
func (c *Client) TeamsList(ctx context.Context) (*Envelope, error) {
	return c.get(ctx, "/teams-list/")
}
