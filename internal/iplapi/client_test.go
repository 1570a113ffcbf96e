package iplapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/ipl-dashboard/internal/logger"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/", time.Second, 0, logger.Discard())
}

func TestClient_EndpointPaths(t *testing.T) {
	var got []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.URL.Path)
		w.Write([]byte(`{"success":true,"data":[]}`))
	})
	ctx := context.Background()

	calls := []func() (*Envelope, error){
		func() (*Envelope, error) { return c.AvailableYears(ctx) },
		func() (*Envelope, error) { return c.MatchesPerYear(ctx) },
		func() (*Envelope, error) { return c.TeamWinsStacked(ctx) },
		func() (*Envelope, error) { return c.ExtraRunsPerTeam(ctx, "2017") },
		func() (*Envelope, error) { return c.EconomicalBowlers(ctx, "2015") },
		func() (*Envelope, error) { return c.MatchesPlayedVsWon(ctx, "2010") },
		func() (*Envelope, error) { return c.TeamsList(ctx) },
	}
	for _, call := range calls {
		env, err := call()
		require.NoError(t, err)
		assert.True(t, env.Success)
	}

	assert.Equal(t, []string{
		"/api/available-years/",
		"/api/matches-per-year/",
		"/api/team-wins-stacked/",
		"/api/extra-runs-per-team/2017/",
		"/api/economical-bowlers/2015/",
		"/api/matches-played-vs-won/2010/",
		"/api/teams-list/",
	}, got)
}

func TestClient_ApplicationFailureOn500(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":"relation does not exist"}`))
	})

	env, err := c.EconomicalBowlers(context.Background(), "2016")
	require.NoError(t, err)
	assert.False(t, env.Success)

	var apiErr *APIError
	require.ErrorAs(t, env.Err("fallback"), &apiErr)
	assert.Equal(t, "relation does not exist", apiErr.Message)
}

func TestClient_TransportFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-json 200", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>oops</html>"))
		}},
		{"bare 502", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("bad gateway"))
		}},
		{"timeout", func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
			w.Write([]byte(`{"success":true}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			c := NewClient(srv.URL, 100*time.Millisecond, 0, logger.Discard())

			env, err := c.AvailableYears(context.Background())
			assert.Nil(t, env)
			assert.ErrorIs(t, err, ErrTransport)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second, 0, logger.Discard())
	_, err := c.TeamsList(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
}

func TestClient_RespectsContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[]}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.AvailableYears(ctx)
	assert.Error(t, err)
}

func TestEnvelope_Err(t *testing.T) {
	assert.NoError(t, (&Envelope{Success: true}).Err("x"))

	err := (&Envelope{Success: false}).Err("Failed to fetch matches data")
	assert.EqualError(t, err, "Failed to fetch matches data")

	err = (&Envelope{Success: false, Error: "  boom "}).Err("fallback")
	assert.EqualError(t, err, "boom")
}

func TestEnvelope_Records(t *testing.T) {
	env := &Envelope{Success: true, Data: json.RawMessage(`[{"team":"A","extra_runs":12},"junk",{"team":"B"}]`)}
	rows, err := env.Records()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0]["team"])
	assert.Equal(t, json.Number("12"), rows[0]["extra_runs"])

	empty, err := (&Envelope{Success: true}).Records()
	require.NoError(t, err)
	assert.Empty(t, empty)

	null, err := (&Envelope{Success: true, Data: json.RawMessage("null")}).Records()
	require.NoError(t, err)
	assert.Empty(t, null)

	_, err = (&Envelope{Success: true, Data: json.RawMessage(`{"not":"a list"}`)}).Records()
	assert.Error(t, err)
}

func TestEnvelope_Periods(t *testing.T) {
	env := &Envelope{Success: true, Data: json.RawMessage(`["2008", 2009, 2010.0, " ", null, "2011"]`)}
	periods, err := env.Periods()
	require.NoError(t, err)
	assert.Equal(t, []Period{"2008", "2009", "2010", "2011"}, periods)
}

func TestEnvelope_Teams(t *testing.T) {
	env := &Envelope{Success: true, Data: json.RawMessage(
		`["Mumbai Indians", {"id": 2, "name": "Chennai Super Kings", "short_name": "CSK"}, {"id": 3}]`)}
	teams, err := env.Teams()
	require.NoError(t, err)
	assert.Equal(t, []string{"Mumbai Indians", "Chennai Super Kings"}, teams)
}
