// Package dashboard holds the page controllers: per-page state machines that
// load the season list, pick a season and turn the fetched dataset into a
// view model through internal/transform.
package dashboard

import (
	"context"
	"errors"

	"github.com/albapepper/ipl-dashboard/internal/iplapi"
)

// State is the lifecycle position of a page controller.
type State int

const (
	Idle State = iota
	LoadingPeriods
	PeriodsLoaded
	PeriodsError
	LoadingDataset
	DatasetLoaded
	DatasetError
)

var stateNames = [...]string{
	Idle:           "idle",
	LoadingPeriods: "loading_periods",
	PeriodsLoaded:  "periods_loaded",
	PeriodsError:   "periods_error",
	LoadingDataset: "loading_dataset",
	DatasetLoaded:  "dataset_loaded",
	DatasetError:   "dataset_error",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// MarshalText encodes the state by name in JSON and YAML snapshots.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Loading reports whether a fetch is in flight.
func (s State) Loading() bool {
	return s == LoadingPeriods || s == LoadingDataset
}

var (
	// ErrNoPeriods is returned by Select before a non-empty season list is loaded.
	ErrNoPeriods = errors.New("no seasons loaded")
	// ErrUnknownPeriod is returned by Select for a season outside the loaded list.
	ErrUnknownPeriod = errors.New("unknown season")
	// ErrSuperseded marks a response discarded because a newer request was issued.
	ErrSuperseded = errors.New("superseded by a newer request")
	// ErrUnknownView is returned by NewPage for an unrecognised page name.
	ErrUnknownView = errors.New("unknown view")
)

// Backend is the subset of the API client the controllers depend on.
// *iplapi.Client satisfies it.
type Backend interface {
	AvailableYears(ctx context.Context) (*iplapi.Envelope, error)
	MatchesPerYear(ctx context.Context) (*iplapi.Envelope, error)
	TeamWinsStacked(ctx context.Context) (*iplapi.Envelope, error)
	ExtraRunsPerTeam(ctx context.Context, year iplapi.Period) (*iplapi.Envelope, error)
	EconomicalBowlers(ctx context.Context, year iplapi.Period) (*iplapi.Envelope, error)
	MatchesPlayedVsWon(ctx context.Context, year iplapi.Period) (*iplapi.Envelope, error)
	TeamsList(ctx context.Context) (*iplapi.Envelope, error)
}

var _ Backend = (*iplapi.Client)(nil)
