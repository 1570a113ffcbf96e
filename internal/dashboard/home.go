package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/albapepper/ipl-dashboard/internal/config"
	"github.com/albapepper/ipl-dashboard/internal/iplapi"
	"github.com/albapepper/ipl-dashboard/internal/transform"
)

const (
	matchesFallback  = "Failed to fetch matches data"
	teamWinsFallback = "Failed to fetch team wins data"
)

// Slot is one independently loaded dataset on the home page.
type Slot[V any] struct {
	Loading bool   `json:"loading" yaml:"loading"`
	Data    *V     `json:"data" yaml:"data"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// HomeSnapshot is an immutable copy of the home page state.
type HomeSnapshot struct {
	View     string                       `json:"view" yaml:"view"`
	Matches  Slot[transform.MatchesView]  `json:"matches" yaml:"matches"`
	TeamWins Slot[transform.TeamWinsView] `json:"team_wins" yaml:"team_wins"`
}

type slot[V any] struct {
	loading bool
	data    *V
	err     error
	seq     uint64
}

func (s *slot[V]) snapshot() Slot[V] {
	out := Slot[V]{Loading: s.loading}
	if s.data != nil {
		v := *s.data
		out.Data = &v
	}
	if s.err != nil {
		out.Error = s.err.Error()
	}
	return out
}

// HomeController drives the landing page: matches per season and the
// stacked team-wins pivot, loaded concurrently. A failure in one slot never
// affects the other.
type HomeController struct {
	backend Backend
	logger  *slog.Logger

	mu       sync.Mutex
	matches  slot[transform.MatchesView]
	teamWins slot[transform.TeamWinsView]
}

// NewHome builds the home page controller.
func NewHome(b Backend, logger *slog.Logger) *HomeController {
	if logger == nil {
		logger = slog.Default()
	}
	return &HomeController{backend: b, logger: logger.With("view", config.ViewHome)}
}

// Name returns the page name.
func (h *HomeController) Name() string { return config.ViewHome }

// Mount fetches both datasets concurrently and waits for both. The returned
// error joins the failures of either slot.
func (h *HomeController) Mount(ctx context.Context) error {
	var wg sync.WaitGroup
	var matchesErr, winsErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		matchesErr = h.LoadMatches(ctx)
	}()
	go func() {
		defer wg.Done()
		winsErr = h.LoadTeamWins(ctx)
	}()
	wg.Wait()

	return errors.Join(matchesErr, winsErr)
}

// LoadMatches fetches the matches-per-season slot alone.
func (h *HomeController) LoadMatches(ctx context.Context) error {
	return loadSlot(ctx, h, &h.matches, "matches per year",
		h.backend.MatchesPerYear, matchesFallback, transform.MatchesPerYear)
}

// LoadTeamWins fetches the team-wins slot alone.
func (h *HomeController) LoadTeamWins(ctx context.Context) error {
	return loadSlot(ctx, h, &h.teamWins, "team wins",
		h.backend.TeamWinsStacked, teamWinsFallback, transform.TeamWinsPivot)
}

func loadSlot[V any](
	ctx context.Context,
	h *HomeController,
	s *slot[V],
	label string,
	fetch func(context.Context) (*iplapi.Envelope, error),
	fallback string,
	shape func([]iplapi.RawRecord) V,
) error {
	h.mu.Lock()
	s.seq++
	seq := s.seq
	s.loading = true
	s.data = nil
	s.err = nil
	h.mu.Unlock()

	var view V
	env, err := fetch(ctx)
	if err != nil {
		err = fmt.Errorf("fetch %s: %w", label, err)
	} else if err = env.Err(fallback); err == nil {
		var rows []iplapi.RawRecord
		if rows, err = env.Records(); err != nil {
			err = fmt.Errorf("decode %s: %w", label, err)
		} else {
			view = shape(rows)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if seq != s.seq {
		return ErrSuperseded
	}
	s.loading = false
	if err != nil {
		s.err = err
		h.logger.Warn("Home dataset unavailable", "dataset", label, "error", err)
		return err
	}
	s.data = &view
	return nil
}

// Matches returns the matches-per-season view, if loaded.
func (h *HomeController) Matches() (transform.MatchesView, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.matches.data == nil {
		return transform.MatchesView{}, false
	}
	return *h.matches.data, true
}

// TeamWins returns the team-wins pivot, if loaded.
func (h *HomeController) TeamWins() (transform.TeamWinsView, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.teamWins.data == nil {
		return transform.TeamWinsView{}, false
	}
	return *h.teamWins.data, true
}

// Snapshot copies both slots.
func (h *HomeController) Snapshot() HomeSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return HomeSnapshot{
		View:     config.ViewHome,
		Matches:  h.matches.snapshot(),
		TeamWins: h.teamWins.snapshot(),
	}
}
