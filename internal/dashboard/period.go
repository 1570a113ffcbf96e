package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/albapepper/ipl-dashboard/internal/iplapi"
)

// DefaultPeriod chooses which season a page opens on.
type DefaultPeriod int

const (
	FirstPeriod DefaultPeriod = iota
	LastPeriod
)

func (d DefaultPeriod) pick(periods []iplapi.Period) (iplapi.Period, bool) {
	if len(periods) == 0 {
		return "", false
	}
	if d == LastPeriod {
		return periods[len(periods)-1], true
	}
	return periods[0], true
}

// Snapshot is an immutable copy of a page's state, ready for encoding.
type Snapshot struct {
	View     string          `json:"view" yaml:"view"`
	State    State           `json:"state" yaml:"state"`
	Loading  bool            `json:"loading" yaml:"loading"`
	Periods  []iplapi.Period `json:"periods" yaml:"periods"`
	Selected iplapi.Period   `json:"selected,omitempty" yaml:"selected,omitempty"`
	Data     any             `json:"data" yaml:"data"`
	Error    string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// Page is the season-scoped controller surface shared by every page type.
type Page interface {
	Name() string
	Mount(ctx context.Context) error
	Open(ctx context.Context, year iplapi.Period) error
	LoadPeriods(ctx context.Context) error
	Select(ctx context.Context, year iplapi.Period) error
	Periods() []iplapi.Period
	Snapshot() Snapshot
}

type fetchFunc func(ctx context.Context, b Backend, year iplapi.Period) (*iplapi.Envelope, error)

// PeriodController drives one season-scoped page. It is safe for concurrent
// use; the only blocking calls are backend requests, made without the lock.
type PeriodController[V any] struct {
	name     string
	backend  Backend
	fetch    fetchFunc
	shape    func([]iplapi.RawRecord) V
	def      DefaultPeriod
	fallback string
	logger   *slog.Logger

	mu       sync.Mutex
	state    State
	periods  []iplapi.Period
	selected iplapi.Period
	view     *V
	err      error
	seq      uint64
}

func newPeriodController[V any](
	name string,
	backend Backend,
	fetch fetchFunc,
	shape func([]iplapi.RawRecord) V,
	def DefaultPeriod,
	fallback string,
	logger *slog.Logger,
) *PeriodController[V] {
	if logger == nil {
		logger = slog.Default()
	}
	return &PeriodController[V]{
		name:     name,
		backend:  backend,
		fetch:    fetch,
		shape:    shape,
		def:      def,
		fallback: fallback,
		logger:   logger.With("view", name),
		periods:  []iplapi.Period{},
	}
}

// Name returns the page name.
func (c *PeriodController[V]) Name() string { return c.name }

// Mount loads the season list and, when it is non-empty, selects the page's
// default season.
func (c *PeriodController[V]) Mount(ctx context.Context) error {
	return c.Open(ctx, "")
}

// Open loads the season list and selects year, or the default season when
// year is empty.
func (c *PeriodController[V]) Open(ctx context.Context, year iplapi.Period) error {
	if err := c.LoadPeriods(ctx); err != nil {
		return err
	}
	if year == "" {
		var ok bool
		if year, ok = c.def.pick(c.Periods()); !ok {
			c.logger.Info("No seasons available")
			return nil
		}
	}
	return c.Select(ctx, year)
}

// LoadPeriods fetches the season list. Any selection and dataset are
// discarded and in-flight dataset requests are superseded.
func (c *PeriodController[V]) LoadPeriods(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.state = LoadingPeriods
	c.selected = ""
	c.view = nil
	c.err = nil
	c.mu.Unlock()

	periods, err := loadPeriods(ctx, c.backend)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return ErrSuperseded
	}
	if err != nil {
		c.state = PeriodsError
		c.periods = []iplapi.Period{}
		c.err = err
		c.logger.Warn("Season list unavailable", "error", err)
		return err
	}
	c.state = PeriodsLoaded
	c.periods = periods
	return nil
}

// Select fetches and shapes the dataset for year. The previous dataset is
// cleared as soon as the request starts.
func (c *PeriodController[V]) Select(ctx context.Context, year iplapi.Period) error {
	c.mu.Lock()
	if len(c.periods) == 0 {
		c.mu.Unlock()
		return ErrNoPeriods
	}
	if !slices.Contains(c.periods, year) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownPeriod, year)
	}
	c.seq++
	seq := c.seq
	c.state = LoadingDataset
	c.selected = year
	c.view = nil
	c.err = nil
	c.mu.Unlock()

	view, err := c.load(ctx, year)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		c.logger.Debug("Discarding stale response", "year", year)
		return ErrSuperseded
	}
	if err != nil {
		c.state = DatasetError
		c.err = err
		c.logger.Warn("Dataset unavailable", "year", year, "error", err)
		return err
	}
	c.state = DatasetLoaded
	c.view = &view
	return nil
}

func (c *PeriodController[V]) load(ctx context.Context, year iplapi.Period) (V, error) {
	var zero V
	env, err := c.fetch(ctx, c.backend, year)
	if err != nil {
		return zero, fmt.Errorf("fetch %s %s: %w", c.name, year, err)
	}
	if err := env.Err(c.fallback); err != nil {
		return zero, err
	}
	rows, err := env.Records()
	if err != nil {
		return zero, fmt.Errorf("decode %s %s: %w", c.name, year, err)
	}
	return c.shape(rows), nil
}

// Periods returns a copy of the loaded season list.
func (c *PeriodController[V]) Periods() []iplapi.Period {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.periods)
}

// View returns the current view model, if a dataset is loaded.
func (c *PeriodController[V]) View() (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view == nil {
		var zero V
		return zero, false
	}
	return *c.view, true
}

// State returns the current lifecycle state.
func (c *PeriodController[V]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot copies the controller state.
func (c *PeriodController[V]) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		View:     c.name,
		State:    c.state,
		Loading:  c.state.Loading(),
		Periods:  slices.Clone(c.periods),
		Selected: c.selected,
	}
	if c.view != nil {
		snap.Data = *c.view
	}
	if c.err != nil {
		snap.Error = c.err.Error()
	}
	return snap
}

// loadPeriods fetches and decodes the season list.
func loadPeriods(ctx context.Context, b Backend) ([]iplapi.Period, error) {
	env, err := b.AvailableYears(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch seasons: %w", err)
	}
	if err := env.Err("Failed to fetch available years"); err != nil {
		return nil, err
	}
	periods, err := env.Periods()
	if err != nil {
		return nil, fmt.Errorf("decode seasons: %w", err)
	}
	return periods, nil
}
