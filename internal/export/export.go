// Package export renders every dashboard chart for every season into a
// directory. Jobs run on a fixed worker pool; each job runs its own
// controller cycle against the backend.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/albapepper/ipl-dashboard/internal/chart"
	"github.com/albapepper/ipl-dashboard/internal/dashboard"
	"github.com/albapepper/ipl-dashboard/internal/iplapi"
)

// DefaultWorkers is the pool size when Options.Workers is not positive.
const DefaultWorkers = 4

// Options configures an export run.
type Options struct {
	Dir     string
	Format  string          // png, svg or pdf; defaults to png
	Workers int             // defaults to DefaultWorkers
	Charts  []string        // defaults to chart.Names()
	Years   []iplapi.Period // defaults to every available season
}

// Job is one chart to render. Season is empty for home charts.
type Job struct {
	Chart  string
	Season iplapi.Period
}

// JobResult tracks the outcome of rendering a single chart.
type JobResult struct {
	Chart    string
	Season   iplapi.Period
	Path     string
	Bytes    int
	Skipped  bool
	Success  bool
	Error    string
	Duration time.Duration
}

// Summary returns a human-readable summary.
func (r *JobResult) Summary() string {
	status := "ok"
	switch {
	case r.Skipped:
		status = "skipped"
	case !r.Success:
		status = "FAILED"
	}
	return fmt.Sprintf("chart=%s season=%s bytes=%d status=%s dur=%s",
		r.Chart, r.Season, r.Bytes, status, r.Duration.Round(time.Millisecond))
}

// Result tracks the outcome of a full export run.
type Result struct {
	JobsFound     int
	JobsProcessed int
	Succeeded     int
	Skipped       int
	Failed        int
	BytesWritten  int64
	Duration      time.Duration
	Errors        []string
	Results       []JobResult
}

// Summary returns a human-readable summary.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"found=%d processed=%d succeeded=%d skipped=%d failed=%d bytes=%d dur=%s",
		r.JobsFound, r.JobsProcessed, r.Succeeded, r.Skipped,
		r.Failed, r.BytesWritten, r.Duration.Round(time.Millisecond))
}

// Filename is the file a chart is written to inside the export directory.
func Filename(chartName string, season iplapi.Period, format string) string {
	if season == "" {
		return chartName + "." + format
	}
	return chartName + "-" + string(season) + "." + format
}

// Plan loads the season list and expands opts into jobs: one per home
// chart, and one per season for each season-scoped chart.
func Plan(ctx context.Context, backend dashboard.Backend, opts Options, logger *slog.Logger) ([]Job, error) {
	charts := opts.Charts
	if len(charts) == 0 {
		charts = chart.Names()
	}
	for _, name := range charts {
		if !slices.Contains(chart.Names(), name) {
			return nil, fmt.Errorf("plan export: %w: %q", dashboard.ErrUnknownView, name)
		}
	}

	var seasons []iplapi.Period
	if slices.ContainsFunc(charts, func(name string) bool { return !chart.IsHome(name) }) {
		// Any season-scoped page serves the shared season list.
		pages := dashboard.NewBowlers(backend, logger)
		if err := pages.LoadPeriods(ctx); err != nil {
			return nil, fmt.Errorf("load seasons: %w", err)
		}
		seasons = pages.Periods()
		if len(opts.Years) > 0 {
			for _, y := range opts.Years {
				if !slices.Contains(seasons, y) {
					return nil, fmt.Errorf("plan export: %w: %q", dashboard.ErrUnknownPeriod, y)
				}
			}
			seasons = opts.Years
		}
	}

	var jobs []Job
	for _, name := range charts {
		if chart.IsHome(name) {
			jobs = append(jobs, Job{Chart: name})
			continue
		}
		for _, season := range seasons {
			jobs = append(jobs, Job{Chart: name, Season: season})
		}
	}
	return jobs, nil
}

// Run renders every planned chart into opts.Dir. A chart without data is
// skipped, not failed. The returned error covers setup only; per-chart
// failures are recorded in the Result.
func Run(ctx context.Context, backend dashboard.Backend, opts Options, logger *slog.Logger) (Result, error) {
	start := time.Now()
	var result Result

	if logger == nil {
		logger = slog.Default()
	}
	if opts.Format == "" {
		opts.Format = chart.PNG
	}
	if !chart.IsFormat(opts.Format) {
		return result, fmt.Errorf("%w: %q", chart.ErrUnsupportedFormat, opts.Format)
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return result, fmt.Errorf("create export dir: %w", err)
	}

	jobs, err := Plan(ctx, backend, opts, logger)
	if err != nil {
		return result, err
	}

	result.JobsFound = len(jobs)
	if len(jobs) == 0 {
		logger.Info("No charts to export")
		result.Duration = time.Since(start)
		return result, nil
	}
	logger.Info("Exporting charts", "count", len(jobs), "dir", opts.Dir, "format", opts.Format)

	// Worker pool: one channel of jobs, N workers
	workers := opts.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	ch := make(chan Job, len(jobs))
	for _, j := range jobs {
		ch <- j
	}
	close(ch)

	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range ch {
				r := renderJob(ctx, backend, job, opts, logger)

				mu.Lock()
				result.Results = append(result.Results, r)
				result.JobsProcessed++
				switch {
				case r.Skipped:
					result.Skipped++
				case r.Success:
					result.Succeeded++
					result.BytesWritten += int64(r.Bytes)
				default:
					result.Failed++
					result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", Filename(job.Chart, job.Season, opts.Format), r.Error))
				}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	slices.SortFunc(result.Results, func(a, b JobResult) int {
		return compareIndex(jobs, a, b)
	})
	result.Duration = time.Since(start)

	logger.Info("Export complete", "summary", result.Summary())
	return result, nil
}

func renderJob(ctx context.Context, backend dashboard.Backend, job Job, opts Options, logger *slog.Logger) (r JobResult) {
	start := time.Now()
	r = JobResult{Chart: job.Chart, Season: job.Season}
	defer func() { r.Duration = time.Since(start) }()

	if err := ctx.Err(); err != nil {
		r.Error = err.Error()
		return r
	}

	data, season, err := dashboard.Dataset(ctx, backend, job.Chart, job.Season, logger)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	p, err := chart.Build(data, season)
	if errors.Is(err, chart.ErrNoData) {
		r.Skipped = true
		logger.Debug("No data to chart", "chart", job.Chart, "season", job.Season)
		return r
	}
	if err != nil {
		r.Error = err.Error()
		return r
	}

	var buf bytes.Buffer
	if err := chart.Render(p, opts.Format, &buf); err != nil {
		r.Error = err.Error()
		return r
	}

	r.Path = filepath.Join(opts.Dir, Filename(job.Chart, job.Season, opts.Format))
	if err := os.WriteFile(r.Path, buf.Bytes(), 0o644); err != nil {
		r.Error = fmt.Sprintf("write chart: %v", err)
		return r
	}
	r.Bytes = buf.Len()
	r.Success = true
	return r
}

// compareIndex orders results by their job's position in the plan.
func compareIndex(jobs []Job, a, b JobResult) int {
	ia := slices.Index(jobs, Job{Chart: a.Chart, Season: a.Season})
	ib := slices.Index(jobs, Job{Chart: b.Chart, Season: b.Season})
	return ia - ib
}
