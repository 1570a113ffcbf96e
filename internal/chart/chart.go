// Package chart draws dashboard view models as bar charts with gonum/plot and
// encodes them as PNG, SVG or PDF.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/albapepper/ipl-dashboard/internal/config"
	"github.com/albapepper/ipl-dashboard/internal/iplapi"
	"github.com/albapepper/ipl-dashboard/internal/transform"
)

// Chart names. The season-scoped pages reuse their view names; the home
// page has two charts.
const (
	Bowlers        = config.ViewBowlers
	ExtraRuns      = config.ViewExtraRuns
	TeamStats      = config.ViewTeamStats
	MatchesPerYear = config.ChartMatchesPerYear
	TeamWins       = config.ChartTeamWins
)

// Names lists every chart in menu order.
func Names() []string {
	return []string{MatchesPerYear, TeamWins, Bowlers, ExtraRuns, TeamStats}
}

// IsHome reports whether the chart is drawn from the home page datasets.
func IsHome(name string) bool {
	return name == MatchesPerYear || name == TeamWins
}

// Output formats.
const (
	PNG = "png"
	SVG = "svg"
	PDF = "pdf"
)

var contentTypes = map[string]string{
	PNG: "image/png",
	SVG: "image/svg+xml",
	PDF: "application/pdf",
}

// Formats lists the supported output formats.
func Formats() []string { return []string{PNG, SVG, PDF} }

// ContentType returns the MIME type of an output format.
func ContentType(format string) string { return contentTypes[format] }

const (
	Width  = 10 * vg.Inch
	Height = 6 * vg.Inch

	barWidth = 18
)

var (
	// ErrNoData is returned when a view has nothing to draw.
	ErrNoData = errors.New("no data available")
	// ErrUnsupportedFormat is returned by Render for an unknown output format.
	ErrUnsupportedFormat = errors.New("unsupported chart format")
)

var (
	primary = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	muted   = color.RGBA{R: 189, G: 189, B: 189, A: 255}

	tierColors = map[transform.Tier]color.Color{
		transform.TierExcellent: color.RGBA{R: 46, G: 125, B: 50, A: 255},
		transform.TierGood:      color.RGBA{R: 25, G: 118, B: 210, A: 255},
		transform.TierAverage:   color.RGBA{R: 237, G: 108, B: 2, A: 255},
		transform.TierPoor:      color.RGBA{R: 211, G: 47, B: 47, A: 255},
	}

	// Stacked series palette; wraps after ten teams.
	palette = []color.Color{
		color.RGBA{R: 31, G: 119, B: 180, A: 255},
		color.RGBA{R: 255, G: 127, B: 14, A: 255},
		color.RGBA{R: 44, G: 160, B: 44, A: 255},
		color.RGBA{R: 214, G: 39, B: 40, A: 255},
		color.RGBA{R: 148, G: 103, B: 189, A: 255},
		color.RGBA{R: 140, G: 86, B: 75, A: 255},
		color.RGBA{R: 227, G: 119, B: 194, A: 255},
		color.RGBA{R: 127, G: 127, B: 127, A: 255},
		color.RGBA{R: 188, G: 189, B: 34, A: 255},
		color.RGBA{R: 23, G: 190, B: 207, A: 255},
	}
)

// Build draws the chart for a view model. Home charts take
// transform.MatchesView or transform.TeamWinsView.
func Build(data any, season iplapi.Period) (*plot.Plot, error) {
	switch v := data.(type) {
	case transform.BowlersView:
		return BowlersChart(v, season)
	case transform.ExtraRunsView:
		return ExtraRunsChart(v, season)
	case transform.TeamStatsView:
		return TeamStatsChart(v, season)
	case transform.MatchesView:
		return MatchesChart(v)
	case transform.TeamWinsView:
		return TeamWinsChart(v)
	case nil:
		return nil, ErrNoData
	default:
		return nil, fmt.Errorf("build chart: unsupported view %T", data)
	}
}

// Render encodes p in the given format.
func Render(p *plot.Plot, format string, w io.Writer) error {
	if _, ok := contentTypes[format]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	wt, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}

// BowlersChart plots economy rate per bowler, best first.
func BowlersChart(v transform.BowlersView, season iplapi.Period) (*plot.Plot, error) {
	if len(v.Bowlers) == 0 {
		return nil, ErrNoData
	}
	values := make(plotter.Values, len(v.Bowlers))
	names := make([]string, len(v.Bowlers))
	for i, b := range v.Bowlers {
		values[i] = b.EconomyRate
		names[i] = b.BowlerName
	}

	p := newPlot(titled("Most Economical Bowlers", season), "Economy rate (runs per over)")
	bars, err := bar(values, primary)
	if err != nil {
		return nil, err
	}
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// ExtraRunsChart plots extra runs conceded per bowling team.
func ExtraRunsChart(v transform.ExtraRunsView, season iplapi.Period) (*plot.Plot, error) {
	if len(v.Teams) == 0 {
		return nil, ErrNoData
	}
	values := make(plotter.Values, len(v.Teams))
	names := make([]string, len(v.Teams))
	for i, t := range v.Teams {
		values[i] = float64(t.ExtraRuns)
		names[i] = t.TeamName
	}

	p := newPlot(titled("Extra Runs Conceded per Team", season), "Extra runs")
	bars, err := bar(values, primary)
	if err != nil {
		return nil, err
	}
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// TeamStatsChart plots matches played next to matches won per team. Won
// bars are colored by performance tier.
func TeamStatsChart(v transform.TeamStatsView, season iplapi.Period) (*plot.Plot, error) {
	if len(v.Chart) == 0 {
		return nil, ErrNoData
	}
	played := make(plotter.Values, len(v.Chart))
	names := make([]string, len(v.Chart))
	for i, t := range v.Chart {
		played[i] = float64(t.MatchesPlayed)
		names[i] = t.TeamName
	}

	p := newPlot(titled("Matches Played vs Won", season), "Matches")
	playedBars, err := bar(played, muted)
	if err != nil {
		return nil, err
	}
	playedBars.Offset = -vg.Points(barWidth / 2)
	p.Add(playedBars)
	p.Legend.Add("Played", playedBars)

	// One won series per tier present; other teams get zero-height bars.
	for _, tier := range transform.Tiers() {
		won := make(plotter.Values, len(v.Teams))
		present := false
		for i, t := range v.Teams {
			if t.Tier == tier {
				won[i] = float64(t.MatchesWon)
				present = true
			}
		}
		if !present {
			continue
		}
		wonBars, err := bar(won, tierColors[tier])
		if err != nil {
			return nil, err
		}
		wonBars.Offset = vg.Points(barWidth / 2)
		p.Add(wonBars)
		p.Legend.Add("Won ("+string(tier)+")", wonBars)
	}

	p.NominalX(names...)
	return p, nil
}

// MatchesChart plots matches per season.
func MatchesChart(v transform.MatchesView) (*plot.Plot, error) {
	if len(v.Years) == 0 {
		return nil, ErrNoData
	}
	values := make(plotter.Values, len(v.Years))
	names := make([]string, len(v.Years))
	for i, y := range v.Years {
		values[i] = float64(y.MatchesCount)
		names[i] = string(y.Year)
	}

	p := newPlot("Matches per Season", "Matches")
	bars, err := bar(values, primary)
	if err != nil {
		return nil, err
	}
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// TeamWinsChart stacks wins per season for the chart teams.
func TeamWinsChart(v transform.TeamWinsView) (*plot.Plot, error) {
	if len(v.Rows) == 0 || len(v.ChartTeams) == 0 {
		return nil, ErrNoData
	}
	names := make([]string, len(v.Rows))
	for i, r := range v.Rows {
		names[i] = string(r.Year)
	}

	p := newPlot("Team Wins per Season", "Wins")
	var below *plotter.BarChart
	for i, team := range v.ChartTeams {
		values := make(plotter.Values, len(v.Rows))
		for j, r := range v.Rows {
			values[j] = float64(r.Wins[team])
		}
		bars, err := bar(values, palette[i%len(palette)])
		if err != nil {
			return nil, err
		}
		if below != nil {
			bars.StackOn(below)
		}
		below = bars
		p.Add(bars)
		p.Legend.Add(team, bars)
	}
	p.NominalX(names...)
	return p, nil
}

func newPlot(title, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.BackgroundColor = color.White
	p.Y.Label.Text = yLabel
	p.Y.Min = 0
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

func bar(values plotter.Values, c color.Color) (*plotter.BarChart, error) {
	b, err := plotter.NewBarChart(values, vg.Points(barWidth))
	if err != nil {
		return nil, fmt.Errorf("new bar chart: %w", err)
	}
	b.Color = c
	b.LineStyle.Width = vg.Length(0)
	return b, nil
}

func titled(title string, season iplapi.Period) string {
	if season == "" {
		return title
	}
	return title + " (" + string(season) + ")"
}

// IsFormat reports whether format is a supported output format.
func IsFormat(format string) bool {
	return slices.Contains(Formats(), format)
}
