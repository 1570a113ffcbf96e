// Command board is the IPL Dashboard terminal client.
//
// Usage:
//
//	ipl-board years
//	ipl-board teams
//	ipl-board view home
//	ipl-board view bowlers --year 2017 --format json
//	ipl-board chart team-stats --year 2016 --out team-stats.svg
//	ipl-board export --dir charts --format png --workers 4
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/ipl-dashboard/internal/chart"
	"github.com/albapepper/ipl-dashboard/internal/config"
	"github.com/albapepper/ipl-dashboard/internal/dashboard"
	"github.com/albapepper/ipl-dashboard/internal/export"
	"github.com/albapepper/ipl-dashboard/internal/iplapi"
	"github.com/albapepper/ipl-dashboard/internal/logger"
	"github.com/albapepper/ipl-dashboard/internal/render"
)

var backendURL string

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "ipl-board",
		Short:         "IPL Dashboard terminal client",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&backendURL, "backend", "", "Backend base URL (overrides BACKEND_URL)")

	root.AddCommand(yearsCmd())
	root.AddCommand(teamsCmd())
	root.AddCommand(viewCmd())
	root.AddCommand(chartCmd())
	root.AddCommand(exportCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// catalog commands
// --------------------------------------------------------------------------

func yearsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "years",
		Short: "List the seasons available in the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(func(ctx context.Context, env *boardEnv) error {
				resp, err := env.client.AvailableYears(ctx)
				if err == nil {
					err = resp.Err("Failed to fetch available years")
				}
				if err != nil {
					return fmt.Errorf("fetch seasons: %w", err)
				}
				years, err := resp.Periods()
				if err != nil {
					return fmt.Errorf("decode seasons: %w", err)
				}
				if format != render.FormatTable {
					return render.Encode(cmd.OutOrStdout(), format, years)
				}
				t := render.NewTable("Season")
				for _, y := range years {
					t.Append(string(y))
				}
				_, err = t.WriteTo(cmd.OutOrStdout())
				return err
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", render.FormatTable, "Output format (table, json, yaml)")
	return cmd
}

func teamsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List every team known to the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(func(ctx context.Context, env *boardEnv) error {
				resp, err := env.client.TeamsList(ctx)
				if err == nil {
					err = resp.Err("Failed to fetch teams")
				}
				if err != nil {
					return fmt.Errorf("fetch teams: %w", err)
				}
				teams, err := resp.Teams()
				if err != nil {
					return fmt.Errorf("decode teams: %w", err)
				}
				if format != render.FormatTable {
					return render.Encode(cmd.OutOrStdout(), format, teams)
				}
				t := render.NewTable("Team")
				for _, name := range teams {
					t.Append(name)
				}
				_, err = t.WriteTo(cmd.OutOrStdout())
				return err
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", render.FormatTable, "Output format (table, json, yaml)")
	return cmd
}

// --------------------------------------------------------------------------
// view command
// --------------------------------------------------------------------------

func viewCmd() *cobra.Command {
	var (
		year   string
		format string
	)
	views := append([]string{config.ViewHome}, config.PeriodViews...)
	cmd := &cobra.Command{
		Use:       "view <" + strings.Join(views, "|") + ">",
		Short:     "Print a dashboard page",
		Args:      cobra.ExactArgs(1),
		ValidArgs: views,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(func(ctx context.Context, env *boardEnv) error {
				out := cmd.OutOrStdout()
				if args[0] == config.ViewHome {
					home := dashboard.NewHome(env.client, env.logger)
					loadErr := home.Mount(ctx)
					if err := render.Home(out, format, home.Snapshot()); err != nil {
						return err
					}
					return loadErr
				}

				page, err := dashboard.NewPage(args[0], env.client, env.logger)
				if err != nil {
					return err
				}
				loadErr := page.Open(ctx, iplapi.Period(year))
				if err := render.Page(out, format, page.Snapshot()); err != nil {
					return err
				}
				return loadErr
			})
		},
	}
	cmd.Flags().StringVar(&year, "year", "", "Season (defaults to the page's default season)")
	cmd.Flags().StringVar(&format, "format", render.FormatTable, "Output format (table, json, yaml)")
	return cmd
}

// --------------------------------------------------------------------------
// chart command
// --------------------------------------------------------------------------

func chartCmd() *cobra.Command {
	var (
		year   string
		out    string
		format string
	)
	cmd := &cobra.Command{
		Use:       "chart <" + strings.Join(chart.Names(), "|") + ">",
		Short:     "Render a chart image",
		Args:      cobra.ExactArgs(1),
		ValidArgs: chart.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			if format == "" {
				format = strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
			}
			if !chart.IsFormat(format) {
				return fmt.Errorf("%w: %q", chart.ErrUnsupportedFormat, format)
			}
			return runBoard(func(ctx context.Context, env *boardEnv) error {
				data, season, err := dashboard.Dataset(ctx, env.client, args[0], iplapi.Period(year), env.logger)
				if err != nil {
					return err
				}
				p, err := chart.Build(data, season)
				if err != nil {
					return err
				}
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				if err := chart.Render(p, format, f); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("close output: %w", err)
				}
				env.logger.Info("Chart written", "chart", args[0], "season", season, "path", out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&year, "year", "", "Season (season pages only)")
	cmd.Flags().StringVar(&out, "out", "", "Output file")
	cmd.Flags().StringVar(&format, "format", "", "Image format (png, svg, pdf); defaults to the --out extension")
	return cmd
}

// --------------------------------------------------------------------------
// export command
// --------------------------------------------------------------------------

func exportCmd() *cobra.Command {
	var (
		dir     string
		format  string
		workers int
		charts  []string
		years   []string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render every chart for every season into a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(func(ctx context.Context, env *boardEnv) error {
				opts := export.Options{
					Dir:     dir,
					Format:  format,
					Workers: workers,
					Charts:  charts,
				}
				for _, y := range years {
					opts.Years = append(opts.Years, iplapi.Period(y))
				}

				start := time.Now()
				result, err := export.Run(ctx, env.client, opts, env.logger)
				if err != nil {
					return err
				}
				env.logger.Info("Export finished",
					"duration", time.Since(start).Round(time.Millisecond),
					"summary", result.Summary())
				for _, e := range result.Errors {
					env.logger.Error("export error", "error", e)
				}
				if result.Failed > 0 {
					return fmt.Errorf("%d of %d charts failed", result.Failed, result.JobsFound)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "charts", "Output directory")
	cmd.Flags().StringVar(&format, "format", chart.PNG, "Image format (png, svg, pdf)")
	cmd.Flags().IntVar(&workers, "workers", export.DefaultWorkers, "Concurrent worker count")
	cmd.Flags().StringSliceVar(&charts, "chart", nil, "Charts to export (repeatable); empty = all")
	cmd.Flags().StringSliceVar(&years, "year", nil, "Seasons to export (repeatable); empty = all")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

type boardEnv struct {
	client *iplapi.Client
	logger *slog.Logger
}

// runBoard handles config loading, client construction, and context cancellation.
// Logs go to stderr so stdout carries only the rendered output.
func runBoard(fn func(ctx context.Context, env *boardEnv) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if backendURL != "" {
		cfg.BackendURL = strings.TrimRight(backendURL, "/")
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	log := logger.NewWithWriter(os.Stderr, cfg.LogLevel, cfg.Environment)
	client := iplapi.NewClient(cfg.BackendURL, cfg.BackendTimeout, cfg.BackendRateLimitRPM, log)

	return fn(ctx, &boardEnv{client: client, logger: log})
}
