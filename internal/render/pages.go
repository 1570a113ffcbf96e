package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/albapepper/ipl-dashboard/internal/config"
	"github.com/albapepper/ipl-dashboard/internal/dashboard"
	"github.com/albapepper/ipl-dashboard/internal/iplapi"
	"github.com/albapepper/ipl-dashboard/internal/transform"
)

var titles = map[string]string{
	config.ViewHome:      "IPL Dashboard",
	config.ViewBowlers:   "Most Economical Bowlers",
	config.ViewExtraRuns: "Extra Runs Conceded per Team",
	config.ViewTeamStats: "Matches Played vs Won",
}

// Page writes a season-scoped page snapshot in format. The table format
// prints highlight cards, summary stats and the full table.
func Page(w io.Writer, format string, snap dashboard.Snapshot) error {
	if format != FormatTable {
		return Encode(w, format, snap)
	}

	p := &printer{w: w}
	p.heading(snap.View, snap.Selected)
	p.line("Seasons: %s", joinPeriods(snap.Periods))

	switch {
	case snap.Error != "":
		p.line("")
		p.line("Error: %s", snap.Error)
	case snap.Data == nil:
		p.line("")
		p.line("No data available")
	default:
		p.line("")
		switch v := snap.Data.(type) {
		case transform.BowlersView:
			p.bowlers(v)
		case transform.ExtraRunsView:
			p.extraRuns(v)
		case transform.TeamStatsView:
			p.teamStats(v)
		default:
			return fmt.Errorf("render page: unsupported view %T", snap.Data)
		}
	}
	return p.err
}

// Home writes the home page snapshot in format.
func Home(w io.Writer, format string, snap dashboard.HomeSnapshot) error {
	if format != FormatTable {
		return Encode(w, format, snap)
	}

	p := &printer{w: w}
	p.heading(snap.View, "")

	p.line("Matches per Season")
	switch {
	case snap.Matches.Error != "":
		p.line("Error: %s", snap.Matches.Error)
	case snap.Matches.Data == nil || len(snap.Matches.Data.Years) == 0:
		p.line("No data available")
	default:
		m := snap.Matches.Data
		p.line("Total matches: %d across %d seasons (peak %s with %d)",
			m.Summary.TotalMatches, m.Summary.Count, m.Summary.PeakYear, m.Summary.PeakMatches)
		t := NewTable("Season", "Matches").AlignRight(1)
		for _, y := range m.Years {
			t.Append(string(y.Year), strconv.Itoa(y.MatchesCount))
		}
		p.table(t)
	}

	p.line("")
	p.line("Team Wins per Season")
	switch {
	case snap.TeamWins.Error != "":
		p.line("Error: %s", snap.TeamWins.Error)
	case snap.TeamWins.Data == nil || len(snap.TeamWins.Data.Rows) == 0:
		p.line("No data available")
	default:
		tw := snap.TeamWins.Data
		headers := append([]string{"Season"}, tw.Teams...)
		t := NewTable(headers...)
		for i := range tw.Teams {
			t.AlignRight(i + 1)
		}
		for _, row := range tw.Rows {
			cells := []string{string(row.Year)}
			for _, team := range tw.Teams {
				if n, ok := row.Wins[team]; ok {
					cells = append(cells, strconv.Itoa(n))
				} else {
					cells = append(cells, "-")
				}
			}
			t.Append(cells...)
		}
		p.table(t)
	}
	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) table(t *Table) {
	if p.err != nil {
		return
	}
	_, p.err = t.WriteTo(p.w)
}

func (p *printer) heading(view string, season iplapi.Period) {
	title := titles[view]
	if title == "" {
		title = view
	}
	if season != "" {
		title += " (" + string(season) + ")"
	}
	p.line("%s", title)
	p.line("%s", strings.Repeat("=", len(title)))
}

func (p *printer) bowlers(v transform.BowlersView) {
	if len(v.Bowlers) == 0 {
		p.line("No data available")
		return
	}
	for i, b := range v.Top {
		p.line("#%d %s  economy %s  (%s overs, %d runs, %d wickets)",
			i+1, b.Bowler, decimal(b.EconomyRate, 2), decimal(b.OversBowled, 1), b.RunsConceded, b.WicketsTaken)
	}
	p.line("")
	p.line("Best economy: %s (%s)  Average: %s  Bowlers: %d",
		decimal(v.Summary.BestEconomy, 2), v.Summary.BestBowler, decimal(v.Summary.AvgEconomy, 2), v.Summary.Count)
	p.line("")

	t := NewTable("Rank", "Bowler", "Economy", "Overs", "Runs", "Wickets").AlignRight(0, 2, 3, 4, 5)
	for _, b := range v.Bowlers {
		t.Append(strconv.Itoa(b.Rank), b.BowlerName, decimal(b.EconomyRate, 2),
			decimal(b.OversBowled, 1), strconv.Itoa(b.RunsConceded), strconv.Itoa(b.WicketsTaken))
	}
	p.table(t)
}

func (p *printer) extraRuns(v transform.ExtraRunsView) {
	if len(v.Teams) == 0 {
		p.line("No data available")
		return
	}
	for i, t := range v.Top {
		p.line("#%d %s  %d extra runs", i+1, t.Team, t.ExtraRuns)
	}
	p.line("")
	p.line("Most extras: %d (%s)  Average: %d  Teams: %d",
		v.Summary.MaxExtraRuns, v.Summary.Leader, v.Summary.AvgExtraRuns, v.Summary.Count)
	p.line("")

	t := NewTable("#", "Team", "Extras", "Wickets", "No balls", "Byes").AlignRight(0, 2, 3, 4, 5)
	for _, r := range v.Teams {
		t.Append(strconv.Itoa(r.ID+1), r.TeamName, strconv.Itoa(r.ExtraRuns),
			strconv.Itoa(r.Wickets), strconv.Itoa(r.NoBalls), strconv.Itoa(r.Byes))
	}
	p.table(t)
}

func (p *printer) teamStats(v transform.TeamStatsView) {
	if len(v.Teams) == 0 {
		p.line("No data available")
		return
	}
	p.line("Top team: %s  Total matches: %d  Average win rate: %s%%  Teams: %d",
		v.Summary.Leader, v.Summary.TotalMatches, decimal(v.Summary.AvgWinPercentage, 1), v.Summary.Count)
	p.line("")

	t := NewTable("Rank", "Team", "Played", "Won", "Lost", "Win %", "Tier").AlignRight(0, 2, 3, 4, 5)
	for _, r := range v.Teams {
		t.Append(strconv.Itoa(r.Rank), r.TeamName, strconv.Itoa(r.MatchesPlayed), strconv.Itoa(r.MatchesWon),
			strconv.Itoa(r.MatchesLost), decimal(r.WinPercentage, 1), string(r.Tier))
	}
	p.table(t)
}

func decimal(f float64, places int) string {
	return strconv.FormatFloat(f, 'f', places, 64)
}

func joinPeriods(periods []iplapi.Period) string {
	if len(periods) == 0 {
		return "none"
	}
	parts := make([]string, len(periods))
	for i, p := range periods {
		parts[i] = string(p)
	}
	return strings.Join(parts, ", ")
}
