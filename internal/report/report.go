package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-versus-stats/internal/aggregator"
	"github.com/pable/go-versus-stats/internal/model"
)

// Player is one table row: a player's summed stats and the rates derived
// from them.
type Player struct {
	ID       string
	Username string
	Stats    *model.GameStats
	Derived  model.CumulativeStats
}

// Players builds rows in order, deriving cumulative stats for each.
func Players(order []string, players map[string]*model.PlayerGameStats) []Player {
	out := make([]Player, 0, len(order))
	for _, id := range order {
		p, ok := players[id]
		if !ok {
			continue
		}
		out = append(out, Player{
			ID:       id,
			Username: p.Username,
			Stats:    &p.Stats,
			Derived:  aggregator.Derive(&p.Stats),
		})
	}
	return out
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func marker(id, focus string) string {
	if focus != "" && id == focus {
		return ">"
	}
	return " "
}

func f2(v float64) string { return fmt.Sprintf("%.2f", v) }
func pct(v float64) string { return fmt.Sprintf("%.0f%%", v*100) }

func count(n int) string { return humanize.Comma(int64(n)) }

// dash renders v, or "—" when the denominator it came from was empty.
func dash(ok bool, v string) string {
	if !ok {
		return "—"
	}
	return v
}

// PrintMatchSummary prints a one-line summary header for a replay.
func PrintMatchSummary(w io.Writer, r *model.MatchResult) {
	hash := r.Hash
	if len(hash) > 12 {
		hash = hash[:12]
	}
	excluded := 0
	for _, round := range r.Rounds {
		for _, pr := range round {
			if pr.Desynced {
				excluded++
			}
		}
	}
	fmt.Fprintf(w, "\nRounds: %d  |  Players: %d  |  Desynced: %d  |  Hash: %s\n\n",
		len(r.Rounds), len(r.Order), excluded, hash)
}

// PrintOverviewTable prints headline speed and attack rates.
func PrintOverviewTable(w io.Writer, players []Player, focus string) {
	table := newTable(w)
	table.Header(" ", "NAME", "PIECES", "PPS", "APM", "APP", "APL", "KPP", "KPS", "BURST", "PLONK", "COEFF", "CHEESY")

	for _, p := range players {
		d := p.Derived
		table.Append(
			marker(p.ID, focus),
			p.Username,
			count(p.Stats.Placement.AllPieces),
			f2(d.PPS),
			f2(d.APM),
			f2(d.APP),
			f2(d.APL),
			f2(d.KPP),
			f2(d.KPS),
			f2(d.BurstPPS),
			f2(d.PlonkPPS),
			f2(d.PPSCoeff),
			dash(p.Stats.Placement.Attack > 0, pct(d.AttackCheesiness)),
		)
	}
	table.Render()
}

// PrintPhaseTable prints opener versus midgame rates and midgame stacking
// speed.
func PrintPhaseTable(w io.Writer, players []Player, focus string) {
	table := newTable(w)
	table.Header(" ", "NAME", "OPEN_PPS", "OPEN_APM", "MID_PPS", "MID_APM", "UP_PPS", "DOWN_PPS", "DS_RATIO", "UP_APL", "DS_APL", "CHEESE_APL")

	for _, p := range players {
		d := p.Derived
		pl := &p.Stats.Placement
		table.Append(
			marker(p.ID, focus),
			p.Username,
			f2(d.OpenerPPS),
			f2(d.OpenerAPM),
			f2(d.MidgamePPS),
			f2(d.MidgameAPM),
			f2(d.UpstackPPS),
			f2(d.DownstackPPS),
			pct(d.DownstackingRatio),
			f2(d.UpstackAPL),
			dash(pl.DownstackCleared > 0, f2(d.DownstackAPL)),
			dash(pl.CheeseCleared > 0, f2(d.CheeseAPL)),
		)
	}
	table.Render()
}

// PrintClearTable prints clear-type counts and piece efficiencies.
func PrintClearTable(w io.Writer, players []Player, focus string) {
	table := newTable(w)
	header := []any{" ", "NAME"}
	for _, ct := range model.ClearTypeOrder {
		header = append(header, string(ct))
	}
	header = append(header, "T_EFF", "I_EFF", "SPIN_EFF")
	table.Header(header...)

	for _, p := range players {
		row := []any{marker(p.ID, focus), p.Username}
		for _, ct := range model.ClearTypeOrder {
			row = append(row, strconv.Itoa(p.Stats.Placement.ClearTypes.Get(ct)))
		}
		row = append(row, pct(p.Derived.TEfficiency), pct(p.Derived.IEfficiency), pct(p.Derived.AllspinEfficiency))
		table.Append(row...)
	}
	table.Render()
}

// PrintGarbageTable prints how received garbage was resolved.
func PrintGarbageTable(w io.Writer, players []Player, focus string) {
	table := newTable(w)
	table.Header(" ", "NAME", "RECV", "CLEAN", "CHEESE", "CLEAN_CANC", "TANK_CLEAN", "TANK_AS_CHEESE", "CHEESE_CANC", "CHEESE_TANK", "SENT", "CLEAN_SENT")

	for _, p := range players {
		g := &p.Stats.Garbage
		pl := &p.Stats.Placement
		table.Append(
			marker(p.ID, focus),
			p.Username,
			count(g.LinesReceived),
			count(g.CleanLinesReceived),
			count(g.CheeseLinesReceived),
			count(g.CleanLinesCancelled),
			count(g.CleanLinesTankedAsClean),
			count(g.CleanLinesTankedAsCheese),
			count(g.CheeseLinesCancelled),
			count(g.CheeseLinesTanked),
			count(pl.LinesSent),
			count(pl.CleanLinesSent),
		)
	}
	table.Render()
}

// PrintSurgeTable prints back-to-back chain statistics.
func PrintSurgeTable(w io.Writer, players []Player, focus string) {
	table := newTable(w)
	table.Header(" ", "NAME", "CHAINS", "FAILS", "RATE", "LENGTH", "APM", "APL", "PPS", "DS", "SEC/DS", "SEC/CHEESE", "SPIN")

	for _, p := range players {
		s := &p.Stats.Surge
		d := p.Derived
		has := s.Chains > 0
		table.Append(
			marker(p.ID, focus),
			p.Username,
			strconv.Itoa(s.Chains),
			strconv.Itoa(s.Fails),
			dash(s.Chains+s.Fails > 0, pct(d.SurgeRate)),
			dash(has, fmt.Sprintf("%.1f", d.SurgeLength)),
			dash(has, f2(d.SurgeAPM)),
			dash(has, f2(d.SurgeAPL)),
			dash(has, f2(d.SurgePPS)),
			dash(has, f2(d.SurgeDS)),
			dash(s.SurgeGarbageCleared > 0, f2(d.SurgeSecsPerDS)),
			dash(s.SurgeCheeseCleared > 0, f2(d.SurgeSecsPerCheese)),
			dash(s.BTBClears > 0, pct(d.SurgeAllspin)),
		)
	}
	table.Render()
}

// PrintDeathTable prints deaths and kills per cause as "deaths/kills".
func PrintDeathTable(w io.Writer, players []Player, focus string) {
	table := newTable(w)
	header := []any{" ", "NAME"}
	for _, dt := range model.DeathTypeOrder {
		header = append(header, string(dt))
	}
	header = append(header, "TOTAL")
	table.Header(header...)

	for _, p := range players {
		row := []any{marker(p.ID, focus), p.Username}
		for _, dt := range model.DeathTypeOrder {
			row = append(row, fmt.Sprintf("%d/%d", p.Stats.Death.Get(dt), p.Stats.Kill.Get(dt)))
		}
		row = append(row, fmt.Sprintf("%d/%d", p.Stats.Death.Total(), p.Stats.Kill.Total()))
		table.Append(row...)
	}
	table.Render()
}

// PrintSummaryTable prints a compact comparison of headline rates.
func PrintSummaryTable(w io.Writer, players []Player, focus string) {
	table := newTable(w)
	table.Header(" ", "NAME", "PPS", "APM", "APP", "SURGE_RATE", "DEATHS", "KILLS", "RECV")

	for _, p := range players {
		d := p.Derived
		table.Append(
			marker(p.ID, focus),
			p.Username,
			f2(d.PPS),
			f2(d.APM),
			f2(d.APP),
			pct(d.SurgeRate),
			strconv.Itoa(p.Stats.Death.Total()),
			strconv.Itoa(p.Stats.Kill.Total()),
			count(p.Stats.Garbage.LinesReceived),
		)
	}
	table.Render()
}

// PrintRoundsTable prints one row per player per round. Desynced rows are
// flagged since they are left out of every total.
func PrintRoundsTable(w io.Writer, rounds [][]model.PlayerRoundResult, focus string) {
	table := newTable(w)
	table.Header(" ", "ROUND", "NAME", "RESULT", "DEATH", "SECONDS", "PIECES", "DESYNC", "RESIDUAL", "DROPPED", "ABANDONED", "OPEN")

	warn := color.New(color.FgYellow).SprintFunc()
	for _, round := range rounds {
		for _, pr := range round {
			result := "alive"
			if !pr.Alive {
				result = "dead"
			}
			death := "—"
			if pr.Death != "" {
				death = string(pr.Death)
			}
			desync := "no"
			if pr.Desynced {
				desync = warn("yes")
			}
			pieces := 0
			if pr.Stats != nil {
				pieces = pr.Stats.Placement.AllPieces
			}
			table.Append(
				marker(pr.PlayerID, focus),
				strconv.Itoa(pr.Round+1),
				pr.Username,
				result,
				death,
				fmt.Sprintf("%.1f", float64(pr.Frames)/model.FramesPerSecond),
				strconv.Itoa(pieces),
				desync,
				strconv.Itoa(pr.Residual),
				strconv.Itoa(pr.Dropped),
				strconv.Itoa(pr.Anomalies.AbandonedEvents),
				strconv.Itoa(pr.Anomalies.OpenEntries),
			)
		}
	}
	table.Render()
}
