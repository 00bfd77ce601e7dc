package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pable/go-versus-stats/internal/model"
)

func samplePlayers() (map[string]*model.PlayerGameStats, []string) {
	a := model.NewGameStats()
	a.Placement.AllPieces = 12345
	a.Placement.FrameDelay = 3600
	a.Placement.Attack = 60
	a.Death.Inc(model.DeathSpike)
	b := model.NewGameStats()
	b.Kill.Inc(model.DeathSpike)
	b.Garbage.LinesReceived = 2500
	return map[string]*model.PlayerGameStats{
		"a": {Username: "alice", Stats: *a},
		"b": {Username: "bob", Stats: *b},
	}, []string{"b", "a", "missing"}
}

func TestPlayers_Order(t *testing.T) {
	players, order := samplePlayers()
	rows := Players(order, players)
	if len(rows) != 2 || rows[0].Username != "bob" || rows[1].Username != "alice" {
		t.Fatalf("unexpected rows %+v", rows)
	}
	if rows[1].Derived.PPS == 0 {
		t.Error("expected derived stats to be filled in")
	}
}

func TestTables(t *testing.T) {
	players, order := samplePlayers()
	rows := Players(order, players)
	printers := map[string]func(*bytes.Buffer){
		"overview": func(b *bytes.Buffer) { PrintOverviewTable(b, rows, "a") },
		"phase":    func(b *bytes.Buffer) { PrintPhaseTable(b, rows, "a") },
		"clears":   func(b *bytes.Buffer) { PrintClearTable(b, rows, "a") },
		"garbage":  func(b *bytes.Buffer) { PrintGarbageTable(b, rows, "a") },
		"surge":    func(b *bytes.Buffer) { PrintSurgeTable(b, rows, "a") },
		"deaths":   func(b *bytes.Buffer) { PrintDeathTable(b, rows, "a") },
		"summary":  func(b *bytes.Buffer) { PrintSummaryTable(b, rows, "a") },
	}
	for name, render := range printers {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			render(&buf)
			out := buf.String()
			for _, want := range []string{"alice", "bob", ">"} {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestOverview_HumanizedCount(t *testing.T) {
	players, order := samplePlayers()
	var buf bytes.Buffer
	PrintOverviewTable(&buf, Players(order, players), "")
	if !strings.Contains(buf.String(), "12,345") {
		t.Errorf("expected grouped piece count:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), ">") {
		t.Error("no row should be marked without a focus player")
	}
}

func TestDeathTable_DeathsAndKills(t *testing.T) {
	players, order := samplePlayers()
	var buf bytes.Buffer
	PrintDeathTable(&buf, Players(order, players), "")
	out := buf.String()
	if !strings.Contains(out, "1/0") || !strings.Contains(out, "0/1") {
		t.Errorf("expected 1/0 and 0/1 cells:\n%s", out)
	}
}

func TestRoundsTable(t *testing.T) {
	rounds := [][]model.PlayerRoundResult{{
		{PlayerID: "a", Username: "alice", Round: 0, Alive: false, Death: model.DeathSpike, Frames: 600, Desynced: true, Residual: 12},
		{PlayerID: "b", Username: "bob", Round: 0, Alive: true, Frames: 610, Stats: model.NewGameStats()},
	}}
	var buf bytes.Buffer
	PrintRoundsTable(&buf, rounds, "")
	out := buf.String()
	for _, want := range []string{"Spike", "dead", "alive", "yes", "10.0", "12"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMatchSummary(t *testing.T) {
	r := &model.MatchResult{
		Hash:  "0123456789abcdef",
		Order: []string{"a", "b"},
		Rounds: [][]model.PlayerRoundResult{
			{{PlayerID: "a", Desynced: true}, {PlayerID: "b"}},
			{{PlayerID: "a"}, {PlayerID: "b"}},
		},
	}
	var buf bytes.Buffer
	PrintMatchSummary(&buf, r)
	out := buf.String()
	for _, want := range []string{"Rounds: 2", "Players: 2", "Desynced: 1", "0123456789ab"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q: %s", want, out)
		}
	}
	if strings.Contains(out, "0123456789abc") {
		t.Error("hash should be shortened to 12 characters")
	}
}
