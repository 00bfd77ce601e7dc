package aggregator

import (
	"math"
	"reflect"
	"testing"

	"github.com/pable/go-versus-stats/internal/model"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDerive_ZeroStats(t *testing.T) {
	got := Derive(model.NewGameStats())
	if !reflect.DeepEqual(got, model.CumulativeStats{}) {
		t.Errorf("zero stats should derive to zero, got %+v", got)
	}
}

func TestDerive_Rates(t *testing.T) {
	s := model.NewGameStats()
	p := &s.Placement
	p.AllPieces = 120
	p.Keypresses = 360
	p.FrameDelay = 3600 // one minute
	p.Attack = 60
	p.LinesCleared = 40
	p.DownstackCleared = 10
	p.AttackWithDownstack = 15
	p.OpenerBlocks = 20
	p.OpenerFrames = 600
	p.OpenerAttack = 10
	p.WellColumns[0] = 1
	p.WellColumns[9] = 3

	got := Derive(s)
	checks := []struct {
		name      string
		got, want float64
	}{
		{"PPS", got.PPS, 2},
		{"APM", got.APM, 60},
		{"KPP", got.KPP, 3},
		{"KPS", got.KPS, 6},
		{"APP", got.APP, 0.5},
		{"APL", got.APL, 1.5},
		{"DownstackAPL", got.DownstackAPL, 1.5},
		{"UpstackAPL", got.UpstackAPL, 45.0 / 30},
		{"DownstackingRatio", got.DownstackingRatio, 0.25},
		{"OpenerPPS", got.OpenerPPS, 2},
		{"OpenerAPM", got.OpenerAPM, 60},
		{"MidgamePPS", got.MidgamePPS, 2},
		{"MidgameAPM", got.MidgameAPM, 60},
		{"Well 0", got.WellColumns[0], 25},
		{"Well 9", got.WellColumns[9], 75},
	}
	for _, c := range checks {
		if !approx(c.got, c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestDerive_Surge(t *testing.T) {
	s := model.NewGameStats()
	s.Surge = model.SurgeStats{Chains: 2, Fails: 2, BTB: 12, Attack: 30, LinesCleared: 20, Frames: 1800, Pieces: 30}
	got := Derive(s)
	if !approx(got.SurgeRate, 0.5) || !approx(got.SurgeLength, 6) || !approx(got.SurgeAPL, 1.5) ||
		!approx(got.SurgeAPM, 60) || !approx(got.SurgePPS, 1) {
		t.Errorf("unexpected surge rates %+v", got)
	}
}

func TestBurstPlonk(t *testing.T) {
	var segs [model.PPSSegmentCount]int
	segs[10] = 2
	segs[30] = 2
	burst, plonk := burstPlonk(segs)
	if !approx(burst, 3.05) || !approx(plonk, 1.05) {
		t.Errorf("burst %v plonk %v, want 3.05 1.05", burst, plonk)
	}

	segs = [model.PPSSegmentCount]int{}
	segs[5], segs[15], segs[25] = 1, 1, 1
	burst, plonk = burstPlonk(segs)
	if burst <= plonk {
		t.Errorf("burst %v should exceed plonk %v", burst, plonk)
	}
	if !approx(plonk, (0.55+0.5*1.55)/1.5) {
		t.Errorf("plonk = %v", plonk)
	}
}

func TestPPSSegment(t *testing.T) {
	cases := []struct{ delay, want int }{
		{0, model.PPSSegmentCount - 1},
		{1, model.PPSSegmentCount - 1},
		{60, 10},
		{30, 20},
		{600, 1},
		{7, 85},
	}
	for _, c := range cases {
		if got := ppsSegment(c.delay); got != c.want {
			t.Errorf("ppsSegment(%d) = %d, want %d", c.delay, got, c.want)
		}
	}
}

func TestDeriveAll(t *testing.T) {
	players := map[string]*model.PlayerGameStats{
		playerA: {Username: "alice", Stats: *model.NewGameStats()},
	}
	out := DeriveAll(players)
	if out[playerA].Username != "alice" {
		t.Errorf("unexpected %+v", out[playerA])
	}
}
