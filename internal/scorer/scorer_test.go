package scorer

import (
	"testing"

	"github.com/pable/go-versus-stats/internal/model"
)

func btbClear(attack int) LineClear {
	return LineClear{ClearType: model.ClearQuad, BTBClear: true, Attack: attack, Lines: 4, FrameDelay: 20}
}

func TestSurge_ChainCommittedOnBreak(t *testing.T) {
	s := NewSurge()
	var stats model.SurgeStats
	for i := 0; i < 5; i++ {
		s.AddLineClear(&stats, btbClear(4))
	}
	s.AddStack(&stats, 10, false, false)
	if s.BTB() != 5 {
		t.Fatalf("expected streak 5, got %d", s.BTB())
	}
	if stats.Chains != 0 {
		t.Fatal("chain should stay buffered until it breaks")
	}

	s.AddLineClear(&stats, LineClear{ClearType: model.ClearSingle, Lines: 1, FrameDelay: 15})
	if s.BTB() != 0 {
		t.Errorf("expected streak reset, got %d", s.BTB())
	}
	if stats.Chains != 1 || stats.BTB != 5 || stats.Attack != 20 || stats.Pieces != 6 || stats.Frames != 110 {
		t.Errorf("unexpected surge stats %+v", stats)
	}
}

func TestSurge_ShortStreakIsFail(t *testing.T) {
	s := NewSurge()
	var stats model.SurgeStats
	s.AddLineClear(&stats, btbClear(4))
	s.AddLineClear(&stats, btbClear(4))
	s.Flush(&stats)
	if stats.Fails != 1 || stats.Chains != 0 || stats.Attack != 0 {
		t.Errorf("unexpected surge stats %+v", stats)
	}
}

func TestSurge_Exposure(t *testing.T) {
	s := NewSurge()
	var stats model.SurgeStats
	for i := 0; i < MinSurgeChain; i++ {
		c := btbClear(2)
		c.GarbageOnBoard = true
		c.CheeseOnBoard = i%2 == 0
		c.GarbageCleared = 1
		s.AddLineClear(&stats, c)
	}
	s.Flush(&stats)
	if stats.FramesWithSurgeGarbage != 80 || stats.SurgeGarbageCleared != 4 {
		t.Errorf("garbage exposure %+v", stats)
	}
	if stats.FramesWithSurgeCheese != 40 || stats.SurgeCheeseCleared != 2 {
		t.Errorf("cheese exposure %+v", stats)
	}
}

func TestCheese_Signal(t *testing.T) {
	c := NewCheese()
	c.Observe(0)
	if c.Signal() != 0 {
		t.Fatal("zero attack should not move the signal")
	}
	c.Observe(2)
	first := c.Signal()
	if first <= 0 || first > 1 {
		t.Fatalf("signal out of range: %v", first)
	}
	c.Observe(6)
	if c.Signal() >= first {
		t.Errorf("clean attack should lower the signal: %v -> %v", first, c.Signal())
	}
}

func TestStackSpeed_Runs(t *testing.T) {
	s := NewStackSpeed()
	s.Update(Upstack, 10)
	s.Update(Upstack, 12)
	s.Update(Clear, 8)
	s.Update(NewColumn, 30)
	s.Update(SameColumn, 20)
	s.Update(NewColumn, 25)

	got := s.Stats()
	if got.Stacking != (model.SpeedCounter{TotalUpdates: 3, TotalFrames: 30}) {
		t.Errorf("stacking = %+v", got.Stacking)
	}
	if got.Downstacking != (model.SpeedCounter{TotalUpdates: 2, TotalFrames: 50}) {
		t.Errorf("downstacking before flush = %+v", got.Downstacking)
	}

	s.ClearCache()
	got = s.Stats()
	if got.Downstacking != (model.SpeedCounter{TotalUpdates: 3, TotalFrames: 75}) {
		t.Errorf("downstacking after flush = %+v", got.Downstacking)
	}
}

func TestDeath_Classify(t *testing.T) {
	tests := []struct {
		name  string
		setup func(d *Death)
		want  model.DeathType
	}{
		{"pressure", func(d *Death) { d.Update(false, 2, 100) }, model.DeathPressure},
		{"cheese pressure", func(d *Death) {
			d.Update(true, 3, 750)
			d.Update(false, 1, 800)
		}, model.DeathCheesePressure},
		{"spike", func(d *Death) { d.Update(false, 10, 950) }, model.DeathSpike},
		{"cheese spike", func(d *Death) {
			d.Update(false, 6, 900)
			d.Update(true, 4, 950)
		}, model.DeathCheeseSpike},
		{"surge spike", func(d *Death) {
			d.Update(false, 10, 950)
			d.SurgeReceived(900)
		}, model.DeathSurgeSpike},
		{"surge conflict", func(d *Death) {
			d.SurgeReceived(900)
			d.SurgeSent(850)
		}, model.DeathSurgeConflict},
		{"old surge ignored", func(d *Death) {
			d.SurgeReceived(10)
			d.Update(false, 10, 990)
		}, model.DeathSpike},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDeath()
			tc.setup(d)
			if got := d.Classify(1000); got != tc.want {
				t.Errorf("Classify = %q, want %q", got, tc.want)
			}
		})
	}
}
