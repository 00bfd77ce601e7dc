package aggregator

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pable/go-versus-stats/internal/model"
	"github.com/pable/go-versus-stats/internal/scorer"
	"github.com/pable/go-versus-stats/internal/sim"
)

// playerRound is everything one player needs for one round. It is owned by
// the round and dropped once the round's result is built.
type playerRound struct {
	rec     *model.RoundRecord
	opts    *Options
	log     *zap.Logger
	stats   *model.GameStats
	sim     sim.Simulator
	scorers Scorers
	ledger  *Ledger
	phase   *PhaseTracker

	events      []model.Event
	done        bool
	toppedOut   bool
	desynced    bool
	dropped     int
	residual    int
	surgeFrames []int
	death       model.DeathType
	anomalies   model.LedgerAnomalies
}

func newRound(records []model.RoundRecord, opts Options, log *zap.Logger) ([]*playerRound, error) {
	seen := make(map[string]bool)
	var players []*playerRound
	for i := range records {
		rec := &records[i]
		if seen[rec.ID] {
			log.Warn("duplicate player in round, ignoring", zap.String("player", rec.ID))
			continue
		}
		seen[rec.ID] = true

		p := &playerRound{
			rec:     rec,
			opts:    &opts,
			log:     log.With(zap.String("player", rec.ID)),
			stats:   model.NewGameStats(),
			scorers: opts.Scorers(),
			ledger:  NewLedger(opts.CleanThreshold),
			phase:   NewPhaseTracker(),
			events:  append([]model.Event(nil), rec.Replay.Events...),
		}
		s, err := opts.Simulator(sim.Config{
			PlayerID:  rec.ID,
			Options:   rec.Replay.Options,
			Opponents: rec.Opponents(),
		}, p)
		if err != nil {
			return nil, fmt.Errorf("simulator for %s: %w", rec.ID, err)
		}
		p.sim = s
		players = append(players, p)
	}
	return players, nil
}

// drive advances all players on one frame clock until every event stream
// is exhausted. The player whose next event is earliest moves first.
func drive(players []*playerRound) {
	for {
		var next *playerRound
		for _, p := range players {
			if p.done {
				continue
			}
			if len(p.events) == 0 {
				p.done = true
				continue
			}
			if next == nil || p.events[0].Frame < next.events[0].Frame {
				next = p
			}
		}
		if next == nil {
			return
		}
		next.step()
	}
}

// step delivers the events queued at the next event frame as one tick.
func (p *playerRound) step() {
	for p.sim.Frame() < p.events[0].Frame {
		p.sim.Tick(nil)
	}

	frame := p.sim.Frame()
	for len(p.events) > 0 && p.events[0].Frame < frame {
		p.log.Warn("event behind simulator frame, dropping",
			zap.Int("event_frame", p.events[0].Frame),
			zap.Int("frame", frame),
			zap.String("type", p.events[0].Type),
		)
		p.events = p.events[1:]
		p.dropped++
	}

	// An end event stops the round before its frame is ticked, so nothing
	// sharing that frame reaches the simulator.
	var batch []model.Event
	for len(p.events) > 0 && p.events[0].Frame == frame {
		ev := p.events[0]
		p.events = p.events[1:]
		if ev.Type == model.EventEnd {
			p.done = true
			p.events = nil
			break
		}
		batch = append(batch, ev)
	}
	if !p.done {
		p.sim.Tick(batch)
	}

	if p.toppedOut && len(p.events) > p.residual {
		p.residual = len(p.events)
	}
	if p.toppedOut && len(p.events) > *p.opts.DesyncThreshold {
		p.desynced = true
	}
}

// ---- sim.Listener ----

// OnLock implements sim.Listener.
func (p *playerRound) OnLock(l sim.Lock) {
	if l.TopOut {
		p.toppedOut = true
	}
	shape := p.phase.Shape()

	if c := l.Clear; c != nil {
		before := p.scorers.Surge.BTB()
		p.scorers.Surge.AddLineClear(&p.stats.Surge, scorer.LineClear{
			ClearType:      c.ClearType,
			BTBClear:       c.BTBClear,
			Allspin:        c.Allspin,
			Attack:         c.TotalAttack(),
			Lines:          c.LinesCleared,
			GarbageCleared: c.GarbageCleared,
			FrameDelay:     l.FrameDelay,
			GarbageOnBoard: shape.GarbageOnBoard,
			CheeseOnBoard:  shape.CheeseOnBoard,
		})
		if l.B2B < 0 && before >= p.opts.SurgeStreak && l.RawGarbageTotal() >= p.opts.SurgeMinGarbage {
			p.surgeFrames = append(p.surgeFrames, p.sim.Frame())
		}
	} else {
		p.scorers.Surge.AddStack(&p.stats.Surge, l.FrameDelay, shape.GarbageOnBoard, shape.CheeseOnBoard)
	}

	phase := p.phase.Advance(&l)
	addLock(&p.stats.Placement, &l, phase != PhaseMidgame, p.scorers.Cheese, shape.CheeseOnBoard, p.opts.CleanThreshold)

	p.phase.Observe(p.sim.Board())
	if u, ok := p.phase.SpeedUpdate(&l); ok {
		p.scorers.StackSpeed.Update(u, l.FrameDelay)
	}
}

// OnGarbageCancel implements sim.Listener.
func (p *playerRound) OnGarbageCancel(id, amount int) {
	p.ledger.Cancel(id, amount)
}

// OnGarbageTank implements sim.Listener.
func (p *playerRound) OnGarbageTank(id, amount int) {
	p.ledger.Tank(id, amount)
}

// OnGarbageReceive implements sim.Listener.
func (p *playerRound) OnGarbageReceive(id, originalAmount, amount int) {
	p.scorers.Death.Update(p.phase.Shape().RealCheeseOnBoard, originalAmount, p.sim.Frame())
	p.ledger.Receive(id, originalAmount, amount)
}

func (p *playerRound) result(round int) model.PlayerRoundResult {
	dropped := p.dropped
	if r, ok := p.sim.(sim.Rejecter); ok {
		dropped += r.Rejected()
	}
	return model.PlayerRoundResult{
		PlayerID:  p.rec.ID,
		Username:  p.rec.Username,
		Round:     round,
		Alive:     p.rec.Alive,
		ToppedOut: p.toppedOut,
		Desynced:  p.desynced,
		Death:     p.death,
		Frames:    p.sim.Frame(),
		Dropped:   dropped,
		Residual:  p.residual,
		Anomalies: p.anomalies,
		Stats:     p.stats,
	}
}
