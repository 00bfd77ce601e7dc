// Package trace implements a sim.Simulator that replays engine outcomes
// recorded next to the inputs. Events of type "trace" carry the board, the
// garbage events and the lock that the engine produced on that frame; every
// other input type is accepted and ignored.
package trace

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/pable/go-versus-stats/internal/model"
	"github.com/pable/go-versus-stats/internal/sim"
)

// EventType is the input type this simulator interprets.
const EventType = "trace"

// Payload is the data of a trace event.
type Payload struct {
	Board   []string       `json:"board,omitempty"`
	Garbage []GarbageEvent `json:"garbage,omitempty"`
	Lock    *LockEvent     `json:"lock,omitempty"`
}

// GarbageEvent is one recorded garbage lifecycle change. Kind is "receive",
// "cancel" or "tank".
type GarbageEvent struct {
	Kind           string `json:"kind"`
	IID            int    `json:"iid"`
	Amount         int    `json:"amount"`
	OriginalAmount int    `json:"originalAmount,omitempty"`
}

// LockEvent is a recorded piece lock.
type LockEvent struct {
	Shape      model.MinoType `json:"shape"`
	Keypresses int            `json:"keypresses"`
	FrameDelay int            `json:"frameDelay"`
	WellColumn *int           `json:"wellColumn,omitempty"`
	TopOut     bool           `json:"topout,omitempty"`
	RawGarbage []int          `json:"rawGarbage,omitempty"`
	B2B        int            `json:"b2b"`
	Clear      *ClearEvent    `json:"clear,omitempty"`
}

// ClearEvent is the line-clear detail of a LockEvent.
type ClearEvent struct {
	Lines            int             `json:"lines"`
	GarbageCleared   int             `json:"garbageCleared"`
	DownstackCleared int             `json:"downstackCleared"`
	ClearType        model.ClearType `json:"clearType"`
	Attack           []int           `json:"attack,omitempty"`
	BTB              bool            `json:"btb,omitempty"`
	Allspin          bool            `json:"allspin,omitempty"`
}

// Engine is the trace simulator for one player.
type Engine struct {
	cfg      sim.Config
	listener sim.Listener
	log      *zap.Logger
	frame    int
	board    sim.Board
	rejected int
}

// NewFactory returns a sim.Factory producing trace engines that log
// undecodable payloads to log.
func NewFactory(log *zap.Logger) sim.Factory {
	if log == nil {
		log = zap.NewNop()
	}
	return func(cfg sim.Config, l sim.Listener) (sim.Simulator, error) {
		if l == nil {
			return nil, fmt.Errorf("trace engine for %s: nil listener", cfg.PlayerID)
		}
		return &Engine{cfg: cfg, listener: l, log: log.With(zap.String("player", cfg.PlayerID))}, nil
	}
}

// Frame implements sim.Simulator.
func (e *Engine) Frame() int { return e.frame }

// Board implements sim.Simulator.
func (e *Engine) Board() sim.Board { return e.board }

// Rejected implements sim.Rejecter. It counts garbage events and locks that
// were discarded for carrying negative amounts.
func (e *Engine) Rejected() int { return e.rejected }

// Tick implements sim.Simulator.
func (e *Engine) Tick(events []model.Event) {
	for _, ev := range events {
		if ev.Type != EventType {
			continue
		}
		var p Payload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			e.log.Warn("undecodable trace payload", zap.Int("frame", ev.Frame), zap.Error(err))
			continue
		}
		e.apply(p)
	}
	e.frame++
}

func (e *Engine) apply(p Payload) {
	if p.Board != nil {
		e.board = ParseBoard(p.Board)
	}
	for _, g := range p.Garbage {
		if g.Amount < 0 || g.OriginalAmount < 0 {
			e.reject("negative garbage amount", zap.String("kind", g.Kind), zap.Int("iid", g.IID),
				zap.Int("amount", g.Amount), zap.Int("original_amount", g.OriginalAmount))
			continue
		}
		switch g.Kind {
		case "receive":
			e.listener.OnGarbageReceive(g.IID, g.OriginalAmount, g.Amount)
		case "cancel":
			e.listener.OnGarbageCancel(g.IID, g.Amount)
		case "tank":
			e.listener.OnGarbageTank(g.IID, g.Amount)
		default:
			e.log.Warn("unknown garbage event kind", zap.String("kind", g.Kind))
		}
	}
	if p.Lock != nil {
		if field := p.Lock.negativeField(); field != "" {
			e.reject("negative lock field", zap.String("field", field))
			return
		}
		e.listener.OnLock(p.Lock.toLock())
	}
}

func (e *Engine) reject(msg string, fields ...zap.Field) {
	e.rejected++
	e.log.Warn(msg, append(fields, zap.Int("frame", e.frame))...)
}

// negativeField names the first count in l that is below zero. B2B is
// exempt: a negative value marks a broken chain.
func (l *LockEvent) negativeField() string {
	switch {
	case l.Keypresses < 0:
		return "keypresses"
	case l.FrameDelay < 0:
		return "frameDelay"
	case anyNegative(l.RawGarbage):
		return "rawGarbage"
	}
	c := l.Clear
	if c == nil {
		return ""
	}
	switch {
	case c.Lines < 0:
		return "clear.lines"
	case c.GarbageCleared < 0:
		return "clear.garbageCleared"
	case c.DownstackCleared < 0:
		return "clear.downstackCleared"
	case anyNegative(c.Attack):
		return "clear.attack"
	}
	return ""
}

func anyNegative(xs []int) bool {
	for _, x := range xs {
		if x < 0 {
			return true
		}
	}
	return false
}

func (l *LockEvent) toLock() sim.Lock {
	out := sim.Lock{
		Shape:      l.Shape,
		Keypresses: l.Keypresses,
		FrameDelay: l.FrameDelay,
		WellColumn: -1,
		TopOut:     l.TopOut,
		RawGarbage: l.RawGarbage,
		B2B:        l.B2B,
	}
	if l.WellColumn != nil {
		out.WellColumn = *l.WellColumn
	}
	if c := l.Clear; c != nil {
		out.Clear = &sim.Clear{
			LinesCleared:     c.Lines,
			GarbageCleared:   c.GarbageCleared,
			DownstackCleared: c.DownstackCleared,
			ClearType:        c.ClearType,
			Attack:           c.Attack,
			BTBClear:         c.BTB,
			Allspin:          c.Allspin,
		}
	}
	return out
}

// ParseBoard decodes rows written bottom first, one rune per cell:
// '.' or ' ' empty, 'G' or '#' garbage, anything else a filled mino.
func ParseBoard(rows []string) sim.Board {
	b := make(sim.Board, len(rows))
	for y, row := range rows {
		cells := make([]sim.Cell, 0, len(row))
		for _, r := range row {
			switch r {
			case '.', ' ':
				cells = append(cells, sim.CellEmpty)
			case 'G', '#':
				cells = append(cells, sim.CellGarbage)
			default:
				cells = append(cells, sim.CellFilled)
			}
		}
		b[y] = cells
	}
	return b
}
