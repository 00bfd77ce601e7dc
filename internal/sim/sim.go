// Package sim defines the contract between the statistics engine and a
// per-player game simulator. The simulator is opaque: it advances one frame
// per Tick and reports what happened through a Listener, synchronously.
package sim

import (
	"encoding/json"

	"github.com/pable/go-versus-stats/internal/model"
)

// Cell is the content of one board cell.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellFilled
	CellGarbage
)

// Board is the playfield, row 0 at the bottom.
type Board [][]Cell

// Clear describes the lines a lock removed and the attack it produced.
type Clear struct {
	LinesCleared     int
	GarbageCleared   int
	DownstackCleared int
	ClearType        model.ClearType
	Attack           []int // per opponent
	BTBClear         bool
	Allspin          bool
}

// TotalAttack sums Attack.
func (c *Clear) TotalAttack() int {
	return sum(c.Attack)
}

// Lock is a resolved piece placement.
type Lock struct {
	Shape      model.MinoType
	Keypresses int
	FrameDelay int
	WellColumn int // -1 when the lock has no well
	Clear      *Clear
	TopOut     bool
	RawGarbage []int
	// B2B is the back-to-back streak after the lock; -1 once a clear broke it.
	B2B int
}

// LinesCleared is 0 when the lock cleared nothing.
func (l *Lock) LinesCleared() int {
	if l.Clear == nil {
		return 0
	}
	return l.Clear.LinesCleared
}

// GarbageCleared is 0 when the lock cleared nothing.
func (l *Lock) GarbageCleared() int {
	if l.Clear == nil {
		return 0
	}
	return l.Clear.GarbageCleared
}

// RawGarbageTotal sums RawGarbage.
func (l *Lock) RawGarbageTotal() int {
	return sum(l.RawGarbage)
}

// Listener receives simulator events from inside Tick.
type Listener interface {
	OnLock(l Lock)
	OnGarbageCancel(id, amount int)
	OnGarbageTank(id, amount int)
	OnGarbageReceive(id, originalAmount, amount int)
}

// Simulator is one player's game instance.
type Simulator interface {
	// Tick advances exactly one frame, applying events first.
	Tick(events []model.Event)
	// Frame is the number of frames ticked so far.
	Frame() int
	Board() Board
}

// Rejecter is implemented by simulators that discard malformed input. Rejected
// counts what was discarded so far.
type Rejecter interface {
	Rejected() int
}

// Config is what a simulator needs to be built for one player in one round.
type Config struct {
	PlayerID  string
	Options   json.RawMessage
	Opponents []int
}

// Factory builds a simulator that reports to l.
type Factory func(cfg Config, l Listener) (Simulator, error)

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
