package aggregator

import (
	"github.com/pable/go-versus-stats/internal/scorer"
	"github.com/pable/go-versus-stats/internal/sim"
)

// Phase is where a player is in a round. It only moves forward.
type Phase int

const (
	// PhaseNoG: no garbage cleared yet.
	PhaseNoG Phase = iota
	// PhaseComboing: clearing the first garbage, usually while comboing.
	PhaseComboing
	// PhaseMidgame: the first whiff after comboing and everything after.
	PhaseMidgame
)

func (p Phase) String() string {
	switch p {
	case PhaseNoG:
		return "noG"
	case PhaseComboing:
		return "comboing"
	case PhaseMidgame:
		return "midgame"
	default:
		return "?"
	}
}

// Board-shape thresholds, in rows.
const (
	cheeseRunMax       = 4  // a garbage run shorter than this is cheese
	realCheeseMinRows  = 4  // cheese rows needed for real cheese
	realCheeseMaxStack = 10 // stack height allowed with real cheese
)

// BoardShape is the garbage composition of a board.
type BoardShape struct {
	// Runs are heights of contiguous garbage rows sharing a hole column,
	// bottom run first.
	Runs []int
	// GarbageColumn is the hole column of the topmost run, -1 without garbage.
	GarbageColumn     int
	StackHeight       int
	GarbageOnBoard    bool
	CheeseOnBoard     bool
	RealCheeseOnBoard bool
}

// garbageRow reports whether row holds only garbage and holes, and returns
// its first hole column.
func garbageRow(row []sim.Cell) (bool, int) {
	hole, garbage := -1, false
	for x, c := range row {
		switch c {
		case sim.CellEmpty:
			if hole < 0 {
				hole = x
			}
		case sim.CellGarbage:
			garbage = true
		default:
			return false, -1
		}
	}
	return garbage, hole
}

// ScanBoard measures the garbage at the bottom of b.
func ScanBoard(b sim.Board) BoardShape {
	shape := BoardShape{GarbageColumn: -1}

	height, col := 0, -1
	for _, row := range b {
		ok, hole := garbageRow(row)
		if !ok {
			break
		}
		if height > 0 && hole == col {
			height++
			continue
		}
		if height > 0 {
			shape.Runs = append(shape.Runs, height)
		}
		height, col = 1, hole
	}
	if height > 0 {
		shape.Runs = append(shape.Runs, height)
		shape.GarbageColumn = col
	}

	for y := len(b) - 1; y >= 0; y-- {
		empty := true
		for _, c := range b[y] {
			if c != sim.CellEmpty {
				empty = false
				break
			}
		}
		if !empty {
			shape.StackHeight = y + 1
			break
		}
	}

	n := len(shape.Runs)
	shape.GarbageOnBoard = n > 0
	shape.CheeseOnBoard = n > 0 && shape.Runs[n-1] < cheeseRunMax

	cheeseRows := 0
	for i := n - 1; i >= 0 && shape.Runs[i] < cheeseRunMax; i-- {
		cheeseRows += shape.Runs[i]
	}
	shape.RealCheeseOnBoard = cheeseRows >= realCheeseMinRows && shape.StackHeight <= realCheeseMaxStack
	return shape
}

// PhaseTracker follows one player's phase and board shape through a round.
type PhaseTracker struct {
	phase          Phase
	shape          BoardShape
	lastGarbageCol int
	history        []Phase
}

// NewPhaseTracker starts in PhaseNoG with an empty board.
func NewPhaseTracker() *PhaseTracker {
	return &PhaseTracker{
		shape:          BoardShape{GarbageColumn: -1},
		lastGarbageCol: -1,
		history:        []Phase{PhaseNoG},
	}
}

// Phase is the current phase.
func (t *PhaseTracker) Phase() Phase { return t.phase }

// Shape is the board shape after the last Observe.
func (t *PhaseTracker) Shape() BoardShape { return t.shape }

// History lists every phase entered, in order.
func (t *PhaseTracker) History() []Phase { return t.history }

// Advance applies the phase transition triggered by l, if any.
func (t *PhaseTracker) Advance(l *sim.Lock) Phase {
	switch {
	case t.phase == PhaseNoG && l.GarbageCleared() > 0:
		t.enter(PhaseComboing)
	case t.phase == PhaseComboing && l.LinesCleared() == 0:
		t.enter(PhaseMidgame)
	}
	return t.phase
}

func (t *PhaseTracker) enter(p Phase) {
	t.phase = p
	t.history = append(t.history, p)
}

// Observe rescans the board after a lock.
func (t *PhaseTracker) Observe(b sim.Board) BoardShape {
	t.shape = ScanBoard(b)
	return t.shape
}

// SpeedUpdate classifies l for the stack-speed scorer. It reports false
// outside the midgame, where locks are not scored.
func (t *PhaseTracker) SpeedUpdate(l *sim.Lock) (scorer.SpeedUpdate, bool) {
	if t.phase != PhaseMidgame {
		return 0, false
	}
	if l.GarbageCleared() > 0 {
		if t.shape.GarbageColumn != t.lastGarbageCol {
			t.lastGarbageCol = t.shape.GarbageColumn
			return scorer.NewColumn, true
		}
		return scorer.SameColumn, true
	}
	if l.Clear == nil {
		return scorer.Upstack, true
	}
	return scorer.Clear, true
}
