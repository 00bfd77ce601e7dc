package scorer

import "github.com/pable/go-versus-stats/internal/model"

// SpeedUpdate classifies a midgame lock for stack-speed accounting.
type SpeedUpdate int

const (
	// NewColumn is a garbage clear that opened a different garbage column.
	NewColumn SpeedUpdate = iota
	// SameColumn is a garbage clear on the same column as before.
	SameColumn
	// Upstack is a lock that cleared nothing.
	Upstack
	// Clear is a lock that cleared only the player's own lines.
	Clear
)

func (u SpeedUpdate) String() string {
	switch u {
	case NewColumn:
		return "new-column"
	case SameColumn:
		return "same-column"
	case Upstack:
		return "upstack"
	case Clear:
		return "clear"
	default:
		return "?"
	}
}

type runKind int

const (
	runNone runKind = iota
	runStacking
	runDownstacking
)

// StackSpeed groups consecutive midgame locks into stacking and
// downstacking runs. The run in progress stays in a cache until the kind
// changes, a new garbage column opens, or ClearCache is called.
type StackSpeed struct {
	stats model.StackSpeed
	kind  runKind
	run   model.SpeedCounter
}

// NewStackSpeed returns an empty scorer.
func NewStackSpeed() *StackSpeed {
	return &StackSpeed{}
}

// Update records one midgame lock.
func (s *StackSpeed) Update(u SpeedUpdate, frameDelay int) {
	switch u {
	case NewColumn:
		s.commit()
		s.kind = runDownstacking
	case SameColumn:
		if s.kind != runDownstacking {
			s.commit()
			s.kind = runDownstacking
		}
	case Upstack:
		if s.kind != runStacking {
			s.commit()
			s.kind = runStacking
		}
	case Clear:
		if s.kind == runNone {
			s.kind = runStacking
		}
	}
	s.run.TotalUpdates++
	s.run.TotalFrames += frameDelay
}

func (s *StackSpeed) commit() {
	switch s.kind {
	case runStacking:
		s.stats.Stacking.Combine(&s.run)
	case runDownstacking:
		s.stats.Downstacking.Combine(&s.run)
	}
	s.kind = runNone
	s.run = model.SpeedCounter{}
}

// ClearCache commits the run in progress.
func (s *StackSpeed) ClearCache() {
	s.commit()
}

// Stats returns the committed counters.
func (s *StackSpeed) Stats() model.StackSpeed {
	return s.stats
}
