// Package scorer holds the reference scorers the aggregator feeds on every
// lock: surge chains, attack cheesiness, midgame stack speed and death causes.
package scorer

import "github.com/pable/go-versus-stats/internal/model"

// MinSurgeChain is the back-to-back streak a chain must reach to count.
const MinSurgeChain = 4

// LineClear is the per-lock input of the surge scorer.
type LineClear struct {
	ClearType      model.ClearType
	BTBClear       bool
	Allspin        bool
	Attack         int
	Lines          int
	GarbageCleared int
	FrameDelay     int
	GarbageOnBoard bool
	CheeseOnBoard  bool
}

// Surge tracks the running back-to-back streak. Stats of the streak in
// progress are buffered and only committed when the streak ends.
type Surge struct {
	btb   int
	cache model.SurgeStats
}

// NewSurge returns a scorer with no streak.
func NewSurge() *Surge {
	return &Surge{}
}

// BTB is the current streak length.
func (s *Surge) BTB() int {
	return s.btb
}

// AddLineClear records a clearing lock. A clear that is not back-to-back
// ends the streak.
func (s *Surge) AddLineClear(stats *model.SurgeStats, c LineClear) {
	if !c.BTBClear {
		s.Flush(stats)
		return
	}
	s.btb++
	s.cache.BTBClears++
	s.cache.Pieces++
	s.cache.Frames += c.FrameDelay
	s.cache.Attack += c.Attack
	s.cache.LinesCleared += c.Lines
	s.cache.GarbageCleared += c.GarbageCleared
	if c.Allspin || c.ClearType == model.ClearAllspin {
		s.cache.Allspins++
	}
	s.exposure(c.FrameDelay, c.GarbageCleared, c.GarbageOnBoard, c.CheeseOnBoard)
}

// AddStack records a lock that cleared nothing.
func (s *Surge) AddStack(stats *model.SurgeStats, frameDelay int, garbageOnBoard, cheeseOnBoard bool) {
	if s.btb == 0 {
		return
	}
	s.cache.Pieces++
	s.cache.Frames += frameDelay
	s.exposure(frameDelay, 0, garbageOnBoard, cheeseOnBoard)
}

func (s *Surge) exposure(frames, cleared int, garbageOnBoard, cheeseOnBoard bool) {
	if garbageOnBoard {
		s.cache.FramesWithSurgeGarbage += frames
		s.cache.SurgeGarbageCleared += cleared
	}
	if cheeseOnBoard {
		s.cache.FramesWithSurgeCheese += frames
		s.cache.SurgeCheeseCleared += cleared
	}
}

// Flush commits the buffered streak into stats and resets it. Streaks shorter
// than MinSurgeChain count as fails.
func (s *Surge) Flush(stats *model.SurgeStats) {
	switch {
	case s.btb >= MinSurgeChain:
		s.cache.Chains = 1
		s.cache.BTB = s.btb
		stats.Combine(&s.cache)
	case s.btb > 0:
		stats.Fails++
	}
	s.btb = 0
	s.cache = model.SurgeStats{}
}
