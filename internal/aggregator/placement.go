package aggregator

import (
	"github.com/pable/go-versus-stats/internal/model"
	"github.com/pable/go-versus-stats/internal/sim"
)

// ppsSegment maps a lock's frame delay to a 0.1-PPS bucket.
func ppsSegment(frameDelay int) int {
	if frameDelay <= 0 {
		return model.PPSSegmentCount - 1
	}
	idx := int(float64(model.FramesPerSecond) / float64(frameDelay) * 10)
	if idx >= model.PPSSegmentCount {
		idx = model.PPSSegmentCount - 1
	}
	return idx
}

// addLock updates placement counters for one lock. opener is true for every
// lock before the midgame.
func addLock(p *model.PlacementStats, l *sim.Lock, opener bool, cheese CheeseScorer, cheeseOnBoard bool, cleanThreshold int) {
	p.AllPieces++
	if !opener {
		p.Pieces++
	}
	p.Keypresses += l.Keypresses
	p.FrameDelay += l.FrameDelay
	p.PPSSegments[ppsSegment(l.FrameDelay)]++

	switch l.Shape {
	case model.MinoI:
		p.IPieces++
	case model.MinoT:
		p.TPieces++
	}
	if l.WellColumn >= 0 && l.WellColumn < model.BoardWidth {
		p.WellColumns[l.WellColumn]++
	}

	attack := 0
	if c := l.Clear; c != nil {
		attack = c.TotalAttack()
		p.LinesCleared += c.LinesCleared
		p.DownstackCleared += c.DownstackCleared
		p.ClearTypes.Inc(c.ClearType)
		if c.Allspin {
			p.Allspins++
		}
		if cheeseOnBoard {
			p.CheeseCleared += c.GarbageCleared
			p.AttackWithCheese += attack
		}
		if c.DownstackCleared > 0 {
			p.AttackWithDownstack += attack
		}
	}
	p.Attack += attack

	if attack > 0 {
		p.AttacksSent++
		p.LinesSent += l.RawGarbageTotal()
		if attack >= cleanThreshold {
			p.CleanAttacksSent++
			p.CleanLinesSent += attack
		}
		cheese.Observe(attack)
		p.CheeseScore += cheese.Signal() * float64(attack)
	}

	if opener {
		p.OpenerBlocks++
		p.OpenerFrames += l.FrameDelay
		p.OpenerAttack += attack
	}
}
