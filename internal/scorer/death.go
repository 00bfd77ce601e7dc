package scorer

import "github.com/pable/go-versus-stats/internal/model"

// Classification windows, in frames before the death frame.
const (
	DeathWindow     = 5 * model.FramesPerSecond
	SpikeWindow     = 2 * model.FramesPerSecond
	SpikeMinGarbage = 8
)

type garbageMark struct {
	frame      int
	amount     int
	realCheese bool
}

// Death remembers incoming garbage and surge markers so a top-out can be
// attributed to one DeathType.
type Death struct {
	garbage   []garbageMark
	surgeRecv []int
	surgeSent []int
}

// NewDeath returns an empty classifier.
func NewDeath() *Death {
	return &Death{}
}

// Update records amount garbage lines arriving at frame, with the board's
// real-cheese flag at that time.
func (d *Death) Update(realCheese bool, amount, frame int) {
	d.garbage = append(d.garbage, garbageMark{frame: frame, amount: amount, realCheese: realCheese})
}

// SurgeReceived marks a frame at which an opponent released a surge.
func (d *Death) SurgeReceived(frame int) {
	d.surgeRecv = append(d.surgeRecv, frame)
}

// SurgeSent marks a frame at which this player released a surge.
func (d *Death) SurgeSent(frame int) {
	d.surgeSent = append(d.surgeSent, frame)
}

func anyIn(frames []int, from, to int) bool {
	for _, f := range frames {
		if f >= from && f <= to {
			return true
		}
	}
	return false
}

// Classify attributes a death at frame.
func (d *Death) Classify(frame int) model.DeathType {
	from := frame - DeathWindow
	recv := anyIn(d.surgeRecv, from, frame)
	sent := anyIn(d.surgeSent, from, frame)
	switch {
	case recv && sent:
		return model.DeathSurgeConflict
	case recv:
		return model.DeathSurgeSpike
	}

	spike, spikeCheese := 0, false
	cheese, clean := 0, 0
	for _, g := range d.garbage {
		if g.frame > frame || g.frame < from {
			continue
		}
		if g.frame >= frame-SpikeWindow {
			spike += g.amount
			spikeCheese = spikeCheese || g.realCheese
		}
		if g.realCheese {
			cheese += g.amount
		} else {
			clean += g.amount
		}
	}
	switch {
	case spike >= SpikeMinGarbage && spikeCheese:
		return model.DeathCheeseSpike
	case spike >= SpikeMinGarbage:
		return model.DeathSpike
	case cheese > clean:
		return model.DeathCheesePressure
	default:
		return model.DeathPressure
	}
}
