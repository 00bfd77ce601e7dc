package scorer

// cheeseDecay weights the previous signal against the newest attack.
const cheeseDecay = 0.8

// Cheese keeps a running signal in [0, 1] of how much of a player's recent
// attack came in small (< 4 line) pieces, which arrive as messy garbage.
type Cheese struct {
	signal float64
}

// NewCheese returns a scorer with a zero signal.
func NewCheese() *Cheese {
	return &Cheese{}
}

// Observe folds one attacking clear into the signal.
func (c *Cheese) Observe(attack int) {
	if attack <= 0 {
		return
	}
	x := 0.0
	if attack < 4 {
		x = 1
	}
	c.signal = cheeseDecay*c.signal + (1-cheeseDecay)*x
}

// Signal is the current cheesiness.
func (c *Cheese) Signal() float64 {
	return c.signal
}
