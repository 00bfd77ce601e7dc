package model

// PPSSegmentCount is the number of 0.1-PPS buckets in PlacementStats.PPSSegments.
const PPSSegmentCount = 100

// BoardWidth is the number of columns on a playfield.
const BoardWidth = 10

// FramesPerSecond is the simulator clock rate.
const FramesPerSecond = 60

// ClearType identifies the kind of line clear a placement produced.
type ClearType string

const (
	ClearPerfectClear ClearType = "perfectClear"
	ClearAllspin      ClearType = "allspin"
	ClearSingle       ClearType = "single"
	ClearTspinSingle  ClearType = "tspinSingle"
	ClearDouble       ClearType = "double"
	ClearTspinDouble  ClearType = "tspinDouble"
	ClearTriple       ClearType = "triple"
	ClearTspinTriple  ClearType = "tspinTriple"
	ClearQuad         ClearType = "quad"
)

// ClearTypeOrder lists every ClearType in display order.
var ClearTypeOrder = []ClearType{
	ClearPerfectClear, ClearAllspin, ClearSingle, ClearTspinSingle,
	ClearDouble, ClearTspinDouble, ClearTriple, ClearTspinTriple, ClearQuad,
}

// DeathType is the cause a death classifier assigns to a top-out.
type DeathType string

const (
	DeathSurgeConflict  DeathType = "Surge Conflict"
	DeathSurgeSpike     DeathType = "Surge Spike"
	DeathCheeseSpike    DeathType = "Cheese Spike"
	DeathSpike          DeathType = "Spike"
	DeathCheesePressure DeathType = "Cheese Pressure"
	DeathPressure       DeathType = "Pressure"
)

// DeathTypeOrder lists every DeathType in display order.
var DeathTypeOrder = []DeathType{
	DeathSurgeConflict, DeathSurgeSpike, DeathCheeseSpike,
	DeathSpike, DeathCheesePressure, DeathPressure,
}

// MinoType is a piece shape.
type MinoType string

const (
	MinoI MinoType = "I"
	MinoO MinoType = "O"
	MinoT MinoType = "T"
	MinoL MinoType = "L"
	MinoJ MinoType = "J"
	MinoS MinoType = "S"
	MinoZ MinoType = "Z"
)

// ---- Combinable stat tree ----

// SpeedCounter counts placements and the frames they took.
type SpeedCounter struct {
	TotalUpdates int `json:"totalUpdates"`
	TotalFrames  int `json:"totalFrames"`
}

// StackSpeed splits midgame placement speed into stacking and downstacking.
type StackSpeed struct {
	Stacking     SpeedCounter `json:"stacking"`
	Downstacking SpeedCounter `json:"downstacking"`
}

// ClearTypes holds one counter per ClearType. It is a struct rather than a map
// so every tree always carries the full key set.
type ClearTypes struct {
	PerfectClear int `json:"perfectClear"`
	Allspin      int `json:"allspin"`
	Single       int `json:"single"`
	TspinSingle  int `json:"tspinSingle"`
	Double       int `json:"double"`
	TspinDouble  int `json:"tspinDouble"`
	Triple       int `json:"triple"`
	TspinTriple  int `json:"tspinTriple"`
	Quad         int `json:"quad"`
}

func (c *ClearTypes) field(t ClearType) *int {
	switch t {
	case ClearPerfectClear:
		return &c.PerfectClear
	case ClearAllspin:
		return &c.Allspin
	case ClearSingle:
		return &c.Single
	case ClearTspinSingle:
		return &c.TspinSingle
	case ClearDouble:
		return &c.Double
	case ClearTspinDouble:
		return &c.TspinDouble
	case ClearTriple:
		return &c.Triple
	case ClearTspinTriple:
		return &c.TspinTriple
	case ClearQuad:
		return &c.Quad
	}
	return nil
}

// Get returns the counter for t, or 0 for an unknown clear type.
func (c ClearTypes) Get(t ClearType) int {
	if p := c.field(t); p != nil {
		return *p
	}
	return 0
}

// Inc increments the counter for t. Unknown clear types are ignored and
// reported as false.
func (c *ClearTypes) Inc(t ClearType) bool {
	p := c.field(t)
	if p == nil {
		return false
	}
	*p++
	return true
}

// PlacementStats are counters updated on every piece lock.
type PlacementStats struct {
	StackSpeed StackSpeed `json:"stackSpeed"`

	WellColumns [BoardWidth]int      `json:"wellColumns"`
	ClearTypes  ClearTypes           `json:"clearTypes"`
	PPSSegments [PPSSegmentCount]int `json:"ppsSegments"`
	Pieces      int                  `json:"pieces"`

	OpenerAttack int `json:"openerAttack"`
	OpenerFrames int `json:"openerFrames"`
	OpenerBlocks int `json:"openerBlocks"`

	Allspins int `json:"allspins"`

	IPieces   int `json:"iPieces"`
	TPieces   int `json:"tPieces"`
	AllPieces int `json:"allPieces"`

	Attack           int `json:"attack"`
	AttacksSent      int `json:"attacksSent"`
	CleanAttacksSent int `json:"cleanAttacksSent"`
	CleanLinesSent   int `json:"cleanLinesSent"`
	LinesSent        int `json:"linesSent"`

	CheeseScore float64 `json:"cheeseScore"`

	LinesCleared        int `json:"linesCleared"`
	DownstackCleared    int `json:"downstackCleared"`
	CheeseCleared       int `json:"cheeseCleared"`
	AttackWithCheese    int `json:"attackWithCheese"`
	AttackWithDownstack int `json:"attackWithDownstack"`
	FrameDelay          int `json:"frameDelay"`

	Keypresses int `json:"keypresses"`
}

// GarbageStats are finalized counts of received garbage, split by origin size
// (clean >= 4 lines, cheese < 4) and by resolution.
type GarbageStats struct {
	LinesReceived       int `json:"linesReceived"`
	CleanLinesReceived  int `json:"cleanLinesRecieved"`
	CheeseLinesReceived int `json:"cheeseLinesRecieved"`

	CheeseLinesCancelled int `json:"cheeseLinesCancelled"`
	CheeseLinesTanked    int `json:"cheeseLinesTanked"`

	CleanLinesCancelled      int `json:"cleanLinesCancelled"`
	CleanLinesTankedAsCheese int `json:"cleanLinesTankedAsCheese"`
	CleanLinesTankedAsClean  int `json:"cleanLinesTankedAsClean"`
}

// SurgeStats describe back-to-back chains and the exposure to garbage while
// a chain was held.
type SurgeStats struct {
	Chains         int `json:"chains"`
	BTB            int `json:"btb"`
	GarbageCleared int `json:"garbageCleared"`
	LinesCleared   int `json:"linesCleared"`
	Attack         int `json:"attack"`
	Frames         int `json:"frames"`
	Pieces         int `json:"pieces"`
	Fails          int `json:"fails"`

	FramesWithSurgeGarbage int `json:"framesWithSurgeGarbage"`
	SurgeGarbageCleared    int `json:"surgeGarbageCleared"`

	FramesWithSurgeCheese int `json:"framesWithSurgeCheese"`
	SurgeCheeseCleared    int `json:"surgeCheeseCleared"`

	Allspins  int `json:"allspins"`
	BTBClears int `json:"btbClears"`
}

// DeathStats counts deaths (or kills) per DeathType.
type DeathStats struct {
	SurgeConflict  int `json:"Surge Conflict"`
	SurgeSpike     int `json:"Surge Spike"`
	CheeseSpike    int `json:"Cheese Spike"`
	Spike          int `json:"Spike"`
	CheesePressure int `json:"Cheese Pressure"`
	Pressure       int `json:"Pressure"`
}

func (d *DeathStats) field(t DeathType) *int {
	switch t {
	case DeathSurgeConflict:
		return &d.SurgeConflict
	case DeathSurgeSpike:
		return &d.SurgeSpike
	case DeathCheeseSpike:
		return &d.CheeseSpike
	case DeathSpike:
		return &d.Spike
	case DeathCheesePressure:
		return &d.CheesePressure
	case DeathPressure:
		return &d.Pressure
	}
	return nil
}

// Get returns the counter for t, or 0 for an unknown death type.
func (d DeathStats) Get(t DeathType) int {
	if p := d.field(t); p != nil {
		return *p
	}
	return 0
}

// Inc increments the counter for t and reports whether t was known.
func (d *DeathStats) Inc(t DeathType) bool {
	p := d.field(t)
	if p == nil {
		return false
	}
	*p++
	return true
}

// Total is the sum over all death types.
func (d DeathStats) Total() int {
	return d.SurgeConflict + d.SurgeSpike + d.CheeseSpike + d.Spike + d.CheesePressure + d.Pressure
}

// GameStats is the per-player, per-round stat tree. Trees of this type are
// combined across rounds and games with Combine.
type GameStats struct {
	Placement PlacementStats `json:"placement"`
	Garbage   GarbageStats   `json:"garbage"`
	Surge     SurgeStats     `json:"surge"`
	Death     DeathStats     `json:"death"`
	Kill      DeathStats     `json:"kill"`
}

// NewGameStats returns an empty stat tree for a new round.
func NewGameStats() *GameStats {
	return &GameStats{}
}

// PlayerGameStats pairs a player's display name with their stats.
type PlayerGameStats struct {
	Username string    `json:"username"`
	Stats    GameStats `json:"stats"`
}
