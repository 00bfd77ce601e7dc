package model

import "fmt"

// Combine adds every leaf of src into s. Numbers add, fixed arrays add
// element-wise and sub-trees recurse, so folding rounds in any order gives the
// same totals.
func (s *GameStats) Combine(src *GameStats) {
	s.Placement.Combine(&src.Placement)
	s.Garbage.Combine(&src.Garbage)
	s.Surge.Combine(&src.Surge)
	s.Death.Combine(&src.Death)
	s.Kill.Combine(&src.Kill)
}

// Combine adds src into c.
func (c *SpeedCounter) Combine(src *SpeedCounter) {
	c.TotalUpdates += src.TotalUpdates
	c.TotalFrames += src.TotalFrames
}

// Combine adds src into s.
func (s *StackSpeed) Combine(src *StackSpeed) {
	s.Stacking.Combine(&src.Stacking)
	s.Downstacking.Combine(&src.Downstacking)
}

// Combine adds src into c.
func (c *ClearTypes) Combine(src *ClearTypes) {
	c.PerfectClear += src.PerfectClear
	c.Allspin += src.Allspin
	c.Single += src.Single
	c.TspinSingle += src.TspinSingle
	c.Double += src.Double
	c.TspinDouble += src.TspinDouble
	c.Triple += src.Triple
	c.TspinTriple += src.TspinTriple
	c.Quad += src.Quad
}

// Combine adds src into p.
func (p *PlacementStats) Combine(src *PlacementStats) {
	p.StackSpeed.Combine(&src.StackSpeed)
	for i := range p.WellColumns {
		p.WellColumns[i] += src.WellColumns[i]
	}
	p.ClearTypes.Combine(&src.ClearTypes)
	for i := range p.PPSSegments {
		p.PPSSegments[i] += src.PPSSegments[i]
	}
	p.Pieces += src.Pieces
	p.OpenerAttack += src.OpenerAttack
	p.OpenerFrames += src.OpenerFrames
	p.OpenerBlocks += src.OpenerBlocks
	p.Allspins += src.Allspins
	p.IPieces += src.IPieces
	p.TPieces += src.TPieces
	p.AllPieces += src.AllPieces
	p.Attack += src.Attack
	p.AttacksSent += src.AttacksSent
	p.CleanAttacksSent += src.CleanAttacksSent
	p.CleanLinesSent += src.CleanLinesSent
	p.LinesSent += src.LinesSent
	p.CheeseScore += src.CheeseScore
	p.LinesCleared += src.LinesCleared
	p.DownstackCleared += src.DownstackCleared
	p.CheeseCleared += src.CheeseCleared
	p.AttackWithCheese += src.AttackWithCheese
	p.AttackWithDownstack += src.AttackWithDownstack
	p.FrameDelay += src.FrameDelay
	p.Keypresses += src.Keypresses
}

// Combine adds src into g.
func (g *GarbageStats) Combine(src *GarbageStats) {
	g.LinesReceived += src.LinesReceived
	g.CleanLinesReceived += src.CleanLinesReceived
	g.CheeseLinesReceived += src.CheeseLinesReceived
	g.CheeseLinesCancelled += src.CheeseLinesCancelled
	g.CheeseLinesTanked += src.CheeseLinesTanked
	g.CleanLinesCancelled += src.CleanLinesCancelled
	g.CleanLinesTankedAsCheese += src.CleanLinesTankedAsCheese
	g.CleanLinesTankedAsClean += src.CleanLinesTankedAsClean
}

// Combine adds src into s.
func (s *SurgeStats) Combine(src *SurgeStats) {
	s.Chains += src.Chains
	s.BTB += src.BTB
	s.GarbageCleared += src.GarbageCleared
	s.LinesCleared += src.LinesCleared
	s.Attack += src.Attack
	s.Frames += src.Frames
	s.Pieces += src.Pieces
	s.Fails += src.Fails
	s.FramesWithSurgeGarbage += src.FramesWithSurgeGarbage
	s.SurgeGarbageCleared += src.SurgeGarbageCleared
	s.FramesWithSurgeCheese += src.FramesWithSurgeCheese
	s.SurgeCheeseCleared += src.SurgeCheeseCleared
	s.Allspins += src.Allspins
	s.BTBClears += src.BTBClears
}

// Combine adds src into d.
func (d *DeathStats) Combine(src *DeathStats) {
	d.SurgeConflict += src.SurgeConflict
	d.SurgeSpike += src.SurgeSpike
	d.CheeseSpike += src.CheeseSpike
	d.Spike += src.Spike
	d.CheesePressure += src.CheesePressure
	d.Pressure += src.Pressure
}

// ---- Leaf visitor ----

// LeafFunc receives the dotted path and value of one numeric leaf.
type LeafFunc func(path string, v float64)

// Walk calls fn for every numeric leaf of the tree in a stable order.
// Array elements are reported as "name[i]".
func (s *GameStats) Walk(fn LeafFunc) {
	s.Placement.walk("placement", fn)
	s.Garbage.walk("garbage", fn)
	s.Surge.walk("surge", fn)
	s.Death.walk("death", fn)
	s.Kill.walk("kill", fn)
}

func leaf(fn LeafFunc, prefix, name string, v int) {
	fn(prefix+"."+name, float64(v))
}

func (c *SpeedCounter) walk(prefix string, fn LeafFunc) {
	leaf(fn, prefix, "totalUpdates", c.TotalUpdates)
	leaf(fn, prefix, "totalFrames", c.TotalFrames)
}

func (c *ClearTypes) walk(prefix string, fn LeafFunc) {
	for _, t := range ClearTypeOrder {
		leaf(fn, prefix, string(t), c.Get(t))
	}
}

func (p *PlacementStats) walk(prefix string, fn LeafFunc) {
	p.StackSpeed.Stacking.walk(prefix+".stackSpeed.stacking", fn)
	p.StackSpeed.Downstacking.walk(prefix+".stackSpeed.downstacking", fn)
	for i, v := range p.WellColumns {
		fn(fmt.Sprintf("%s.wellColumns[%d]", prefix, i), float64(v))
	}
	p.ClearTypes.walk(prefix+".clearTypes", fn)
	for i, v := range p.PPSSegments {
		fn(fmt.Sprintf("%s.ppsSegments[%d]", prefix, i), float64(v))
	}
	leaf(fn, prefix, "pieces", p.Pieces)
	leaf(fn, prefix, "openerAttack", p.OpenerAttack)
	leaf(fn, prefix, "openerFrames", p.OpenerFrames)
	leaf(fn, prefix, "openerBlocks", p.OpenerBlocks)
	leaf(fn, prefix, "allspins", p.Allspins)
	leaf(fn, prefix, "iPieces", p.IPieces)
	leaf(fn, prefix, "tPieces", p.TPieces)
	leaf(fn, prefix, "allPieces", p.AllPieces)
	leaf(fn, prefix, "attack", p.Attack)
	leaf(fn, prefix, "attacksSent", p.AttacksSent)
	leaf(fn, prefix, "cleanAttacksSent", p.CleanAttacksSent)
	leaf(fn, prefix, "cleanLinesSent", p.CleanLinesSent)
	leaf(fn, prefix, "linesSent", p.LinesSent)
	fn(prefix+".cheeseScore", p.CheeseScore)
	leaf(fn, prefix, "linesCleared", p.LinesCleared)
	leaf(fn, prefix, "downstackCleared", p.DownstackCleared)
	leaf(fn, prefix, "cheeseCleared", p.CheeseCleared)
	leaf(fn, prefix, "attackWithCheese", p.AttackWithCheese)
	leaf(fn, prefix, "attackWithDownstack", p.AttackWithDownstack)
	leaf(fn, prefix, "frameDelay", p.FrameDelay)
	leaf(fn, prefix, "keypresses", p.Keypresses)
}

func (g *GarbageStats) walk(prefix string, fn LeafFunc) {
	leaf(fn, prefix, "linesReceived", g.LinesReceived)
	leaf(fn, prefix, "cleanLinesRecieved", g.CleanLinesReceived)
	leaf(fn, prefix, "cheeseLinesRecieved", g.CheeseLinesReceived)
	leaf(fn, prefix, "cheeseLinesCancelled", g.CheeseLinesCancelled)
	leaf(fn, prefix, "cheeseLinesTanked", g.CheeseLinesTanked)
	leaf(fn, prefix, "cleanLinesCancelled", g.CleanLinesCancelled)
	leaf(fn, prefix, "cleanLinesTankedAsCheese", g.CleanLinesTankedAsCheese)
	leaf(fn, prefix, "cleanLinesTankedAsClean", g.CleanLinesTankedAsClean)
}

func (s *SurgeStats) walk(prefix string, fn LeafFunc) {
	leaf(fn, prefix, "chains", s.Chains)
	leaf(fn, prefix, "btb", s.BTB)
	leaf(fn, prefix, "garbageCleared", s.GarbageCleared)
	leaf(fn, prefix, "linesCleared", s.LinesCleared)
	leaf(fn, prefix, "attack", s.Attack)
	leaf(fn, prefix, "frames", s.Frames)
	leaf(fn, prefix, "pieces", s.Pieces)
	leaf(fn, prefix, "fails", s.Fails)
	leaf(fn, prefix, "framesWithSurgeGarbage", s.FramesWithSurgeGarbage)
	leaf(fn, prefix, "surgeGarbageCleared", s.SurgeGarbageCleared)
	leaf(fn, prefix, "framesWithSurgeCheese", s.FramesWithSurgeCheese)
	leaf(fn, prefix, "surgeCheeseCleared", s.SurgeCheeseCleared)
	leaf(fn, prefix, "allspins", s.Allspins)
	leaf(fn, prefix, "btbClears", s.BTBClears)
}

func (d *DeathStats) walk(prefix string, fn LeafFunc) {
	for _, t := range DeathTypeOrder {
		leaf(fn, prefix, string(t), d.Get(t))
	}
}

// Leaves returns the flattened tree as path -> value.
func (s *GameStats) Leaves() map[string]float64 {
	out := make(map[string]float64)
	s.Walk(func(path string, v float64) { out[path] = v })
	return out
}

// Validate returns an error naming the first negative leaf, if any.
func (s *GameStats) Validate() error {
	var err error
	s.Walk(func(path string, v float64) {
		if err == nil && v < 0 {
			err = fmt.Errorf("negative stat %s = %v", path, v)
		}
	})
	return err
}
