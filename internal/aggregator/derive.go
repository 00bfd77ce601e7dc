package aggregator

import "github.com/pable/go-versus-stats/internal/model"

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func seconds(frames int) float64 {
	return float64(frames) / model.FramesPerSecond
}

func minutes(frames int) float64 {
	return seconds(frames) / 60
}

// segmentPPS is the PPS at the centre of bucket i.
func segmentPPS(i int) float64 {
	return (float64(i) + 0.5) / 10
}

// burstPlonk returns the mean PPS of the faster and the slower half of all
// placements recorded in segs.
func burstPlonk(segs [model.PPSSegmentCount]int) (burst, plonk float64) {
	total := 0
	for _, n := range segs {
		total += n
	}
	if total == 0 {
		return 0, 0
	}
	half := float64(total) / 2

	var slowSum, slowN float64
	for i := 0; i < len(segs) && slowN < half; i++ {
		take := min(float64(segs[i]), half-slowN)
		slowSum += take * segmentPPS(i)
		slowN += take
	}
	var fastSum, fastN float64
	for i := len(segs) - 1; i >= 0 && fastN < half; i-- {
		take := min(float64(segs[i]), half-fastN)
		fastSum += take * segmentPPS(i)
		fastN += take
	}
	return ratio(fastSum, fastN), ratio(slowSum, slowN)
}

// Derive computes the non-combinable rates of a player's summed stats.
func Derive(s *model.GameStats) model.CumulativeStats {
	p := &s.Placement
	sg := &s.Surge
	var out model.CumulativeStats

	wells := 0
	for _, n := range p.WellColumns {
		wells += n
	}
	for i, n := range p.WellColumns {
		out.WellColumns[i] = ratio(float64(n), float64(wells)) * 100
	}
	segs := 0
	for _, n := range p.PPSSegments {
		segs += n
	}
	for i, n := range p.PPSSegments {
		out.PPSSegments[i] = ratio(float64(n), float64(segs))
	}
	out.ClearTypes = p.ClearTypes

	ct := &p.ClearTypes
	out.AllspinEfficiency = ratio(float64(ct.Allspin), float64(p.Allspins))
	out.TEfficiency = ratio(float64(ct.TspinSingle+ct.TspinDouble+ct.TspinTriple), float64(p.TPieces))
	out.IEfficiency = ratio(float64(ct.Quad), float64(p.IPieces))

	out.CheeseAPL = ratio(float64(p.AttackWithCheese), float64(p.CheeseCleared))
	out.DownstackAPL = ratio(float64(p.AttackWithDownstack), float64(p.DownstackCleared))
	out.UpstackAPL = ratio(float64(p.Attack-p.AttackWithDownstack), float64(p.LinesCleared-p.DownstackCleared))

	out.APL = ratio(float64(p.Attack), float64(p.LinesCleared))
	out.APP = ratio(float64(p.Attack), float64(p.AllPieces))
	out.KPP = ratio(float64(p.Keypresses), float64(p.AllPieces))
	out.KPS = ratio(float64(p.Keypresses), seconds(p.FrameDelay))
	out.APM = ratio(float64(p.Attack), minutes(p.FrameDelay))
	out.PPS = ratio(float64(p.AllPieces), seconds(p.FrameDelay))

	out.BurstPPS, out.PlonkPPS = burstPlonk(p.PPSSegments)
	out.PPSCoeff = ratio(out.PlonkPPS, out.BurstPPS)

	midFrames := p.FrameDelay - p.OpenerFrames
	out.MidgameAPM = ratio(float64(p.Attack-p.OpenerAttack), minutes(midFrames))
	out.MidgamePPS = ratio(float64(p.AllPieces-p.OpenerBlocks), seconds(midFrames))
	out.OpenerAPM = ratio(float64(p.OpenerAttack), minutes(p.OpenerFrames))
	out.OpenerPPS = ratio(float64(p.OpenerBlocks), seconds(p.OpenerFrames))

	out.AttackCheesiness = ratio(p.CheeseScore, float64(p.Attack))

	out.Garbage = s.Garbage

	out.SurgeAPM = ratio(float64(sg.Attack), minutes(sg.Frames))
	out.SurgeAPL = ratio(float64(sg.Attack), float64(sg.LinesCleared))
	out.SurgeDS = ratio(float64(sg.GarbageCleared), float64(sg.Chains))
	out.SurgePPS = ratio(float64(sg.Pieces), seconds(sg.Frames))
	out.SurgeLength = ratio(float64(sg.BTB), float64(sg.Chains))
	out.SurgeRate = ratio(float64(sg.Chains), float64(sg.Chains+sg.Fails))
	out.SurgeSecsPerDS = ratio(seconds(sg.FramesWithSurgeGarbage), float64(sg.SurgeGarbageCleared))
	out.SurgeSecsPerCheese = ratio(seconds(sg.FramesWithSurgeCheese), float64(sg.SurgeCheeseCleared))
	out.SurgeAllspin = ratio(float64(sg.Allspins), float64(sg.BTBClears))

	out.DeathStats = s.Death
	out.KillStats = s.Kill

	ss := &p.StackSpeed
	out.UpstackPPS = ratio(float64(ss.Stacking.TotalUpdates), seconds(ss.Stacking.TotalFrames))
	out.DownstackPPS = ratio(float64(ss.Downstacking.TotalUpdates), seconds(ss.Downstacking.TotalFrames))

	out.DownstackingRatio = ratio(float64(p.DownstackCleared), float64(p.LinesCleared))
	return out
}

// DeriveAll derives CumulativeStats for every player.
func DeriveAll(players map[string]*model.PlayerGameStats) map[string]model.PlayerCumulativeStats {
	out := make(map[string]model.PlayerCumulativeStats, len(players))
	for id, p := range players {
		out[id] = model.PlayerCumulativeStats{Username: p.Username, Stats: Derive(&p.Stats)}
	}
	return out
}
