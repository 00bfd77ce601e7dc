package aggregator

import (
	"go.uber.org/zap"

	"github.com/pable/go-versus-stats/internal/scorer"
)

// attribute finishes a round once every simulator has run: it flushes the
// scorers, reconciles the garbage ledgers, spreads surge exposure across
// players and credits deaths and kills.
func attribute(players []*playerRound) {
	for _, p := range players {
		p.scorers.StackSpeed.ClearCache()
		speed := p.scorers.StackSpeed.Stats()
		p.stats.Placement.StackSpeed.Combine(&speed)

		// A streak still held at the end counts as attack that was never released.
		if btb := p.scorers.Surge.BTB(); btb >= scorer.MinSurgeChain {
			p.stats.Placement.Attack += btb
		}
		p.scorers.Surge.Flush(&p.stats.Surge)

		for _, other := range players {
			for _, f := range other.surgeFrames {
				if other == p {
					p.scorers.Death.SurgeSent(f)
				} else {
					p.scorers.Death.SurgeReceived(f)
				}
			}
		}

		p.anomalies = p.ledger.Reconcile(&p.stats.Garbage)
		if p.anomalies.AbandonedEvents > 0 || p.anomalies.OpenEntries > 0 {
			p.log.Debug("unreconciled garbage",
				zap.Int("abandoned_events", p.anomalies.AbandonedEvents),
				zap.Int("open_entries", p.anomalies.OpenEntries),
			)
		}
	}

	for _, p := range players {
		if p.rec.Alive {
			continue
		}
		p.death = p.scorers.Death.Classify(p.sim.Frame())
		p.stats.Death.Inc(p.death)
		for _, other := range players {
			if other != p {
				other.stats.Kill.Inc(p.death)
			}
		}
	}
}
