package aggregator

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pable/go-versus-stats/internal/model"
	"github.com/pable/go-versus-stats/internal/scorer"
	"github.com/pable/go-versus-stats/internal/sim"
	"github.com/pable/go-versus-stats/internal/sim/trace"
)

// ErrNilReplay is returned by Aggregate when given no replay.
var ErrNilReplay = errors.New("nil replay")

// ---- Scorer contracts ----

// SurgeScorer tracks back-to-back chains.
type SurgeScorer interface {
	BTB() int
	AddLineClear(stats *model.SurgeStats, c scorer.LineClear)
	AddStack(stats *model.SurgeStats, frameDelay int, garbageOnBoard, cheeseOnBoard bool)
	Flush(stats *model.SurgeStats)
}

// CheeseScorer keeps a running cheesiness signal of the player's attack.
type CheeseScorer interface {
	Observe(attack int)
	Signal() float64
}

// StackSpeedScorer accumulates midgame placement speed.
type StackSpeedScorer interface {
	Update(u scorer.SpeedUpdate, frameDelay int)
	ClearCache()
	Stats() model.StackSpeed
}

// DeathClassifier attributes a top-out to a DeathType.
type DeathClassifier interface {
	Update(realCheese bool, amount, frame int)
	SurgeReceived(frame int)
	SurgeSent(frame int)
	Classify(frame int) model.DeathType
}

// Scorers is the set of scorers for one player in one round.
type Scorers struct {
	Surge      SurgeScorer
	Cheese     CheeseScorer
	StackSpeed StackSpeedScorer
	Death      DeathClassifier
}

// DefaultScorers returns the reference scorers.
func DefaultScorers() Scorers {
	return Scorers{
		Surge:      scorer.NewSurge(),
		Cheese:     scorer.NewCheese(),
		StackSpeed: scorer.NewStackSpeed(),
		Death:      scorer.NewDeath(),
	}
}

// ---- Options ----

// Defaults for Options.
const (
	DefaultDesyncThreshold = 10
	DefaultSurgeStreak     = 5
	DefaultSurgeMinGarbage = 4
	DefaultCleanThreshold  = 4
)

// Options configure Aggregate. Zero values select the defaults.
type Options struct {
	Simulator sim.Factory
	Scorers   func() Scorers
	Logger    *zap.Logger

	// DesyncThreshold is how many events may remain after a top-out before
	// the round is treated as desynced. Nil selects the default; zero makes
	// any residual event a desync.
	DesyncThreshold *int
	// SurgeStreak is the streak that must be broken for a surge to count.
	SurgeStreak int
	// SurgeMinGarbage is the raw garbage the breaking clear must send.
	SurgeMinGarbage int
	// CleanThreshold separates clean from cheese garbage.
	CleanThreshold int
	// Workers > 1 simulates rounds concurrently. Folding stays in round order.
	Workers int
}

// Threshold returns a pointer to n for Options.DesyncThreshold.
func Threshold(n int) *int { return &n }

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Simulator == nil {
		o.Simulator = trace.NewFactory(o.Logger)
	}
	if o.Scorers == nil {
		o.Scorers = DefaultScorers
	}
	if o.DesyncThreshold == nil || *o.DesyncThreshold < 0 {
		o.DesyncThreshold = Threshold(DefaultDesyncThreshold)
	}
	if o.SurgeStreak <= 0 {
		o.SurgeStreak = DefaultSurgeStreak
	}
	if o.SurgeMinGarbage <= 0 {
		o.SurgeMinGarbage = DefaultSurgeMinGarbage
	}
	if o.CleanThreshold <= 0 {
		o.CleanThreshold = DefaultCleanThreshold
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	return o
}

// Aggregate simulates every round of the replay and folds each player's
// non-desynced rounds into cumulative GameStats.
func Aggregate(replay *model.Replay, opts Options) (*model.MatchResult, error) {
	if replay == nil {
		return nil, ErrNilReplay
	}
	opts = opts.withDefaults()
	log := opts.Logger.With(zap.String("replay", shortHash(replay.Hash)))

	// ---- Pass 1: simulate rounds and attribute deaths/surges per round. ----

	rounds := make([][]model.PlayerRoundResult, len(replay.Rounds))
	if opts.Workers > 1 && len(replay.Rounds) > 1 {
		var g errgroup.Group
		g.SetLimit(opts.Workers)
		for i := range replay.Rounds {
			i := i
			g.Go(func() error {
				res, err := playRound(i, replay.Rounds[i], opts, log)
				if err != nil {
					return err
				}
				rounds[i] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range replay.Rounds {
			res, err := playRound(i, replay.Rounds[i], opts, log)
			if err != nil {
				return nil, err
			}
			rounds[i] = res
		}
	}

	// ---- Pass 2: fold rounds into per-player totals, in round order. ----

	result := &model.MatchResult{
		Hash:    replay.Hash,
		Players: make(map[string]*model.PlayerGameStats),
		Rounds:  rounds,
	}
	for _, round := range rounds {
		for _, pr := range round {
			if pr.Desynced {
				log.Info("excluding desynced round",
					zap.String("player", pr.PlayerID),
					zap.Int("round", pr.Round),
					zap.Int("residual_events", pr.Residual),
				)
				continue
			}
			if _, ok := result.Players[pr.PlayerID]; !ok {
				result.Order = append(result.Order, pr.PlayerID)
			}
			Fold(result.Players, pr.PlayerID, pr.Username, pr.Stats)
		}
	}
	return result, nil
}

// Fold merges stats into dst[id]. The first fold for a player copies.
func Fold(dst map[string]*model.PlayerGameStats, id, username string, stats *model.GameStats) {
	cur, ok := dst[id]
	if !ok {
		dst[id] = &model.PlayerGameStats{Username: username, Stats: *stats}
		return
	}
	cur.Username = username
	cur.Stats.Combine(stats)
}

// Merge folds several match results into one set of per-player totals,
// keeping first-seen player order.
func Merge(results ...*model.MatchResult) (map[string]*model.PlayerGameStats, []string) {
	out := make(map[string]*model.PlayerGameStats)
	var order []string
	for _, r := range results {
		if r == nil {
			continue
		}
		for _, id := range r.Order {
			p := r.Players[id]
			if _, ok := out[id]; !ok {
				order = append(order, id)
			}
			Fold(out, id, p.Username, &p.Stats)
		}
	}
	return out, order
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

// playRound runs one round to completion and returns its per-player results
// in record order.
func playRound(idx int, records []model.RoundRecord, opts Options, log *zap.Logger) ([]model.PlayerRoundResult, error) {
	log = log.With(zap.Int("round", idx))
	players, err := newRound(records, opts, log)
	if err != nil {
		return nil, fmt.Errorf("round %d: %w", idx, err)
	}
	drive(players)
	attribute(players)

	out := make([]model.PlayerRoundResult, len(players))
	for i, p := range players {
		out[i] = p.result(idx)
	}
	return out, nil
}
