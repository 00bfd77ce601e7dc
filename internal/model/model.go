package model

import "encoding/json"

// ---- Raw replay input ----

// EventEnd terminates a player's event stream for the round.
const EventEnd = "end"

// Event is one recorded input event for a player.
type Event struct {
	Frame int             `json:"frame"`
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// eventTargets is the subset of event payloads that names other players.
type eventTargets struct {
	Data *struct {
		GameID  *int  `json:"gameid"`
		Targets []int `json:"targets"`
	} `json:"data"`
}

// Opponents returns the game ids this event references, if any.
func (e Event) Opponents() []int {
	if len(e.Data) == 0 {
		return nil
	}
	var t eventTargets
	if err := json.Unmarshal(e.Data, &t); err != nil || t.Data == nil {
		return nil
	}
	var out []int
	if t.Data.GameID != nil {
		out = append(out, *t.Data.GameID)
	}
	return append(out, t.Data.Targets...)
}

// RoundReplay is the recorded stream of one player in one round.
type RoundReplay struct {
	Options json.RawMessage `json:"options,omitempty"`
	Events  []Event         `json:"events"`
}

// RoundRecord is one player's participation in one round.
type RoundRecord struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Alive    bool        `json:"alive"`
	Replay   RoundReplay `json:"replay"`
}

// Opponents collects every game id referenced by the player's events, in
// first-seen order.
func (r *RoundRecord) Opponents() []int {
	seen := make(map[int]bool)
	var out []int
	for _, ev := range r.Replay.Events {
		for _, id := range ev.Opponents() {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

// Replay is a complete recorded match: a list of rounds, each listing every
// participating player.
type Replay struct {
	Hash   string          `json:"-"`
	Rounds [][]RoundRecord `json:"rounds"`
}

// Players returns every player id with its most recent username, in
// first-seen order.
func (r *Replay) Players() ([]string, map[string]string) {
	names := make(map[string]string)
	var ids []string
	for _, round := range r.Rounds {
		for _, rec := range round {
			if _, ok := names[rec.ID]; !ok {
				ids = append(ids, rec.ID)
			}
			names[rec.ID] = rec.Username
		}
	}
	return ids, names
}

// ---- Per-round outcome ----

// LedgerAnomalies counts garbage events the ledger could not reconcile.
type LedgerAnomalies struct {
	AbandonedEvents int `json:"abandonedEvents"`
	OpenEntries     int `json:"openEntries"`
}

// PlayerRoundResult is what one round produced for one player.
type PlayerRoundResult struct {
	PlayerID  string          `json:"playerId"`
	Username  string          `json:"username"`
	Round     int             `json:"round"`
	Alive     bool            `json:"alive"`
	ToppedOut bool            `json:"toppedOut"`
	Desynced  bool            `json:"desynced"`
	Death     DeathType       `json:"death,omitempty"`
	Frames    int             `json:"frames"`
	Dropped   int             `json:"droppedEvents"`
	Residual  int             `json:"residualEvents"`
	Anomalies LedgerAnomalies `json:"ledgerAnomalies"`
	Stats     *GameStats      `json:"stats"`
}

// MatchResult is the aggregate over a whole replay.
type MatchResult struct {
	Hash    string                      `json:"hash"`
	Players map[string]*PlayerGameStats `json:"players"`
	Order   []string                    `json:"order"`
	Rounds  [][]PlayerRoundResult       `json:"rounds"`
}
