package aggregator

import "github.com/pable/go-versus-stats/internal/model"

type garbageKind int

const (
	garbageConfirm garbageKind = iota
	garbageCancel
	garbageTank
)

type garbageEvent struct {
	kind   garbageKind
	id     int
	amount int
}

// pendingGarbage is one incoming attack that has not been fully cancelled
// or tanked yet.
type pendingGarbage struct {
	id        int
	original  int
	cancelled int
	tanked    int
}

// Ledger queues a player's garbage lifecycle events for one round and
// reconciles them into GarbageStats at round end. Events may arrive before
// the confirm they refer to; they are matched on a later pass.
type Ledger struct {
	cleanThreshold int
	events         []garbageEvent
}

// NewLedger returns an empty ledger. Attacks of at least cleanThreshold lines
// are clean, smaller ones cheese.
func NewLedger(cleanThreshold int) *Ledger {
	return &Ledger{cleanThreshold: cleanThreshold}
}

// Confirm opens an entry for attack id of original lines.
func (l *Ledger) Confirm(id, original int) {
	l.events = append(l.events, garbageEvent{kind: garbageConfirm, id: id, amount: original})
}

// Cancel records amount lines of attack id offset by the player's own attack.
func (l *Ledger) Cancel(id, amount int) {
	l.events = append(l.events, garbageEvent{kind: garbageCancel, id: id, amount: amount})
}

// Tank records amount lines of attack id added to the board.
func (l *Ledger) Tank(id, amount int) {
	l.events = append(l.events, garbageEvent{kind: garbageTank, id: id, amount: amount})
}

// Receive records an attack arriving with originalAmount lines of which only
// amount were left after cancelling in flight.
func (l *Ledger) Receive(id, originalAmount, amount int) {
	l.Confirm(id, originalAmount)
	if d := originalAmount - amount; d > 0 {
		l.Cancel(id, d)
	}
}

// Pending is the number of queued, unreconciled events.
func (l *Ledger) Pending() int {
	return len(l.events)
}

// Reconcile matches queued events against entries until a full pass makes no
// progress, adding every finalized entry to stats. Events left unmatched and
// entries left open are abandoned and reported. The queue is empty afterwards.
func (l *Ledger) Reconcile(stats *model.GarbageStats) model.LedgerAnomalies {
	var pending []pendingGarbage
	queue := l.events
	l.events = nil

	for {
		progressed := false
		var remaining []garbageEvent
		for _, ev := range queue {
			if ev.kind == garbageConfirm {
				pending = append(pending, pendingGarbage{id: ev.id, original: ev.amount})
				progressed = true
				continue
			}
			idx := -1
			for i := range pending {
				if pending[i].id == ev.id {
					idx = i
					break
				}
			}
			if idx < 0 {
				remaining = append(remaining, ev)
				continue
			}
			progressed = true
			e := &pending[idx]
			if ev.kind == garbageCancel {
				e.cancelled += ev.amount
			} else {
				e.tanked += ev.amount
			}
			if e.cancelled+e.tanked >= e.original {
				l.finalize(stats, *e)
				pending = append(pending[:idx], pending[idx+1:]...)
			}
		}
		queue = remaining
		if !progressed || len(queue) == 0 {
			break
		}
	}

	return model.LedgerAnomalies{AbandonedEvents: len(queue), OpenEntries: len(pending)}
}

func (l *Ledger) finalize(stats *model.GarbageStats, e pendingGarbage) {
	stats.LinesReceived += e.original
	if e.original >= l.cleanThreshold {
		stats.CleanLinesReceived += e.original
		stats.CleanLinesCancelled += e.cancelled
		if e.tanked < l.cleanThreshold {
			stats.CleanLinesTankedAsCheese += e.tanked
		} else {
			stats.CleanLinesTankedAsClean += e.tanked
		}
		return
	}
	stats.CheeseLinesReceived += e.original
	stats.CheeseLinesCancelled += e.cancelled
	stats.CheeseLinesTanked += e.tanked
}
