package trace

import (
	"testing"

	"github.com/pable/go-versus-stats/internal/model"
	"github.com/pable/go-versus-stats/internal/sim"
)

type recorder struct {
	locks    []sim.Lock
	received [][3]int
	cancels  [][2]int
	tanks    [][2]int
}

func (r *recorder) OnLock(l sim.Lock) { r.locks = append(r.locks, l) }
func (r *recorder) OnGarbageCancel(id, n int) { r.cancels = append(r.cancels, [2]int{id, n}) }
func (r *recorder) OnGarbageTank(id, n int) { r.tanks = append(r.tanks, [2]int{id, n}) }
func (r *recorder) OnGarbageReceive(id, o, n int) { r.received = append(r.received, [3]int{id, o, n}) }

func TestEngine_TickAdvancesFrame(t *testing.T) {
	s, err := NewFactory(nil)(sim.Config{PlayerID: "p1"}, &recorder{})
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	for i := 0; i < 3; i++ {
		s.Tick(nil)
	}
	if s.Frame() != 3 {
		t.Errorf("expected frame 3, got %d", s.Frame())
	}
}

func TestEngine_NilListener(t *testing.T) {
	if _, err := NewFactory(nil)(sim.Config{PlayerID: "p1"}, nil); err == nil {
		t.Error("expected error for nil listener")
	}
}

func TestEngine_ReplaysTrace(t *testing.T) {
	rec := &recorder{}
	s, _ := NewFactory(nil)(sim.Config{PlayerID: "p1"}, rec)

	data := `{
		"board": ["GGGG.GGGGG", "TTT......."],
		"garbage": [
			{"kind": "receive", "iid": 3, "originalAmount": 6, "amount": 4},
			{"kind": "tank", "iid": 3, "amount": 4}
		],
		"lock": {
			"shape": "T", "keypresses": 4, "frameDelay": 22, "wellColumn": 4, "b2b": 2,
			"clear": {"lines": 2, "garbageCleared": 1, "clearType": "tspinDouble", "attack": [4], "btb": true}
		}
	}`
	s.Tick([]model.Event{
		{Frame: 0, Type: "keydown", Data: []byte(`{"key":"hardDrop"}`)},
		{Frame: 0, Type: EventType, Data: []byte(data)},
	})

	if len(rec.received) != 1 || rec.received[0] != [3]int{3, 6, 4} {
		t.Errorf("received = %v", rec.received)
	}
	if len(rec.tanks) != 1 || rec.tanks[0] != [2]int{3, 4} {
		t.Errorf("tanks = %v", rec.tanks)
	}
	if len(rec.locks) != 1 {
		t.Fatalf("expected 1 lock, got %d", len(rec.locks))
	}
	l := rec.locks[0]
	if l.Shape != model.MinoT || l.WellColumn != 4 || l.LinesCleared() != 2 || l.GarbageCleared() != 1 {
		t.Errorf("unexpected lock %+v", l)
	}
	if l.Clear.TotalAttack() != 4 || !l.Clear.BTBClear {
		t.Errorf("unexpected clear %+v", l.Clear)
	}

	b := s.Board()
	if len(b) != 2 || b[0][0] != sim.CellGarbage || b[0][4] != sim.CellEmpty || b[1][0] != sim.CellFilled {
		t.Errorf("unexpected board %v", b)
	}
}

func TestEngine_LockWithoutWell(t *testing.T) {
	rec := &recorder{}
	s, _ := NewFactory(nil)(sim.Config{PlayerID: "p1"}, rec)
	s.Tick([]model.Event{{Type: EventType, Data: []byte(`{"lock":{"shape":"O","frameDelay":10,"b2b":0}}`)}})
	if len(rec.locks) != 1 || rec.locks[0].WellColumn != -1 || rec.locks[0].Clear != nil {
		t.Errorf("unexpected locks %+v", rec.locks)
	}
}

func TestEngine_BadPayloadIgnored(t *testing.T) {
	rec := &recorder{}
	s, _ := NewFactory(nil)(sim.Config{PlayerID: "p1"}, rec)
	s.Tick([]model.Event{{Type: EventType, Data: []byte(`{"lock":`)}})
	if len(rec.locks) != 0 || s.Frame() != 1 {
		t.Errorf("bad payload should be skipped, got %d locks at frame %d", len(rec.locks), s.Frame())
	}
}

func TestEngine_RejectsNegativeValues(t *testing.T) {
	rec := &recorder{}
	s, _ := NewFactory(nil)(sim.Config{PlayerID: "p1"}, rec)

	s.Tick([]model.Event{
		{Type: EventType, Data: []byte(`{"lock": {"shape": "L", "keypresses": 2, "frameDelay": -40}}`)},
		{Type: EventType, Data: []byte(`{"lock": {"shape": "I", "frameDelay": 8, "clear": {"lines": -1}}}`)},
		{Type: EventType, Data: []byte(`{"garbage": [{"kind": "tank", "iid": 1, "amount": -3}, {"kind": "cancel", "iid": 1, "amount": 2}]}`)},
		{Type: EventType, Data: []byte(`{"lock": {"shape": "J", "keypresses": 1, "frameDelay": 12, "b2b": -1}}`)},
	})

	if got := s.(sim.Rejecter).Rejected(); got != 3 {
		t.Errorf("Rejected = %d, want 3", got)
	}
	if len(rec.tanks) != 0 || len(rec.cancels) != 1 {
		t.Errorf("tanks = %v cancels = %v", rec.tanks, rec.cancels)
	}
	if len(rec.locks) != 1 || rec.locks[0].Shape != model.MinoJ || rec.locks[0].B2B != -1 {
		t.Errorf("unexpected locks %+v", rec.locks)
	}
}
