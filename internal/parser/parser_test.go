package parser

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const sampleReplay = `{
  "id": "match-1",
  "replay": {
    "replay": {
      "rounds": [
        [
          {"id": "p1", "username": "alice", "alive": true,
           "replay": {"options": {"seed": 3}, "events": [
             {"frame": 0, "type": "start"},
             {"frame": 12, "type": "ige", "data": {"data": {"gameid": 2, "targets": [2]}}},
             {"frame": 40, "type": "end"}
           ]}},
          {"id": "p2", "username": "bob", "alive": false,
           "replay": {"events": [{"frame": 38, "type": "end"}]}}
        ]
      ]
    }
  }
}`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestUnwrap_Nested(t *testing.T) {
	r, err := Unwrap([]byte(sampleReplay))
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if len(r.Rounds) != 1 || len(r.Rounds[0]) != 2 {
		t.Fatalf("unexpected shape %+v", r.Rounds)
	}
	p1 := r.Rounds[0][0]
	if p1.ID != "p1" || p1.Username != "alice" || !p1.Alive {
		t.Errorf("unexpected record %+v", p1)
	}
	if len(p1.Replay.Events) != 3 || p1.Replay.Events[2].Frame != 40 {
		t.Errorf("unexpected events %+v", p1.Replay.Events)
	}
	if opp := p1.Opponents(); len(opp) != 1 || opp[0] != 2 {
		t.Errorf("Opponents = %v, want [2]", opp)
	}
	if r.Rounds[0][1].Alive {
		t.Error("p2 should be dead")
	}
}

func TestUnwrap_TopLevelRounds(t *testing.T) {
	r, err := Unwrap([]byte(`{"rounds": []}`))
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if len(r.Rounds) != 0 {
		t.Errorf("expected no rounds, got %d", len(r.Rounds))
	}
}

func TestUnwrap_Unparseable(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"invalid json", `{"replay": `},
		{"no rounds", `{"replay": {"players": []}}`},
		{"rounds not array", `{"replay": {"rounds": 3}}`},
		{"bad round shape", `{"rounds": [[{"id": 5}]]}`},
		{"array root", `[1, 2, 3]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Unwrap([]byte(tc.data)); !errors.Is(err, ErrUnparseable) {
				t.Errorf("expected ErrUnparseable, got %v", err)
			}
		})
	}
}

func TestLoadReplay_Compressed(t *testing.T) {
	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	if _, err := w.Write([]byte(sampleReplay)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	zst := enc.EncodeAll([]byte(sampleReplay), nil)
	enc.Close()

	files := map[string][]byte{
		"plain.json":    []byte(sampleReplay),
		"match.json.gz": gz.Bytes(),
		"match.zst":     zst,
	}
	hashes := make(map[string]bool)
	for name, data := range files {
		t.Run(name, func(t *testing.T) {
			r, err := LoadReplay(writeFile(t, name, data))
			if err != nil {
				t.Fatalf("LoadReplay: %v", err)
			}
			if len(r.Rounds) != 1 {
				t.Errorf("expected 1 round, got %d", len(r.Rounds))
			}
			if len(r.Hash) != 64 {
				t.Errorf("unexpected hash %q", r.Hash)
			}
			hashes[r.Hash] = true
		})
	}
	if len(hashes) != len(files) {
		t.Errorf("expected distinct hashes per encoding, got %d", len(hashes))
	}
}

func TestLoadReplay_StableHash(t *testing.T) {
	path := writeFile(t, "a.json", []byte(sampleReplay))
	r1, err := LoadReplay(path)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := LoadReplay(path)
	if err != nil {
		t.Fatal(err)
	}
	if r1.Hash != r2.Hash {
		t.Errorf("hash changed between loads: %s vs %s", r1.Hash, r2.Hash)
	}
}

func TestLoadReplay_Errors(t *testing.T) {
	if _, err := LoadReplay(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	path := writeFile(t, "bad.json", []byte(`{"hello": "world"}`))
	if _, err := LoadReplay(path); !errors.Is(err, ErrUnparseable) {
		t.Errorf("expected ErrUnparseable, got %v", err)
	}
	path = writeFile(t, "bad.gz", []byte{0x1f, 0x8b, 0x00})
	if _, err := LoadReplay(path); err == nil || errors.Is(err, ErrUnparseable) {
		t.Errorf("expected a decompression error, got %v", err)
	}
}

func TestDecompress_Passthrough(t *testing.T) {
	in := []byte(`{"rounds":[]}`)
	out, err := Decompress(in)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(in, out) {
		t.Errorf("plain input changed: %q", out)
	}
}
