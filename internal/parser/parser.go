// Package parser loads recorded matches from disk into model.Replay.
package parser

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/tidwall/gjson"

	"github.com/pable/go-versus-stats/internal/model"
)

// ErrUnparseable is returned when no rounds can be located in a replay.
var ErrUnparseable = errors.New("unparseable replay")

// maxWrapDepth bounds how many nested "replay" objects Unwrap descends.
const maxWrapDepth = 8

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// LoadReplay reads the replay at path. Gzip and zstd files are decompressed
// transparently. The hash of the file bytes is stored on the replay.
func LoadReplay(path string) (*model.Replay, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replay: %w", err)
	}

	// Hash file for idempotency key.
	sum := sha256.Sum256(raw)

	data, err := Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}
	replay, err := Unwrap(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	replay.Hash = fmt.Sprintf("%x", sum)
	return replay, nil
}

// Decompress returns data unchanged unless it starts with a gzip or zstd
// frame header.
func Decompress(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		out, err := io.ReadAll(gz)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return out, nil
	case bytes.HasPrefix(data, zstdMagic):
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return out, nil
	}
	return data, nil
}

// Unwrap locates the rounds of a replay document. Exports wrap the match in
// one or more "replay" objects; Unwrap descends them until it finds an object
// holding a "rounds" array and decodes that object.
func Unwrap(data []byte) (*model.Replay, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrUnparseable)
	}
	node := gjson.ParseBytes(data)
	for depth := 0; depth <= maxWrapDepth; depth++ {
		if rounds := node.Get("rounds"); rounds.IsArray() {
			var r model.Replay
			if err := json.Unmarshal([]byte(node.Raw), &r); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
			}
			return &r, nil
		}
		next := node.Get("replay")
		if !next.IsObject() {
			break
		}
		node = next
	}
	return nil, fmt.Errorf("%w: no rounds found", ErrUnparseable)
}
