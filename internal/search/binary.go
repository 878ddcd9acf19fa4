// Package search implements binary search within sorted shard data.
package search

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/discochess/tictactoe/internal/board"
)

// ErrNotFound indicates the position was not found in the shard.
var ErrNotFound = errors.New("position not found")

// Record is a single solved position in the shard data.
type Record struct {
	// Key is the canonical position.
	Key board.Board `json:"key"`

	// Score is the exact value of Key for its side to move.
	Score board.Score `json:"score"`

	// Move is the best square in Key's orientation, or -1 when Key is
	// terminal.
	Move board.Square `json:"move"`
}

// Search searches for a key in JSONL shard data sorted by ascending key.
// Returns the record if found, or ErrNotFound.
func Search(data []byte, key board.Board) (*Record, error) {
	lines := splitLines(data)
	if len(lines) == 0 {
		return nil, ErrNotFound
	}

	target := int64(key)
	idx := sort.Search(len(lines), func(i int) bool {
		return extractKey(lines[i]) >= target
	})

	if idx >= len(lines) || extractKey(lines[idx]) != target {
		return nil, ErrNotFound
	}

	var record Record
	if err := json.Unmarshal(lines[idx], &record); err != nil {
		return nil, fmt.Errorf("parsing book record: %w", err)
	}

	return &record, nil
}

// splitLines splits data into lines, excluding empty lines.
func splitLines(data []byte) [][]byte {
	n := bytes.Count(data, []byte{'\n'}) + 1
	lines := make([][]byte, 0, n)
	for len(data) > 0 {
		idx := bytes.IndexByte(data, '\n')
		var line []byte
		if idx < 0 {
			line = data
			data = nil
		} else {
			line = data[:idx]
			data = data[idx+1:]
		}
		if len(line) > 0 {
			lines = append(lines, line)
		}
	}
	return lines
}

// extractKey reads the key field from a JSON line without full parsing.
// It returns -1 if the line has no numeric key.
func extractKey(line []byte) int64 {
	const prefix = `"key":`
	idx := bytes.Index(line, []byte(prefix))
	if idx < 0 {
		return -1
	}

	var key int64
	digits := 0
	for _, c := range line[idx+len(prefix):] {
		if c < '0' || c > '9' {
			break
		}
		key = key*10 + int64(c-'0')
		digits++
	}
	if digits == 0 {
		return -1
	}
	return key
}

// Decode parses every record of a JSONL shard, in file order.
func Decode(data []byte) ([]Record, error) {
	lines := splitLines(data)
	records := make([]Record, len(lines))
	for i, line := range lines {
		if err := json.Unmarshal(line, &records[i]); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return records, nil
}
