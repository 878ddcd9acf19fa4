// Package fixedtable implements a fixed-size, directly indexed transposition
// table. A position's slot is its canonical encoding masked to the table
// size; each slot stores the full key so that two positions sharing a slot
// are never confused.
package fixedtable

import (
	"fmt"
	"sync/atomic"

	"github.com/discochess/tictactoe/internal/board"
	"github.com/discochess/tictactoe/internal/stats"
	"github.com/discochess/tictactoe/internal/tt"
)

const (
	// DefaultBits covers the whole 19-bit board encoding, so no two
	// positions ever share a slot.
	DefaultBits = 19

	// MinBits and MaxBits bound the table size accepted by New.
	MinBits = 1
	MaxBits = 24
)

// Compile-time check that Table implements tt.Table.
var _ tt.Table = (*Table)(nil)

type slot struct {
	key      board.Board
	score    int8
	bound    tt.Bound
	computed bool
}

// Table is a fixed-capacity transposition table.
// It is not safe for concurrent use; callers serialize access.
type Table struct {
	slots     []slot
	mask      uint32
	size      int
	collector stats.Collector

	hits       atomic.Int64
	misses     atomic.Int64
	collisions atomic.Int64
}

// New allocates a table of 1<<bits slots.
// The collector is optional; if nil, a no-op collector is used.
func New(bits int, collector stats.Collector) (*Table, error) {
	if bits < MinBits || bits > MaxBits {
		return nil, fmt.Errorf("fixedtable: bits %d out of range [%d, %d]", bits, MinBits, MaxBits)
	}
	if collector == nil {
		collector = stats.NewNoop()
	}
	n := 1 << bits
	return &Table{
		slots:     make([]slot, n),
		mask:      uint32(n - 1),
		collector: collector,
	}, nil
}

func (t *Table) index(key board.Board) uint32 {
	return uint32(key) & t.mask
}

// Probe returns the entry for key. A slot holding a different key is a miss.
func (t *Table) Probe(key board.Board) (tt.Entry, bool) {
	s := &t.slots[t.index(key)]
	if s.computed && s.key == key {
		t.hits.Add(1)
		t.collector.IncCounter(stats.MetricTTHits, 1)
		return tt.Entry{Key: key, Score: board.Score(s.score), Bound: s.bound}, true
	}
	if s.computed {
		t.collisions.Add(1)
		t.collector.IncCounter(stats.MetricTTCollisions, 1)
	}
	t.misses.Add(1)
	t.collector.IncCounter(stats.MetricTTMisses, 1)
	return tt.Entry{}, false
}

// Store writes e into its slot, replacing whatever was there.
func (t *Table) Store(e tt.Entry) {
	s := &t.slots[t.index(e.Key)]
	if !s.computed {
		t.size++
		t.collector.SetGauge(stats.MetricTTSize, int64(t.size))
	}
	*s = slot{
		key:      e.Key,
		score:    int8(e.Score),
		bound:    e.Bound,
		computed: true,
	}
}

// Reset marks every slot uncomputed.
func (t *Table) Reset() {
	clear(t.slots)
	t.size = 0
	t.collector.SetGauge(stats.MetricTTSize, 0)
}

// Stats returns current table statistics.
func (t *Table) Stats() tt.Stats {
	return tt.Stats{
		Hits:       t.hits.Load(),
		Misses:     t.misses.Load(),
		Collisions: t.collisions.Load(),
		Size:       t.size,
		Capacity:   len(t.slots),
	}
}
