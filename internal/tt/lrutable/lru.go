// Package lrutable implements a bounded transposition table with
// least-recently-used eviction.
package lrutable

import (
	"sync/atomic"

	"github.com/discochess/tictactoe/internal/board"
	"github.com/discochess/tictactoe/internal/cachestrategy"
	"github.com/discochess/tictactoe/internal/stats"
	"github.com/discochess/tictactoe/internal/tt"
)

// Compile-time check that Table implements tt.Table.
var _ tt.Table = (*Table)(nil)

// Table is an LRU-evicting transposition table keyed by the exact
// canonical position. It is safe for concurrent use.
type Table struct {
	cache     cachestrategy.Strategy[board.Board, tt.Entry]
	capacity  int
	collector stats.Collector

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a table holding at most capacity entries.
// The collector is optional; if nil, a no-op collector is used.
func New(capacity int, collector stats.Collector) (*Table, error) {
	c, err := cachestrategy.New[board.Board, tt.Entry](cachestrategy.LRU, capacity)
	if err != nil {
		return nil, err
	}
	if collector == nil {
		collector = stats.NewNoop()
	}
	return &Table{cache: c, capacity: capacity, collector: collector}, nil
}

// Probe returns the entry for key.
func (t *Table) Probe(key board.Board) (tt.Entry, bool) {
	if e, ok := t.cache.Get(key); ok {
		t.hits.Add(1)
		t.collector.IncCounter(stats.MetricTTHits, 1)
		return e, true
	}
	t.misses.Add(1)
	t.collector.IncCounter(stats.MetricTTMisses, 1)
	return tt.Entry{}, false
}

// Store adds or replaces the entry for e.Key.
func (t *Table) Store(e tt.Entry) {
	t.cache.Add(e.Key, e)
	t.collector.SetGauge(stats.MetricTTSize, int64(t.cache.Len()))
}

// Reset purges every entry.
func (t *Table) Reset() {
	t.cache.Purge()
	t.collector.SetGauge(stats.MetricTTSize, 0)
}

// Stats returns current table statistics.
func (t *Table) Stats() tt.Stats {
	return tt.Stats{
		Hits:     t.hits.Load(),
		Misses:   t.misses.Load(),
		Size:     t.cache.Len(),
		Capacity: t.capacity,
	}
}
