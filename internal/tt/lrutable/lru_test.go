package lrutable

import (
	"testing"

	"github.com/discochess/tictactoe/internal/board"
	"github.com/discochess/tictactoe/internal/stats"
	"github.com/discochess/tictactoe/internal/tt"
)

func TestNew_InvalidCapacity(t *testing.T) {
	if _, err := New(0, nil); err == nil {
		t.Error("New(0) error = nil, want error")
	}
}

func TestTable_Eviction(t *testing.T) {
	collector := stats.NewMemory()
	tab, err := New(2, collector)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tab.Store(tt.Entry{Key: 1, Score: board.WinIn(1)})
	tab.Store(tt.Entry{Key: 2, Score: board.Draw})
	// Touch 1 so that 2 is least recently used.
	if _, ok := tab.Probe(1); !ok {
		t.Fatal("Probe(1) missed")
	}
	tab.Store(tt.Entry{Key: 3, Score: board.LossIn(2)})

	if _, ok := tab.Probe(2); ok {
		t.Error("Probe(2) hit, want evicted")
	}
	if e, ok := tab.Probe(3); !ok || e.Score != board.LossIn(2) {
		t.Errorf("Probe(3) = %+v, %v, want loss in 2", e, ok)
	}

	s := tab.Stats()
	if s.Size != 2 || s.Capacity != 2 {
		t.Errorf("Stats() = %+v, want size 2 capacity 2", s)
	}
	if s.Hits != 2 || s.Misses != 1 {
		t.Errorf("Stats() hits/misses = %d/%d, want 2/1", s.Hits, s.Misses)
	}
	if got := collector.Counter(stats.MetricTTHits); got != 2 {
		t.Errorf("hit counter = %d, want 2", got)
	}
}

func TestTable_Reset(t *testing.T) {
	tab, err := New(16, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	tab.Store(tt.Entry{Key: 7, Score: board.Draw, Bound: tt.Exact})
	tab.Reset()
	if _, ok := tab.Probe(7); ok {
		t.Error("Probe() hit after Reset()")
	}
	if got := tab.Stats().Size; got != 0 {
		t.Errorf("Stats().Size = %d, want 0", got)
	}
}
