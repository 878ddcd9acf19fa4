package fixedtable

import (
	"testing"

	"github.com/discochess/tictactoe/internal/board"
	"github.com/discochess/tictactoe/internal/stats"
	"github.com/discochess/tictactoe/internal/tt"
)

func TestNew_Bits(t *testing.T) {
	tests := []struct {
		bits    int
		wantErr bool
	}{
		{0, true},
		{1, false},
		{DefaultBits, false},
		{MaxBits + 1, true},
	}
	for _, tt := range tests {
		tab, err := New(tt.bits, nil)
		if (err != nil) != tt.wantErr {
			t.Errorf("New(%d) error = %v, wantErr %v", tt.bits, err, tt.wantErr)
			continue
		}
		if err == nil && tab.Stats().Capacity != 1<<tt.bits {
			t.Errorf("New(%d) capacity = %d, want %d", tt.bits, tab.Stats().Capacity, 1<<tt.bits)
		}
	}
}

func TestTable_StoreProbe(t *testing.T) {
	tab, err := New(DefaultBits, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	key := board.Initial().MustApply(board.B2)

	if _, ok := tab.Probe(key); ok {
		t.Fatal("Probe() on empty table returned a hit")
	}

	tab.Store(tt.Entry{Key: key, Score: board.WinIn(2), Bound: tt.Lower})
	e, ok := tab.Probe(key)
	if !ok {
		t.Fatal("Probe() after Store() missed")
	}
	if e.Score != board.WinIn(2) || e.Bound != tt.Lower || e.Key != key {
		t.Errorf("Probe() = %+v, want score %d bound lower", e, board.WinIn(2))
	}

	s := tab.Stats()
	if s.Hits != 1 || s.Misses != 1 || s.Size != 1 {
		t.Errorf("Stats() = %+v, want 1 hit, 1 miss, size 1", s)
	}
}

func TestTable_CollisionIsMiss(t *testing.T) {
	// Two slots: keys with equal low bit share a slot.
	tab, err := New(1, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	a := board.Board(0b10)
	b := board.Board(0b100)

	tab.Store(tt.Entry{Key: a, Score: board.WinIn(1)})
	if _, ok := tab.Probe(b); ok {
		t.Fatal("Probe() returned an entry stored for a different key")
	}
	if got := tab.Stats().Collisions; got != 1 {
		t.Errorf("Stats().Collisions = %d, want 1", got)
	}

	tab.Store(tt.Entry{Key: b, Score: board.LossIn(1)})
	if _, ok := tab.Probe(a); ok {
		t.Error("Probe() found an overwritten key")
	}
	if e, ok := tab.Probe(b); !ok || e.Score != board.LossIn(1) {
		t.Errorf("Probe() = %+v, %v, want loss in 1", e, ok)
	}
	if got := tab.Stats().Size; got != 1 {
		t.Errorf("Stats().Size = %d, want 1", got)
	}
}

func TestTable_Reset(t *testing.T) {
	collector := stats.NewMemory()
	tab, err := New(4, collector)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for k := board.Board(0); k < 8; k++ {
		tab.Store(tt.Entry{Key: k, Score: board.Draw})
	}
	if got := collector.Gauge(stats.MetricTTSize); got != 8 {
		t.Errorf("size gauge = %d, want 8", got)
	}

	tab.Reset()

	for k := board.Board(0); k < 8; k++ {
		if _, ok := tab.Probe(k); ok {
			t.Errorf("Probe(%d) hit after Reset()", k)
		}
	}
	if got := tab.Stats().Size; got != 0 {
		t.Errorf("Stats().Size = %d, want 0", got)
	}
	if got := collector.Gauge(stats.MetricTTSize); got != 0 {
		t.Errorf("size gauge = %d, want 0", got)
	}
	if got := collector.Counter(stats.MetricTTMisses); got != 8 {
		t.Errorf("miss counter = %d, want 8", got)
	}
}
