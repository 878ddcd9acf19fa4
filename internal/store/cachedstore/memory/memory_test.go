package memory

import (
	"testing"

	"github.com/discochess/tictactoe/internal/cachestrategy"
)

func policies(t *testing.T, capacity int) map[string]cachestrategy.Strategy[int, []byte] {
	t.Helper()
	out := make(map[string]cachestrategy.Strategy[int, []byte])
	for _, p := range []cachestrategy.Policy{cachestrategy.LRU, cachestrategy.TwoQ} {
		s, err := cachestrategy.New[int, []byte](p, capacity)
		if err != nil {
			t.Fatalf("cachestrategy.New(%s) error = %v", p, err)
		}
		out[string(p)] = s
	}
	return out
}

func TestBackend_GetSet(t *testing.T) {
	for name, p := range policies(t, 4) {
		t.Run(name, func(t *testing.T) {
			b := New(p)
			if _, ok := b.Get(1); ok {
				t.Error("Get() hit on empty backend")
			}
			b.Set(1, []byte("ply one"))
			if data, ok := b.Get(1); !ok || string(data) != "ply one" {
				t.Errorf("Get() = %q, %v, want %q, true", data, ok, "ply one")
			}
			if b.Len() != 1 {
				t.Errorf("Len() = %d, want 1", b.Len())
			}
			b.Purge()
			if b.Len() != 0 {
				t.Errorf("Len() after Purge = %d, want 0", b.Len())
			}
		})
	}
}

func TestBackend_BoundedByPolicy(t *testing.T) {
	for name, p := range policies(t, 2) {
		t.Run(name, func(t *testing.T) {
			b := New(p)
			for id := 0; id < 5; id++ {
				b.Set(id, []byte{byte(id)})
			}
			if b.Len() > 2 {
				t.Errorf("Len() = %d, want at most 2", b.Len())
			}
			if _, ok := b.Get(4); !ok {
				t.Error("most recent shard was evicted")
			}
		})
	}
}
