package cachestrategy

import "testing"

func strategies(t *testing.T, capacity int) map[Policy]Strategy[int, string] {
	t.Helper()
	out := make(map[Policy]Strategy[int, string])
	for _, p := range []Policy{LRU, TwoQ} {
		s, err := New[int, string](p, capacity)
		if err != nil {
			t.Fatalf("New(%s) error = %v", p, err)
		}
		out[p] = s
	}
	return out
}

func TestStrategy_GetAdd(t *testing.T) {
	for name, s := range strategies(t, 8) {
		t.Run(string(name), func(t *testing.T) {
			if _, ok := s.Get(1); ok {
				t.Error("Get() on empty cache should miss")
			}
			s.Add(1, "one")
			s.Add(1, "uno")
			if got, ok := s.Get(1); !ok || got != "uno" {
				t.Errorf("Get(1) = %q, %v, want uno, true", got, ok)
			}
			if s.Len() != 1 {
				t.Errorf("Len() = %d, want 1", s.Len())
			}
			s.Purge()
			if s.Len() != 0 {
				t.Errorf("Len() after Purge = %d, want 0", s.Len())
			}
		})
	}
}

func TestStrategy_Bounded(t *testing.T) {
	for name, s := range strategies(t, 4) {
		t.Run(string(name), func(t *testing.T) {
			for i := 0; i < 20; i++ {
				s.Add(i, "v")
			}
			if s.Len() > 4 {
				t.Errorf("Len() = %d, want at most 4", s.Len())
			}
			if _, ok := s.Get(19); !ok {
				t.Error("most recent entry was evicted")
			}
		})
	}
}

func TestStrategy_ScanResistance(t *testing.T) {
	// Shard 0 is read twice, then four one-off shards stream past.
	tests := []struct {
		policy   Policy
		wantKept bool
	}{
		{LRU, false},
		{TwoQ, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			s, err := New[int, string](tt.policy, 4)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			s.Add(0, "opening")
			s.Get(0)
			for id := 1; id <= 4; id++ {
				s.Add(id, "late")
			}
			if _, ok := s.Get(0); ok != tt.wantKept {
				t.Errorf("shard 0 kept = %v, want %v", ok, tt.wantKept)
			}
		})
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New[int, string](LRU, 0); err == nil {
		t.Error("New(lru, 0) expected error")
	}
	if _, err := New[int, string](TwoQ, 0); err == nil {
		t.Error("New(2q, 0) expected error")
	}
	if _, err := New[int, string]("mru", 4); err == nil {
		t.Error("New(mru) expected error")
	}
}
