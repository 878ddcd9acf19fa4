package cachedstore

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/discochess/tictactoe/internal/stats"
	"github.com/discochess/tictactoe/internal/store"
)

// mapBackend never evicts.
type mapBackend struct {
	mu   sync.Mutex
	data map[int][]byte
}

func newMapBackend() *mapBackend {
	return &mapBackend{data: make(map[int][]byte)}
}

func (b *mapBackend) Get(shardID int) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.data[shardID]
	return data, ok
}

func (b *mapBackend) Set(shardID int, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[shardID] = data
}

func (b *mapBackend) Purge() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.data)
}

func (b *mapBackend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// countingStore counts reads and can hold them until released.
type countingStore struct {
	data    map[int][]byte
	reads   atomic.Int64
	release chan struct{}
}

func newCountingStore(shards map[int]string) *countingStore {
	s := &countingStore{data: make(map[int][]byte)}
	for id, v := range shards {
		s.data[id] = []byte(v)
	}
	return s
}

func (s *countingStore) ReadShard(ctx context.Context, shardID int) ([]byte, error) {
	s.reads.Add(1)
	if s.release != nil {
		<-s.release
	}
	if data, ok := s.data[shardID]; ok {
		return data, nil
	}
	return nil, store.ErrNotFound
}

func (s *countingStore) Close() error { return nil }

func TestStore_ReadThrough(t *testing.T) {
	underlying := newCountingStore(map[int]string{1: "ply one"})
	collector := stats.NewMemory()
	s := New(underlying, newMapBackend(), collector)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		data, err := s.ReadShard(ctx, 1)
		if err != nil {
			t.Fatalf("ReadShard() error = %v", err)
		}
		if string(data) != "ply one" {
			t.Errorf("ReadShard() = %q, want %q", data, "ply one")
		}
	}

	want := Stats{Hits: 2, Misses: 1, Loads: 1, Size: 1}
	if got := s.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
	if got := underlying.reads.Load(); got != 1 {
		t.Errorf("underlying reads = %d, want 1", got)
	}
	if got := collector.Counter(stats.MetricCacheHits); got != 2 {
		t.Errorf("cache hits counter = %d, want 2", got)
	}
	if got := collector.Gauge(stats.MetricCacheSize); got != 1 {
		t.Errorf("cache size gauge = %d, want 1", got)
	}
}

func TestStore_MissingShard(t *testing.T) {
	s := New(newCountingStore(nil), newMapBackend(), nil)
	_, err := s.ReadShard(context.Background(), 9)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("ReadShard() error = %v, want ErrNotFound", err)
	}
	if got := s.Stats().Size; got != 0 {
		t.Errorf("Stats().Size = %d, want 0 after failed read", got)
	}
}

func TestStore_ConcurrentMissesShareLoad(t *testing.T) {
	underlying := newCountingStore(map[int]string{7: "ply seven"})
	underlying.release = make(chan struct{})
	s := New(underlying, newMapBackend(), nil)

	const readers = 8
	var started, done sync.WaitGroup
	started.Add(readers)
	done.Add(readers)
	errs := make(chan error, readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer done.Done()
			started.Done()
			data, err := s.ReadShard(context.Background(), 7)
			if err == nil && string(data) != "ply seven" {
				err = errors.New("unexpected data " + string(data))
			}
			errs <- err
		}()
	}
	started.Wait()
	close(underlying.release)
	done.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("ReadShard() error = %v", err)
		}
	}
	st := s.Stats()
	if st.Hits+st.Misses != readers {
		t.Errorf("hits+misses = %d, want %d", st.Hits+st.Misses, readers)
	}
	if st.Loads >= readers {
		t.Errorf("Loads = %d, want fewer than %d", st.Loads, readers)
	}
	if st.Loads != underlying.reads.Load() {
		t.Errorf("Loads = %d, underlying saw %d", st.Loads, underlying.reads.Load())
	}
}

func TestStore_Warm(t *testing.T) {
	underlying := newCountingStore(map[int]string{0: "a", 1: "b", 2: "c"})
	s := New(underlying, newMapBackend(), nil)
	ctx := context.Background()

	// Shard 5 does not exist and is skipped.
	if err := s.Warm(ctx, 0, 1, 2, 5); err != nil {
		t.Fatalf("Warm() error = %v", err)
	}
	if got := s.Stats(); got.Size != 3 || got.Misses != 0 || got.Loads != 4 {
		t.Errorf("Stats() after Warm = %+v, want size 3, 0 misses, 4 loads", got)
	}

	if _, err := s.ReadShard(ctx, 2); err != nil {
		t.Fatalf("ReadShard() error = %v", err)
	}
	if err := s.Warm(ctx, 0, 1, 2); err != nil {
		t.Fatalf("second Warm() error = %v", err)
	}
	if got := underlying.reads.Load(); got != 4 {
		t.Errorf("underlying reads = %d, want 4", got)
	}
}

func TestStore_Purge(t *testing.T) {
	underlying := newCountingStore(map[int]string{1: "data"})
	s := New(underlying, newMapBackend(), nil)
	ctx := context.Background()

	if _, err := s.ReadShard(ctx, 1); err != nil {
		t.Fatalf("ReadShard() error = %v", err)
	}
	s.Purge()
	if _, err := s.ReadShard(ctx, 1); err != nil {
		t.Fatalf("ReadShard() error = %v", err)
	}
	if got := s.Stats(); got.Misses != 2 || got.Loads != 2 {
		t.Errorf("Stats() = %+v, want 2 misses and 2 loads after Purge", got)
	}
}

func TestStats_Rates(t *testing.T) {
	tests := []struct {
		name       string
		stats      Stats
		wantRate   float64
		wantShared int64
	}{
		{"idle", Stats{}, 0, 0},
		{"all hits", Stats{Hits: 10}, 100, 0},
		{"all misses", Stats{Misses: 10, Loads: 10}, 0, 0},
		{"three quarters", Stats{Hits: 3, Misses: 1, Loads: 1}, 75, 0},
		{"joined loads", Stats{Misses: 6, Loads: 2}, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.HitRate(); got != tt.wantRate {
				t.Errorf("HitRate() = %v, want %v", got, tt.wantRate)
			}
			if got := tt.stats.Shared(); got != tt.wantShared {
				t.Errorf("Shared() = %v, want %v", got, tt.wantShared)
			}
		})
	}
}
