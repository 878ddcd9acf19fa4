package cachedstore

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/discochess/tictactoe/internal/stats"
	"github.com/discochess/tictactoe/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store serves shards from a Backend, falling back to the underlying store.
// Concurrent misses on one shard share a single underlying read.
type Store struct {
	underlying store.Store
	backend    Backend
	collector  stats.Collector
	inflight   singleflight.Group

	hits, misses, loads atomic.Int64
}

// New wraps underlying with backend. A nil collector records nothing.
func New(underlying store.Store, backend Backend, collector stats.Collector) *Store {
	if collector == nil {
		collector = stats.NewNoop()
	}
	return &Store{underlying: underlying, backend: backend, collector: collector}
}

// ReadShard returns the shard from memory if held, else loads and keeps it.
func (s *Store) ReadShard(ctx context.Context, shardID int) ([]byte, error) {
	if data, ok := s.backend.Get(shardID); ok {
		s.hits.Add(1)
		s.collector.IncCounter(stats.MetricCacheHits, 1)
		return data, nil
	}
	s.misses.Add(1)
	s.collector.IncCounter(stats.MetricCacheMisses, 1)
	return s.load(ctx, shardID)
}

func (s *Store) load(ctx context.Context, shardID int) ([]byte, error) {
	v, err, _ := s.inflight.Do(strconv.Itoa(shardID), func() (any, error) {
		s.loads.Add(1)
		data, err := s.underlying.ReadShard(ctx, shardID)
		if err != nil {
			return nil, err
		}
		s.backend.Set(shardID, data)
		s.collector.SetGauge(stats.MetricCacheSize, int64(s.backend.Len()))
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Warm loads the given shards concurrently without counting them as
// misses. Shards absent from the underlying store are skipped.
func (s *Store) Warm(ctx context.Context, shardIDs ...int) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, id := range shardIDs {
		if _, ok := s.backend.Get(id); ok {
			continue
		}
		g.Go(func() error {
			_, err := s.load(ctx, id)
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}
			return err
		})
	}
	return g.Wait()
}

// Purge forgets every held shard. Counters are kept.
func (s *Store) Purge() {
	s.backend.Purge()
	s.collector.SetGauge(stats.MetricCacheSize, 0)
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.underlying.Close()
}

// Stats returns a snapshot of the read counters.
func (s *Store) Stats() Stats {
	return Stats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Loads:  s.loads.Load(),
		Size:   s.backend.Len(),
	}
}
