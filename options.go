package tictactoe

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/discochess/tictactoe/internal/builder"
	"github.com/discochess/tictactoe/internal/shard"
	"github.com/discochess/tictactoe/internal/shard/plyshard"
	"github.com/discochess/tictactoe/internal/stats"
	"github.com/discochess/tictactoe/internal/store"
	"github.com/discochess/tictactoe/internal/tt"
	"github.com/discochess/tictactoe/internal/tt/fixedtable"
)

// CachePolicy selects the eviction policy of the book shard cache.
type CachePolicy string

// Supported cache policies.
const (
	CacheLRU CachePolicy = "lru"
	Cache2Q  CachePolicy = "2q"
)

// Option configures an Engine.
type Option interface {
	apply(*options)
}

// options holds the engine configuration.
type options struct {
	table         tt.Table
	tableBits     int
	book          store.Store
	shardStrategy shard.Strategy
	totalShards   int
	cachePolicy   CachePolicy
	cacheSize     int
	stats         stats.Collector
	logger        *zap.Logger
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		tableBits:     fixedtable.DefaultBits,
		shardStrategy: plyshard.New(),
		totalShards:   builder.DefaultTotalShards,
		stats:         stats.NewNoop(),
		logger:        zap.NewNop(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithTable sets the transposition table. It takes precedence over
// WithTableBits.
func WithTable(t tt.Table) Option {
	return optionFunc(func(o *options) {
		o.table = t
	})
}

// WithTableBits sizes the default fixed table at 2^bits slots.
// Default is 19, one slot per packed board.
func WithTableBits(bits int) Option {
	return optionFunc(func(o *options) {
		o.tableBits = bits
	})
}

// WithBookStore sets the opening book storage backend.
func WithBookStore(s store.Store) Option {
	return optionFunc(func(o *options) {
		o.book = s
	})
}

// WithShardStrategy sets the sharding strategy used by the book.
// If not set, ply-based sharding is used.
func WithShardStrategy(s shard.Strategy) Option {
	return optionFunc(func(o *options) {
		o.shardStrategy = s
	})
}

// WithTotalShards sets the total number of book shards.
// Default is 10.
func WithTotalShards(n int) Option {
	return optionFunc(func(o *options) {
		o.totalShards = n
	})
}

// WithShardCache keeps up to size decompressed book shards in memory,
// evicted according to policy.
func WithShardCache(policy CachePolicy, size int) Option {
	return optionFunc(func(o *options) {
		o.cachePolicy = policy
		o.cacheSize = size
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

// WithDataDir configures the opening book from a book directory.
// It reads manifest.json to configure shard count, strategy, codec and
// storage layout.
func WithDataDir(dir string) (Option, error) {
	manifest, err := builder.ReadManifest(dir)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	strategy, err := builder.NewStrategy(manifest.Strategy)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	st, err := builder.OpenStore(dir, manifest)
	if err != nil {
		return nil, fmt.Errorf("opening book: %w", err)
	}

	return optionFunc(func(o *options) {
		o.book = st
		o.totalShards = manifest.TotalShards
		o.shardStrategy = strategy
	}), nil
}
