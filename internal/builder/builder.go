// Package builder solves every reachable position and writes the results
// as a sharded opening book.
package builder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/discochess/tictactoe/internal/board"
	"github.com/discochess/tictactoe/internal/codec"
	"github.com/discochess/tictactoe/internal/codec/zstdcodec"
	"github.com/discochess/tictactoe/internal/negamax"
	"github.com/discochess/tictactoe/internal/search"
	"github.com/discochess/tictactoe/internal/shard"
	"github.com/discochess/tictactoe/internal/shard/plyshard"
	"github.com/discochess/tictactoe/internal/store"
	"github.com/discochess/tictactoe/internal/store/diskstore"
	"github.com/discochess/tictactoe/internal/store/sqlitestore"
	"github.com/discochess/tictactoe/internal/symmetry"
	"github.com/discochess/tictactoe/internal/tt/fixedtable"
)

// DefaultTotalShards is the default number of shards to create: one per
// occupied-square count under ply sharding.
const DefaultTotalShards = plyshard.Plies

// Storage layouts recorded in the manifest.
const (
	StorageFiles  = "files"
	StorageSQLite = "sqlite"
)

// Builder builds the opening book.
type Builder struct {
	outputDir    string
	totalShards  int
	strategy     shard.Strategy
	codec        codec.Codec
	storage      string
	progress     ProgressFunc
	workersCount int
}

// Option configures the Builder.
type Option func(*Builder)

// WithOutputDir sets the output directory.
func WithOutputDir(dir string) Option {
	return func(b *Builder) { b.outputDir = dir }
}

// WithTotalShards sets the number of shards.
func WithTotalShards(n int) Option {
	return func(b *Builder) { b.totalShards = n }
}

// WithStrategy sets the sharding strategy.
func WithStrategy(s shard.Strategy) Option {
	return func(b *Builder) { b.strategy = s }
}

// WithCodec sets the shard compression codec.
func WithCodec(c codec.Codec) Option {
	return func(b *Builder) { b.codec = c }
}

// WithSQLite stores shards in a single SQLite database instead of one file
// per shard.
func WithSQLite() Option {
	return func(b *Builder) { b.storage = StorageSQLite }
}

// WithProgress sets the progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(b *Builder) { b.progress = fn }
}

// WithWorkers sets the number of parallel shard writers.
func WithWorkers(n int) Option {
	return func(b *Builder) { b.workersCount = n }
}

// NewBuilder creates a new Builder with the given options.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		outputDir:    "./book",
		totalShards:  DefaultTotalShards,
		strategy:     plyshard.New(),
		codec:        zstdcodec.New(),
		storage:      StorageFiles,
		progress:     DefaultProgressFunc,
		workersCount: 4,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build solves the book and writes shards and manifest to the output
// directory. Existing shards are replaced.
func (b *Builder) Build(ctx context.Context) error {
	if b.totalShards < 1 {
		return fmt.Errorf("total shards must be positive, got %d", b.totalShards)
	}
	startTime := time.Now()

	records, positions, err := b.solve(ctx, startTime)
	if err != nil {
		return err
	}

	buckets := make([][]search.Record, b.totalShards)
	for _, r := range records {
		id := b.strategy.ShardID(r.Key, b.totalShards)
		buckets[id] = append(buckets[id], r)
	}

	if err := os.MkdirAll(b.outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	w, closeFn, err := b.openWriter()
	if err != nil {
		return err
	}
	defer closeFn()

	shardsCreated, err := b.writeShards(ctx, w, buckets, len(records), startTime)
	if err != nil {
		return err
	}

	b.reportProgress(Progress{
		Phase:       PhaseDone,
		Reachable:   positions,
		Solved:      len(records),
		Written:     len(records),
		Shards:      shardsCreated,
		TotalShards: b.totalShards,
		Started:     startTime,
	})

	manifest := &Manifest{
		Version:     ManifestVersion,
		TotalShards: b.totalShards,
		Strategy:    b.strategy.Name(),
		RecordCount: int64(len(records)),
		ShardCount:  shardsCreated,
		Positions:   positions,
		BuiltAt:     time.Now(),
		Compression: b.codec.Name(),
		Storage:     b.storage,
	}
	if err := WriteManifest(b.outputDir, manifest); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	return nil
}

// solve enumerates reachable positions and solves each distinct canonical
// form. It returns the records sorted by key and the number of reachable
// positions.
func (b *Builder) solve(ctx context.Context, startTime time.Time) ([]search.Record, int, error) {
	reachable := board.Reachable()

	seen := make(map[board.Board]bool, len(reachable))
	var keys []board.Board
	for _, pos := range reachable {
		key := symmetry.Canonical(pos)
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	table, err := fixedtable.New(fixedtable.DefaultBits, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating table: %w", err)
	}
	searcher := negamax.New(table)

	records := make([]search.Record, 0, len(keys))
	for i, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		records = append(records, search.Record{
			Key:   key,
			Score: searcher.Evaluate(key),
			Move:  searcher.BestMove(key),
		})
		if (i+1)%100 == 0 {
			b.reportProgress(Progress{
				Phase:     PhaseSolve,
				Reachable: len(reachable),
				Solved:    i + 1,
				Started:   startTime,
			})
		}
	}
	b.reportProgress(Progress{
		Phase:     PhaseSolve,
		Reachable: len(reachable),
		Solved:    len(records),
		Started:   startTime,
	})

	return records, len(reachable), nil
}

// openWriter opens the configured shard storage for writing.
func (b *Builder) openWriter() (store.Writer, func() error, error) {
	switch b.storage {
	case StorageSQLite:
		path := filepath.Join(b.outputDir, sqlitestore.Filename)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("removing old database: %w", err)
		}
		st, err := sqlitestore.Open(path, b.codec)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	default:
		shardsDir := filepath.Join(b.outputDir, diskstore.ShardsDir)
		if err := os.RemoveAll(shardsDir); err != nil {
			return nil, nil, fmt.Errorf("cleaning shards directory: %w", err)
		}
		if err := os.MkdirAll(shardsDir, 0755); err != nil {
			return nil, nil, fmt.Errorf("creating shards directory: %w", err)
		}
		st, err := diskstore.New(b.outputDir, b.codec)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	}
}

// writeShards encodes non-empty buckets in parallel and returns the number
// of shards written.
func (b *Builder) writeShards(ctx context.Context, w store.Writer, buckets [][]search.Record, total int, startTime time.Time) (int, error) {
	var (
		mu             sync.Mutex
		recordsWritten int
		shardsCreated  int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(b.workersCount, 1))

	for id, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		g.Go(func() error {
			data, err := encodeShard(bucket)
			if err != nil {
				return fmt.Errorf("encoding shard %d: %w", id, err)
			}
			if err := w.WriteShard(gctx, id, data); err != nil {
				return fmt.Errorf("writing shard %d: %w", id, err)
			}

			mu.Lock()
			defer mu.Unlock()
			recordsWritten += len(bucket)
			shardsCreated++
			b.reportProgress(Progress{
				Phase:       PhaseShard,
				Solved:      total,
				Written:     recordsWritten,
				Shards:      shardsCreated,
				TotalShards: len(buckets),
				Started:     startTime,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return shardsCreated, nil
}

// encodeShard renders records, already sorted by key, as JSONL.
func encodeShard(records []search.Record) ([]byte, error) {
	var data []byte
	for _, r := range records {
		line, err := json.Marshal(r)
		if err != nil {
			return nil, err
		}
		data = append(data, line...)
		data = append(data, '\n')
	}
	return data, nil
}

func (b *Builder) reportProgress(p Progress) {
	if b.progress != nil {
		b.progress(p)
	}
}
