// Package tictactoe plays perfect 3×3 tic-tac-toe.
//
// An Engine searches positions exhaustively with negamax and alpha-beta
// pruning, memoizing results in a transposition table keyed by the
// position's canonical form under the eight board symmetries. An optional
// opening book of pre-solved positions answers lookups without searching.
//
// Example usage:
//
//	engine, err := tictactoe.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	b := tictactoe.Initial()
//	for !tictactoe.IsOver(b) {
//	    sq, err := engine.BestMove(b)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    b = b.MustApply(sq)
//	}
package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/discochess/tictactoe/internal/cachestrategy"
	"github.com/discochess/tictactoe/internal/negamax"
	"github.com/discochess/tictactoe/internal/search"
	"github.com/discochess/tictactoe/internal/shard"
	"github.com/discochess/tictactoe/internal/shard/plyshard"
	"github.com/discochess/tictactoe/internal/stats"
	"github.com/discochess/tictactoe/internal/store"
	"github.com/discochess/tictactoe/internal/store/cachedstore"
	"github.com/discochess/tictactoe/internal/store/cachedstore/memory"
	"github.com/discochess/tictactoe/internal/symmetry"
	"github.com/discochess/tictactoe/internal/tt"
	"github.com/discochess/tictactoe/internal/tt/fixedtable"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrClosed indicates the engine has been closed.
	ErrClosed = errors.New("tictactoe: engine closed")

	// ErrGameOver indicates the position has no moves to play.
	ErrGameOver = errors.New("tictactoe: game over")

	// ErrNoBook indicates a book lookup on an engine without a book.
	ErrNoBook = errors.New("tictactoe: no opening book")

	// ErrNotFound indicates the position was not found in the book.
	ErrNotFound = errors.New("tictactoe: position not found")
)

// Engine searches tic-tac-toe positions.
// An Engine is safe for concurrent use by multiple goroutines; searches are
// serialized.
type Engine struct {
	mu       sync.Mutex
	searcher *negamax.Searcher
	table    tt.Table
	searches atomic.Int64

	book          store.Store
	cache         *cachedstore.Store
	cacheSize     int
	shardStrategy shard.Strategy
	totalShards   int

	stats  stats.Collector
	logger *zap.Logger
	closed atomic.Bool
}

// Stats summarizes engine activity.
type Stats struct {
	Searches int64
	Nodes    int64
	Table    tt.Stats

	// Cache is nil unless the engine has a shard cache.
	Cache *cachedstore.Stats
}

// New creates a new Engine with the given options.
// If no options are provided, a fixed 2^19-slot table is used and no book
// is attached.
func New(opts ...Option) (*Engine, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	table := cfg.table
	if table == nil {
		fixed, err := fixedtable.New(cfg.tableBits, cfg.stats)
		if err != nil {
			return nil, fmt.Errorf("creating table: %w", err)
		}
		table = fixed
	}

	e := &Engine{
		searcher:      negamax.New(table),
		table:         table,
		book:          cfg.book,
		shardStrategy: cfg.shardStrategy,
		totalShards:   cfg.totalShards,
		stats:         cfg.stats,
		logger:        cfg.logger,
	}

	if e.book != nil && cfg.cacheSize > 0 {
		strategy, err := cachestrategy.New[int, []byte](cachestrategy.Policy(cfg.cachePolicy), cfg.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating shard cache: %w", err)
		}
		e.cacheSize = cfg.cacheSize
		e.cache = cachedstore.New(e.book, memory.New(strategy), cfg.stats)
		e.book = e.cache
	}

	e.logger.Debug("engine initialized",
		zap.Int("tableCapacity", table.Stats().Capacity),
		zap.Bool("book", e.book != nil),
		zap.Int("totalShards", e.totalShards),
		zap.String("shardStrategy", e.shardStrategy.Name()),
	)

	return e, nil
}

// BestMove returns the best square for the side to move in b. Ties go to
// the center, then corners, then edges. It returns ErrGameOver if either
// player holds a line or the board is full.
func (e *Engine) BestMove(b Board) (Square, error) {
	if e.closed.Load() {
		return NoSquare, ErrClosed
	}

	var sq Square
	e.search(func(s *negamax.Searcher) { sq = s.BestMove(b) })
	if sq == NoSquare {
		return NoSquare, ErrGameOver
	}

	e.logger.Debug("best move",
		zap.Stringer("board", b),
		zap.Stringer("move", sq),
	)
	return sq, nil
}

// Evaluate returns the exact value of b for the side to move.
func (e *Engine) Evaluate(b Board) (Score, error) {
	if e.closed.Load() {
		return Draw, ErrClosed
	}

	var score Score
	e.search(func(s *negamax.Searcher) { score = s.Evaluate(b) })
	return score, nil
}

// Analyze returns every legal move of b with its exact score, center first,
// then corners, then edges. It returns ErrGameOver if no move exists.
func (e *Engine) Analyze(b Board) ([]MoveScore, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}

	var moves []MoveScore
	e.search(func(s *negamax.Searcher) { moves = s.Analyze(b) })
	if moves == nil {
		return nil, ErrGameOver
	}
	return moves, nil
}

// search runs fn under the engine lock and records its cost.
func (e *Engine) search(fn func(*negamax.Searcher)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	before := e.searcher.Nodes()
	fn(e.searcher)
	nodes := e.searcher.Nodes() - before
	elapsed := time.Since(start)

	e.searches.Add(1)
	e.stats.IncCounter(stats.MetricSearches, 1)
	e.stats.IncCounter(stats.MetricNodes, nodes)
	e.stats.ObserveHistogram(stats.MetricSearchSeconds, elapsed.Seconds())

	e.logger.Debug("search completed",
		zap.Int64("nodes", nodes),
		zap.Duration("elapsed", elapsed),
	)
}

// Reset clears the transposition table. Results are unaffected; later
// searches repeat the work the table had memoized.
func (e *Engine) Reset() error {
	if e.closed.Load() {
		return ErrClosed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.table.Reset()
	e.stats.IncCounter(stats.MetricResets, 1)
	e.logger.Debug("table reset")
	return nil
}

// Lookup returns the book evaluation of b, with the book move mapped back
// into b's orientation. Returns ErrNoBook if the engine has no book and
// ErrNotFound if the position is not in it.
func (e *Engine) Lookup(ctx context.Context, b Board) (*Eval, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	if e.book == nil {
		return nil, ErrNoBook
	}

	e.stats.IncCounter(stats.MetricBookLookups, 1)

	key, tr := symmetry.Canonicalize(b)
	shardID := e.shardStrategy.ShardID(key, e.totalShards)

	e.stats.IncCounter(stats.MetricShardFetches, 1)
	data, err := e.book.ReadShard(ctx, shardID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			e.stats.IncCounter(stats.MetricBookMisses, 1)
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching shard %d: %w", shardID, err)
	}

	record, err := search.Search(data, key)
	if err != nil {
		if errors.Is(err, search.ErrNotFound) {
			e.stats.IncCounter(stats.MetricBookMisses, 1)
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("searching shard %d: %w", shardID, err)
	}

	e.stats.IncCounter(stats.MetricBookHits, 1)
	return recordToEval(b, record, tr), nil
}

// WarmBook loads the shards holding positions up to the given ply into the
// shard cache, so the opening moves of a game never wait on storage. Shards
// of other strategies are loaded in id order until the cache would be full.
// Without a shard cache it does nothing.
func (e *Engine) WarmBook(ctx context.Context, ply int) error {
	if e.closed.Load() {
		return ErrClosed
	}
	if e.cache == nil {
		return nil
	}

	limit := e.cacheSize
	if e.shardStrategy.Name() == plyshard.Name {
		limit = min(limit, ply+1)
	}
	var ids []int
	for id := 0; id < min(limit, e.totalShards); id++ {
		ids = append(ids, id)
	}

	if err := e.cache.Warm(ctx, ids...); err != nil {
		return fmt.Errorf("warming shard cache: %w", err)
	}
	e.logger.Debug("shard cache warmed", zap.Ints("shards", ids))
	return nil
}

// recordToEval converts a book record for the canonical form of b, reached
// from b by tr, into an Eval in b's orientation.
func recordToEval(b Board, r *search.Record, tr symmetry.Transform) *Eval {
	return &Eval{
		Board: b,
		Key:   r.Key,
		Score: r.Score,
		Move:  tr.Inverse().Square(r.Move),
	}
}

// Stats returns a snapshot of engine statistics.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	s := Stats{
		Searches: e.searches.Load(),
		Nodes:    e.searcher.Nodes(),
		Table:    e.table.Stats(),
	}
	e.mu.Unlock()

	if e.cache != nil {
		cs := e.cache.Stats()
		s.Cache = &cs
	}
	return s
}

// ShardStrategy returns the sharding strategy used by the book.
func (e *Engine) ShardStrategy() shard.Strategy {
	return e.shardStrategy
}

// Book returns the book storage backend, or nil.
func (e *Engine) Book() store.Store {
	return e.book
}

// Close releases all resources associated with the engine.
// After Close, the engine should not be used.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	if e.book != nil {
		if err := e.book.Close(); err != nil {
			return fmt.Errorf("closing book: %w", err)
		}
	}

	return nil
}
