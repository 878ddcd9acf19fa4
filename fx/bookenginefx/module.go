// Package bookenginefx provides an fx module for an engine backed by an
// opening book on disk.
package bookenginefx

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/tictactoe"
	"github.com/discochess/tictactoe/internal/builder"
	"github.com/discochess/tictactoe/internal/stats"
	"github.com/discochess/tictactoe/internal/stats/logger"
	promstats "github.com/discochess/tictactoe/internal/stats/prometheus"
	"github.com/discochess/tictactoe/internal/store/memstore"
)

// Config holds configuration for the book-backed engine.
type Config struct {
	// DataDir is the book directory written by the builder.
	DataDir string

	// CacheSize is the number of shards to cache in memory.
	// Default is 16. Ignored when Preload is set.
	CacheSize int

	// CachePolicy selects shard eviction. Default is LRU.
	CachePolicy tictactoe.CachePolicy

	// Preload reads every shard into memory at startup.
	Preload bool
}

// Module provides a book-backed *tictactoe.Engine.
// Requires a *zap.Logger and a Config to be provided. Metrics go to a
// prometheus.Registerer if one is provided, otherwise to the logger.
var Module = fx.Module("bookengine",
	fx.Provide(
		newStatsCollector,
		newEngine,
	),
)

// StatsParams holds dependencies for the stats collector.
type StatsParams struct {
	fx.In

	Logger     *zap.Logger
	Registerer prometheus.Registerer `optional:"true"`
}

func newStatsCollector(p StatsParams) stats.Collector {
	if p.Registerer != nil {
		return promstats.New(p.Registerer)
	}
	return logger.New(p.Logger.Named("tictactoe.stats"))
}

// Params holds dependencies for creating the engine.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided engine.
type Result struct {
	fx.Out

	Engine *tictactoe.Engine
}

func newEngine(p Params) (Result, error) {
	book, err := bookOptions(p.Config, p.Logger)
	if err != nil {
		return Result{}, err
	}

	engine, err := tictactoe.New(append(book,
		tictactoe.WithStats(p.Collector),
		tictactoe.WithLogger(p.Logger.Named("tictactoe")),
	)...)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return engine.Close()
		},
	})

	return Result{Engine: engine}, nil
}

func bookOptions(cfg Config, log *zap.Logger) ([]tictactoe.Option, error) {
	if !cfg.Preload {
		dataDir, err := tictactoe.WithDataDir(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		cacheSize := cfg.CacheSize
		if cacheSize <= 0 {
			cacheSize = 16
		}
		return []tictactoe.Option{dataDir, tictactoe.WithShardCache(cfg.CachePolicy, cacheSize)}, nil
	}

	manifest, err := builder.ReadManifest(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	strategy, err := builder.NewStrategy(manifest.Strategy)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	src, err := builder.OpenStore(cfg.DataDir, manifest)
	if err != nil {
		return nil, fmt.Errorf("opening book: %w", err)
	}
	defer src.Close()

	mem, err := memstore.Preload(context.Background(), src, manifest.TotalShards)
	if err != nil {
		return nil, err
	}
	log.Info("book preloaded",
		zap.String("dir", cfg.DataDir),
		zap.Int("shards", mem.Len()),
		zap.Int64("records", manifest.RecordCount),
	)

	return []tictactoe.Option{
		tictactoe.WithBookStore(mem),
		tictactoe.WithShardStrategy(strategy),
		tictactoe.WithTotalShards(manifest.TotalShards),
	}, nil
}
