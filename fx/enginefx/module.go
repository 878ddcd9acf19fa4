// Package enginefx provides an fx module for a search-only engine.
package enginefx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/tictactoe"
	"github.com/discochess/tictactoe/internal/stats"
	"github.com/discochess/tictactoe/internal/stats/logger"
)

// Config holds configuration for the engine.
type Config struct {
	// TableBits sizes the transposition table at 2^TableBits slots.
	// Default is 19.
	TableBits int
}

// Module provides a *tictactoe.Engine without an opening book.
// Requires a *zap.Logger and a Config to be provided.
var Module = fx.Module("engine",
	fx.Provide(
		newStatsCollector,
		newEngine,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("tictactoe.stats"))
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
	opts := []tictactoe.Option{
		tictactoe.WithStats(p.Collector),
		tictactoe.WithLogger(p.Logger.Named("tictactoe")),
	}
	if p.Config.TableBits > 0 {
		opts = append(opts, tictactoe.WithTableBits(p.Config.TableBits))
	}

	engine, err := tictactoe.New(opts...)
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
