package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/discochess/tictactoe"
	"github.com/discochess/tictactoe/internal/stats"
	"github.com/discochess/tictactoe/internal/stats/logger"
)

// Configuration keys. Each can also be set through a TICTACTOE_* environment
// variable or the config file.
const (
	keyDataDir   = "data-dir"
	keyVerbose   = "verbose"
	keyTableBits = "table-bits"
	keyCache     = "cache"
)

var (
	cfg        = viper.New()
	configFile string
	log        = zap.NewNop()

	// metrics is shared by every engine a command creates and flushed when
	// the command ends.
	metrics *logger.Collector
)

var rootCmd = &cobra.Command{
	Use:   "tictactoe",
	Short: "Perfect-play 3x3 tic-tac-toe engine",
	Long: `tictactoe searches every tic-tac-toe position exactly with negamax and
alpha-beta pruning, and can pre-solve all of them into an opening book.

Moves are given as a square number 0-8 or as a column a-c and row 1-3,
a1 being the top-left corner.

Examples:
  # Play against the engine
  tictactoe play --ai o

  # Score every move after 1. a1
  tictactoe analyze a1

  # Build the opening book and look up a position
  tictactoe build --output ./book
  tictactoe lookup a1 b2`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configFile != "" {
			cfg.SetConfigFile(configFile)
			if err := cfg.ReadInConfig(); err != nil {
				return fmt.Errorf("reading config: %w", err)
			}
		}
		if cfg.GetBool(keyVerbose) {
			l, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			log = l
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if metrics != nil {
			metrics.Flush()
		}
		_ = log.Sync()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	flags.StringP(keyDataDir, "d", "./book", "opening book directory")
	flags.BoolP(keyVerbose, "v", false, "enable verbose output")
	flags.Int(keyTableBits, 19, "transposition table size as a power of two")
	flags.Int(keyCache, 16, "book shards to keep in memory")

	for _, key := range []string{keyDataDir, keyVerbose, keyTableBits, keyCache} {
		if err := cfg.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(err)
		}
	}
	cfg.SetEnvPrefix("TICTACTOE")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()
}

// collector returns the stats collector for CLI engines.
func collector() stats.Collector {
	if metrics == nil {
		metrics = logger.New(log.Named("stats"))
	}
	return metrics
}

// newEngine creates a search engine, attaching the book from --data-dir when
// withBook is set.
func newEngine(withBook bool) (*tictactoe.Engine, error) {
	opts := []tictactoe.Option{
		tictactoe.WithTableBits(cfg.GetInt(keyTableBits)),
		tictactoe.WithLogger(log.Named("engine")),
		tictactoe.WithStats(collector()),
	}
	if withBook {
		dir := cfg.GetString(keyDataDir)
		book, err := tictactoe.WithDataDir(dir)
		if err != nil {
			return nil, fmt.Errorf("opening book %q (run 'tictactoe build' first): %w", dir, err)
		}
		opts = append(opts, book)
		if n := cfg.GetInt(keyCache); n > 0 {
			opts = append(opts, tictactoe.WithShardCache(tictactoe.CacheLRU, n))
		}
	}
	return tictactoe.New(opts...)
}

// playMoves parses args as moves and applies them to the initial board.
func playMoves(args []string) (tictactoe.Board, error) {
	b := tictactoe.Initial()
	for i, arg := range args {
		sq, err := tictactoe.ParseMove(arg)
		if err != nil {
			return b, fmt.Errorf("move %d (%q): %w", i+1, arg, err)
		}
		if tictactoe.IsOver(b) {
			return b, fmt.Errorf("move %d (%q): %w", i+1, arg, tictactoe.ErrGameOver)
		}
		next, err := b.Apply(sq)
		if err != nil {
			return b, fmt.Errorf("move %d (%q): %w", i+1, arg, err)
		}
		b = next
	}
	return b, nil
}
