package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/tictactoe/internal/builder"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Solve every position into an opening book",
	Long: `Solve every reachable tic-tac-toe position and write the results as a
sharded opening book.

This command will:
1. Enumerate all reachable positions and reduce them by symmetry
2. Solve each canonical position with the search engine
3. Distribute records to shards using the configured strategy
4. Sort records within each shard and compress them

Examples:
  # Build with defaults: ply sharding, zstd compression
  tictactoe build --output ./book

  # Hash sharding into a single SQLite database
  tictactoe build --output ./book --strategy xxh64 --shards 32 --sqlite`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

var (
	outputDir    string
	totalShards  int
	strategyName string
	codecName    string
	useSQLite    bool
	workers      int
)

func init() {
	buildCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default --data-dir)")
	buildCmd.Flags().IntVar(&totalShards, "shards", builder.DefaultTotalShards, "number of shards to create")
	buildCmd.Flags().StringVar(&strategyName, "strategy", "ply", "sharding strategy: ply, fnv32, xxh64")
	buildCmd.Flags().StringVar(&codecName, "codec", "zstd", "shard compression: zstd, gzip, none")
	buildCmd.Flags().BoolVar(&useSQLite, "sqlite", false, "store shards in a SQLite database")
	buildCmd.Flags().IntVar(&workers, "workers", 4, "number of parallel shard writers")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	strategy, err := builder.NewStrategy(strategyName)
	if err != nil {
		return err
	}
	c, err := builder.NewCodec(codecName)
	if err != nil {
		return err
	}
	if totalShards < 1 {
		return fmt.Errorf("--shards must be positive, got %d", totalShards)
	}
	if outputDir == "" {
		outputDir = cfg.GetString(keyDataDir)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			fmt.Println("\nInterrupted, cleaning up...")
			cancel()
		case <-ctx.Done():
		}
	}()

	opts := []builder.Option{
		builder.WithOutputDir(outputDir),
		builder.WithTotalShards(totalShards),
		builder.WithStrategy(strategy),
		builder.WithCodec(c),
		builder.WithWorkers(workers),
		builder.WithProgress(builder.DefaultProgressFunc),
	}
	storage := builder.StorageFiles
	if useSQLite {
		opts = append(opts, builder.WithSQLite())
		storage = builder.StorageSQLite
	}

	fmt.Printf("Building opening book\n")
	fmt.Printf("  Output:     %s\n", outputDir)
	fmt.Printf("  Shards:     %d\n", totalShards)
	fmt.Printf("  Strategy:   %s\n", strategy.Name())
	fmt.Printf("  Codec:      %s\n", codecName)
	fmt.Printf("  Storage:    %s\n", storage)
	fmt.Printf("  Workers:    %d\n", workers)
	fmt.Println()

	log.Debug("build starting",
		zap.String("output", outputDir),
		zap.String("strategy", strategy.Name()),
		zap.Int("shards", totalShards))

	return builder.NewBuilder(opts...).Build(ctx)
}
