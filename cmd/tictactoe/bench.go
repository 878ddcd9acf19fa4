package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/discochess/tictactoe"
	"github.com/discochess/tictactoe/benchmark/analysis"
	"github.com/discochess/tictactoe/benchmark/games"
	"github.com/discochess/tictactoe/benchmark/reporting"
	"github.com/discochess/tictactoe/benchmark/simulation"
	"github.com/discochess/tictactoe/internal/board"
	"github.com/discochess/tictactoe/internal/builder"
	"github.com/discochess/tictactoe/internal/shard"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark the search and compare book sharding strategies",
	Long: `bench runs two measurements:

1. Search: self-play from every opening move with a cold table, reporting
   nodes visited and time per game.
2. Shard locality: plays games between a seeded random player and the
   engine, replays the book lookups each game would make, and compares how
   often each sharding strategy switches shards.

Examples:
  # Default run
  tictactoe bench

  # Markdown report comparing three strategies
  tictactoe bench --strategies ply,fnv32,xxh64 --format markdown --output report.md`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

var (
	benchGames      int
	benchShards     int
	benchStrategies []string
	benchFormat     string
	benchOutput     string
	benchCache      int
	benchSeed       uint64
	benchWorkers    int
)

func init() {
	benchCmd.Flags().IntVarP(&benchGames, "games", "g", 1000, "games to play for the locality simulation")
	benchCmd.Flags().IntVar(&benchShards, "shards", 16, "total number of shards")
	benchCmd.Flags().StringSliceVarP(&benchStrategies, "strategies", "s", []string{"ply", "fnv32", "xxh64"}, "strategies to compare; the first is the baseline")
	benchCmd.Flags().StringVarP(&benchFormat, "format", "f", "text", "output format: text, markdown")
	benchCmd.Flags().StringVarP(&benchOutput, "output", "o", "", "output file (default: stdout)")
	benchCmd.Flags().IntVar(&benchCache, "cache", reporting.DefaultCacheSize, "simulated shard cache size")
	benchCmd.Flags().Uint64Var(&benchSeed, "seed", 1, "seed for the random player")
	benchCmd.Flags().IntVar(&benchWorkers, "workers", runtime.NumCPU(), "parallel engines for the search benchmark")
	rootCmd.AddCommand(benchCmd)
}

// searchRun is the cost of one self-play game.
type searchRun struct {
	opening  board.Square
	nodes    int64
	duration time.Duration
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchFormat != "text" && benchFormat != "markdown" {
		return fmt.Errorf("unknown format: %s", benchFormat)
	}
	if len(benchStrategies) == 0 {
		return fmt.Errorf("no strategies given")
	}
	strategies := make([]shard.Strategy, 0, len(benchStrategies))
	for _, name := range benchStrategies {
		s, err := builder.NewStrategy(name)
		if err != nil {
			return err
		}
		strategies = append(strategies, s)
	}

	var out io.Writer = os.Stdout
	if benchOutput != "" {
		f, err := os.Create(benchOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	runID := uuid.NewString()
	log.Info("benchmark starting", zap.String("run", runID), zap.Int("games", benchGames))

	runs, err := benchSearch(cmd.Context(), benchWorkers)
	if err != nil {
		return err
	}

	engine, err := newEngine(false)
	if err != nil {
		return err
	}
	defer engine.Close()

	played, err := games.Generate(benchGames, games.NewPerfect(engine), games.NewSeeded(benchSeed))
	if err != nil {
		return fmt.Errorf("playing games: %w", err)
	}
	lookups := make([][]board.Board, len(played))
	var positions int
	for i, g := range played {
		lookups[i] = games.Positions(g)
		positions += len(lookups[i])
	}

	results := simulation.NewSimulator(benchShards, strategies...).SimulateGames(lookups)
	comp := analysis.CompareAll(results, strategies[0].Name(), 10000, 0.95, nil)

	if benchFormat == "markdown" {
		r := reporting.NewMarkdownReport(out, benchCache)
		r.WriteHeader("Tic-tac-toe Benchmark", runID)
		writeSearchMarkdown(out, runs)
		r.WriteMethodology(len(played), positions, benchShards)
		r.WriteSummaryTable(results)
		if comp != nil {
			for _, c := range comp.Comparisons {
				r.WriteComparison(c)
			}
		}
		for _, s := range strategies {
			if err := r.WriteDistributionChart(s.Name(), results[s.Name()].SwitchesPerGame); err != nil {
				return err
			}
		}
		r.WriteFooter()
		return nil
	}

	fmt.Fprintf(out, "Run %s\n\n", runID)
	writeSearchText(out, runs)
	fmt.Fprintln(out, "Outcomes (engine vs random):")
	for _, o := range []tictactoe.Outcome{tictactoe.XWins, tictactoe.OWins, tictactoe.Drawn} {
		fmt.Fprintf(out, "  %-7s %d\n", o, games.Tally(played)[o])
	}
	fmt.Fprintln(out)
	return reporting.WriteText(out, len(played), positions, benchShards, benchCache, results, comp)
}

// benchSearch self-plays each opening on its own engine so that every game
// starts from an empty table.
func benchSearch(ctx context.Context, workers int) ([]searchRun, error) {
	if workers < 1 {
		workers = 1
	}
	runs := make([]searchRun, board.NumSquares)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sq := range board.Order {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			engine, err := tictactoe.New(tictactoe.WithTableBits(cfg.GetInt(keyTableBits)))
			if err != nil {
				return err
			}
			defer engine.Close()

			start := time.Now()
			if _, err := engine.SelfPlay(tictactoe.Initial().MustApply(sq)); err != nil {
				return fmt.Errorf("opening %s: %w", sq, err)
			}
			runs[i] = searchRun{
				opening:  sq,
				nodes:    engine.Stats().Nodes,
				duration: time.Since(start),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

func describeRuns(runs []searchRun) (nodes, micros *analysis.DescriptiveStats) {
	n := make([]float64, len(runs))
	d := make([]float64, len(runs))
	for i, r := range runs {
		n[i] = float64(r.nodes)
		d[i] = float64(r.duration.Microseconds())
	}
	return analysis.Describe(n), analysis.Describe(d)
}

func writeSearchText(w io.Writer, runs []searchRun) {
	fmt.Fprintln(w, "Search (self-play per opening, cold table):")
	for _, r := range runs {
		fmt.Fprintf(w, "  %s  %7d nodes  %s\n", r.opening, r.nodes, r.duration)
	}
	nodes, micros := describeRuns(runs)
	fmt.Fprintf(w, "  nodes: mean %.0f, median %.0f, min %.0f, max %.0f\n",
		nodes.Mean, nodes.Median, nodes.Min, nodes.Max)
	fmt.Fprintf(w, "  time:  mean %.0fus, median %.0fus, p75 %.0fus\n\n",
		micros.Mean, micros.Median, micros.P75)
}

func writeSearchMarkdown(w io.Writer, runs []searchRun) {
	fmt.Fprintln(w, "## Search")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Opening | Nodes | Time |")
	fmt.Fprintln(w, "|---------|-------|------|")
	for _, r := range runs {
		fmt.Fprintf(w, "| %s | %d | %s |\n", r.opening, r.nodes, r.duration)
	}
	nodes, micros := describeRuns(runs)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Mean %.0f nodes (sd %.0f), median time %.0fus.\n\n", nodes.Mean, nodes.StdDev, micros.Median)
}
