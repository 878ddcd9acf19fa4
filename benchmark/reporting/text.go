package reporting

import (
	"fmt"
	"io"

	"github.com/discochess/tictactoe/benchmark/analysis"
	"github.com/discochess/tictactoe/benchmark/simulation"
)

// WriteText writes a plain-text shard locality report.
func WriteText(w io.Writer, games, positions, totalShards, cacheSize int, results map[string]*simulation.AggregateResult, comp *analysis.MultiStrategyComparison) error {
	fmt.Fprintf(w, "Shard locality: %d games, %d lookups, %d shards\n\n", games, positions, totalShards)

	for _, name := range sortedNames(results) {
		res := results[name]
		m := simulation.ComputeMetrics(res)
		fmt.Fprintf(w, "%s:\n", name)
		fmt.Fprintf(w, "  Avg switches/game: %.2f\n", m.AvgSwitchesPerGame)
		fmt.Fprintf(w, "  Median switches:   %.0f\n", m.MedianSwitchesPerGame)
		fmt.Fprintf(w, "  P90 switches:      %.0f\n", m.P90SwitchesPerGame)
		fmt.Fprintf(w, "  Fetches/game:      %.2f\n", m.AvgDistinctPerGame)
		fmt.Fprintf(w, "  Unique shards:     %d (balance %.2f)\n", m.UniqueShards, m.ShardBalance)
		fmt.Fprintf(w, "  Cache hit (%d):     %.1f%%\n", cacheSize, res.CacheHitRate(cacheSize))
		if err := WriteHistogram(w, res.SwitchesPerGame); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if comp != nil {
		for _, c := range comp.Comparisons {
			fmt.Fprintln(w, c.Summary())
			fmt.Fprintln(w)
		}
	}
	return nil
}
