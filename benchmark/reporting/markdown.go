// Package reporting provides report generation for benchmark results.
package reporting

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/aybabtme/uniplot/histogram"

	"github.com/discochess/tictactoe/benchmark/analysis"
	"github.com/discochess/tictactoe/benchmark/simulation"
)

// DefaultCacheSize is the shard cache capacity assumed for hit rates.
const DefaultCacheSize = 4

// MarkdownReport generates benchmark reports in Markdown format.
type MarkdownReport struct {
	w         io.Writer
	cacheSize int
}

// NewMarkdownReport creates a new Markdown report writer. Cache hit rates
// are simulated for a shard cache of cacheSize entries.
func NewMarkdownReport(w io.Writer, cacheSize int) *MarkdownReport {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	return &MarkdownReport{w: w, cacheSize: cacheSize}
}

// WriteHeader writes the report header.
func (r *MarkdownReport) WriteHeader(title, runID string) {
	fmt.Fprintf(r.w, "# %s\n\n", title)
	fmt.Fprintf(r.w, "Run `%s`, generated %s\n\n", runID, time.Now().Format(time.RFC3339))
}

// WriteMethodology writes the methodology section.
func (r *MarkdownReport) WriteMethodology(gamesCount, positionsCount, totalShards int) {
	fmt.Fprintln(r.w, "## Methodology")
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "- **Games played:** %d (random player against the engine)\n", gamesCount)
	fmt.Fprintf(r.w, "- **Book lookups:** %d\n", positionsCount)
	fmt.Fprintf(r.w, "- **Shards:** %d, shard cache of %d\n", totalShards, r.cacheSize)
	fmt.Fprintln(r.w, "- **Metric:** shard switches per game (lower is better)")
	fmt.Fprintln(r.w, "- **Statistical tests:** Mann-Whitney U, Cohen's d, bootstrap CI")
	fmt.Fprintln(r.w)
}

// WriteSummaryTable writes the summary comparison table.
func (r *MarkdownReport) WriteSummaryTable(results map[string]*simulation.AggregateResult) {
	fmt.Fprintln(r.w, "## Summary")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "| Strategy | Avg Switches | Median | P90 | Unique Shards | Gini | Cache Hit Rate |")
	fmt.Fprintln(r.w, "|----------|--------------|--------|-----|---------------|------|----------------|")

	for _, name := range sortedNames(results) {
		res := results[name]
		m := simulation.ComputeMetrics(res)
		fmt.Fprintf(r.w, "| %s | %.2f | %.0f | %.0f | %d | %.2f | %.1f%% |\n",
			name, m.AvgSwitchesPerGame, m.MedianSwitchesPerGame, m.P90SwitchesPerGame,
			m.UniqueShards, m.ShardConcentration, res.CacheHitRate(r.cacheSize))
	}
	fmt.Fprintln(r.w)
}

// WriteComparison writes a detailed comparison section.
func (r *MarkdownReport) WriteComparison(comp *analysis.StrategyComparison) {
	fmt.Fprintf(r.w, "## %s vs %s\n\n", comp.Strategy1, comp.Strategy2)

	fmt.Fprintln(r.w, "| Metric | "+comp.Strategy1+" | "+comp.Strategy2+" |")
	fmt.Fprintln(r.w, "|--------|"+strings.Repeat("-", len(comp.Strategy1)+2)+"|"+strings.Repeat("-", len(comp.Strategy2)+2)+"|")
	rows := []struct {
		name string
		a, b float64
	}{
		{"Mean", comp.Stats1.Mean, comp.Stats2.Mean},
		{"Median", comp.Stats1.Median, comp.Stats2.Median},
		{"Std Dev", comp.Stats1.StdDev, comp.Stats2.StdDev},
		{"Min", comp.Stats1.Min, comp.Stats2.Min},
		{"Max", comp.Stats1.Max, comp.Stats2.Max},
	}
	for _, row := range rows {
		fmt.Fprintf(r.w, "| %s | %.2f | %.2f |\n", row.name, row.a, row.b)
	}
	fmt.Fprintln(r.w)

	fmt.Fprintf(r.w, "- **Mann-Whitney U:** %.2f (z=%.2f, p=%.4f)\n",
		comp.MannWhitney.U, comp.MannWhitney.Z, comp.MannWhitney.PValue)
	fmt.Fprintf(r.w, "- **Effect size (Cohen's d):** %.2f (%s)\n",
		comp.EffectSize.CohensD, comp.EffectSize.Interpretation)
	fmt.Fprintf(r.w, "- **%.0f%% CI for mean difference:** [%.2f, %.2f]\n",
		comp.BootstrapCI.Confidence*100, comp.BootstrapCI.LowerBound, comp.BootstrapCI.UpperBound)
	fmt.Fprintln(r.w)

	if comp.WinnerConfident {
		fmt.Fprintf(r.w, "**%s** switches shards significantly less than %s (effect size: %s).\n",
			comp.Winner, comp.Loser(), comp.EffectSize.Interpretation)
	} else {
		fmt.Fprintln(r.w, "No statistically significant difference (p >= 0.05).")
	}
	fmt.Fprintln(r.w)
}

// WriteDistributionChart writes a histogram of switches per game.
func (r *MarkdownReport) WriteDistributionChart(name string, switches []int) error {
	fmt.Fprintf(r.w, "### %s distribution\n\n", name)
	fmt.Fprintln(r.w, "```")
	if err := WriteHistogram(r.w, switches); err != nil {
		return err
	}
	fmt.Fprintln(r.w, "```")
	fmt.Fprintln(r.w)
	return nil
}

// WriteFooter writes the report footer.
func (r *MarkdownReport) WriteFooter() {
	fmt.Fprintln(r.w, "---")
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "*Report generated by tictactoe bench*")
}

// WriteHistogram prints an ASCII histogram of values.
func WriteHistogram(w io.Writer, values []int) error {
	if len(values) == 0 {
		_, err := fmt.Fprintln(w, "(no data)")
		return err
	}
	data := make([]float64, len(values))
	for i, v := range values {
		data[i] = float64(v)
	}
	return histogram.Fprint(w, histogram.Hist(histogramBins, data), histogram.Linear(histogramWidth))
}

const (
	histogramBins  = 8
	histogramWidth = 40
)

func sortedNames(results map[string]*simulation.AggregateResult) []string {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
