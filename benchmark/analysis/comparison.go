package analysis

import (
	"fmt"
	"sort"

	"lukechampine.com/frand"

	"github.com/discochess/tictactoe/benchmark/simulation"
)

// Tie is the Winner of a comparison whose means are equal.
const Tie = "tie"

// StrategyComparison is a statistical comparison of shard switches per
// game between two strategies.
type StrategyComparison struct {
	Strategy1   string
	Strategy2   string
	Stats1      *DescriptiveStats
	Stats2      *DescriptiveStats
	MannWhitney *MannWhitneyResult
	EffectSize  *EffectSize
	BootstrapCI *BootstrapResult

	// Winner has fewer switches per game on average, or is Tie.
	Winner string

	// WinnerConfident is set when the difference is significant.
	WinnerConfident bool
}

// CompareStrategies compares the per-game switch counts of two results.
func CompareStrategies(
	result1, result2 *simulation.AggregateResult,
	bootstrapIterations int,
	confidence float64,
	rng *frand.RNG,
) *StrategyComparison {
	sample1 := intsToFloats(result1.SwitchesPerGame)
	sample2 := intsToFloats(result2.SwitchesPerGame)

	c := &StrategyComparison{
		Strategy1:   result1.StrategyName,
		Strategy2:   result2.StrategyName,
		Stats1:      Describe(sample1),
		Stats2:      Describe(sample2),
		MannWhitney: MannWhitneyU(sample1, sample2),
		EffectSize:  ComputeEffectSize(sample1, sample2),
		BootstrapCI: BootstrapConfidenceInterval(sample1, sample2, bootstrapIterations, confidence, rng),
	}

	switch {
	case c.Stats1.Mean < c.Stats2.Mean:
		c.Winner = c.Strategy1
	case c.Stats2.Mean < c.Stats1.Mean:
		c.Winner = c.Strategy2
	default:
		c.Winner = Tie
	}
	c.WinnerConfident = c.Winner != Tie && c.MannWhitney.Significant

	return c
}

// Loser returns the strategy that did not win, or Tie.
func (c *StrategyComparison) Loser() string {
	switch c.Winner {
	case c.Strategy1:
		return c.Strategy2
	case c.Strategy2:
		return c.Strategy1
	default:
		return Tie
	}
}

// Summary returns a human-readable summary of the comparison.
func (c *StrategyComparison) Summary() string {
	sig := "not statistically significant"
	if c.MannWhitney.Significant {
		sig = fmt.Sprintf("statistically significant (p=%.4f)", c.MannWhitney.PValue)
	}

	line := func(name string, d *DescriptiveStats) string {
		return fmt.Sprintf("  %s: mean=%.2f, median=%.2f, std=%.2f\n", name, d.Mean, d.Median, d.StdDev)
	}

	return fmt.Sprintf("%s vs %s:\n", c.Strategy1, c.Strategy2) +
		line(c.Strategy1, c.Stats1) +
		line(c.Strategy2, c.Stats2) +
		fmt.Sprintf("  Difference: %.2f switches/game (%.1f%%)\n",
			c.Stats1.Mean-c.Stats2.Mean, safePctDiff(c.Stats1.Mean, c.Stats2.Mean)) +
		fmt.Sprintf("  %.0f%% CI: [%.2f, %.2f]\n",
			c.BootstrapCI.Confidence*100, c.BootstrapCI.LowerBound, c.BootstrapCI.UpperBound) +
		fmt.Sprintf("  Effect size: %.2f (%s)\n", c.EffectSize.CohensD, c.EffectSize.Interpretation) +
		fmt.Sprintf("  Result: %s, %s", c.Winner, sig)
}

func intsToFloats(ints []int) []float64 {
	floats := make([]float64, len(ints))
	for i, v := range ints {
		floats[i] = float64(v)
	}
	return floats
}

func safePctDiff(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return (a - b) / b * 100
}

// MultiStrategyComparison compares several strategies against a baseline.
type MultiStrategyComparison struct {
	Baseline    string
	Comparisons []*StrategyComparison
}

// CompareAll compares every strategy against baseline, in name order.
// It returns nil if baseline has no result.
func CompareAll(
	results map[string]*simulation.AggregateResult,
	baseline string,
	bootstrapIterations int,
	confidence float64,
	rng *frand.RNG,
) *MultiStrategyComparison {
	base, ok := results[baseline]
	if !ok {
		return nil
	}

	names := make([]string, 0, len(results))
	for name := range results {
		if name != baseline {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	multi := &MultiStrategyComparison{Baseline: baseline}
	for _, name := range names {
		multi.Comparisons = append(multi.Comparisons,
			CompareStrategies(base, results[name], bootstrapIterations, confidence, rng))
	}
	return multi
}
