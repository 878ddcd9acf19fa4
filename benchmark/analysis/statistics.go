// Package analysis compares shard-switch samples from the locality
// simulation.
package analysis

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"lukechampine.com/frand"
)

// Alpha is the significance level used throughout.
const Alpha = 0.05

// MannWhitneyResult contains the result of a Mann-Whitney U test.
type MannWhitneyResult struct {
	U           float64
	Z           float64
	PValue      float64 // two-tailed
	Significant bool
}

// MannWhitneyU tests whether two samples come from the same distribution.
// The p-value uses the normal approximation with tie and continuity
// corrections; switch counts are small integers, so ties are the norm.
func MannWhitneyU(sample1, sample2 []float64) *MannWhitneyResult {
	if len(sample1) == 0 || len(sample2) == 0 {
		return &MannWhitneyResult{PValue: 1}
	}
	n1, n2 := float64(len(sample1)), float64(len(sample2))

	ranks, tieTerm := midranks(sample1, sample2)
	var r1 float64
	for _, r := range ranks[:len(sample1)] {
		r1 += r
	}

	u1 := r1 - n1*(n1+1)/2
	u := math.Min(u1, n1*n2-u1)

	n := n1 + n2
	mu := n1 * n2 / 2
	sigma := math.Sqrt(n1 * n2 / 12 * ((n + 1) - tieTerm/(n*(n-1))))

	res := &MannWhitneyResult{U: u, PValue: 1}
	if sigma == 0 {
		return res
	}
	dev := math.Max(math.Abs(u-mu)-0.5, 0)
	res.Z = -dev / sigma
	res.PValue = 2 * distuv.UnitNormal.CDF(res.Z)
	res.Significant = res.PValue < Alpha
	return res
}

// midranks ranks the pooled samples, giving tied values their average
// rank. Ranks are returned in input order, sample1 first, together with
// the tie correction sum of t^3 - t over tie groups.
func midranks(sample1, sample2 []float64) ([]float64, float64) {
	pooled := append(slices.Clone(sample1), sample2...)
	order := make([]int, len(pooled))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		switch {
		case pooled[a] < pooled[b]:
			return -1
		case pooled[a] > pooled[b]:
			return 1
		}
		return 0
	})

	ranks := make([]float64, len(pooled))
	var tieTerm float64
	for lo := 0; lo < len(order); {
		hi := lo + 1
		for hi < len(order) && pooled[order[hi]] == pooled[order[lo]] {
			hi++
		}
		mid := float64(lo+hi+1) / 2
		for _, idx := range order[lo:hi] {
			ranks[idx] = mid
		}
		t := float64(hi - lo)
		tieTerm += t*t*t - t
		lo = hi
	}
	return ranks, tieTerm
}

// EffectSize is Cohen's d with its conventional label.
type EffectSize struct {
	CohensD        float64
	Interpretation string // negligible, small, medium or large
}

// ComputeEffectSize computes Cohen's d using the pooled sample variance.
func ComputeEffectSize(sample1, sample2 []float64) *EffectSize {
	if len(sample1) == 0 || len(sample2) == 0 {
		return &EffectSize{Interpretation: "undefined"}
	}
	m1, v1 := stat.MeanVariance(sample1, nil)
	m2, v2 := stat.MeanVariance(sample2, nil)
	n1, n2 := float64(len(sample1)), float64(len(sample2))

	var d float64
	if df := n1 + n2 - 2; df > 0 {
		if pooled := math.Sqrt(((n1-1)*v1 + (n2-1)*v2) / df); pooled > 0 {
			d = (m1 - m2) / pooled
		}
	}
	return &EffectSize{CohensD: d, Interpretation: interpretCohensD(math.Abs(d))}
}

func interpretCohensD(d float64) string {
	switch {
	case d < 0.2:
		return "negligible"
	case d < 0.5:
		return "small"
	case d < 0.8:
		return "medium"
	default:
		return "large"
	}
}

// BootstrapResult is a percentile bootstrap interval for the difference of
// means, sample1 minus sample2.
type BootstrapResult struct {
	MeanDiff   float64
	LowerBound float64
	UpperBound float64
	Confidence float64
}

// ExcludesZero reports whether the interval lies entirely on one side of
// zero.
func (r *BootstrapResult) ExcludesZero() bool {
	return r.LowerBound > 0 || r.UpperBound < 0
}

// BootstrapConfidenceInterval resamples both samples iterations times with
// draws from rng. A nil rng is seeded from system entropy.
func BootstrapConfidenceInterval(sample1, sample2 []float64, iterations int, confidence float64, rng *frand.RNG) *BootstrapResult {
	res := &BootstrapResult{Confidence: confidence}
	if len(sample1) == 0 || len(sample2) == 0 || iterations <= 0 {
		return res
	}
	if rng == nil {
		rng = frand.New()
	}

	res.MeanDiff = stat.Mean(sample1, nil) - stat.Mean(sample2, nil)

	diffs := make([]float64, iterations)
	for i := range diffs {
		diffs[i] = resampledMean(rng, sample1) - resampledMean(rng, sample2)
	}
	slices.Sort(diffs)

	tail := (1 - confidence) / 2
	res.LowerBound = stat.Quantile(tail, stat.Empirical, diffs, nil)
	res.UpperBound = stat.Quantile(1-tail, stat.Empirical, diffs, nil)
	return res
}

// resampledMean is the mean of len(sample) draws with replacement.
func resampledMean(rng *frand.RNG, sample []float64) float64 {
	var sum float64
	for range sample {
		sum += sample[rng.Intn(len(sample))]
	}
	return sum / float64(len(sample))
}

// DescriptiveStats summarizes one sample.
type DescriptiveStats struct {
	N      int
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
	P25    float64
	P75    float64
}

// Describe computes descriptive statistics for a sample.
func Describe(sample []float64) *DescriptiveStats {
	if len(sample) == 0 {
		return &DescriptiveStats{}
	}
	sorted := slices.Clone(sample)
	slices.Sort(sorted)

	d := &DescriptiveStats{
		N:   len(sorted),
		Min: sorted[0],
		Max: sorted[len(sorted)-1],
	}
	d.Mean, d.StdDev = stat.MeanStdDev(sorted, nil)
	d.P25 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
	d.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	d.P75 = stat.Quantile(0.75, stat.Empirical, sorted, nil)
	return d
}
