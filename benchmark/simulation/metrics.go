package simulation

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Metrics summarizes an AggregateResult.
type Metrics struct {
	TotalLookups       int
	TotalSwitches      int
	UniqueShards       int
	AvgSwitchesPerGame float64

	MedianSwitchesPerGame float64
	P90SwitchesPerGame    float64
	P99SwitchesPerGame    float64
	MinSwitchesPerGame    int
	MaxSwitchesPerGame    int

	// AvgDistinctPerGame is the mean number of shard fetches per game with
	// a cache large enough to hold the whole game.
	AvgDistinctPerGame float64

	ShardConcentration float64 // Gini coefficient of lookups per shard
	ShardBalance       float64 // entropy of lookups per shard, normalized to [0, 1]
	TopShardPct        float64 // share of lookups in the busiest tenth of shards
}

// ComputeMetrics derives Metrics from result.
func ComputeMetrics(result *AggregateResult) *Metrics {
	m := &Metrics{
		TotalLookups:       result.TotalLookups,
		TotalSwitches:      result.TotalSwitches,
		UniqueShards:       result.UniqueShards,
		AvgSwitchesPerGame: result.AvgSwitchesPerGame,
	}

	if switches := sortedFloats(result.SwitchesPerGame); len(switches) > 0 {
		m.MinSwitchesPerGame = int(switches[0])
		m.MaxSwitchesPerGame = int(switches[len(switches)-1])
		m.MedianSwitchesPerGame = stat.Quantile(0.5, stat.Empirical, switches, nil)
		m.P90SwitchesPerGame = stat.Quantile(0.9, stat.Empirical, switches, nil)
		m.P99SwitchesPerGame = stat.Quantile(0.99, stat.Empirical, switches, nil)
	}
	if len(result.DistinctPerGame) > 0 {
		m.AvgDistinctPerGame = stat.Mean(sortedFloats(result.DistinctPerGame), nil)
	}

	hits := make([]int, 0, len(result.ShardHits))
	for _, h := range result.ShardHits {
		hits = append(hits, h)
	}
	load := sortedFloats(hits)
	m.ShardConcentration = gini(load)
	m.ShardBalance = balance(load)
	m.TopShardPct = topShare(load, result.TotalLookups, 0.1)
	return m
}

func sortedFloats(v []int) []float64 {
	f := make([]float64, len(v))
	for i, x := range v {
		f[i] = float64(x)
	}
	slices.Sort(f)
	return f
}

// gini computes the Gini coefficient of ascending non-negative values.
func gini(asc []float64) float64 {
	n := float64(len(asc))
	var sum, weighted float64
	for i, v := range asc {
		sum += v
		weighted += float64(i+1) * v
	}
	if sum == 0 {
		return 0
	}
	return 2*weighted/(n*sum) - (n+1)/n
}

// balance is the Shannon entropy of the load distribution divided by its
// maximum, so 1 means every used shard is equally loaded.
func balance(load []float64) float64 {
	if len(load) < 2 {
		return 0
	}
	var total float64
	for _, v := range load {
		total += v
	}
	if total == 0 {
		return 0
	}
	p := make([]float64, len(load))
	for i, v := range load {
		p[i] = v / total
	}
	return stat.Entropy(p) / math.Log(float64(len(load)))
}

// topShare returns the percentage of total falling in the largest
// fraction of ascending values, at least one.
func topShare(asc []float64, total int, fraction float64) float64 {
	if total == 0 || len(asc) == 0 {
		return 0
	}
	k := max(int(float64(len(asc))*fraction), 1)
	var top float64
	for _, v := range asc[len(asc)-k:] {
		top += v
	}
	return top / float64(total) * 100
}

// MetricsComparison holds the differences between two strategies' metrics.
type MetricsComparison struct {
	Strategy1 string
	Strategy2 string

	SwitchesDiff      float64 // positive when Strategy1 switches more
	SwitchesDiffPct   float64
	ConcentrationDiff float64
	TopShardPctDiff   float64
	UniqueShardsDiff  int
}

// Compare returns m1 minus m2.
func Compare(m1, m2 *Metrics, name1, name2 string) *MetricsComparison {
	c := &MetricsComparison{
		Strategy1:         name1,
		Strategy2:         name2,
		SwitchesDiff:      m1.AvgSwitchesPerGame - m2.AvgSwitchesPerGame,
		ConcentrationDiff: m1.ShardConcentration - m2.ShardConcentration,
		TopShardPctDiff:   m1.TopShardPct - m2.TopShardPct,
		UniqueShardsDiff:  m1.UniqueShards - m2.UniqueShards,
	}
	if m2.AvgSwitchesPerGame != 0 {
		c.SwitchesDiffPct = c.SwitchesDiff / m2.AvgSwitchesPerGame * 100
	}
	return c
}
