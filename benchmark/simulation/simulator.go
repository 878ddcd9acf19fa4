// Package simulation replays the book lookups of played games against
// sharding strategies to measure shard locality.
package simulation

import (
	"github.com/discochess/tictactoe/internal/board"
	"github.com/discochess/tictactoe/internal/cachestrategy"
	"github.com/discochess/tictactoe/internal/shard"
	"github.com/discochess/tictactoe/internal/symmetry"
)

// Simulator maps lookup sequences onto shards for several strategies.
type Simulator struct {
	strategies  []shard.Strategy
	totalShards int
}

// NewSimulator creates a Simulator over totalShards shards.
func NewSimulator(totalShards int, strategies ...shard.Strategy) *Simulator {
	return &Simulator{
		strategies:  strategies,
		totalShards: totalShards,
	}
}

// GameResult is the shard access pattern of one game under one strategy.
type GameResult struct {
	StrategyName  string
	ShardAccess   []int // shard of each lookup, in order
	ShardSwitches int   // lookups whose shard differs from the previous one
	DistinctShard int   // shards touched at least once
}

// SimulateGame maps the positions of one game to shards. Positions are
// canonicalized once and shared by every strategy, as the book keys them.
func (s *Simulator) SimulateGame(positions []board.Board) map[string]*GameResult {
	keys := make([]board.Board, len(positions))
	for i, b := range positions {
		keys[i] = symmetry.Canonical(b)
	}

	results := make(map[string]*GameResult, len(s.strategies))
	for _, strategy := range s.strategies {
		results[strategy.Name()] = s.replay(strategy, keys)
	}
	return results
}

func (s *Simulator) replay(strategy shard.Strategy, keys []board.Board) *GameResult {
	r := &GameResult{
		StrategyName: strategy.Name(),
		ShardAccess:  make([]int, len(keys)),
	}
	seen := make(map[int]struct{}, len(keys))
	for i, key := range keys {
		id := strategy.ShardID(key, s.totalShards)
		r.ShardAccess[i] = id
		if i == 0 || id != r.ShardAccess[i-1] {
			r.ShardSwitches++
		}
		seen[id] = struct{}{}
	}
	r.DistinctShard = len(seen)
	return r
}

// AggregateResult accumulates game results for one strategy.
type AggregateResult struct {
	StrategyName       string
	TotalLookups       int
	TotalSwitches      int
	UniqueShards       int
	AvgSwitchesPerGame float64
	ShardHits          map[int]int // lookups per shard
	SwitchesPerGame    []int
	DistinctPerGame    []int // shards a cold cache fetches per game
	Accesses           []int // every lookup's shard, games concatenated
}

func (a *AggregateResult) add(g *GameResult) {
	a.TotalLookups += len(g.ShardAccess)
	a.TotalSwitches += g.ShardSwitches
	a.SwitchesPerGame = append(a.SwitchesPerGame, g.ShardSwitches)
	a.DistinctPerGame = append(a.DistinctPerGame, g.DistinctShard)
	a.Accesses = append(a.Accesses, g.ShardAccess...)
	for _, id := range g.ShardAccess {
		a.ShardHits[id]++
	}
}

// SimulateGames simulates every game and aggregates per strategy.
func (s *Simulator) SimulateGames(games [][]board.Board) map[string]*AggregateResult {
	results := make(map[string]*AggregateResult, len(s.strategies))
	for _, strategy := range s.strategies {
		results[strategy.Name()] = &AggregateResult{
			StrategyName:    strategy.Name(),
			ShardHits:       make(map[int]int),
			SwitchesPerGame: make([]int, 0, len(games)),
			DistinctPerGame: make([]int, 0, len(games)),
		}
	}

	for _, positions := range games {
		for name, g := range s.SimulateGame(positions) {
			results[name].add(g)
		}
	}

	for _, a := range results {
		a.UniqueShards = len(a.ShardHits)
		if len(games) > 0 {
			a.AvgSwitchesPerGame = float64(a.TotalSwitches) / float64(len(games))
		}
	}
	return results
}

// CacheHitRate replays every access through an LRU shard cache holding
// capacity shards and returns the hit percentage.
func (a *AggregateResult) CacheHitRate(capacity int) float64 {
	if len(a.Accesses) == 0 || capacity <= 0 {
		return 0
	}
	cache, err := cachestrategy.New[int, struct{}](cachestrategy.LRU, capacity)
	if err != nil {
		return 0
	}

	var hits int
	for _, id := range a.Accesses {
		if _, ok := cache.Get(id); ok {
			hits++
		} else {
			cache.Add(id, struct{}{})
		}
	}
	return float64(hits) / float64(len(a.Accesses)) * 100
}
