package simulation

import (
	"math"
	"testing"

	"github.com/discochess/tictactoe/internal/board"
	"github.com/discochess/tictactoe/internal/shard/fnvshard"
	"github.com/discochess/tictactoe/internal/shard/plyshard"
)

// fullGame returns the positions of a nine-move drawn game.
func fullGame(t *testing.T) []board.Board {
	t.Helper()
	moves := []board.Square{board.A1, board.B1, board.C1, board.B2, board.A2, board.C2, board.B3, board.A3, board.C3}
	positions := make([]board.Board, 0, len(moves))
	b := board.Initial()
	for _, sq := range moves {
		positions = append(positions, b)
		next, err := b.Apply(sq)
		if err != nil {
			t.Fatalf("Apply(%v) error = %v", sq, err)
		}
		b = next
	}
	return positions
}

func TestSimulator_SimulateGame(t *testing.T) {
	sim := NewSimulator(plyshard.Plies, plyshard.New(), fnvshard.New())
	game := fullGame(t)

	results := sim.SimulateGame(game)

	for _, name := range []string{"ply", "fnv32"} {
		result, ok := results[name]
		if !ok {
			t.Errorf("missing result for strategy %s", name)
			continue
		}
		if len(result.ShardAccess) != len(game) {
			t.Errorf("%s: ShardAccess length = %d, want %d", name, len(result.ShardAccess), len(game))
		}
		if result.ShardSwitches < 1 || result.ShardSwitches > len(game) {
			t.Errorf("%s: ShardSwitches = %d, want 1..%d", name, result.ShardSwitches, len(game))
		}
	}

	// Every ply lands in its own shard.
	if got := results["ply"].ShardSwitches; got != 9 {
		t.Errorf("ply: ShardSwitches = %d, want 9", got)
	}
}

func TestSimulator_SingleShard(t *testing.T) {
	sim := NewSimulator(1, plyshard.New(), fnvshard.New())
	for name, res := range sim.SimulateGame(fullGame(t)) {
		if res.ShardSwitches != 1 {
			t.Errorf("%s: ShardSwitches = %d, want 1", name, res.ShardSwitches)
		}
	}
}

func TestSimulator_SimulateGames(t *testing.T) {
	sim := NewSimulator(plyshard.Plies, plyshard.New(), fnvshard.New())
	game := fullGame(t)

	results := sim.SimulateGames([][]board.Board{game, game[:2]})

	for name, res := range results {
		if res.TotalLookups != 11 {
			t.Errorf("%s: TotalLookups = %d, want 11", name, res.TotalLookups)
		}
		if len(res.SwitchesPerGame) != 2 {
			t.Errorf("%s: SwitchesPerGame length = %d, want 2", name, len(res.SwitchesPerGame))
		}
		if len(res.Accesses) != 11 {
			t.Errorf("%s: Accesses length = %d, want 11", name, len(res.Accesses))
		}
	}
	if got := results["ply"].UniqueShards; got != 9 {
		t.Errorf("ply: UniqueShards = %d, want 9", got)
	}
}

func TestAggregateResult_CacheHitRate(t *testing.T) {
	sim := NewSimulator(plyshard.Plies, plyshard.New())
	game := fullGame(t)
	res := sim.SimulateGames([][]board.Board{game, game})["ply"]

	// Nine distinct shards fit a cache of ten: the second game always hits.
	if got := res.CacheHitRate(10); got != 50 {
		t.Errorf("CacheHitRate(10) = %f, want 50", got)
	}
	// A cache of one shard never hits when every lookup switches.
	if got := res.CacheHitRate(1); got != 0 {
		t.Errorf("CacheHitRate(1) = %f, want 0", got)
	}
	if got := res.CacheHitRate(0); got != 0 {
		t.Errorf("CacheHitRate(0) = %f, want 0", got)
	}
}

func TestMetrics_Computation(t *testing.T) {
	result := &AggregateResult{
		StrategyName:       "test",
		TotalLookups:       100,
		TotalSwitches:      20,
		UniqueShards:       5,
		AvgSwitchesPerGame: 10,
		ShardHits:          map[int]int{0: 30, 1: 25, 2: 20, 3: 15, 4: 10},
		SwitchesPerGame:    []int{8, 10, 12},
	}

	metrics := ComputeMetrics(result)

	if metrics.TotalLookups != 100 {
		t.Errorf("TotalLookups = %d, want 100", metrics.TotalLookups)
	}
	if metrics.MinSwitchesPerGame != 8 {
		t.Errorf("MinSwitchesPerGame = %d, want 8", metrics.MinSwitchesPerGame)
	}
	if metrics.MaxSwitchesPerGame != 12 {
		t.Errorf("MaxSwitchesPerGame = %d, want 12", metrics.MaxSwitchesPerGame)
	}
	if metrics.MedianSwitchesPerGame != 10 {
		t.Errorf("MedianSwitchesPerGame = %f, want 10", metrics.MedianSwitchesPerGame)
	}
	if metrics.TopShardPct != 30 {
		t.Errorf("TopShardPct = %f, want 30", metrics.TopShardPct)
	}
	if metrics.ShardConcentration <= 0 || metrics.ShardConcentration >= 1 {
		t.Errorf("ShardConcentration = %f, want in (0, 1)", metrics.ShardConcentration)
	}
}

func TestCompare(t *testing.T) {
	c := Compare(&Metrics{AvgSwitchesPerGame: 9, UniqueShards: 9}, &Metrics{AvgSwitchesPerGame: 6, UniqueShards: 16}, "ply", "fnv32")
	if c.SwitchesDiff != 3 || c.SwitchesDiffPct != 50 || c.UniqueShardsDiff != -7 {
		t.Errorf("Compare() = %+v", c)
	}
}

func TestSimulator_DistinctShards(t *testing.T) {
	sim := NewSimulator(plyshard.Plies, plyshard.New())
	game := fullGame(t)
	res := sim.SimulateGames([][]board.Board{game, game[:3]})["ply"]
	if len(res.DistinctPerGame) != 2 || res.DistinctPerGame[0] != 9 || res.DistinctPerGame[1] != 3 {
		t.Errorf("DistinctPerGame = %v, want [9 3]", res.DistinctPerGame)
	}
	if got := ComputeMetrics(res).AvgDistinctPerGame; got != 6 {
		t.Errorf("AvgDistinctPerGame = %v, want 6", got)
	}
}

func TestMetrics_Balance(t *testing.T) {
	even := ComputeMetrics(&AggregateResult{TotalLookups: 40, ShardHits: map[int]int{0: 10, 1: 10, 2: 10, 3: 10}})
	if math.Abs(even.ShardBalance-1) > 1e-9 || even.ShardConcentration != 0 {
		t.Errorf("even load: balance = %v, gini = %v, want 1, 0", even.ShardBalance, even.ShardConcentration)
	}
	skewed := ComputeMetrics(&AggregateResult{TotalLookups: 40, ShardHits: map[int]int{0: 37, 1: 1, 2: 1, 3: 1}})
	if skewed.ShardBalance >= even.ShardBalance {
		t.Errorf("skewed balance %v not below even %v", skewed.ShardBalance, even.ShardBalance)
	}
}
