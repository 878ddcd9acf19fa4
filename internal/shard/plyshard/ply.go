// Package plyshard implements ply-based sharding for book positions.
//
// Positions are grouped by the number of occupied squares, so positions
// reached at the same point in a game share a shard. Consecutive lookups
// during play walk through consecutive shards.
package plyshard

import (
	"github.com/discochess/tictactoe/internal/board"
	"github.com/discochess/tictactoe/internal/shard"
)

// Name identifies the strategy in manifests and flags.
const Name = "ply"

// Plies is the number of distinct shard values, one per occupied-square
// count from 0 to 9.
const Plies = board.NumSquares + 1

// Strategy implements ply-based sharding.
type Strategy struct{}

// Ensure Strategy implements shard.Strategy.
var _ shard.Strategy = (*Strategy)(nil)

// New creates a new ply-based sharding strategy.
func New() *Strategy {
	return &Strategy{}
}

// Name returns the strategy name.
func (s *Strategy) Name() string {
	return Name
}

// ShardID returns the occupied-square count of key, reduced modulo
// totalShards.
func (s *Strategy) ShardID(key board.Board, totalShards int) int {
	if totalShards <= 1 {
		return 0
	}
	return key.Occupied().Count() % totalShards
}
