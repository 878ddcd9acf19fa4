// Package xxhshard implements xxHash-based sharding for book positions.
package xxhshard

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/discochess/tictactoe/internal/board"
	"github.com/discochess/tictactoe/internal/shard"
)

// Strategy implements xxHash64-based sharding.
type Strategy struct{}

// Ensure Strategy implements shard.Strategy.
var _ shard.Strategy = (*Strategy)(nil)

// New creates a new xxHash-based sharding strategy.
func New() *Strategy {
	return &Strategy{}
}

// Name returns the strategy name.
func (s *Strategy) Name() string {
	return "xxh64"
}

// ShardID hashes the key's little-endian bytes with xxHash64.
func (s *Strategy) ShardID(key board.Board, totalShards int) int {
	if totalShards <= 1 {
		return 0
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(key))
	return int(xxhash.Sum64(buf[:]) % uint64(totalShards))
}
