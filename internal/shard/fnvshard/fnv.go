// Package fnvshard spreads book positions uniformly over shards with no
// regard to game order. It is the baseline ply sharding is benchmarked
// against.
package fnvshard

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/discochess/tictactoe/internal/board"
	"github.com/discochess/tictactoe/internal/shard"
)

var _ shard.Strategy = Strategy{}

// Strategy hashes the key's four little-endian bytes with 32-bit FNV-1a.
type Strategy struct{}

func New() Strategy { return Strategy{} }

func (Strategy) Name() string { return "fnv32" }

func (Strategy) ShardID(key board.Board, totalShards int) int {
	if totalShards <= 1 {
		return 0
	}
	h := fnv.New32a()
	h.Write(binary.LittleEndian.AppendUint32(nil, uint32(key)))
	return int(h.Sum32() % uint32(totalShards))
}
