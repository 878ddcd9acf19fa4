// Package shard decides which book shard holds a position.
package shard

import "github.com/discochess/tictactoe/internal/board"

// Strategy places canonical keys into shards. Every symmetric variant of a
// position canonicalizes to the same key, so all of them share a shard.
type Strategy interface {
	// Name is recorded in the book manifest and accepted by --strategy.
	Name() string

	// ShardID returns a shard in [0, totalShards). A totalShards of one or
	// less always yields shard 0.
	ShardID(key board.Board, totalShards int) int
}
