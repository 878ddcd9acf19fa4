// Package store moves opening book shards between a backend and the
// engine. A shard is the JSONL rendering of its records, sorted by key;
// compression is the backend's business.
package store

import (
	"context"
	"errors"
)

// ErrNotFound means the book has no shard with the requested id. A book
// built with more shards than occupied shard ids has such holes.
var ErrNotFound = errors.New("store: shard not found")

// Store reads shards.
type Store interface {
	ReadShard(ctx context.Context, shardID int) ([]byte, error)
	Close() error
}

// Writer stores shards during a build. WriteShard replaces any previous
// content of the shard.
type Writer interface {
	WriteShard(ctx context.Context, shardID int, data []byte) error
}

// ReadAll reads shards 0 through total-1, skipping missing ones.
func ReadAll(ctx context.Context, s Store, total int) (map[int][]byte, error) {
	shards := make(map[int][]byte, total)
	for id := 0; id < total; id++ {
		data, err := s.ReadShard(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		shards[id] = data
	}
	return shards, nil
}
