// Package diskstore implements a disk-based filesystem storage backend.
//
// Shards live under <root>/shards as one file per shard, named by zero-padded
// shard ID plus the codec extension (e.g., shards/00003.zst).
package diskstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/discochess/tictactoe/internal/codec"
	"github.com/discochess/tictactoe/internal/store"
)

// ShardsDir is the subdirectory of the root that holds shard files.
const ShardsDir = "shards"

// Compile-time checks that Store implements store.Store and store.Writer.
var (
	_ store.Store  = (*Store)(nil)
	_ store.Writer = (*Store)(nil)
)

// Store is a disk-based filesystem storage backend.
type Store struct {
	root  string
	codec codec.Codec
}

// New creates a new disk store rooted at the given directory.
// The directory must exist. The codec handles compression/decompression.
func New(root string, c codec.Codec) (*Store, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	return &Store{
		root:  root,
		codec: c,
	}, nil
}

// ReadShard reads and decompresses the content of the given shard.
func (s *Store) ReadShard(ctx context.Context, shardID int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	compressed, err := os.ReadFile(s.ShardPath(shardID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("reading shard: %w", err)
	}

	data, err := codec.Decode(s.codec, compressed)
	if err != nil {
		return nil, fmt.Errorf("shard %d: %w", shardID, err)
	}
	return data, nil
}

// WriteShard compresses data and writes it to the shard file. The file is
// written under a temporary name and renamed into place.
func (s *Store) WriteShard(ctx context.Context, shardID int, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	compressed, err := codec.Encode(s.codec, data)
	if err != nil {
		return fmt.Errorf("shard %d: %w", shardID, err)
	}

	path := s.ShardPath(shardID)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating shards directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, compressed, 0644); err != nil {
		return fmt.Errorf("writing shard: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming shard: %w", err)
	}
	return nil
}

// Close releases any resources held by the store.
func (s *Store) Close() error {
	return nil
}

// ShardPath returns the filesystem path for a shard.
func (s *Store) ShardPath(shardID int) string {
	return filepath.Join(s.root, ShardsDir, ShardName(shardID, s.codec))
}

// ShardName returns the filename for a shard ID stored with c.
func ShardName(shardID int, c codec.Codec) string {
	name := fmt.Sprintf("%05d", shardID)
	if ext := c.Extension(); ext != "" {
		name += "." + ext
	}
	return name
}
