// Package memstore provides an in-memory store implementation.
//
// It serves tests and small books that are preloaded into memory at
// startup.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/discochess/tictactoe/internal/store"
)

// Compile-time checks that Store implements store.Store and store.Writer.
var (
	_ store.Store  = (*Store)(nil)
	_ store.Writer = (*Store)(nil)
)

// Store is an in-memory store.
type Store struct {
	mu     sync.RWMutex
	shards map[int][]byte
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		shards: make(map[int][]byte),
	}
}

// Preload copies shards 0..totalShards-1 from src into a new in-memory
// store. Shards missing from src are skipped.
func Preload(ctx context.Context, src store.Store, totalShards int) (*Store, error) {
	shards, err := store.ReadAll(ctx, src, totalShards)
	if err != nil {
		return nil, fmt.Errorf("preloading book: %w", err)
	}
	return &Store{shards: shards}, nil
}

// SetShard sets the data for a shard.
// The data is copied to prevent caller mutations from affecting the store.
func (s *Store) SetShard(shardID int, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shards[shardID] = append([]byte(nil), data...)
}

// WriteShard implements store.Writer.
func (s *Store) WriteShard(ctx context.Context, shardID int, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.SetShard(shardID, data)
	return nil
}

// ReadShard reads a shard from memory.
func (s *Store) ReadShard(ctx context.Context, shardID int) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.shards[shardID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return data, nil
}

// Len returns the number of stored shards.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.shards)
}

// Close is a no-op for the memory store.
func (s *Store) Close() error {
	return nil
}
