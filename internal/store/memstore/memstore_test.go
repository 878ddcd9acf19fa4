package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/discochess/tictactoe/internal/store"
)

func TestStore_SetShardCopies(t *testing.T) {
	s := New()
	data := []byte("abc")
	s.SetShard(2, data)
	data[0] = 'x'

	got, err := s.ReadShard(context.Background(), 2)
	if err != nil {
		t.Fatalf("ReadShard() error = %v", err)
	}
	if string(got) != "abc" {
		t.Errorf("ReadShard() = %q, want %q", got, "abc")
	}
}

func TestStore_ReadShardNotFound(t *testing.T) {
	if _, err := New().ReadShard(context.Background(), 1); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("ReadShard() error = %v, want ErrNotFound", err)
	}
}

func TestPreload(t *testing.T) {
	src := New()
	ctx := context.Background()
	if err := src.WriteShard(ctx, 0, []byte("zero")); err != nil {
		t.Fatalf("WriteShard() error = %v", err)
	}
	if err := src.WriteShard(ctx, 3, []byte("three")); err != nil {
		t.Fatalf("WriteShard() error = %v", err)
	}

	s, err := Preload(ctx, src, 5)
	if err != nil {
		t.Fatalf("Preload() error = %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if got, _ := s.ReadShard(ctx, 3); string(got) != "three" {
		t.Errorf("ReadShard(3) = %q, want %q", got, "three")
	}
}

type failingStore struct{}

func (failingStore) ReadShard(context.Context, int) ([]byte, error) {
	return nil, errors.New("disk on fire")
}
func (failingStore) Close() error { return nil }

func TestPreload_Error(t *testing.T) {
	if _, err := Preload(context.Background(), failingStore{}, 1); err == nil {
		t.Error("Preload() expected error from failing source")
	}
}
