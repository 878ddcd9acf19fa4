package plyshard

import (
	"testing"

	"github.com/discochess/tictactoe/internal/board"
)

func TestStrategy_Name(t *testing.T) {
	if got := New().Name(); got != "ply" {
		t.Errorf("Name() = %q, want %q", got, "ply")
	}
}

func TestStrategy_ShardID(t *testing.T) {
	s := New()

	tests := []struct {
		name  string
		moves []board.Square
		total int
		want  int
	}{
		{name: "initial", total: Plies, want: 0},
		{name: "one move", moves: []board.Square{board.B2}, total: Plies, want: 1},
		{name: "four moves", moves: []board.Square{board.A1, board.B2, board.C1, board.B1}, total: Plies, want: 4},
		{name: "wraps", moves: []board.Square{board.A1, board.B2, board.C1, board.B1}, total: 3, want: 1},
		{name: "single shard", moves: []board.Square{board.A1}, total: 1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := board.Initial().Play(tt.moves...)
			if err != nil {
				t.Fatalf("Play() error = %v", err)
			}
			if got := s.ShardID(b, tt.total); got != tt.want {
				t.Errorf("ShardID() = %d, want %d", got, tt.want)
			}
		})
	}
}
