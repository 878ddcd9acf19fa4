package notation

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/discochess/tictactoe/internal/board"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    board.Square
		wantErr error
	}{
		{name: "zero", input: "0", want: 0},
		{name: "padded eight", input: " 8 ", want: 8},
		{name: "trailing newline", input: "4\n", want: 4},
		{name: "digit prefix", input: "3abc", want: 3},
		{name: "leading zeros", input: "007", want: 7},
		{name: "a1", input: "a1", want: 0},
		{name: "c3", input: "c3", want: 8},
		{name: "b2", input: "b2", want: 4},
		{name: "upper case", input: "C1", want: 2},
		{name: "algebraic with newline", input: "  a3\n", want: 6},
		{name: "nine", input: "9", wantErr: ErrOutOfRange},
		{name: "large number", input: "123456789012345678901234567890", wantErr: ErrOutOfRange},
		{name: "negative", input: "-1", wantErr: ErrInvalidFormat},
		{name: "bad column", input: "d1", wantErr: ErrInvalidFormat},
		{name: "bad row", input: "a4", wantErr: ErrInvalidFormat},
		{name: "row zero", input: "a0", wantErr: ErrInvalidFormat},
		{name: "word", input: "hello", wantErr: ErrInvalidFormat},
		{name: "empty", input: "", wantErr: ErrInvalidFormat},
		{name: "whitespace only", input: " \t\n", wantErr: ErrInvalidFormat},
		{name: "single letter", input: "a", wantErr: ErrInvalidFormat},
		{name: "algebraic with junk", input: "a1x", wantErr: ErrInvalidFormat},
		{name: "reversed", input: "1a", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Parse(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				if got != board.NoSquare {
					t.Errorf("Parse(%q) = %v on error, want NoSquare", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_RoundTripsSquareNames(t *testing.T) {
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		got, err := Parse(sq.String())
		if err != nil || got != sq {
			t.Errorf("Parse(%q) = %v, %v, want %v", sq.String(), got, err, sq)
		}
	}
}

func TestParseAll(t *testing.T) {
	moves, err := ParseAll([]string{"b2", "0", "c3"})
	if err != nil {
		t.Fatalf("ParseAll() error = %v", err)
	}
	want := []board.Square{board.B2, board.A1, board.C3}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("moves[%d] = %v, want %v", i, moves[i], want[i])
		}
	}

	if _, err := ParseAll([]string{"b2", "z9"}); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("ParseAll(bad) error = %v, want ErrInvalidFormat", err)
	}
}

func TestReadMove(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("b2\nhello\n12\nc1"))

	if sq, err := ReadMove(r); err != nil || sq != board.B2 {
		t.Errorf("ReadMove() = %v, %v, want b2", sq, err)
	}
	if _, err := ReadMove(r); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("ReadMove() error = %v, want ErrInvalidFormat", err)
	}
	if _, err := ReadMove(r); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("ReadMove() error = %v, want ErrOutOfRange", err)
	}
	if sq, err := ReadMove(r); err != nil || sq != board.C1 {
		t.Errorf("ReadMove() = %v, %v, want c1 without trailing newline", sq, err)
	}
	if _, err := ReadMove(r); err != io.EOF {
		t.Errorf("ReadMove() at end error = %v, want io.EOF", err)
	}
}
