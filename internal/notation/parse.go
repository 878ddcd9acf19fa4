// Package notation parses textual move input.
//
// A move is either a square number 0..8 in row-major order or an algebraic
// coordinate: a column letter a..c followed by a row digit 1..3, a1 being the
// top-left corner.
package notation

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/discochess/tictactoe/internal/board"
)

var (
	// ErrInvalidFormat indicates the input is not a recognizable move.
	ErrInvalidFormat = errors.New("invalid move format")

	// ErrOutOfRange indicates a well-formed square number outside 0..8.
	ErrOutOfRange = errors.New("move out of range")
)

const space = " \t\n\v\f\r"

// Parse converts text into a square index. Leading whitespace is skipped.
// A leading digit starts a number, of which the longest digit prefix is
// used; anything else must be exactly a two-character algebraic coordinate,
// optionally followed by whitespace. A leading sign is not a digit, so "-1"
// is ErrInvalidFormat.
//
// Parse does not check the move against any position.
func Parse(text string) (board.Square, error) {
	s := strings.TrimLeft(text, space)
	if s == "" {
		return board.NoSquare, ErrInvalidFormat
	}
	if isDigit(s[0]) {
		return parseNumber(s)
	}
	return parseAlgebraic(strings.TrimRight(s, space))
}

func parseNumber(s string) (board.Square, error) {
	n := 0
	for i := 0; i < len(s) && isDigit(s[i]); i++ {
		// Saturate; any value past the board is out of range anyway.
		if n <= board.NumSquares {
			n = n*10 + int(s[i]-'0')
		}
	}
	if n >= board.NumSquares {
		return board.NoSquare, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return board.Square(n), nil
}

func parseAlgebraic(s string) (board.Square, error) {
	if len(s) != 2 {
		return board.NoSquare, ErrInvalidFormat
	}
	col := s[0] | 0x20 // ASCII lower case
	row := s[1]
	if col < 'a' || col > 'c' || row < '1' || row > '3' {
		return board.NoSquare, ErrInvalidFormat
	}
	return board.Square(int(row-'1')*3 + int(col-'a')), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ParseAll parses each argument as a move.
func ParseAll(args []string) ([]board.Square, error) {
	moves := make([]board.Square, 0, len(args))
	for i, arg := range args {
		sq, err := Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("move %d (%q): %w", i+1, arg, err)
		}
		moves = append(moves, sq)
	}
	return moves, nil
}

// ReadMove reads one line from r and parses it. It returns io.EOF when the
// input is exhausted before any text is read.
func ReadMove(r *bufio.Reader) (board.Square, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return board.NoSquare, fmt.Errorf("reading move: %w", err)
		}
		if line == "" {
			return board.NoSquare, io.EOF
		}
	}
	return Parse(line)
}
