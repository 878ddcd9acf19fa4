package tictactoe

import (
	"bufio"

	"github.com/discochess/tictactoe/internal/board"
	"github.com/discochess/tictactoe/internal/negamax"
	"github.com/discochess/tictactoe/internal/notation"
)

// Board is a packed position: X's squares, O's squares and the side to move.
type Board = board.Board

// Mask is a set of squares, bit i standing for square i.
type Mask = board.Mask

// Square indexes the board 0..8 in row-major order, a1 being square 0.
type Square = board.Square

// Side identifies a player.
type Side = board.Side

// Score is a position value from the side to move's point of view.
type Score = board.Score

// MoveScore is a legal move together with its exact score for the mover.
type MoveScore = negamax.MoveScore

// Players.
const (
	X = board.X
	O = board.O
)

// NoSquare is returned when no move exists.
const NoSquare = board.NoSquare

// Score values.
const (
	Win  = board.Win
	Loss = board.Loss
	Draw = board.Draw
)

// Errors returned by move application and parsing.
var (
	ErrIllegalMove   = board.ErrIllegalMove
	ErrInvalidFormat = notation.ErrInvalidFormat
	ErrOutOfRange    = notation.ErrOutOfRange
)

// Initial returns the empty board with X to move.
func Initial() Board {
	return board.Initial()
}

// ParseMove converts text such as "4" or "b2" into a square.
func ParseMove(text string) (Square, error) {
	return notation.Parse(text)
}

// Render draws b as a labelled grid with row 1 on top.
func Render(b Board) string {
	return notation.Render(b)
}

// ReadMove reads and parses one line of input. It returns io.EOF when the
// input is exhausted.
func ReadMove(r *bufio.Reader) (Square, error) {
	return notation.ReadMove(r)
}

// IsWin reports whether m covers any of the eight winning lines.
func IsWin(m Mask) bool {
	return board.IsWin(m)
}

// IsTerminal reports whether b is finished from the side to move's point of
// view: Loss if the opponent holds a line, Draw if the board is full.
func IsTerminal(b Board) (bool, Score) {
	return board.IsTerminal(b)
}

// IsOver reports whether either player holds a line or the board is full.
func IsOver(b Board) bool {
	return board.IsOver(b)
}

// WinIn returns the score of a win delivered ply half-moves from now.
func WinIn(ply int) Score {
	return board.WinIn(ply)
}

// LossIn returns the score of a loss suffered ply half-moves from now.
func LossIn(ply int) Score {
	return board.LossIn(ply)
}
