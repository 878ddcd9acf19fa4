// Package board implements the packed 3x3 tic-tac-toe position and its rules.
//
// A Board is a 19-bit value:
//
//	bits 0..8   squares held by X
//	bits 9..17  squares held by O
//	bit  18     side to move (0 = X, 1 = O)
//
// Squares are numbered 0..8 in row-major order, 0 being the top-left corner.
package board

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrIllegalMove indicates a move to an occupied or off-board square.
var ErrIllegalMove = errors.New("board: illegal move")

// Board is a packed tic-tac-toe position. The zero value is the initial position.
type Board uint32

// Mask is a 9-bit set of squares.
type Mask uint16

// Side identifies a player.
type Side uint8

const (
	X Side = 0
	O Side = 1
)

// NumSquares is the number of squares on the board.
const NumSquares = 9

const (
	// Full has every square set.
	Full Mask = 1<<NumSquares - 1

	sideShift = 18
	oShift    = 9
)

// Other returns the opponent of s.
func (s Side) Other() Side {
	return s ^ 1
}

// String returns "X" or "O".
func (s Side) String() string {
	if s == O {
		return "O"
	}
	return "X"
}

// Has reports whether sq is in the mask.
func (m Mask) Has(sq Square) bool {
	return sq.Valid() && m&(1<<uint(sq)) != 0
}

// Count returns the number of squares in the mask.
func (m Mask) Count() int {
	return bits.OnesCount16(uint16(m))
}

// Lowest returns the lowest-numbered square in the mask, or NoSquare if empty.
func (m Mask) Lowest() Square {
	if m == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros16(uint16(m)))
}

// Initial returns the empty board with X to move.
func Initial() Board {
	return 0
}

// New packs the given occupancy masks and side to move into a Board.
// It returns ErrIllegalMove if the masks overlap.
func New(x, o Mask, toMove Side) (Board, error) {
	x &= Full
	o &= Full
	if x&o != 0 {
		return 0, fmt.Errorf("%w: squares %09b held by both players", ErrIllegalMove, x&o)
	}
	return Board(x) | Board(o)<<oShift | Board(toMove&1)<<sideShift, nil
}

// SideToMove returns the player to move.
func (b Board) SideToMove() Side {
	return Side(b>>sideShift) & 1
}

// X returns the squares held by X.
func (b Board) X() Mask {
	return Mask(b) & Full
}

// O returns the squares held by O.
func (b Board) O() Mask {
	return Mask(b>>oShift) & Full
}

// Occupied returns the squares held by either player.
func (b Board) Occupied() Mask {
	return b.X() | b.O()
}

// Empty returns the squares held by neither player.
func (b Board) Empty() Mask {
	return ^b.Occupied() & Full
}

// Pieces returns the squares held by side s.
func (b Board) Pieces(s Side) Mask {
	if s == O {
		return b.O()
	}
	return b.X()
}

// Mover returns the squares held by the side to move.
func (b Board) Mover() Mask {
	return b.Pieces(b.SideToMove())
}

// Opponent returns the squares held by the side that just moved.
func (b Board) Opponent() Mask {
	return b.Pieces(b.SideToMove().Other())
}

// FlipSide returns b with the side to move toggled.
func (b Board) FlipSide() Board {
	return b ^ 1<<sideShift
}

// IsEmpty reports whether sq is on the board and unoccupied.
func (b Board) IsEmpty(sq Square) bool {
	return sq.Valid() && !b.Occupied().Has(sq)
}

// IsLegal reports whether sq is a legal move in b.
func (b Board) IsLegal(sq Square) bool {
	return b.IsEmpty(sq)
}

// Apply places a piece for the side to move on sq and passes the turn.
func (b Board) Apply(sq Square) (Board, error) {
	if !b.IsLegal(sq) {
		return b, fmt.Errorf("%w: square %d", ErrIllegalMove, sq)
	}
	return b.apply(sq), nil
}

// MustApply is like Apply but panics if sq is not legal.
// It is intended for callers that have already checked IsLegal.
func (b Board) MustApply(sq Square) Board {
	nb, err := b.Apply(sq)
	if err != nil {
		panic(err)
	}
	return nb
}

func (b Board) apply(sq Square) Board {
	shift := uint(sq)
	if b.SideToMove() == O {
		shift += oShift
	}
	return (b | 1<<shift).FlipSide()
}

// Play applies a sequence of moves starting from b.
func (b Board) Play(moves ...Square) (Board, error) {
	for i, sq := range moves {
		nb, err := b.Apply(sq)
		if err != nil {
			return b, fmt.Errorf("move %d: %w", i+1, err)
		}
		b = nb
	}
	return b, nil
}

// At returns the occupant of sq: 'X', 'O' or ' '.
func (b Board) At(sq Square) byte {
	switch {
	case b.X().Has(sq):
		return 'X'
	case b.O().Has(sq):
		return 'O'
	default:
		return ' '
	}
}

// String returns a compact row-major rendering such as "X.O/.X./..O x".
func (b Board) String() string {
	buf := make([]byte, 0, 13)
	for sq := Square(0); sq < NumSquares; sq++ {
		if sq > 0 && sq%3 == 0 {
			buf = append(buf, '/')
		}
		c := b.At(sq)
		if c == ' ' {
			c = '.'
		}
		buf = append(buf, c)
	}
	buf = append(buf, ' ')
	if b.SideToMove() == O {
		buf = append(buf, 'o')
	} else {
		buf = append(buf, 'x')
	}
	return string(buf)
}
