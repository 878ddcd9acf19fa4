// Package symmetry maps positions onto a canonical representative under the
// eight symmetries of the 3x3 board (four rotations, each optionally mirrored).
package symmetry

import "github.com/discochess/tictactoe/internal/board"

// Square index layout:
//
//	0 1 2
//	3 4 5
//	6 7 8
var (
	rotate90 = [board.NumSquares]board.Square{2, 5, 8, 1, 4, 7, 0, 3, 6}
	mirror   = [board.NumSquares]board.Square{2, 1, 0, 5, 4, 3, 8, 7, 6}
)

// Transform is one element of the board's symmetry group.
type Transform struct {
	perm [board.NumSquares]board.Square
}

// Group lists all eight transforms in enumeration order: for each of the
// four rotations, the rotation itself followed by its mirror image.
// Group[0] is the identity.
var Group [8]Transform

func init() {
	var rot [board.NumSquares]board.Square
	for sq := range rot {
		rot[sq] = board.Square(sq)
	}
	for r := 0; r < 4; r++ {
		Group[2*r] = Transform{perm: rot}
		var mirrored [board.NumSquares]board.Square
		for sq := range rot {
			mirrored[sq] = mirror[rot[sq]]
		}
		Group[2*r+1] = Transform{perm: mirrored}
		for sq := range rot {
			rot[sq] = rotate90[rot[sq]]
		}
	}
}

// Identity returns the transform that leaves every square in place.
func Identity() Transform {
	return Group[0]
}

// Square returns the image of sq under t. NoSquare maps to itself.
func (t Transform) Square(sq board.Square) board.Square {
	if !sq.Valid() {
		return sq
	}
	return t.perm[sq]
}

// Mask returns the image of m under t.
func (t Transform) Mask(m board.Mask) board.Mask {
	var out board.Mask
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		if m.Has(sq) {
			out |= 1 << uint(t.perm[sq])
		}
	}
	return out
}

// Apply returns the image of b under t. The side to move is unchanged.
func (t Transform) Apply(b board.Board) board.Board {
	nb, _ := board.New(t.Mask(b.X()), t.Mask(b.O()), b.SideToMove())
	return nb
}

// Inverse returns the transform undoing t.
func (t Transform) Inverse() Transform {
	var inv Transform
	for sq, img := range t.perm {
		inv.perm[img] = board.Square(sq)
	}
	return inv
}

// Canonical returns the numerically smallest encoding among the eight
// symmetric images of b. Boards differing only in side to move never share a
// canonical form.
func Canonical(b board.Board) board.Board {
	c, _ := Canonicalize(b)
	return c
}

// Canonicalize returns the canonical form of b together with the transform
// that maps b onto it. When several transforms produce the minimum, the first
// in Group order is returned.
func Canonicalize(b board.Board) (board.Board, Transform) {
	best, bestT := b, Group[0]
	for _, t := range Group[1:] {
		if img := t.Apply(b); img < best {
			best, bestT = img, t
		}
	}
	return best, bestT
}
