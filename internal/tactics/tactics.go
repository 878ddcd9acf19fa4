// Package tactics finds forced one-move replies without searching.
package tactics

import "github.com/discochess/tictactoe/internal/board"

// Kind classifies an immediate move.
type Kind uint8

const (
	None Kind = iota
	// Win completes a line for the mover.
	Win
	// Block occupies the last empty square of an opponent's line.
	Block
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Win:
		return "win"
	case Block:
		return "block"
	default:
		return "none"
	}
}

// Find returns an immediate winning square for me if one exists, otherwise a
// square blocking an immediate win for opp, otherwise NoSquare and None.
// Lines are scanned in board.Lines order.
func Find(me, opp board.Mask) (board.Square, Kind) {
	empty := ^(me | opp) & board.Full
	if sq := completing(me, empty); sq != board.NoSquare {
		return sq, Win
	}
	if sq := completing(opp, empty); sq != board.NoSquare {
		return sq, Block
	}
	return board.NoSquare, None
}

// ForBoard applies Find to the side to move in b.
func ForBoard(b board.Board) (board.Square, Kind) {
	return Find(b.Mover(), b.Opponent())
}

// completing returns the empty square finishing a line on which m holds the
// other two squares.
func completing(m, empty board.Mask) board.Square {
	for _, line := range board.Lines {
		need := line &^ m
		if need != 0 && need&(need-1) == 0 && need&empty != 0 {
			return need.Lowest()
		}
	}
	return board.NoSquare
}
