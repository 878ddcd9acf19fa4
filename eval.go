package tictactoe

import "fmt"

// Eval is an opening book evaluation.
type Eval struct {
	// Board is the position that was looked up.
	Board Board

	// Key is the canonical form under which the position is stored.
	Key Board

	// Score is the exact value of Board for the side to move.
	Score Score

	// Move is the best square in Board's orientation, or NoSquare if the
	// game is over.
	Move Square
}

// IsWinning returns true if the side to move has a forced win.
func (e *Eval) IsWinning() bool {
	return e.Score.IsWinning()
}

// IsLosing returns true if the side to move loses against best play.
func (e *Eval) IsLosing() bool {
	return e.Score.IsLosing()
}

// IsDraw returns true if best play from both sides draws.
func (e *Eval) IsDraw() bool {
	return e.Score == Draw
}

// String returns the best move and score, e.g. "b2 (draw)" or
// "- (loss in 0)" for a finished game.
func (e *Eval) String() string {
	return fmt.Sprintf("%s (%s)", e.Move, e.Score)
}
