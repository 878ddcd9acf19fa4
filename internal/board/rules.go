package board

import "fmt"

// Score is a position value from the side to move's point of view.
type Score int

const (
	Win  Score = 100
	Loss Score = -Win
	Draw Score = 0

	// Inf bounds every reachable score.
	Inf Score = 1000

	// MaxPly is the deepest a game can go.
	MaxPly = NumSquares
)

// WinIn returns the score of a win delivered ply half-moves below the root.
func WinIn(ply int) Score {
	return Win - Score(ply)
}

// LossIn returns the score of a loss suffered ply half-moves below the root.
func LossIn(ply int) Score {
	return Loss + Score(ply)
}

// IsWinning reports whether s is a forced win for the side to move.
func (s Score) IsWinning() bool {
	return s > Win-MaxPly-1 && s <= Win
}

// IsLosing reports whether s is a forced loss for the side to move.
func (s Score) IsLosing() bool {
	return s < Loss+MaxPly+1 && s >= Loss
}

// Plies returns how many half-moves from the scoring node the game ends,
// or 0 for a draw.
func (s Score) Plies() int {
	switch {
	case s.IsWinning():
		return int(Win - s)
	case s.IsLosing():
		return int(s - Loss)
	default:
		return 0
	}
}

// String returns "win in N", "loss in N" or "draw".
func (s Score) String() string {
	switch {
	case s.IsWinning():
		return fmt.Sprintf("win in %d", s.Plies())
	case s.IsLosing():
		return fmt.Sprintf("loss in %d", s.Plies())
	case s == Draw:
		return "draw"
	default:
		return fmt.Sprintf("score(%d)", int(s))
	}
}

// Lines holds the 8 winning triples: rows, columns, diagonals.
var Lines = [8]Mask{
	0007, 0070, 0700,
	0111, 0222, 0444,
	0421, 0124,
}

// IsWin reports whether m covers any winning line.
func IsWin(m Mask) bool {
	for _, l := range Lines {
		if m&l == l {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the game is over. If so, the score is from the
// side to move's point of view: Loss when the player who just moved has three
// in a row, Draw when the board is full.
func IsTerminal(b Board) (bool, Score) {
	if IsWin(b.Opponent()) {
		return true, Loss
	}
	if b.Occupied() == Full {
		return true, Draw
	}
	return false, Draw
}

// IsOver reports whether either player has a line or the board is full.
// Unlike IsTerminal it also catches boards built by hand where the side to
// move already holds a line.
func IsOver(b Board) bool {
	return b.Occupied() == Full || IsWin(b.X()) || IsWin(b.O())
}

// Winner returns the side holding a line, if any.
func Winner(b Board) (Side, bool) {
	switch {
	case IsWin(b.X()):
		return X, true
	case IsWin(b.O()):
		return O, true
	default:
		return X, false
	}
}
