package tictactoe

import (
	"fmt"
	"strings"

	"github.com/discochess/tictactoe/internal/board"
)

// Outcome is the result of a game.
type Outcome uint8

const (
	Ongoing Outcome = iota
	XWins
	OWins
	Drawn
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case XWins:
		return "X wins"
	case OWins:
		return "O wins"
	case Drawn:
		return "draw"
	default:
		return "ongoing"
	}
}

// OutcomeOf classifies b.
func OutcomeOf(b Board) Outcome {
	if side, ok := board.Winner(b); ok {
		if side == X {
			return XWins
		}
		return OWins
	}
	if b.Empty() == 0 {
		return Drawn
	}
	return Ongoing
}

// Game is a sequence of moves from a starting position.
type Game struct {
	Start   Board
	Moves   []Square
	Final   Board
	Outcome Outcome
}

// String returns the moves followed by the outcome, e.g.
// "b2 a1 c1: ongoing".
func (g Game) String() string {
	moves := make([]string, len(g.Moves))
	for i, sq := range g.Moves {
		moves[i] = sq.String()
	}
	return fmt.Sprintf("%s: %s", strings.Join(moves, " "), g.Outcome)
}

// SelfPlay plays best moves for both sides from b until the game is over.
// With perfect play from the initial position the outcome is a draw.
func (e *Engine) SelfPlay(b Board) (Game, error) {
	g := Game{Start: b}
	for !board.IsOver(b) {
		sq, err := e.BestMove(b)
		if err != nil {
			return Game{}, fmt.Errorf("ply %d: %w", len(g.Moves)+1, err)
		}
		next, err := b.Apply(sq)
		if err != nil {
			return Game{}, fmt.Errorf("ply %d: %w", len(g.Moves)+1, err)
		}
		g.Moves = append(g.Moves, sq)
		b = next
	}
	g.Final = b
	g.Outcome = OutcomeOf(b)
	return g, nil
}
