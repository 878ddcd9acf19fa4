// Package games generates tic-tac-toe games for benchmarking book access
// patterns.
package games

import (
	"fmt"

	"lukechampine.com/frand"

	"github.com/discochess/tictactoe"
	"github.com/discochess/tictactoe/internal/board"
)

// Player chooses a move in a position that is not over.
type Player interface {
	Name() string
	Move(b board.Board) (board.Square, error)
}

// Random plays a uniformly random legal move.
type Random struct {
	rng *frand.RNG
}

// NewRandom creates a random player. If rng is nil, a fresh generator
// seeded from system entropy is used.
func NewRandom(rng *frand.RNG) *Random {
	if rng == nil {
		rng = frand.New()
	}
	return &Random{rng: rng}
}

// NewSeeded creates a random player whose moves are reproducible.
func NewSeeded(seed uint64) *Random {
	var key [32]byte
	for i := 0; i < 8; i++ {
		key[i] = byte(seed >> (8 * i))
	}
	return &Random{rng: frand.NewCustom(key[:], 0, 0)}
}

func (r *Random) Name() string { return "random" }

// Move returns a random empty square.
func (r *Random) Move(b board.Board) (board.Square, error) {
	empty := b.Empty()
	n := empty.Count()
	if n == 0 {
		return board.NoSquare, tictactoe.ErrGameOver
	}
	pick := r.rng.Intn(n)
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		if !empty.Has(sq) {
			continue
		}
		if pick == 0 {
			return sq, nil
		}
		pick--
	}
	return board.NoSquare, tictactoe.ErrGameOver
}

// Perfect plays the engine's best move.
type Perfect struct {
	engine *tictactoe.Engine
}

// NewPerfect creates a player backed by engine.
func NewPerfect(engine *tictactoe.Engine) *Perfect {
	return &Perfect{engine: engine}
}

func (p *Perfect) Name() string { return "perfect" }

func (p *Perfect) Move(b board.Board) (board.Square, error) {
	return p.engine.BestMove(b)
}

// Play plays one game from the initial position, x moving first.
func Play(x, o Player) (tictactoe.Game, error) {
	b := board.Initial()
	g := tictactoe.Game{Start: b}
	for !board.IsOver(b) {
		p := x
		if b.SideToMove() == board.O {
			p = o
		}
		sq, err := p.Move(b)
		if err != nil {
			return tictactoe.Game{}, fmt.Errorf("%s at ply %d: %w", p.Name(), len(g.Moves)+1, err)
		}
		next, err := b.Apply(sq)
		if err != nil {
			return tictactoe.Game{}, fmt.Errorf("%s at ply %d: %w", p.Name(), len(g.Moves)+1, err)
		}
		g.Moves = append(g.Moves, sq)
		b = next
	}
	g.Final = b
	g.Outcome = tictactoe.OutcomeOf(b)
	return g, nil
}

// Generate plays n games, alternating which of a and b moves first.
func Generate(n int, a, b Player) ([]tictactoe.Game, error) {
	out := make([]tictactoe.Game, 0, n)
	for i := 0; i < n; i++ {
		x, o := a, b
		if i%2 == 1 {
			x, o = b, a
		}
		g, err := Play(x, o)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i+1, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// Positions returns the positions in which a move was looked up, in order.
func Positions(g tictactoe.Game) []board.Board {
	positions := make([]board.Board, 0, len(g.Moves))
	b := g.Start
	for _, sq := range g.Moves {
		positions = append(positions, b)
		b = b.MustApply(sq)
	}
	return positions
}

// Tally counts outcomes.
func Tally(gs []tictactoe.Game) map[tictactoe.Outcome]int {
	counts := make(map[tictactoe.Outcome]int)
	for _, g := range gs {
		counts[g.Outcome]++
	}
	return counts
}
