// Package negamax implements exhaustive alpha-beta search over tic-tac-toe
// positions, memoized through a transposition table keyed by canonical
// position.
//
// Scores follow the negamax convention: every score is from the point of
// view of the side to move at the node that reports it. A win delivered k
// plies below the search root is worth board.WinIn(k) and a loss suffered k
// plies below is worth board.LossIn(k), so faster wins and slower losses are
// preferred.
package negamax

import (
	"github.com/discochess/tictactoe/internal/board"
	"github.com/discochess/tictactoe/internal/symmetry"
	"github.com/discochess/tictactoe/internal/tactics"
	"github.com/discochess/tictactoe/internal/tt"
)

// MoveScore is a legal move together with its exact score for the mover.
type MoveScore struct {
	Square board.Square
	Score  board.Score
}

// Searcher runs searches against a transposition table.
// A Searcher is not safe for concurrent use.
type Searcher struct {
	table tt.Table
	nodes int64
}

// New creates a Searcher backed by table.
func New(table tt.Table) *Searcher {
	return &Searcher{table: table}
}

// Table returns the transposition table used by s.
func (s *Searcher) Table() tt.Table {
	return s.table
}

// Nodes returns the number of positions visited since the Searcher was
// created.
func (s *Searcher) Nodes() int64 {
	return s.nodes
}

// Evaluate returns the exact value of b for the side to move.
func (s *Searcher) Evaluate(b board.Board) board.Score {
	return s.Search(b, -board.Inf, board.Inf, 0)
}

// BestMove returns the best square for the side to move, or NoSquare if
// the game is over. Ties go to the earliest square in board.Order.
func (s *Searcher) BestMove(b board.Board) board.Square {
	if board.IsOver(b) {
		return board.NoSquare
	}
	if sq, kind := tactics.ForBoard(b); kind != tactics.None {
		return sq
	}

	best, bestSq := -board.Inf, board.NoSquare
	for _, sq := range board.Order {
		if !b.IsEmpty(sq) {
			continue
		}
		if score := s.scoreMove(b, sq); score > best {
			best, bestSq = score, sq
		}
	}
	return bestSq
}

// Analyze returns every legal move of b with its exact score, in
// board.Order. It returns nil if the game is over.
func (s *Searcher) Analyze(b board.Board) []MoveScore {
	if board.IsOver(b) {
		return nil
	}
	moves := make([]MoveScore, 0, b.Empty().Count())
	for _, sq := range board.Order {
		if !b.IsEmpty(sq) {
			continue
		}
		moves = append(moves, MoveScore{Square: sq, Score: s.scoreMove(b, sq)})
	}
	return moves
}

// scoreMove returns the exact score of playing sq in b at the root.
func (s *Searcher) scoreMove(b board.Board, sq board.Square) board.Score {
	child := b.MustApply(sq)
	if board.IsWin(child.Pieces(b.SideToMove())) {
		return board.WinIn(0)
	}
	return -s.Search(child, -board.Inf, board.Inf, 1)
}

// Search returns the value of b searched with window (alpha, beta) at the
// given ply below the root. Scores outside the window are bounds: a result
// <= alpha is an upper bound and a result >= beta is a lower bound.
func (s *Searcher) Search(b board.Board, alpha, beta board.Score, ply int) board.Score {
	s.nodes++

	key := symmetry.Canonical(b)
	if e, ok := s.table.Probe(key); ok {
		score := tt.FromTable(e.Score, ply)
		if tt.Usable(e.Bound, score, alpha, beta) {
			return score
		}
	}

	if term, score := board.IsTerminal(b); term {
		if score == board.Loss {
			score = board.LossIn(ply)
		}
		s.store(key, score, tt.Exact, ply)
		return score
	}

	mover := b.SideToMove()

	if sq, kind := tactics.ForBoard(b); kind != tactics.None {
		var score board.Score
		if kind == tactics.Win {
			score = board.WinIn(ply)
		} else {
			score = -s.Search(b.MustApply(sq), -beta, -alpha, ply+1)
		}
		s.store(key, score, boundFor(score, alpha, beta), ply)
		return score
	}

	origAlpha := alpha
	for _, sq := range board.Order {
		if !b.IsEmpty(sq) {
			continue
		}
		child := b.MustApply(sq)

		if board.IsWin(child.Pieces(mover)) {
			score := board.WinIn(ply)
			s.store(key, score, tt.Exact, ply)
			return score
		}

		score := -s.Search(child, -beta, -alpha, ply+1)
		if score > alpha {
			alpha = score
			if alpha >= beta {
				s.store(key, alpha, tt.Lower, ply)
				return alpha
			}
		}
	}

	bound := tt.Exact
	if alpha <= origAlpha {
		bound = tt.Upper
	}
	s.store(key, alpha, bound, ply)
	return alpha
}

func (s *Searcher) store(key board.Board, score board.Score, bound tt.Bound, ply int) {
	s.table.Store(tt.Entry{
		Key:   key,
		Score: tt.ToTable(score, ply),
		Bound: bound,
	})
}

// boundFor classifies a score returned from a child searched with the
// negated window (alpha, beta).
func boundFor(score, alpha, beta board.Score) tt.Bound {
	switch {
	case score <= alpha:
		return tt.Upper
	case score >= beta:
		return tt.Lower
	default:
		return tt.Exact
	}
}
