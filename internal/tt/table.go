// Package tt defines the transposition table used by the search to memoize
// scores of canonical positions.
package tt

import "github.com/discochess/tictactoe/internal/board"

// Bound says how a stored score relates to the true value of its position.
type Bound uint8

const (
	// Exact scores are the true value.
	Exact Bound = iota
	// Lower scores are a lower bound: the search failed high.
	Lower
	// Upper scores are an upper bound: the search failed low.
	Upper
)

// String returns the bound name.
func (b Bound) String() string {
	switch b {
	case Exact:
		return "exact"
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	default:
		return "unknown"
	}
}

// Entry is one memoized search result.
type Entry struct {
	// Key is the canonical position the score belongs to.
	Key board.Board
	// Score is stored relative to Key, i.e. as if Key were the search root.
	Score board.Score
	Bound Bound
}

// Table stores entries keyed by canonical position.
//
// A Probe never returns an entry whose Key differs from the requested key;
// slot collisions are reported as misses.
type Table interface {
	// Probe returns the entry stored for key, if any.
	Probe(key board.Board) (Entry, bool)

	// Store records e, possibly evicting another entry.
	Store(e Entry)

	// Reset logically empties the table without releasing its memory.
	Reset()

	// Stats returns table statistics.
	Stats() Stats
}

// Stats contains table statistics.
type Stats struct {
	Hits       int64
	Misses     int64
	Collisions int64 // Misses caused by another key occupying the slot
	Size       int   // Current number of entries
	Capacity   int
}

// HitRate returns the table hit rate as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// ToTable converts a score measured from the search root at ply into one
// measured from the node itself, so it can be reused at any depth.
func ToTable(s board.Score, ply int) board.Score {
	switch {
	case s.IsWinning():
		return s + board.Score(ply)
	case s.IsLosing():
		return s - board.Score(ply)
	default:
		return s
	}
}

// FromTable converts a stored node-relative score back to a root-relative
// score at ply.
func FromTable(s board.Score, ply int) board.Score {
	switch {
	case s.IsWinning():
		return s - board.Score(ply)
	case s.IsLosing():
		return s + board.Score(ply)
	default:
		return s
	}
}

// Usable reports whether a stored score with the given bound settles a search
// of window (alpha, beta). score must already be root-relative.
func Usable(bound Bound, score, alpha, beta board.Score) bool {
	switch bound {
	case Exact:
		return true
	case Lower:
		return score >= beta
	case Upper:
		return score <= alpha
	default:
		return false
	}
}
