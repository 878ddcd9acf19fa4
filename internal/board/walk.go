package board

// Reachable returns every distinct position reachable from the initial board
// by legal play, terminals included. Play stops at a terminal position.
// The result is ordered by first discovery in a depth-first walk.
func Reachable() []Board {
	seen := make(map[Board]struct{}, 6000)
	var out []Board
	var walk func(b Board)
	walk = func(b Board) {
		if _, ok := seen[b]; ok {
			return
		}
		seen[b] = struct{}{}
		out = append(out, b)
		if term, _ := IsTerminal(b); term {
			return
		}
		for empty := b.Empty(); empty != 0; empty &= empty - 1 {
			walk(b.apply(empty.Lowest()))
		}
	}
	walk(Initial())
	return out
}
