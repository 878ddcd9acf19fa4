package board

// Square is a board square index, 0..8 in row-major order.
type Square int8

// NoSquare is returned when no move exists.
const NoSquare Square = -1

// Named squares: column letter a..c, row 1..3, A1 is the top-left corner.
const (
	A1 Square = iota
	B1
	C1
	A2
	B2
	C2
	A3
	B3
	C3
)

// Valid reports whether sq is on the board.
func (sq Square) Valid() bool {
	return sq >= 0 && sq < NumSquares
}

// Row returns the zero-based row of sq.
func (sq Square) Row() int {
	return int(sq) / 3
}

// Col returns the zero-based column of sq.
func (sq Square) Col() int {
	return int(sq) % 3
}

// String returns the algebraic name of sq, e.g. "b2", or "-" for NoSquare.
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.Col()), byte('1' + sq.Row())})
}

// Order lists squares in search preference order: center, corners, edges.
var Order = [NumSquares]Square{B2, A1, C1, A3, C3, B1, A2, C2, B3}
