package notation

import (
	"strings"

	"github.com/discochess/tictactoe/internal/board"
)

// Render draws b as a labelled grid, row 1 on top:
//
//	  a b c
//	1 X . O
//	2 . X .
//	3 . . .
func Render(b board.Board) string {
	var sb strings.Builder
	sb.WriteString("  a b c\n")
	for row := 0; row < 3; row++ {
		sb.WriteByte(byte('1' + row))
		for col := 0; col < 3; col++ {
			c := b.At(board.Square(row*3 + col))
			if c == ' ' {
				c = '.'
			}
			sb.WriteByte(' ')
			sb.WriteByte(c)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
