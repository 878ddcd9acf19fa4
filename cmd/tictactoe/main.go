// Package main provides the tictactoe CLI for playing, analyzing and
// building opening books for 3x3 tic-tac-toe.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
