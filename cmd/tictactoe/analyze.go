package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/discochess/tictactoe"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [moves...]",
	Short: "Score every legal move in a position",
	Long: `Play the given moves from the empty board and print the exact score of
each reply for the side to move.

Examples:
  # The empty board
  tictactoe analyze

  # After 1. a1 only b2 holds the draw
  tictactoe analyze a1`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	b, err := playMoves(args)
	if err != nil {
		return err
	}

	engine, err := newEngine(false)
	if err != nil {
		return err
	}
	defer engine.Close()

	fmt.Print(tictactoe.Render(b))
	if tictactoe.IsOver(b) {
		fmt.Println(tictactoe.OutcomeOf(b))
		return nil
	}

	score, err := engine.Evaluate(b)
	if err != nil {
		return err
	}
	moves, err := engine.Analyze(b)
	if err != nil {
		return err
	}

	fmt.Printf("%s to move: %s\n\n", b.SideToMove(), score)
	for _, m := range moves {
		mark := ""
		if m.Score == score {
			mark = " *"
		}
		fmt.Printf("  %s  %s%s\n", m.Square, m.Score, mark)
	}
	return nil
}
