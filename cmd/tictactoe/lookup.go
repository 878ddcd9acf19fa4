package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/discochess/tictactoe"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [moves...]",
	Short: "Look up a position in the opening book",
	Long: `Play the given moves from the empty board and look the resulting
position up in the opening book in --data-dir.

Examples:
  # Empty board
  tictactoe lookup

  # After 1. a1 b2
  tictactoe lookup a1 b2 --json`,
	RunE: runLookup,
}

var (
	outputJSON bool
	showTiming bool
)

func init() {
	lookupCmd.Flags().BoolVar(&outputJSON, "json", false, "output result as JSON")
	lookupCmd.Flags().BoolVar(&showTiming, "timing", false, "show lookup timing")
	rootCmd.AddCommand(lookupCmd)
}

type lookupResult struct {
	Board     string  `json:"board"`
	Key       uint32  `json:"key"`
	Move      string  `json:"move"`
	Score     string  `json:"score"`
	Value     int     `json:"value"`
	ElapsedMS float64 `json:"elapsed_ms,omitempty"`
}

func runLookup(cmd *cobra.Command, args []string) error {
	b, err := playMoves(args)
	if err != nil {
		return err
	}

	engine, err := newEngine(true)
	if err != nil {
		return err
	}
	defer engine.Close()

	start := time.Now()
	eval, err := engine.Lookup(context.Background(), b)
	if err != nil {
		if errors.Is(err, tictactoe.ErrNotFound) {
			return fmt.Errorf("position %s not found in book", b)
		}
		return fmt.Errorf("lookup failed: %w", err)
	}
	elapsed := time.Since(start)

	if outputJSON {
		res := lookupResult{
			Board: b.String(),
			Key:   uint32(eval.Key),
			Move:  eval.Move.String(),
			Score: eval.Score.String(),
			Value: int(eval.Score),
		}
		if showTiming {
			res.ElapsedMS = float64(elapsed.Microseconds()) / 1000
		}
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(res)
	}

	fmt.Print(tictactoe.Render(b))
	fmt.Printf("Board: %s\n", b)
	fmt.Printf("Key:   %s\n", eval.Key)
	fmt.Printf("Move:  %s\n", eval.Move)
	fmt.Printf("Score: %s\n", eval.Score)
	if showTiming {
		fmt.Printf("Time:  %s\n", elapsed)
	}
	return nil
}
