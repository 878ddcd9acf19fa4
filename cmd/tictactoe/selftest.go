package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/discochess/tictactoe"
)

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Check the engine plays perfectly",
	Long: `Run a short set of known results against the search:
- best play from the empty board is a draw, opening in the centre
- every first move is answered without losing
- a known fork is found and scored as a win in two`,
	Args: cobra.NoArgs,
	RunE: runSelftest,
}

func init() {
	rootCmd.AddCommand(selftestCmd)
}

type selfCheck struct {
	name string
	run  func(e *tictactoe.Engine) error
}

var selfChecks = []selfCheck{
	{"self-play draws", checkSelfPlay},
	{"opening is b2", checkOpening},
	{"every opening draws", checkAllOpenings},
	{"fork is a win in 2", checkFork},
}

func runSelftest(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(false)
	if err != nil {
		return err
	}
	defer engine.Close()

	failed := 0
	for _, c := range selfChecks {
		if err := c.run(engine); err != nil {
			fmt.Printf("FAIL  %s: %v\n", c.name, err)
			failed++
			continue
		}
		fmt.Printf("ok    %s\n", c.name)
	}

	st := engine.Stats()
	fmt.Printf("\n%d searches, %d nodes, table %d/%d\n",
		st.Searches, st.Nodes, st.Table.Size, st.Table.Capacity)

	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(selfChecks))
	}
	return nil
}

func checkSelfPlay(e *tictactoe.Engine) error {
	g, err := e.SelfPlay(tictactoe.Initial())
	if err != nil {
		return err
	}
	if g.Outcome != tictactoe.Drawn || len(g.Moves) != 9 {
		return fmt.Errorf("got %v", g)
	}
	return nil
}

func checkOpening(e *tictactoe.Engine) error {
	sq, err := e.BestMove(tictactoe.Initial())
	if err != nil {
		return err
	}
	if sq.String() != "b2" {
		return fmt.Errorf("best move %s", sq)
	}
	return nil
}

func checkAllOpenings(e *tictactoe.Engine) error {
	for sq := tictactoe.Square(0); sq < 9; sq++ {
		g, err := e.SelfPlay(tictactoe.Initial().MustApply(sq))
		if err != nil {
			return err
		}
		if g.Outcome != tictactoe.Drawn {
			return fmt.Errorf("after %s: %v", sq, g)
		}
	}
	return nil
}

func checkFork(e *tictactoe.Engine) error {
	b, err := playMoves([]string{"a1", "b1", "b2", "c3"})
	if err != nil {
		return err
	}
	score, err := e.Evaluate(b)
	if err != nil {
		return err
	}
	if score != tictactoe.WinIn(2) {
		return fmt.Errorf("score %s, want %s", score, tictactoe.WinIn(2))
	}
	sq, err := e.BestMove(b)
	if err != nil {
		return err
	}
	if sq.String() != "a3" {
		return fmt.Errorf("best move %s, want a3", sq)
	}
	return nil
}
