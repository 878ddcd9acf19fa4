package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/discochess/tictactoe"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game against the engine",
	Long: `Play an interactive game. Enter moves as 0-8 or a1-c3; Ctrl-D or
Ctrl-C quits.

By default the engine plays O. Use --ai x to let it open, or --ai none for
two human players.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var (
	aiSide    string
	plainMode bool
	useBook   bool
)

func init() {
	playCmd.Flags().StringVar(&aiSide, "ai", "o", "side the engine plays: x, o, both or none")
	playCmd.Flags().BoolVar(&plainMode, "plain", false, "read moves line by line without line editing")
	playCmd.Flags().BoolVar(&useBook, "book", false, "answer from the opening book in --data-dir")
	rootCmd.AddCommand(playCmd)
}

// moveSource yields the human player's moves. It returns io.EOF when the
// player quits.
type moveSource interface {
	Next(prompt string) (tictactoe.Square, error)
	Close() error
}

type lineEditor struct {
	l *readline.Instance
}

func newLineEditor() (*lineEditor, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, err
	}
	return &lineEditor{l: l}, nil
}

func (e *lineEditor) Next(prompt string) (tictactoe.Square, error) {
	e.l.SetPrompt(prompt)
	line, err := e.l.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return tictactoe.NoSquare, io.EOF
	}
	if err != nil {
		return tictactoe.NoSquare, err
	}
	return tictactoe.ParseMove(line)
}

func (e *lineEditor) Close() error { return e.l.Close() }

type plainReader struct {
	r   *bufio.Reader
	out io.Writer
}

func (p *plainReader) Next(prompt string) (tictactoe.Square, error) {
	fmt.Fprint(p.out, prompt)
	return tictactoe.ReadMove(p.r)
}

func (p *plainReader) Close() error { return nil }

// session runs one game.
type session struct {
	engine *tictactoe.Engine
	ai     map[tictactoe.Side]bool
	book   bool
	in     moveSource
	out    io.Writer
}

func parseAISide(s string) (map[tictactoe.Side]bool, error) {
	switch strings.ToLower(s) {
	case "x":
		return map[tictactoe.Side]bool{tictactoe.X: true}, nil
	case "o":
		return map[tictactoe.Side]bool{tictactoe.O: true}, nil
	case "both":
		return map[tictactoe.Side]bool{tictactoe.X: true, tictactoe.O: true}, nil
	case "none", "":
		return map[tictactoe.Side]bool{}, nil
	default:
		return nil, fmt.Errorf("invalid --ai %q: want x, o, both or none", s)
	}
}

// warmPlies covers the opening moves every game passes through.
const warmPlies = 3

func runPlay(cmd *cobra.Command, args []string) error {
	ai, err := parseAISide(aiSide)
	if err != nil {
		return err
	}

	engine, err := newEngine(useBook)
	if err != nil {
		return err
	}
	defer engine.Close()

	if useBook {
		if err := engine.WarmBook(cmd.Context(), warmPlies); err != nil {
			return err
		}
	}

	var in moveSource
	if plainMode {
		in = &plainReader{r: bufio.NewReader(os.Stdin), out: os.Stdout}
	} else {
		editor, err := newLineEditor()
		if err != nil {
			return fmt.Errorf("starting line editor: %w", err)
		}
		in = editor
	}
	defer in.Close()

	s := &session{engine: engine, ai: ai, book: useBook, in: in, out: os.Stdout}
	_, err = s.play(cmd.Context(), tictactoe.Initial())
	return err
}

// play runs the game loop from b and returns the final position. A human
// quitting ends the game early without error.
func (s *session) play(ctx context.Context, b tictactoe.Board) (tictactoe.Board, error) {
	for !tictactoe.IsOver(b) {
		fmt.Fprint(s.out, tictactoe.Render(b))

		var sq tictactoe.Square
		if s.ai[b.SideToMove()] {
			var err error
			if sq, err = s.engineMove(ctx, b); err != nil {
				return b, err
			}
			fmt.Fprintf(s.out, "%s plays %s\n", b.SideToMove(), sq)
		} else {
			var err error
			sq, err = s.in.Next(fmt.Sprintf("%s to move> ", b.SideToMove()))
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return b, nil
			}
			if errors.Is(err, tictactoe.ErrInvalidFormat) || errors.Is(err, tictactoe.ErrOutOfRange) {
				fmt.Fprintf(s.out, "%v; enter 0-8 or a1-c3\n", err)
				continue
			}
			if err != nil {
				return b, err
			}
			if !b.IsLegal(sq) {
				fmt.Fprintf(s.out, "%s is taken\n", sq)
				continue
			}
		}

		b = b.MustApply(sq)
		log.Debug("move played", zap.Stringer("square", sq), zap.Stringer("board", b))
	}

	fmt.Fprint(s.out, tictactoe.Render(b))
	fmt.Fprintln(s.out, tictactoe.OutcomeOf(b))
	return b, nil
}

func (s *session) engineMove(ctx context.Context, b tictactoe.Board) (tictactoe.Square, error) {
	if s.book {
		ev, err := s.engine.Lookup(ctx, b)
		if err == nil {
			return ev.Move, nil
		}
		if !errors.Is(err, tictactoe.ErrNotFound) {
			return tictactoe.NoSquare, err
		}
	}
	return s.engine.BestMove(b)
}
