package enginefx

import (
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/discochess/tictactoe"
	"github.com/discochess/tictactoe/internal/board"
)

func TestModule(t *testing.T) {
	var engine *tictactoe.Engine
	app := fxtest.New(t,
		fx.Supply(zap.NewNop(), Config{TableBits: 12}),
		Module,
		fx.Populate(&engine),
	)
	app.RequireStart()

	if got := engine.Stats().Table.Capacity; got != 1<<12 {
		t.Errorf("table capacity = %d, want %d", got, 1<<12)
	}
	sq, err := engine.BestMove(tictactoe.Initial())
	if err != nil || sq != board.B2 {
		t.Errorf("BestMove() = %v, %v, want b2", sq, err)
	}

	app.RequireStop()
	if _, err := engine.BestMove(tictactoe.Initial()); err != tictactoe.ErrClosed {
		t.Errorf("BestMove() after stop error = %v, want ErrClosed", err)
	}
}

func TestModule_InvalidConfig(t *testing.T) {
	var engine *tictactoe.Engine
	app := fx.New(
		fx.NopLogger,
		fx.Supply(zap.NewNop(), Config{TableBits: 40}),
		Module,
		fx.Populate(&engine),
	)
	if app.Err() == nil {
		t.Error("fx.New() with oversized table should fail")
	}
}
