//go:build e2e

package tictactoe_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/discochess/tictactoe"
	"github.com/discochess/tictactoe/internal/board"
)

// TestE2E_BuildAndLookup builds books through the CLI and checks every
// reachable position against a fresh search.
func TestE2E_BuildAndLookup(t *testing.T) {
	layouts := []struct {
		name string
		args []string
	}{
		{"ply files zstd", []string{"--strategy", "ply"}},
		{"fnv32 files gzip", []string{"--strategy", "fnv32", "--shards", "7", "--codec", "gzip"}},
		{"xxh64 sqlite", []string{"--strategy", "xxh64", "--shards", "32", "--sqlite"}},
	}

	searcher, err := tictactoe.New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer searcher.Close()

	for _, l := range layouts {
		t.Run(l.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "book")

			args := append([]string{"run", "./cmd/tictactoe", "build", "--output", dir}, l.args...)
			cmd := exec.Command("go", args...)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			if err := cmd.Run(); err != nil {
				t.Fatalf("build: %v", err)
			}

			cmd = exec.Command("go", "run", "./cmd/tictactoe", "verify", "--data-dir", dir)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			if err := cmd.Run(); err != nil {
				t.Fatalf("verify: %v", err)
			}

			book, err := tictactoe.WithDataDir(dir)
			if err != nil {
				t.Fatalf("WithDataDir() error = %v", err)
			}
			e, err := tictactoe.New(book, tictactoe.WithShardCache(tictactoe.CacheLRU, 4))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer e.Close()

			ctx := context.Background()
			for _, b := range board.Reachable() {
				ev, err := e.Lookup(ctx, b)
				if err != nil {
					t.Fatalf("Lookup(%v) error = %v", b, err)
				}
				want, err := searcher.Evaluate(b)
				if err != nil {
					t.Fatalf("Evaluate(%v) error = %v", b, err)
				}
				if ev.Score != want {
					t.Fatalf("Lookup(%v).Score = %v, search says %v", b, ev.Score, want)
				}
			}
			t.Logf("cache: %+v", e.Stats().Cache)
		})
	}
}
