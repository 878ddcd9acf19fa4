package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/discochess/tictactoe"
	"github.com/discochess/tictactoe/internal/builder"
	"github.com/discochess/tictactoe/internal/search"
	"github.com/discochess/tictactoe/internal/shard"
	"github.com/discochess/tictactoe/internal/store"
	"github.com/discochess/tictactoe/internal/symmetry"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the integrity of the opening book",
	Long: `Verify that all shards in the opening book are valid.

This command checks:
- Each shard can be read and decompressed
- Each shard contains valid JSONL
- Keys are canonical, sorted and stored in the right shard
- Each move is legal, or absent exactly when the game is over
- The record total matches the manifest

With --quick only the first and last records of each shard are checked
and the total is not compared.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

var verifyQuick bool

func init() {
	verifyCmd.Flags().BoolVar(&verifyQuick, "quick", false, "only check first and last records in each shard")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	dir := cfg.GetString(keyDataDir)
	m, err := builder.ReadManifest(dir)
	if err != nil {
		return fmt.Errorf("book %q: %w", dir, err)
	}
	strategy, err := builder.NewStrategy(m.Strategy)
	if err != nil {
		return err
	}
	st, err := builder.OpenStore(dir, m)
	if err != nil {
		return err
	}
	defer st.Close()

	fmt.Printf("Verifying %d shards...\n", m.TotalShards)

	ctx := context.Background()
	var errCount int
	var total int64
	for id := 0; id < m.TotalShards; id++ {
		if cfg.GetBool(keyVerbose) {
			fmt.Printf("  [%d/%d] shard %d\n", id+1, m.TotalShards, id)
		}
		n, err := verifyShard(ctx, st, strategy, m.TotalShards, id, verifyQuick)
		if err != nil {
			fmt.Printf("  ERROR: shard %d: %v\n", id, err)
			errCount++
			continue
		}
		total += int64(n)
	}

	if errCount > 0 {
		return fmt.Errorf("%d shards failed verification", errCount)
	}
	if !verifyQuick && total != m.RecordCount {
		return fmt.Errorf("book holds %d records, manifest says %d", total, m.RecordCount)
	}

	fmt.Println("All shards verified successfully.")
	return nil
}

// verifyShard checks one shard and returns its record count. A missing
// shard is valid and empty.
func verifyShard(ctx context.Context, st store.Store, strategy shard.Strategy, totalShards, id int, quick bool) (int, error) {
	data, err := st.ReadShard(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	records, err := search.Decode(data)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("empty shard")
	}

	check := records
	if quick && len(records) > 2 {
		check = []search.Record{records[0], records[len(records)-1]}
	}
	for i, r := range check {
		if i > 0 && r.Key <= check[i-1].Key {
			return 0, fmt.Errorf("keys not sorted: %s after %s", r.Key, check[i-1].Key)
		}
		if err := verifyRecord(r); err != nil {
			return 0, fmt.Errorf("key %s: %w", r.Key, err)
		}
		if got := strategy.ShardID(r.Key, totalShards); got != id {
			return 0, fmt.Errorf("key %s belongs in shard %d", r.Key, got)
		}
	}
	return len(records), nil
}

func verifyRecord(r search.Record) error {
	if symmetry.Canonical(r.Key) != r.Key {
		return errors.New("not canonical")
	}
	if tictactoe.IsOver(r.Key) {
		if r.Move != tictactoe.NoSquare {
			return fmt.Errorf("move %s in finished game", r.Move)
		}
		return nil
	}
	if !r.Key.IsLegal(r.Move) {
		return fmt.Errorf("illegal move %s", r.Move)
	}
	return nil
}
