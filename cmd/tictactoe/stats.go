package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/discochess/tictactoe/internal/builder"
	"github.com/discochess/tictactoe/internal/codec"
	"github.com/discochess/tictactoe/internal/store/diskstore"
	"github.com/discochess/tictactoe/internal/store/sqlitestore"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics about the opening book",
	Long: `Display statistics about the opening book including:
- How it was built (strategy, codec, storage)
- Number of records and shards
- Total size on disk`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	dir := cfg.GetString(keyDataDir)
	m, err := builder.ReadManifest(dir)
	if err != nil {
		return fmt.Errorf("book %q: %w (run 'tictactoe build' first)", dir, err)
	}
	c, err := builder.NewCodec(m.Compression)
	if err != nil {
		return err
	}

	var shards int
	var size int64
	switch m.Storage {
	case builder.StorageSQLite:
		st, err := sqlitestore.Open(filepath.Join(dir, sqlitestore.Filename), c)
		if err != nil {
			return err
		}
		defer st.Close()
		if shards, size, err = st.Count(context.Background()); err != nil {
			return err
		}
	default:
		if shards, size, err = shardFiles(dir, m.TotalShards, c); err != nil {
			return err
		}
	}

	fmt.Printf("Data directory: %s\n", dir)
	fmt.Printf("Built:          %s\n", m.BuiltAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Strategy:       %s\n", m.Strategy)
	fmt.Printf("Compression:    %s\n", m.Compression)
	fmt.Printf("Storage:        %s\n", m.Storage)
	fmt.Printf("Positions:      %d reachable, %d canonical\n", m.Positions, m.RecordCount)
	fmt.Printf("Shards:         %d of %d non-empty\n", shards, m.TotalShards)
	fmt.Printf("Total size:     %s\n", builder.FormatBytes(size))
	if m.RecordCount > 0 {
		fmt.Printf("Per record:     %.1f B\n", float64(size)/float64(m.RecordCount))
	}
	return nil
}

// shardFiles counts the shard files of a file-per-shard book and their
// total size.
func shardFiles(dir string, total int, c codec.Codec) (int, int64, error) {
	var shards int
	var size int64
	for id := 0; id < total; id++ {
		path := filepath.Join(dir, diskstore.ShardsDir, diskstore.ShardName(id, c))
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return 0, 0, err
		}
		shards++
		size += info.Size()
	}
	return shards, size, nil
}
