package builder

import (
	"fmt"
	"path/filepath"

	"github.com/discochess/tictactoe/internal/codec"
	"github.com/discochess/tictactoe/internal/codec/gzipcodec"
	"github.com/discochess/tictactoe/internal/codec/noopcodec"
	"github.com/discochess/tictactoe/internal/codec/zstdcodec"
	"github.com/discochess/tictactoe/internal/shard"
	"github.com/discochess/tictactoe/internal/shard/fnvshard"
	"github.com/discochess/tictactoe/internal/shard/plyshard"
	"github.com/discochess/tictactoe/internal/shard/xxhshard"
	"github.com/discochess/tictactoe/internal/store"
	"github.com/discochess/tictactoe/internal/store/diskstore"
	"github.com/discochess/tictactoe/internal/store/sqlitestore"
)

// NewCodec returns the codec registered under name.
func NewCodec(name string) (codec.Codec, error) {
	switch name {
	case "zstd":
		return zstdcodec.New(), nil
	case "gzip":
		return gzipcodec.New(), nil
	case "none", "":
		return noopcodec.New(), nil
	default:
		return nil, fmt.Errorf("unknown codec: %s", name)
	}
}

// NewStrategy returns the sharding strategy registered under name.
func NewStrategy(name string) (shard.Strategy, error) {
	switch name {
	case plyshard.Name:
		return plyshard.New(), nil
	case "fnv32":
		return fnvshard.New(), nil
	case "xxh64":
		return xxhshard.New(), nil
	default:
		return nil, fmt.Errorf("unknown strategy: %s", name)
	}
}

// OpenStore opens the shard storage of the book in dir as described by m.
func OpenStore(dir string, m *Manifest) (store.Store, error) {
	c, err := NewCodec(m.Compression)
	if err != nil {
		return nil, err
	}
	switch m.Storage {
	case StorageFiles, "":
		st, err := diskstore.New(dir, c)
		if err != nil {
			return nil, err
		}
		return st, nil
	case StorageSQLite:
		st, err := sqlitestore.Open(filepath.Join(dir, sqlitestore.Filename), c)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown storage: %s", m.Storage)
	}
}
