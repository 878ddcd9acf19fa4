// Package sqlitestore implements a storage backend that keeps every shard as
// a row of a single SQLite database file.
//
// A single file is easier to ship than a directory of shards. Shard blobs
// are compressed with the store's codec like their on-disk counterparts.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/discochess/tictactoe/internal/codec"
	"github.com/discochess/tictactoe/internal/store"
)

// Filename is the conventional database name inside a book directory.
const Filename = "book.db"

const schema = `
CREATE TABLE IF NOT EXISTS shards (
	id    INTEGER PRIMARY KEY,
	codec TEXT NOT NULL,
	data  BLOB NOT NULL
);`

// Compile-time checks that Store implements store.Store and store.Writer.
var (
	_ store.Store  = (*Store)(nil)
	_ store.Writer = (*Store)(nil)
)

// Store reads and writes shards in a SQLite database.
type Store struct {
	db    *sql.DB
	codec codec.Codec
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string, c codec.Codec) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db, codec: c}, nil
}

// ReadShard reads and decompresses the content of the given shard.
func (s *Store) ReadShard(ctx context.Context, shardID int) ([]byte, error) {
	var name string
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT codec, data FROM shards WHERE id = ?`, shardID,
	).Scan(&name, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading shard %d: %w", shardID, err)
	}
	if name != s.codec.Name() {
		return nil, fmt.Errorf("shard %d stored with codec %q, store uses %q", shardID, name, s.codec.Name())
	}

	data, err := codec.Decode(s.codec, blob)
	if err != nil {
		return nil, fmt.Errorf("shard %d: %w", shardID, err)
	}
	return data, nil
}

// WriteShard compresses data and upserts it as the given shard.
func (s *Store) WriteShard(ctx context.Context, shardID int, data []byte) error {
	blob, err := codec.Encode(s.codec, data)
	if err != nil {
		return fmt.Errorf("shard %d: %w", shardID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO shards (id, codec, data) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET codec = excluded.codec, data = excluded.data`,
		shardID, s.codec.Name(), blob,
	)
	if err != nil {
		return fmt.Errorf("writing shard %d: %w", shardID, err)
	}
	return nil
}

// Count returns the number of stored shards and their total compressed
// size in bytes.
func (s *Store) Count(ctx context.Context) (shards int, bytes int64, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(LENGTH(data)), 0) FROM shards`,
	).Scan(&shards, &bytes)
	if err != nil {
		return 0, 0, fmt.Errorf("counting shards: %w", err)
	}
	return shards, bytes, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
