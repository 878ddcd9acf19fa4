// Package noopcodec stores shards as plain JSONL, which keeps a book
// greppable while debugging.
package noopcodec

import (
	"io"

	"github.com/discochess/tictactoe/internal/codec"
)

var _ codec.Codec = Codec{}

// Codec passes bytes through. Shard files carry no extension.
type Codec struct{}

func New() Codec { return Codec{} }

func (Codec) Name() string      { return "none" }
func (Codec) Extension() string { return "" }

// Reader returns r; closing it leaves r open.
func (Codec) Reader(r io.Reader) (io.ReadCloser, error) { return io.NopCloser(r), nil }

// Writer returns w; closing it leaves w open.
func (Codec) Writer(w io.Writer) (io.WriteCloser, error) { return passthrough{w}, nil }

type passthrough struct{ io.Writer }

func (passthrough) Close() error { return nil }
