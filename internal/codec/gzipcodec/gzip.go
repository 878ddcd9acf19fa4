// Package gzipcodec stores shards gzip-compressed, for books that must be
// readable with standard tools.
package gzipcodec

import (
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/discochess/tictactoe/internal/codec"
)

var _ codec.Codec = Codec{}

// Codec compresses with klauspost's gzip, which writes the same format as
// compress/gzip at a higher rate.
type Codec struct {
	level int
}

// New returns a codec at gzip.BestCompression.
func New() Codec { return NewLevel(gzip.BestCompression) }

// NewLevel returns a codec at level, one of the gzip level constants.
func NewLevel(level int) Codec { return Codec{level: level} }

func (Codec) Name() string      { return "gzip" }
func (Codec) Extension() string { return "gz" }

func (Codec) Reader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func (c Codec) Writer(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriterLevel(w, c.level)
}
