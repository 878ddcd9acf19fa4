package codec_test

import (
	"bytes"
	stdgzip "compress/gzip"
	"io"
	"testing"

	"github.com/discochess/tictactoe/internal/codec"
	"github.com/discochess/tictactoe/internal/codec/gzipcodec"
	"github.com/discochess/tictactoe/internal/codec/noopcodec"
	"github.com/discochess/tictactoe/internal/codec/zstdcodec"
)

func codecs() []codec.Codec {
	return []codec.Codec{zstdcodec.New(), gzipcodec.New(), noopcodec.New()}
}

func TestCodec_Names(t *testing.T) {
	want := map[string]string{"zstd": "zst", "gzip": "gz", "none": ""}
	for _, c := range codecs() {
		ext, ok := want[c.Name()]
		if !ok {
			t.Errorf("unexpected codec name %q", c.Name())
			continue
		}
		if got := c.Extension(); got != ext {
			t.Errorf("%s Extension() = %q, want %q", c.Name(), got, ext)
		}
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"record": []byte(`{"key":16,"score":0,"move":4}` + "\n"),
		"large":  bytes.Repeat([]byte(`{"key":1,"score":0,"move":0}`+"\n"), 5000),
		"empty":  {},
	}

	for _, c := range codecs() {
		for name, original := range inputs {
			t.Run(c.Name()+"/"+name, func(t *testing.T) {
				encoded, err := codec.Encode(c, original)
				if err != nil {
					t.Fatalf("Encode() error = %v", err)
				}
				decoded, err := codec.Decode(c, encoded)
				if err != nil {
					t.Fatalf("Decode() error = %v", err)
				}
				if !bytes.Equal(decoded, original) {
					t.Errorf("round trip = %d bytes, want %d", len(decoded), len(original))
				}
			})
		}
	}
}

func TestCodec_Compresses(t *testing.T) {
	original := bytes.Repeat([]byte(`{"key":1,"score":0,"move":0}`+"\n"), 5000)
	for _, c := range []codec.Codec{zstdcodec.New(), gzipcodec.New()} {
		encoded, err := codec.Encode(c, original)
		if err != nil {
			t.Fatalf("%s Encode() error = %v", c.Name(), err)
		}
		if len(encoded) >= len(original) {
			t.Errorf("%s: %d bytes from %d, expected compression", c.Name(), len(encoded), len(original))
		}
	}
}

func TestCodec_DecodeInvalid(t *testing.T) {
	for _, c := range []codec.Codec{zstdcodec.New(), gzipcodec.New()} {
		if _, err := codec.Decode(c, []byte("not compressed data")); err == nil {
			t.Errorf("%s Decode() expected error for invalid data", c.Name())
		}
	}
}

func TestGzip_ReadableByStandardLibrary(t *testing.T) {
	original := []byte(`{"key":16,"score":0,"move":4}` + "\n")
	encoded, err := codec.Encode(gzipcodec.NewLevel(stdgzip.BestSpeed), original)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	r, err := stdgzip.NewReader(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("compress/gzip NewReader() error = %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !bytes.Equal(got, original) {
		t.Errorf("compress/gzip read %q, want %q", got, original)
	}
}
