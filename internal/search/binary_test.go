package search

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/discochess/tictactoe/internal/board"
)

func TestSearch(t *testing.T) {
	// Sample JSONL data sorted by key.
	data := []byte(`{"key":0,"score":0,"move":4}
{"key":17,"score":98,"move":2}
{"key":262163,"score":-100,"move":-1}
`)

	tests := []struct {
		name      string
		key       board.Board
		wantScore board.Score
		wantMove  board.Square
		wantErr   error
	}{
		{name: "first record", key: 0, wantScore: 0, wantMove: 4},
		{name: "middle record", key: 17, wantScore: 98, wantMove: 2},
		{name: "last record", key: 262163, wantScore: -100, wantMove: board.NoSquare},
		{name: "between records", key: 16, wantErr: ErrNotFound},
		{name: "past the end", key: 1 << 19, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := Search(data, tt.key)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Search() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if record.Key != tt.key {
				t.Errorf("Key = %d, want %d", record.Key, tt.key)
			}
			if record.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d", record.Score, tt.wantScore)
			}
			if record.Move != tt.wantMove {
				t.Errorf("Move = %d, want %d", record.Move, tt.wantMove)
			}
		})
	}
}

func TestSearch_EmptyData(t *testing.T) {
	if _, err := Search([]byte{}, 0); err != ErrNotFound {
		t.Errorf("Search() error = %v, want ErrNotFound", err)
	}
}

func TestSearch_MarshaledRecords(t *testing.T) {
	var data []byte
	for _, key := range []board.Board{3, 40, 500, 6000} {
		line, err := json.Marshal(Record{Key: key, Score: board.Draw, Move: board.B2})
		if err != nil {
			t.Fatalf("json.Marshal() error = %v", err)
		}
		data = append(append(data, line...), '\n')
	}

	record, err := Search(data, 500)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if record.Move != board.B2 {
		t.Errorf("Move = %v, want b2", record.Move)
	}
}

func TestExtractKey(t *testing.T) {
	tests := []struct {
		name string
		line string
		want int64
	}{
		{name: "first field", line: `{"key":12345,"score":0,"move":4}`, want: 12345},
		{name: "later field", line: `{"score":0,"key":7}`, want: 7},
		{name: "no key field", line: `{"other":1}`, want: -1},
		{name: "non-numeric", line: `{"key":"abc"}`, want: -1},
		{name: "malformed", line: `not json`, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractKey([]byte(tt.line)); got != tt.want {
				t.Errorf("extractKey() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		count int
	}{
		{name: "single line", data: "line1", count: 1},
		{name: "multiple lines", data: "line1\nline2\nline3", count: 3},
		{name: "trailing newline", data: "line1\nline2\n", count: 2},
		{name: "empty lines filtered", data: "line1\n\nline2\n\n", count: 2},
		{name: "empty data", data: "", count: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if lines := splitLines([]byte(tt.data)); len(lines) != tt.count {
				t.Errorf("splitLines() returned %d lines, want %d", len(lines), tt.count)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	data := []byte(`{"key":3,"score":0,"move":4}` + "\n\n" + `{"key":9,"score":-100,"move":-1}` + "\n")
	records, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := []Record{{Key: 3, Score: board.Draw, Move: board.B2}, {Key: 9, Score: board.Loss, Move: board.NoSquare}}
	if len(records) != len(want) {
		t.Fatalf("Decode() returned %d records, want %d", len(records), len(want))
	}
	for i := range want {
		if records[i] != want[i] {
			t.Errorf("records[%d] = %+v, want %+v", i, records[i], want[i])
		}
	}

	if _, err := Decode([]byte("{\"key\":1}\nnot json\n")); err == nil {
		t.Error("Decode() of invalid line should fail")
	}
}

func BenchmarkSearch(b *testing.B) {
	var data []byte
	for i := 0; i < 1000; i++ {
		line, _ := json.Marshal(Record{Key: board.Board(i * 7), Score: board.Draw, Move: board.B2})
		data = append(append(data, line...), '\n')
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Search(data, 3500)
	}
}
