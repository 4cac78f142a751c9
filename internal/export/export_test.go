package export

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"path/filepath"
	"testing"
	"time"

	"chatlens/internal/filter"
	"chatlens/internal/parse"
	"chatlens/internal/pipeline"
)

func sampleResult() pipeline.Result {
	table := parse.Table{Messages: []parse.Message{
		{
			Timestamp: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			Author:    "A",
			Content:   "hi",
			Type:      parse.TypeDefault,
		},
		{
			Timestamp: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
			Author:    "B",
			Content:   "hello, \"there\"\nsecond line",
			Type:      parse.TypeReply,
		},
	}}
	return pipeline.Run(table, filter.Spec{})
}

func TestWriteJSONRoundtrip(t *testing.T) {
	res := sampleResult()

	var buf bytes.Buffer
	if err := WriteJSON(&buf, res); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	// The export keeps the input document shape, so the loader accepts it.
	table, err := parse.Load(&buf)
	if err != nil {
		t.Fatalf("reload exported json: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("reloaded %d messages, want 2", table.Len())
	}
	for i, m := range table.Messages {
		if m != res.Messages[i] {
			t.Fatalf("message %d = %+v, want %+v", i, m, res.Messages[i])
		}
	}
}

func TestWriteCSV(t *testing.T) {
	res := sampleResult()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, res); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read exported csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "timestamp" || rows[0][3] != "content" {
		t.Fatalf("bad header: %v", rows[0])
	}
	if rows[2][1] != "B" || rows[2][3] != "hello, \"there\"\nsecond line" {
		t.Fatalf("quoting lost content: %v", rows[2])
	}
}

func TestWriteSQLite(t *testing.T) {
	res := sampleResult()
	path := filepath.Join(t.TempDir(), "out.db")

	if err := WriteSQLite(path, res); err != nil {
		t.Fatalf("WriteSQLite: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open exported db: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n); err != nil {
		t.Fatalf("count messages: %v", err)
	}
	if n != 2 {
		t.Fatalf("messages = %d, want 2", n)
	}

	var total string
	if err := db.QueryRow("SELECT value FROM stats WHERE key = 'total'").Scan(&total); err != nil {
		t.Fatalf("read total stat: %v", err)
	}
	if total != "2" {
		t.Fatalf("total = %q, want \"2\"", total)
	}

	var replies int
	err = db.QueryRow("SELECT count FROM type_stats WHERE type = ?", parse.TypeReply).Scan(&replies)
	if err != nil {
		t.Fatalf("read reply type stat: %v", err)
	}
	if replies != 1 {
		t.Fatalf("reply count = %d, want 1", replies)
	}
}

func TestWriteFileUnknownFormat(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "out"), "xml", sampleResult())
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}
