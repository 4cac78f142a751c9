package parse

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func loadString(t *testing.T, doc string) (*Table, error) {
	t.Helper()
	return Load(strings.NewReader(doc))
}

func TestLoadBasic(t *testing.T) {
	doc := `{"messages": [
		{"timestamp": "2024-01-01T10:00:00Z", "author": "A", "content": "hi", "type": "Default"},
		{"timestamp": "2024-01-02T10:00:00Z", "author": "B", "content": "hello there", "type": "Reply"}
	]}`
	table, err := loadString(t, doc)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 messages, got %d", table.Len())
	}
	if table.Dropped != 0 {
		t.Fatalf("expected no drops, got %d", table.Dropped)
	}
	want := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	if !table.Messages[0].Timestamp.Equal(want) {
		t.Fatalf("timestamp mismatch: got %v want %v", table.Messages[0].Timestamp, want)
	}
}

func TestLoadNormalizesOffsetsToUTC(t *testing.T) {
	doc := `{"messages": [
		{"timestamp": "2024-06-01T12:00:00+02:00", "author": "A", "content": "x"},
		{"timestamp": "2024-06-01T03:00:00-07:00", "author": "B", "content": "y"}
	]}`
	table, err := loadString(t, doc)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, m := range table.Messages {
		if m.Timestamp.Location() != time.UTC {
			t.Fatalf("timestamp not UTC: %v", m.Timestamp)
		}
	}
	if got, want := table.Messages[0].Timestamp, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("offset not applied: got %v want %v", got, want)
	}
}

func TestLoadAcceptsISOVariants(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-01T10:00:00Z", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-01-01T10:00:00.123456Z", time.Date(2024, 1, 1, 10, 0, 0, 123456000, time.UTC)},
		{"2024-01-01T10:00:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-01-01T10:00:00.5", time.Date(2024, 1, 1, 10, 0, 0, 500000000, time.UTC)},
		{"2024-01-01T10:00:00-0500", time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)},
		{"2024-01-01 10:00:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got := parseTimestamp(c.in)
		if got.IsZero() {
			t.Fatalf("parseTimestamp(%q) failed", c.in)
		}
		if !got.Equal(c.want) {
			t.Fatalf("parseTimestamp(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestLoadDropsBadTimestamps(t *testing.T) {
	doc := `{"messages": [
		{"timestamp": "not-a-date", "author": "A", "content": "bad"},
		{"timestamp": "2024-01-01T10:00:00Z", "author": "A", "content": "good"},
		{"timestamp": 1704103200, "author": "B", "content": "epoch"},
		{"timestamp": null, "author": "B", "content": "null"},
		{"author": "C", "content": "missing"}
	]}`
	table, err := loadString(t, doc)
	if err != nil {
		t.Fatalf("Load should tolerate partial drops: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("expected 1 kept message, got %d", table.Len())
	}
	if table.Dropped != 4 {
		t.Fatalf("expected 4 dropped, got %d", table.Dropped)
	}
	if len(table.DroppedSamples) != 4 {
		t.Fatalf("expected 4 samples, got %v", table.DroppedSamples)
	}
	if table.DroppedSamples[0] != `"not-a-date"` {
		t.Fatalf("unexpected first sample: %q", table.DroppedSamples[0])
	}
}

func TestLoadAllBadTimestampsFails(t *testing.T) {
	doc := `{"messages": [
		{"timestamp": "nope", "author": "A", "content": "a"},
		{"timestamp": "also nope", "author": "B", "content": "b"}
	]}`
	_, err := loadString(t, doc)
	if err == nil {
		t.Fatal("expected NormalizationError")
	}
	var nerr *NormalizationError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected *NormalizationError, got %T: %v", err, err)
	}
	if nerr.Rows != 2 {
		t.Fatalf("expected Rows=2, got %d", nerr.Rows)
	}
	if len(nerr.Samples) != 2 {
		t.Fatalf("expected 2 samples, got %v", nerr.Samples)
	}
}

func TestLoadSampleCap(t *testing.T) {
	var rows []string
	for i := 0; i < 12; i++ {
		rows = append(rows, `{"timestamp": "bad", "author": "A", "content": "x"}`)
	}
	doc := `{"messages": [` + strings.Join(rows, ",") + `]}`
	_, err := loadString(t, doc)
	var nerr *NormalizationError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected *NormalizationError, got %v", err)
	}
	if nerr.Rows != 12 {
		t.Fatalf("expected Rows=12, got %d", nerr.Rows)
	}
	if len(nerr.Samples) != maxBadSamples {
		t.Fatalf("expected %d samples, got %d", maxBadSamples, len(nerr.Samples))
	}
}

func TestLoadMissingMessagesField(t *testing.T) {
	for _, doc := range []string{`{}`, `{"messages": null}`, `{"conversations": []}`} {
		if _, err := loadString(t, doc); err == nil {
			t.Fatalf("expected error for %s", doc)
		}
	}
}

func TestLoadEmptyMessages(t *testing.T) {
	table, err := loadString(t, `{"messages": []}`)
	if err != nil {
		t.Fatalf("empty export should load: %v", err)
	}
	if table.Len() != 0 || table.Dropped != 0 {
		t.Fatalf("expected empty table, got len=%d dropped=%d", table.Len(), table.Dropped)
	}
}

func TestLoadFillsDefaultType(t *testing.T) {
	doc := `{"messages": [
		{"timestamp": "2024-01-01T10:00:00Z", "author": "A", "content": "no type"},
		{"timestamp": "2024-01-01T11:00:00Z", "author": "A", "content": "typed", "type": "Reply"}
	]}`
	table, err := loadString(t, doc)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if table.Messages[0].Type != TypeDefault {
		t.Fatalf("expected default type %q, got %q", TypeDefault, table.Messages[0].Type)
	}
	if table.Messages[1].Type != TypeReply {
		t.Fatalf("expected %q, got %q", TypeReply, table.Messages[1].Type)
	}
	for _, m := range table.Messages {
		if m.Type == "" {
			t.Fatal("normalized message with empty type")
		}
	}
}

func TestTableHelpers(t *testing.T) {
	doc := `{"messages": [
		{"timestamp": "2024-03-05T23:30:00Z", "author": "zoe", "content": "a"},
		{"timestamp": "2024-03-01T00:10:00Z", "author": "amy", "content": "b", "type": "Reply"},
		{"timestamp": "2024-03-03T12:00:00Z", "author": "", "content": "anon"}
	]}`
	table, err := loadString(t, doc)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	min, max, ok := table.Bounds()
	if !ok {
		t.Fatal("Bounds on non-empty table")
	}
	if !min.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("min day: %v", min)
	}
	if !max.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("max day: %v", max)
	}

	authors := table.Authors()
	if len(authors) != 2 || authors[0] != "amy" || authors[1] != "zoe" {
		t.Fatalf("authors: %v", authors)
	}

	types := table.Types()
	if len(types) != 2 || types[0] != TypeDefault || types[1] != TypeReply {
		t.Fatalf("types: %v", types)
	}
}

func TestBoundsEmptyTable(t *testing.T) {
	var table Table
	if _, _, ok := table.Bounds(); ok {
		t.Fatal("Bounds on empty table should report !ok")
	}
}

func TestDayTruncation(t *testing.T) {
	in := time.Date(2024, 7, 15, 23, 59, 59, 999, time.FixedZone("X", 3600))
	got := Day(in)
	// 23:59 at +01:00 is 22:59 UTC, still the 15th.
	want := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("Day(%v) = %v, want %v", in, got, want)
	}
}
