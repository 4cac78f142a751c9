package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// maxBadSamples caps the diagnostic sample kept for unparsable timestamps.
const maxBadSamples = 5

// document is the top-level shape of a chat export file.
type document struct {
	Messages []json.RawMessage `json:"messages"`
}

// rawMessage is one undecoded export record. Timestamp stays raw so that
// non-string values can be reported instead of failing the whole decode.
type rawMessage struct {
	Timestamp json.RawMessage `json:"timestamp"`
	Author    string          `json:"author"`
	Content   string          `json:"content"`
	Type      string          `json:"type"`
}

// NormalizationError reports that the timestamp column as a whole was
// unusable: every row of a non-empty export failed to parse.
type NormalizationError struct {
	Rows    int
	Samples []string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("timestamp column unusable: all %d rows dropped (sample: %s)",
		e.Rows, strings.Join(e.Samples, ", "))
}

// LoadFile reads and normalizes a chat export.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a chat export document and normalizes its messages.
func Load(r io.Reader) (*Table, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	if doc.Messages == nil {
		return nil, errors.New(`decode export: missing "messages" field`)
	}
	return Normalize(doc.Messages)
}

// Normalize validates each raw record: timestamps are parsed with the
// ISO-8601 layout cascade and coerced to UTC, rows with unparsable
// timestamps are silently dropped, and a missing type falls back to
// TypeDefault. A non-empty export whose rows all drop fails with
// *NormalizationError carrying a sample of the offending values.
func Normalize(records []json.RawMessage) (*Table, error) {
	t := &Table{}
	for _, rec := range records {
		var raw rawMessage
		if err := json.Unmarshal(rec, &raw); err != nil {
			t.drop(snippet(rec))
			continue
		}
		ts, ok := timestampValue(raw.Timestamp)
		if !ok {
			t.drop(snippet(raw.Timestamp))
			continue
		}
		typ := raw.Type
		if typ == "" {
			typ = TypeDefault
		}
		t.Messages = append(t.Messages, Message{
			Timestamp: ts,
			Author:    raw.Author,
			Content:   raw.Content,
			Type:      typ,
		})
	}

	if len(t.Messages) == 0 && t.Dropped > 0 {
		return nil, &NormalizationError{Rows: t.Dropped, Samples: t.DroppedSamples}
	}
	if t.Dropped > 0 {
		slog.Debug("dropped rows with unparsable timestamps",
			"dropped", t.Dropped, "kept", len(t.Messages))
	}
	return t, nil
}

func (t *Table) drop(sample string) {
	t.Dropped++
	if len(t.DroppedSamples) < maxBadSamples {
		t.DroppedSamples = append(t.DroppedSamples, sample)
	}
}

// timestampValue interprets the raw timestamp field. Only JSON strings that
// parse under the layout cascade qualify; null, numbers and other shapes do
// not.
func timestampValue(raw json.RawMessage) (time.Time, bool) {
	if len(raw) == 0 {
		return time.Time{}, false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, false
	}
	ts := parseTimestamp(s)
	if ts.IsZero() {
		return time.Time{}, false
	}
	return ts, true
}

// snippet renders a raw JSON value for the bad-sample diagnostic.
func snippet(raw json.RawMessage) string {
	s := string(raw)
	if s == "" {
		return "(missing)"
	}
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return s
}

// timestampLayouts is the ISO-8601 family accepted by the loader, tried in
// order. Layouts without a zone are interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
