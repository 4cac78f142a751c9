package parse

import (
	"sort"
	"time"
)

// DayLayout formats a UTC calendar day for captions and exports.
const DayLayout = "2006-01-02"

// Message types present in chat exports. Unknown type strings are kept as-is;
// a missing type becomes TypeDefault during normalization.
const (
	TypeDefault = "Default"
	TypeReply   = "Reply"
)

// Message is one normalized chat record. Timestamp is always UTC.
type Message struct {
	Timestamp time.Time
	Author    string
	Content   string
	Type      string
}

// Table is the normalized message set for one session. It is built once by
// Normalize and treated as read-only afterwards; filtering derives subsets
// and never mutates it.
type Table struct {
	Messages []Message

	// Dropped counts rows discarded for unparsable timestamps.
	// DroppedSamples holds up to maxBadSamples of the offending values.
	Dropped        int
	DroppedSamples []string
}

func (t *Table) Len() int { return len(t.Messages) }

// Bounds returns the earliest and latest UTC calendar days present.
// ok is false for an empty table.
func (t *Table) Bounds() (min, max time.Time, ok bool) {
	if len(t.Messages) == 0 {
		return time.Time{}, time.Time{}, false
	}
	min = t.Messages[0].Timestamp
	max = min
	for _, m := range t.Messages[1:] {
		if m.Timestamp.Before(min) {
			min = m.Timestamp
		}
		if m.Timestamp.After(max) {
			max = m.Timestamp
		}
	}
	return Day(min), Day(max), true
}

// Authors returns the distinct non-empty author names, sorted.
func (t *Table) Authors() []string {
	seen := make(map[string]struct{})
	for _, m := range t.Messages {
		if m.Author != "" {
			seen[m.Author] = struct{}{}
		}
	}
	authors := make([]string, 0, len(seen))
	for a := range seen {
		authors = append(authors, a)
	}
	sort.Strings(authors)
	return authors
}

// Types returns the distinct message types present, sorted.
// After normalization every message has a non-empty type.
func (t *Table) Types() []string {
	seen := make(map[string]struct{})
	for _, m := range t.Messages {
		seen[m.Type] = struct{}{}
	}
	types := make([]string, 0, len(seen))
	for ty := range seen {
		types = append(types, ty)
	}
	sort.Strings(types)
	return types
}

// Day truncates an instant to its UTC calendar day (midnight UTC).
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
