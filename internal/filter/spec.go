package filter

import (
	"strings"
	"time"

	"chatlens/internal/parse"
)

// All is the sentinel value matching every type or author.
const All = "All"

// Spec is the set of constraints applied to the table for one rendering
// pass. It is rebuilt from UI state on every interaction and has no
// identity beyond the current render.
//
// Start and End are inclusive UTC calendar days; a zero value leaves that
// bound open. An inverted range (Start after End) matches nothing rather
// than erroring. Type and Author are equality constraints with "" and All
// both meaning unconstrained. Search is a case-insensitive substring
// constraint on content; empty content never matches a non-empty search.
type Spec struct {
	Start  time.Time
	End    time.Time
	Type   string
	Author string
	Search string
}

// Matches reports whether a single message passes every predicate.
func (s Spec) Matches(m parse.Message) bool {
	return matches(m, s, strings.ToLower(s.Search))
}

func matches(m parse.Message, s Spec, needle string) bool {
	day := parse.Day(m.Timestamp)
	if !s.Start.IsZero() && day.Before(parse.Day(s.Start)) {
		return false
	}
	if !s.End.IsZero() && day.After(parse.Day(s.End)) {
		return false
	}
	if s.Type != "" && s.Type != All && m.Type != s.Type {
		return false
	}
	if s.Author != "" && s.Author != All && m.Author != s.Author {
		return false
	}
	if needle != "" {
		if m.Content == "" {
			return false
		}
		if !strings.Contains(strings.ToLower(m.Content), needle) {
			return false
		}
	}
	return true
}

// Apply returns the subset of the table matching spec, in table order.
// It never mutates the table; applying the same spec twice yields the
// same subset.
func Apply(table *parse.Table, spec Spec) []parse.Message {
	needle := strings.ToLower(spec.Search)
	var out []parse.Message
	for _, m := range table.Messages {
		if matches(m, spec, needle) {
			out = append(out, m)
		}
	}
	return out
}
