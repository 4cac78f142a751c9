// Package stats derives the dashboard aggregates from a filtered message
// subset. Every computation is a pure function of its input: recomputing
// after each interaction yields identical results for identical subsets.
package stats

import (
	"math"
	"sort"
	"time"
	"unicode/utf8"

	"chatlens/internal/parse"
)

// TypeStat is the per-type breakdown.
type TypeStat struct {
	Type      string
	Count     int
	AvgLength float64
}

// AuthorStat is the per-author breakdown. Percent is the author's share of
// the filtered total. Messages without an author are counted in the totals
// but carry no author row.
type AuthorStat struct {
	Author    string
	Count     int
	Percent   float64
	AvgLength float64
}

// Timeline is the per-day count matrix broken down by type. Rows are the
// calendar days present in the subset, ascending; Counts in each row align
// with Types, zero-filled for absent day/type combinations.
type Timeline struct {
	Types []string
	Rows  []TimelineRow
}

type TimelineRow struct {
	Day    time.Time
	Counts []int
}

// Report bundles every aggregate derived from one filtered subset.
// Averages and rates are rounded to one decimal place and only meaningful
// when HasData reports true.
type Report struct {
	Total     int
	Replies   int
	AvgLength float64
	Days      int
	PerDay    float64
	Types     []TypeStat
	Authors   []AuthorStat
	Timeline  Timeline
	Hours     [24]int
	Weekdays  [7]int // indexed by time.Weekday
}

// HasData reports whether the subset was non-empty. When false, AvgLength
// and PerDay are zero and renderers show "no data" instead.
func (r Report) HasData() bool { return r.Total > 0 }

type accum struct {
	count  int
	length int
}

// Compute derives all aggregates for one filtered subset.
func Compute(msgs []parse.Message) Report {
	r := Report{Total: len(msgs)}

	days := make(map[time.Time]struct{})
	types := make(map[string]*accum)
	authors := make(map[string]*accum)
	timeline := make(map[time.Time]map[string]int)
	var totalLen int

	for _, m := range msgs {
		if m.Type == parse.TypeReply {
			r.Replies++
		}

		n := utf8.RuneCountInString(m.Content)
		totalLen += n

		day := parse.Day(m.Timestamp)
		days[day] = struct{}{}

		ta := types[m.Type]
		if ta == nil {
			ta = &accum{}
			types[m.Type] = ta
		}
		ta.count++
		ta.length += n

		if m.Author != "" {
			aa := authors[m.Author]
			if aa == nil {
				aa = &accum{}
				authors[m.Author] = aa
			}
			aa.count++
			aa.length += n
		}

		perDay := timeline[day]
		if perDay == nil {
			perDay = make(map[string]int)
			timeline[day] = perDay
		}
		perDay[m.Type]++

		ts := m.Timestamp.UTC()
		r.Hours[ts.Hour()]++
		r.Weekdays[ts.Weekday()]++
	}

	r.Days = len(days)
	if r.Total > 0 {
		r.AvgLength = round1(float64(totalLen) / float64(r.Total))
	}
	if r.Days > 0 {
		r.PerDay = round1(float64(r.Total) / float64(r.Days))
	}

	r.Types = typeStats(types)
	r.Authors = authorStats(authors, r.Total)
	r.Timeline = buildTimeline(timeline)
	return r
}

// TopByCount returns the n most active authors. Authors is already ordered
// by count, so this is a prefix copy.
func (r Report) TopByCount(n int) []AuthorStat {
	if n > len(r.Authors) {
		n = len(r.Authors)
	}
	out := make([]AuthorStat, n)
	copy(out, r.Authors[:n])
	return out
}

// TopByLength returns the n authors with the longest average message,
// descending, ties broken alphabetically.
func (r Report) TopByLength(n int) []AuthorStat {
	out := make([]AuthorStat, len(r.Authors))
	copy(out, r.Authors)
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgLength != out[j].AvgLength {
			return out[i].AvgLength > out[j].AvgLength
		}
		return out[i].Author < out[j].Author
	})
	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}

func typeStats(types map[string]*accum) []TypeStat {
	out := make([]TypeStat, 0, len(types))
	for typ, a := range types {
		out = append(out, TypeStat{
			Type:      typ,
			Count:     a.count,
			AvgLength: round1(float64(a.length) / float64(a.count)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

func authorStats(authors map[string]*accum, total int) []AuthorStat {
	out := make([]AuthorStat, 0, len(authors))
	for author, a := range authors {
		out = append(out, AuthorStat{
			Author:    author,
			Count:     a.count,
			Percent:   round1(float64(a.count) * 100 / float64(total)),
			AvgLength: round1(float64(a.length) / float64(a.count)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Author < out[j].Author
	})
	return out
}

func buildTimeline(days map[time.Time]map[string]int) Timeline {
	if len(days) == 0 {
		return Timeline{}
	}

	typeSet := make(map[string]struct{})
	for _, perDay := range days {
		for typ := range perDay {
			typeSet[typ] = struct{}{}
		}
	}
	types := make([]string, 0, len(typeSet))
	for typ := range typeSet {
		types = append(types, typ)
	}
	sort.Strings(types)

	dates := make([]time.Time, 0, len(days))
	for day := range days {
		dates = append(dates, day)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	tl := Timeline{Types: types, Rows: make([]TimelineRow, 0, len(dates))}
	for _, day := range dates {
		row := TimelineRow{Day: day, Counts: make([]int, len(types))}
		for i, typ := range types {
			row.Counts[i] = days[day][typ]
		}
		tl.Rows = append(tl.Rows, row)
	}
	return tl
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
