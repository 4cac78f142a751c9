// Package render turns pipeline results into terminal text: the styled
// aggregate report behind the stats command and the message listing behind
// the messages command.
package render

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"chatlens/internal/parse"
	"chatlens/internal/stats"
)

// DefaultTimeFormat is the timestamp layout used when no format is
// configured, the Go spelling of "MMM DD, YYYY, hh:mm a".
const DefaultTimeFormat = "Jan 02, 2006, 03:04 PM"

const (
	reportWidth = 52 // section rule width
	barWidth    = 16
	timelineCap = 14 // most recent days shown in the daily activity section
	topAuthors  = 10
)

type palette struct {
	reset  string
	title  string
	strong string
	dim    string
	bar    string
	hit    string
}

func newPalette(color bool) palette {
	if !color {
		return palette{}
	}
	return palette{
		reset:  "\033[0m",
		title:  "\033[1;34m", // bold blue
		strong: "\033[1;32m", // bold green
		dim:    "\033[2m",
		bar:    "\033[36m",   // cyan
		hit:    "\033[1;31m", // bold red for search highlights
	}
}

type Options struct {
	Width      int    // wrap width for message content (0 = no wrap)
	TimeFormat string // timestamp display layout; DefaultTimeFormat when empty
	Query      string // search needle to highlight in listings
	NoColor    bool
}

func (o Options) timeFormat() string {
	if o.TimeFormat == "" {
		return DefaultTimeFormat
	}
	return o.TimeFormat
}

// Report renders every aggregate section as styled terminal text. An empty
// subset still renders the overview, with "no data" in place of averages.
func Report(rep stats.Report, opts Options) string {
	p := newPalette(!opts.NoColor)
	var b strings.Builder

	section(&b, p, "Overview")
	row(&b, "Messages", humanize.Comma(int64(rep.Total)))
	row(&b, "Replies", humanize.Comma(int64(rep.Replies)))
	row(&b, "Avg length", fmtAvg(rep.AvgLength, rep.HasData(), "chars"))
	row(&b, "Active days", humanize.Comma(int64(rep.Days)))
	row(&b, "Per day", fmtAvg(rep.PerDay, rep.HasData(), ""))

	if !rep.HasData() {
		b.WriteString(p.dim + "(no messages match the current filters)" + p.reset + "\n")
		return b.String()
	}

	if len(rep.Types) > 0 {
		section(&b, p, "Message Types")
		typeW := labelWidth(len(rep.Types), func(i int) string { return rep.Types[i].Type })
		maxCount := rep.Types[0].Count
		for _, t := range rep.Types {
			fmt.Fprintf(&b, "%s %6s  %savg %5.1f%s  %s\n",
				runewidth.FillRight(t.Type, typeW),
				humanize.Comma(int64(t.Count)),
				p.dim, t.AvgLength, p.reset,
				paddedBar(t.Count, maxCount, barWidth, p))
		}
	}

	if top := rep.TopByCount(topAuthors); len(top) > 0 {
		section(&b, p, "Most Active Authors")
		authW := labelWidth(len(top), func(i int) string { return top[i].Author })
		for _, a := range top {
			fmt.Fprintf(&b, "%s%s%s %6s  %s%5.1f%%%s  %s\n",
				p.strong, runewidth.FillRight(a.Author, authW), p.reset,
				humanize.Comma(int64(a.Count)),
				p.dim, a.Percent, p.reset,
				paddedBar(a.Count, top[0].Count, barWidth, p))
		}
	}

	if long := rep.TopByLength(topAuthors); len(long) > 0 {
		section(&b, p, "Authors by Avg Message Length")
		authW := labelWidth(len(long), func(i int) string { return long[i].Author })
		for _, a := range long {
			fmt.Fprintf(&b, "%s%s%s %8.1f  %s\n",
				p.strong, runewidth.FillRight(a.Author, authW), p.reset,
				a.AvgLength,
				paddedBar(int(a.AvgLength*10), int(long[0].AvgLength*10), barWidth, p))
		}
	}

	if len(rep.Timeline.Rows) > 0 {
		section(&b, p, "Daily Activity")
		rows := rep.Timeline.Rows
		if skipped := len(rows) - timelineCap; skipped > 0 {
			rows = rows[skipped:]
			fmt.Fprintf(&b, "%s... (%d earlier days) ...%s\n", p.dim, skipped, p.reset)
		}
		maxDay := 0
		totals := make([]int, len(rows))
		for i, r := range rows {
			for _, c := range r.Counts {
				totals[i] += c
			}
			if totals[i] > maxDay {
				maxDay = totals[i]
			}
		}
		for i, r := range rows {
			fmt.Fprintf(&b, "%s  %s %s\n",
				r.Day.Format("Jan 02"),
				paddedBar(totals[i], maxDay, barWidth, p),
				humanize.Comma(int64(totals[i])))
		}
	}

	section(&b, p, "Messages by Hour")
	maxHour := 0
	for _, n := range rep.Hours {
		if n > maxHour {
			maxHour = n
		}
	}
	for h := 0; h < 24; h++ {
		fmt.Fprintf(&b, "%02d  %s %s\n",
			h, paddedBar(rep.Hours[h], maxHour, barWidth, p),
			humanize.Comma(int64(rep.Hours[h])))
	}

	section(&b, p, "Messages by Day")
	maxWd := 0
	for _, n := range rep.Weekdays {
		if n > maxWd {
			maxWd = n
		}
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		fmt.Fprintf(&b, "%s  %s %s\n",
			d.String()[:3], paddedBar(rep.Weekdays[d], maxWd, barWidth, p),
			humanize.Comma(int64(rep.Weekdays[d])))
	}

	return b.String()
}

// Messages renders a listing with wrapped, indented content and the search
// needle highlighted, one block per message.
func Messages(msgs []parse.Message, opts Options) string {
	p := newPalette(!opts.NoColor)
	layout := opts.timeFormat()

	if len(msgs) == 0 {
		return p.dim + "(no messages)" + p.reset + "\n"
	}

	var b strings.Builder
	separator := p.dim + strings.Repeat("-", reportWidth) + p.reset
	writeLine := func(s string) {
		for _, wl := range wrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
		}
	}

	for i, m := range msgs {
		if i > 0 {
			writeLine(separator)
		}

		author := m.Author
		if author == "" {
			author = "(unknown)"
		}
		header := fmt.Sprintf("%s%s%s  %s%s%s",
			p.strong, author, p.reset,
			p.dim, m.Timestamp.UTC().Format(layout), p.reset)
		if m.Type != parse.TypeDefault {
			header += fmt.Sprintf("  %s[%s]%s", p.dim, m.Type, p.reset)
		}
		writeLine(header)

		text := highlightNeedle(m.Content, opts.Query, p.hit, p.reset)
		for _, line := range strings.Split(indentLines(text, "  "), "\n") {
			writeLine(line)
		}
	}
	return b.String()
}

// Caption formats the count line shown under every view.
func Caption(shown, total int) string {
	return fmt.Sprintf("Showing %s messages out of %s total messages",
		humanize.Comma(int64(shown)), humanize.Comma(int64(total)))
}

// Bar renders n of max as a proportional run of block runes. Any positive
// n gets at least one block so small values stay visible.
func Bar(n, max, width int) string {
	if n <= 0 || max <= 0 || width <= 0 {
		return ""
	}
	w := n * width / max
	if w < 1 {
		w = 1
	}
	if w > width {
		w = width
	}
	return strings.Repeat("█", w)
}

func paddedBar(n, max, width int, p palette) string {
	bar := Bar(n, max, width)
	pad := strings.Repeat(" ", width-utf8.RuneCountInString(bar))
	return p.bar + bar + p.reset + pad
}

func section(b *strings.Builder, p palette, title string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	pad := reportWidth - len(title) - 5
	if pad < 3 {
		pad = 3
	}
	b.WriteString(p.title + "--- " + title + " " + strings.Repeat("-", pad) + p.reset + "\n")
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%-14s %s\n", label, value)
}

func fmtAvg(v float64, ok bool, unit string) string {
	if !ok {
		return "no data"
	}
	if unit == "" {
		return fmt.Sprintf("%.1f", v)
	}
	return fmt.Sprintf("%.1f %s", v, unit)
}

func labelWidth(n int, label func(int) string) int {
	w := 6
	for i := 0; i < n; i++ {
		if lw := runewidth.StringWidth(label(i)); lw > w {
			w = lw
		}
	}
	return w
}

// highlightNeedle wraps case-insensitive matches of needle in the given
// color. No-op when needle is empty or color is disabled. Matching is done
// rune by rune so offsets stay valid when case folding changes byte length.
func highlightNeedle(text, needle, color, reset string) string {
	if needle == "" || color == "" {
		return text
	}
	var b strings.Builder
	for len(text) > 0 {
		pos, n := foldIndex(text, needle)
		if pos < 0 {
			b.WriteString(text)
			break
		}
		b.WriteString(text[:pos])
		b.WriteString(color)
		b.WriteString(text[pos : pos+n])
		b.WriteString(reset)
		text = text[pos+n:]
	}
	return b.String()
}

// foldIndex returns the byte offset and length in text of the first
// case-insensitive match of needle, or -1 when there is none.
func foldIndex(text, needle string) (int, int) {
	for i := range text {
		if n, ok := foldPrefix(text[i:], needle); ok {
			return i, n
		}
	}
	return -1, 0
}

// foldPrefix reports whether s starts with a case-insensitive match of
// needle, and how many bytes of s that match spans.
func foldPrefix(s, needle string) (int, bool) {
	n := 0
	for _, nr := range needle {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 {
			return 0, false
		}
		if r != nr && unicode.ToLower(r) != unicode.ToLower(nr) {
			return 0, false
		}
		n += size
	}
	return n, true
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}
