package render

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"chatlens/internal/parse"
	"chatlens/internal/stats"
)

func sampleReport() stats.Report {
	msg := func(d, h int, author, content, typ string) parse.Message {
		return parse.Message{
			Timestamp: time.Date(2024, 1, d, h, 0, 0, 0, time.UTC),
			Author:    author,
			Content:   content,
			Type:      typ,
		}
	}
	return stats.Compute([]parse.Message{
		msg(1, 9, "alice", "hi", parse.TypeDefault),
		msg(1, 10, "bob", "hello there", parse.TypeReply),
		msg(2, 9, "alice", "goodbye", parse.TypeDefault),
	})
}

func TestReportSections(t *testing.T) {
	out := Report(sampleReport(), Options{NoColor: true})

	for _, want := range []string{
		"--- Overview",
		"--- Message Types",
		"--- Most Active Authors",
		"--- Authors by Avg Message Length",
		"--- Daily Activity",
		"--- Messages by Hour",
		"--- Messages by Day",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing section %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("NoColor report contains ANSI escapes")
	}
}

func TestReportValues(t *testing.T) {
	out := Report(sampleReport(), Options{NoColor: true})

	for _, want := range []string{
		"alice",
		"bob",
		"66.7%", // alice: 2 of 3
		"33.3%",
		"Reply",
		"Default",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestReportNoData(t *testing.T) {
	out := Report(stats.Compute(nil), Options{NoColor: true})

	if !strings.Contains(out, "no data") {
		t.Errorf("empty report missing %q\n%s", "no data", out)
	}
	if !strings.Contains(out, "(no messages match the current filters)") {
		t.Errorf("empty report missing placeholder line\n%s", out)
	}
	if strings.Contains(out, "Most Active Authors") {
		t.Error("empty report renders author section")
	}
}

func TestMessagesListing(t *testing.T) {
	msgs := []parse.Message{
		{
			Timestamp: time.Date(2024, 3, 5, 15, 4, 0, 0, time.UTC),
			Author:    "alice",
			Content:   "hello world",
			Type:      parse.TypeReply,
		},
		{
			Timestamp: time.Date(2024, 3, 6, 8, 30, 0, 0, time.UTC),
			Author:    "",
			Content:   "anonymous note",
			Type:      parse.TypeDefault,
		},
	}
	out := Messages(msgs, Options{NoColor: true})

	for _, want := range []string{
		"alice",
		"Mar 05, 2024, 03:04 PM",
		"[Reply]",
		"  hello world",
		"(unknown)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q\n%s", want, out)
		}
	}
	// Default type carries no tag
	if strings.Contains(out, "[Default]") {
		t.Error("listing tags the default type")
	}
}

func TestMessagesEmpty(t *testing.T) {
	out := Messages(nil, Options{NoColor: true})
	if !strings.Contains(out, "(no messages)") {
		t.Errorf("empty listing = %q", out)
	}
}

func TestCaption(t *testing.T) {
	got := Caption(1234, 5678)
	want := "Showing 1,234 messages out of 5,678 total messages"
	if got != want {
		t.Errorf("Caption = %q, want %q", got, want)
	}
}

func TestBar(t *testing.T) {
	cases := []struct {
		n, max, width int
		want          int // blocks
	}{
		{0, 10, 16, 0},
		{10, 10, 16, 16},
		{5, 10, 16, 8},
		{1, 1000, 16, 1}, // small values stay visible
		{10, 0, 16, 0},
		{20, 10, 16, 16}, // clamped
	}
	for _, c := range cases {
		got := Bar(c.n, c.max, c.width)
		if blocks := strings.Count(got, "█"); blocks != c.want {
			t.Errorf("Bar(%d, %d, %d) = %d blocks, want %d", c.n, c.max, c.width, blocks, c.want)
		}
	}
}

func TestHighlightNeedle(t *testing.T) {
	got := highlightNeedle("say Hello twice: hello", "hello", "<", ">")
	want := "say <Hello> twice: <hello>"
	if got != want {
		t.Errorf("highlightNeedle = %q, want %q", got, want)
	}

	if got := highlightNeedle("text", "", "<", ">"); got != "text" {
		t.Errorf("empty needle changed text: %q", got)
	}
	if got := highlightNeedle("text", "xyz", "<", ">"); got != "text" {
		t.Errorf("no match changed text: %q", got)
	}
}

func TestWrapLine(t *testing.T) {
	got := wrapLine("abcdef", 3)
	if len(got) != 2 || got[0] != "abc" || got[1] != "def" {
		t.Errorf("wrapLine = %v", got)
	}

	// ANSI escapes do not count toward width
	got = wrapLine("\033[1mabc\033[0m", 3)
	if len(got) != 1 {
		t.Errorf("ANSI-wrapped line split into %d lines: %v", len(got), got)
	}

	if got := wrapLine("", 10); len(got) != 1 || got[0] != "" {
		t.Errorf("empty line = %v", got)
	}

	if got := wrapLine("abcdef", 0); len(got) != 1 || got[0] != "abcdef" {
		t.Errorf("zero width = %v", got)
	}
}

func TestIndentLines(t *testing.T) {
	if got := indentLines("a\nb", "  "); got != "  a\n  b" {
		t.Errorf("indentLines = %q", got)
	}
}

func TestHighlightNeedleUppercaseNeedle(t *testing.T) {
	if got := highlightNeedle("Hello hello", "HELLO", "<", ">"); got != "<Hello> <hello>" {
		t.Errorf("uppercase needle = %q", got)
	}
	if got := highlightNeedle("", "hello", "<", ">"); got != "" {
		t.Errorf("empty text = %q", got)
	}
}

func TestHighlightNeedleMultibyteText(t *testing.T) {
	// Case folding can change byte length ("İ" lowercases to two runes),
	// so matches after multibyte runes must not shift or slice past the end.
	if got := highlightNeedle("İİa", "a", "<", ">"); got != "İİ<a>" {
		t.Errorf("highlightNeedle after multibyte runes = %q, want %q", got, "İİ<a>")
	}
	if got := highlightNeedle("héllo hello", "héllo", "<", ">"); got != "<héllo> hello" {
		t.Errorf("multibyte needle = %q", got)
	}
	if got := highlightNeedle("ßß", "x", "<", ">"); got != "ßß" {
		t.Errorf("no-match multibyte text = %q", got)
	}
}

// visibleWidth measures a line the way wrapLine does: escape sequences are
// free, everything else counts its display cells.
func visibleWidth(line string) int {
	w := 0
	for i := 0; i < len(line); {
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++
			}
			i = j
			continue
		}
		r, size := utf8.DecodeRuneInString(line[i:])
		w += runewidth.RuneWidth(r)
		i += size
	}
	return w
}

func TestMessagesLongListing(t *testing.T) {
	msgs := []parse.Message{{
		Timestamp: time.Date(2024, 3, 5, 15, 4, 0, 0, time.UTC),
		Author:    "alice",
		Content:   "hello world, hello again, hello once more",
		Type:      parse.TypeDefault,
	}}
	out := Messages(msgs, Options{Width: 24, Query: "hello", TimeFormat: "2006-01-02 15:04"})

	if !strings.Contains(out, "2024-03-05 15:04") {
		t.Errorf("custom time format not applied\n%s", out)
	}
	if !strings.Contains(out, "\033[1;31mhello\033[0m") {
		t.Errorf("search matches not highlighted\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if w := visibleWidth(line); w > 24 {
			t.Errorf("line wider than %d (%d): %q", 24, w, line)
		}
	}
}
