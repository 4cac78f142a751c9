package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"chatlens/internal/parse"
	"chatlens/internal/render"
)

const (
	colTimestamp = 21
	colAuthor    = 14
	colType      = 9
)

func newMessageTable() table.Model {
	t := table.New(
		table.WithFocused(true),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorHighlight).
		Bold(true)
	t.SetStyles(s)
	return t
}

func (m *model) resizeMessageTable() {
	w := m.mainWidth()
	contentW := w - colTimestamp - colAuthor - colType - 8
	if contentW < 10 {
		contentW = 10
	}
	m.msgTable.SetColumns([]table.Column{
		{Title: "Timestamp", Width: colTimestamp},
		{Title: "Author", Width: colAuthor},
		{Title: "Type", Width: colType},
		{Title: "Content", Width: contentW},
	})
	h := m.panelHeight() - metricRowHeight
	if h < 3 {
		h = 3
	}
	m.msgTable.SetWidth(w)
	m.msgTable.SetHeight(h)
}

// refreshMessageRows rebuilds the table rows from the filtered subset in
// the current sort order. Default is newest first.
func (m *model) refreshMessageRows() {
	m.sorted = make([]parse.Message, len(m.res.Messages))
	copy(m.sorted, m.res.Messages)
	sort.SliceStable(m.sorted, func(i, j int) bool {
		if m.sortAsc {
			return m.sorted[i].Timestamp.Before(m.sorted[j].Timestamp)
		}
		return m.sorted[i].Timestamp.After(m.sorted[j].Timestamp)
	})

	layout := m.cfg.TimeFormat
	if layout == "" {
		layout = render.DefaultTimeFormat
	}

	rows := make([]table.Row, 0, len(m.sorted))
	for _, msg := range m.sorted {
		rows = append(rows, table.Row{
			msg.Timestamp.UTC().Format(layout),
			cell(msg.Author, colAuthor),
			cell(msg.Type, colType),
			oneLine(msg.Content),
		})
	}
	m.msgTable.SetRows(rows)
	m.msgTable.SetCursor(0)
}

func cell(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return s
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	return s
}
