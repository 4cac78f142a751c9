package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"chatlens/internal/filter"
	"chatlens/internal/parse"
	"chatlens/internal/render"
	"chatlens/internal/stats"
)

const (
	sidebarWidth    = 26
	metricRowHeight = 3
	chartBarWidth   = 20
	topAuthors      = 10
)

// View renders the full dashboard.
func (m model) View() string {
	if m.quitting {
		return ""
	}
	if m.loading {
		return fmt.Sprintf("\n  %s Loading %s...\n", m.spin.View(), m.path)
	}
	if !m.ready || m.table == nil {
		return ""
	}

	tabBar := m.renderTabBar()

	sw := sidebarWidth
	mw := m.mainWidth()
	ph := m.panelHeight()

	sidebar := stylePanelBorder.
		Width(sw).
		Height(ph).
		Render(m.renderSidebar(sw))

	var content string
	if m.activeTab == tabMessages {
		content = lipgloss.JoinVertical(lipgloss.Left, m.renderMetrics(mw), m.msgTable.View())
	} else {
		m.view.Width = mw
		m.view.Height = ph - metricRowHeight
		content = lipgloss.JoinVertical(lipgloss.Left, m.renderMetrics(mw), m.view.View())
	}
	main := styleActiveBorder.
		Width(mw).
		Height(ph).
		Render(content)

	panels := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, panels, m.statusBar())
}

// labelFocused reports whether the sidebar label for field f should use
// the focus style.
func (m model) labelFocused(f focusField) bool {
	return f != focusNone && m.focus == f
}

func (m model) mainWidth() int {
	w := m.width - sidebarWidth - 6
	if w < 30 {
		w = 30
	}
	return w
}

func (m model) panelHeight() int {
	// Subtract tab bar (1) + status bar (1) + borders (2)
	h := m.height - 4
	if h < 8 {
		h = 8
	}
	return h
}

func (m model) renderTabBar() string {
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if dashTab(i) == m.activeTab {
			parts = append(parts, styleTabActive.Render(name))
		} else {
			parts = append(parts, styleTabInactive.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m model) renderSidebar(width int) string {
	// The focused input's label lights up so the active field is obvious.
	label := func(s string, f focusField) string {
		if m.labelFocused(f) {
			return styleSidebarFocus.Render(s)
		}
		return styleSidebarLabel.Render(s)
	}
	value := func(s string) string { return styleSidebarValue.Render(s) }

	var b strings.Builder
	b.WriteString(styleTitle.Render("Filters") + "\n\n")

	b.WriteString(label("Preset (p)", focusNone) + "\n")
	b.WriteString(value(filter.Presets[m.presetIdx].String()) + "\n\n")

	b.WriteString(label("From (f)", focusFrom) + "\n")
	b.WriteString(m.fromInput.View() + "\n")
	b.WriteString(label("To (u)", focusTo) + "\n")
	b.WriteString(m.toInput.View() + "\n\n")

	b.WriteString(label("Type (t)", focusNone) + "\n")
	b.WriteString(value(m.types[m.typeIdx]) + "\n\n")

	b.WriteString(label("Author (a)", focusNone) + "\n")
	b.WriteString(value(cell(m.authors[m.authorIdx], width-2)) + "\n\n")

	b.WriteString(label("Search (/)", focusSearch) + "\n")
	b.WriteString(m.searchInput.View() + "\n\n")

	spec := m.spec()
	if !spec.Start.IsZero() && !spec.End.IsZero() {
		days := filter.Days(parse.Day(spec.Start), parse.Day(spec.End))
		b.WriteString(styleDim.Render(fmt.Sprintf("Selected range: %d days", days)) + "\n")
	}
	if m.table.Dropped > 0 {
		b.WriteString(styleDim.Render(fmt.Sprintf("%d rows dropped on load", m.table.Dropped)) + "\n")
	}
	return b.String()
}

func (m model) renderMetrics(width int) string {
	rep := m.res.Stats

	avg := "no data"
	perDay := "no data"
	if rep.HasData() {
		avg = fmt.Sprintf("%.1f", rep.AvgLength)
		perDay = fmt.Sprintf("%.1f", rep.PerDay)
	}

	cw := width / 4
	if cw < 12 {
		cw = 12
	}
	metric := func(label, value string) string {
		return lipgloss.JoinVertical(lipgloss.Left,
			styleMetricValue.Width(cw).Render(value),
			styleMetricLabel.Width(cw).Render(label),
		)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		metric("Total Messages", humanize.Comma(int64(rep.Total))),
		metric("Replies", humanize.Comma(int64(rep.Replies))),
		metric("Avg Length", avg),
		metric("Msgs / Day", perDay),
	)
	return row + "\n"
}

// refreshView rebuilds the scrollable chart content for the active tab.
func (m *model) refreshView() {
	switch m.activeTab {
	case tabOverview:
		m.view.SetContent(renderTimeline(m.res.Stats))
	case tabTypes:
		m.view.SetContent(renderTypes(m.res.Stats))
	case tabAuthors:
		m.view.SetContent(renderAuthors(m.res.Stats))
	case tabActivity:
		m.view.SetContent(renderActivity(m.res.Stats))
	}
	m.view.GotoTop()
}

func renderTimeline(rep stats.Report) string {
	if len(rep.Timeline.Rows) == 0 {
		return styleDim.Render("No messages match the current filters.")
	}

	maxTotal := 0
	totals := make([]int, len(rep.Timeline.Rows))
	for i, row := range rep.Timeline.Rows {
		for _, c := range row.Counts {
			totals[i] += c
		}
		if totals[i] > maxTotal {
			maxTotal = totals[i]
		}
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("Messages per Day") + "\n\n")
	for i, row := range rep.Timeline.Rows {
		breakdown := make([]string, 0, len(rep.Timeline.Types))
		for j, typ := range rep.Timeline.Types {
			if row.Counts[j] > 0 {
				breakdown = append(breakdown, fmt.Sprintf("%s %d", typ, row.Counts[j]))
			}
		}
		fmt.Fprintf(&b, "%s  %s %4s  %s\n",
			styleChartLabel.Render(row.Day.Format("Jan 02")),
			chartBar(totals[i], maxTotal),
			humanize.Comma(int64(totals[i])),
			styleDim.Render(strings.Join(breakdown, ", ")),
		)
	}
	return b.String()
}

func renderTypes(rep stats.Report) string {
	if len(rep.Types) == 0 {
		return styleDim.Render("No messages match the current filters.")
	}

	labelW := 6
	for _, t := range rep.Types {
		if w := runewidth.StringWidth(t.Type); w > labelW {
			labelW = w
		}
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("Message Types") + "\n\n")
	maxCount := rep.Types[0].Count
	for _, t := range rep.Types {
		fmt.Fprintf(&b, "%s  %s %6s  %s\n",
			styleChartLabel.Render(runewidth.FillRight(t.Type, labelW)),
			chartBar(t.Count, maxCount),
			humanize.Comma(int64(t.Count)),
			styleDim.Render(fmt.Sprintf("avg %.1f chars", t.AvgLength)),
		)
	}
	return b.String()
}

func renderAuthors(rep stats.Report) string {
	top := rep.TopByCount(topAuthors)
	if len(top) == 0 {
		return styleDim.Render("No messages match the current filters.")
	}

	labelW := 6
	long := rep.TopByLength(topAuthors)
	for _, a := range rep.Authors {
		if w := runewidth.StringWidth(a.Author); w > labelW {
			labelW = w
		}
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("Most Active Authors") + "\n\n")
	for _, a := range top {
		fmt.Fprintf(&b, "%s  %s %6s  %s\n",
			styleChartLabel.Render(runewidth.FillRight(a.Author, labelW)),
			chartBar(a.Count, top[0].Count),
			humanize.Comma(int64(a.Count)),
			styleDim.Render(fmt.Sprintf("%.1f%%", a.Percent)),
		)
	}

	b.WriteString("\n" + styleTitle.Render("Authors by Avg Message Length") + "\n\n")
	for _, a := range long {
		fmt.Fprintf(&b, "%s  %s %8.1f\n",
			styleChartLabel.Render(runewidth.FillRight(a.Author, labelW)),
			chartBar(int(a.AvgLength*10), int(long[0].AvgLength*10)),
			a.AvgLength,
		)
	}
	return b.String()
}

func renderActivity(rep stats.Report) string {
	if !rep.HasData() {
		return styleDim.Render("No messages match the current filters.")
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("Messages by Hour (UTC)") + "\n\n")
	maxHour := 0
	for _, n := range rep.Hours {
		if n > maxHour {
			maxHour = n
		}
	}
	for h := 0; h < 24; h++ {
		fmt.Fprintf(&b, "%s  %s %s\n",
			styleChartLabel.Render(fmt.Sprintf("%02d", h)),
			chartBar(rep.Hours[h], maxHour),
			humanize.Comma(int64(rep.Hours[h])),
		)
	}

	b.WriteString("\n" + styleTitle.Render("Messages by Weekday") + "\n\n")
	maxWd := 0
	for _, n := range rep.Weekdays {
		if n > maxWd {
			maxWd = n
		}
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		fmt.Fprintf(&b, "%s  %s %s\n",
			styleChartLabel.Render(d.String()[:3]),
			chartBar(rep.Weekdays[d], maxWd),
			humanize.Comma(int64(rep.Weekdays[d])),
		)
	}
	return b.String()
}

// chartBar renders a fixed-width proportional bar, colored, space-padded so
// the count column stays aligned.
func chartBar(n, max int) string {
	bar := render.Bar(n, max, chartBarWidth)
	pad := strings.Repeat(" ", chartBarWidth-runewidth.StringWidth(bar))
	return styleBar.Render(bar) + pad
}

func (m model) statusBar() string {
	if m.inputErr != "" {
		return styleStatusBar.Render(m.inputErr)
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("Showing %s of %s messages",
		humanize.Comma(int64(len(m.res.Messages))),
		humanize.Comma(int64(m.table.Len()))))
	if m.statusMsg != "" {
		parts = append(parts, m.statusMsg)
	}
	parts = append(parts, "tab views")
	parts = append(parts, "p/t/a cycle filters")
	parts = append(parts, "/ search")
	if m.activeTab == tabMessages {
		parts = append(parts, "s sort")
		parts = append(parts, "c copy")
	}
	parts = append(parts, "esc quit")
	return styleStatusBar.Render(strings.Join(parts, " | "))
}
