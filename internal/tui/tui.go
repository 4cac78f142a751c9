// Package tui is the interactive dashboard: a filter sidebar on the left,
// aggregate views on the right, recomputed from the immutable table on
// every filter change.
package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"chatlens/internal/config"
	"chatlens/internal/filter"
	"chatlens/internal/parse"
	"chatlens/internal/pipeline"
)

const debounceDelay = 200 * time.Millisecond

type dashTab int

const (
	tabOverview dashTab = iota
	tabTypes
	tabAuthors
	tabActivity
	tabMessages
)

var tabNames = []string{"Overview", "Types", "Authors", "Activity", "Messages"}

type focusField int

const (
	focusNone focusField = iota
	focusSearch
	focusFrom
	focusTo
)

// message types

type loadedMsg struct {
	table *parse.Table
	err   error
}

type debounceTickMsg struct {
	query string
}

// model

type model struct {
	path string
	cfg  *config.Config

	table *parse.Table
	res   pipeline.Result

	loading bool
	loadErr error
	spin    spinner.Model

	presetIdx int
	types     []string // "All" + distinct types from the table
	typeIdx   int
	authors   []string // "All" + distinct authors from the table
	authorIdx int

	searchInput textinput.Model
	fromInput   textinput.Model
	toInput     textinput.Model
	focus       focusField
	inputErr    string

	activeTab dashTab
	view      viewport.Model
	msgTable  table.Model
	sorted    []parse.Message // messages in table row order
	sortAsc   bool

	statusMsg string
	width     int
	height    int
	ready     bool
	quitting  bool
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = limit
	return ti
}

func initialModel(path string, cfg *config.Config) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleInputPrompt

	return model{
		path:        path,
		cfg:         cfg,
		loading:     true,
		spin:        sp,
		searchInput: newInput("Search content...", 256),
		fromInput:   newInput(parse.DayLayout, 10),
		toInput:     newInput(parse.DayLayout, 10),
		view:        viewport.New(0, 0),
		types:       []string{filter.All},
		authors:     []string{filter.All},
	}
}

// Run loads the export asynchronously and starts the dashboard.
func Run(path string, cfg *config.Config) error {
	m := initialModel(path, cfg)
	return runProgram(m)
}

// RunWithTable starts the dashboard over an already-loaded table, with the
// sidebar pre-set from spec. Used when another command hands off to the
// dashboard.
func RunWithTable(tbl *parse.Table, spec filter.Spec, cfg *config.Config) error {
	m := initialModel("", cfg)
	m.loading = false
	m.setTable(tbl)
	m.applySpec(spec)
	m.recompute()
	return runProgram(m)
}

func runProgram(m model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	fm, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if final, ok := fm.(model); ok && final.loadErr != nil {
		return final.loadErr
	}
	return nil
}

// setTable installs the loaded table and derives the cyclable filter
// options from it.
func (m *model) setTable(tbl *parse.Table) {
	m.table = tbl
	m.types = append([]string{filter.All}, tbl.Types()...)
	m.authors = append([]string{filter.All}, tbl.Authors()...)
	m.msgTable = newMessageTable()
}

// applySpec sets the sidebar state to reflect spec.
func (m *model) applySpec(spec filter.Spec) {
	m.searchInput.SetValue(spec.Search)
	if !spec.Start.IsZero() {
		m.fromInput.SetValue(spec.Start.Format(parse.DayLayout))
	}
	if !spec.End.IsZero() {
		m.toInput.SetValue(spec.End.Format(parse.DayLayout))
	}
	if !spec.Start.IsZero() || !spec.End.IsZero() {
		m.presetIdx = indexOfPreset(filter.PresetCustom)
	}
	for i, t := range m.types {
		if t == spec.Type {
			m.typeIdx = i
		}
	}
	for i, a := range m.authors {
		if a == spec.Author {
			m.authorIdx = i
		}
	}
}

func indexOfPreset(p filter.Preset) int {
	for i, q := range filter.Presets {
		if q == p {
			return i
		}
	}
	return 0
}

// spec builds the filter spec from current sidebar state. Unparsable date
// inputs leave that bound open.
func (m *model) spec() filter.Spec {
	spec := filter.Spec{
		Type:   m.types[m.typeIdx],
		Author: m.authors[m.authorIdx],
		Search: m.searchInput.Value(),
	}
	if day, err := time.ParseInLocation(parse.DayLayout, m.fromInput.Value(), time.UTC); err == nil {
		spec.Start = day
	}
	if day, err := time.ParseInLocation(parse.DayLayout, m.toInput.Value(), time.UTC); err == nil {
		spec.End = day
	}
	return spec
}

// recompute reruns the whole pipeline against the current spec and
// refreshes every derived view.
func (m *model) recompute() {
	if m.table == nil {
		return
	}
	m.res = pipeline.Run(*m.table, m.spec())
	m.refreshMessageRows()
	m.refreshView()
}

// cyclePreset advances the date preset and writes the resolved range into
// the date inputs. Custom leaves the inputs as they are.
func (m *model) cyclePreset() {
	m.presetIdx = (m.presetIdx + 1) % len(filter.Presets)
	p := filter.Presets[m.presetIdx]
	if p == filter.PresetCustom || m.table == nil {
		return
	}
	min, max, ok := m.table.Bounds()
	if !ok {
		return
	}
	start, end := p.Range(min, max)
	m.fromInput.SetValue(start.Format(parse.DayLayout))
	m.toInput.SetValue(end.Format(parse.DayLayout))
}

func loadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		tbl, err := parse.LoadFile(path)
		return loadedMsg{table: tbl, err: err}
	}
}

func (m model) scheduleDebounce(query string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceTickMsg{query: query}
	})
}

// Init starts the spinner and the async load.
func (m model) Init() tea.Cmd {
	if m.loading {
		return tea.Batch(m.spin.Tick, loadCmd(m.path))
	}
	return nil
}

// Update handles messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.view = viewport.New(m.mainWidth(), m.panelHeight())
		if m.table != nil {
			m.resizeMessageTable()
			m.refreshView()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err
			m.quitting = true
			return m, tea.Quit
		}
		m.setTable(msg.table)
		if p, ok := filter.ParsePreset(m.cfg.Preset); ok && p != filter.PresetAll {
			m.presetIdx = indexOfPreset(p) - 1
			m.cyclePreset()
		}
		m.resizeMessageTable()
		m.recompute()
		return m, nil

	case debounceTickMsg:
		// Only recompute if the query is still what was typed when the
		// debounce was scheduled.
		if msg.query == m.searchInput.Value() {
			m.recompute()
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focus != focusNone {
		return m.updateFocusedInput(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.NextTab):
		m.activeTab = (m.activeTab + 1) % dashTab(len(tabNames))
		m.refreshView()
		return m, nil

	case key.Matches(msg, keys.PrevTab):
		m.activeTab = (m.activeTab + dashTab(len(tabNames)) - 1) % dashTab(len(tabNames))
		m.refreshView()
		return m, nil

	case key.Matches(msg, keys.Preset):
		m.cyclePreset()
		m.recompute()
		return m, nil

	case key.Matches(msg, keys.Type):
		m.typeIdx = (m.typeIdx + 1) % len(m.types)
		m.recompute()
		return m, nil

	case key.Matches(msg, keys.Author):
		m.authorIdx = (m.authorIdx + 1) % len(m.authors)
		m.recompute()
		return m, nil

	case key.Matches(msg, keys.Search):
		return m.focusInput(focusSearch)

	case key.Matches(msg, keys.FromDate):
		return m.focusInput(focusFrom)

	case key.Matches(msg, keys.ToDate):
		return m.focusInput(focusTo)

	case key.Matches(msg, keys.Sort):
		if m.activeTab == tabMessages {
			m.sortAsc = !m.sortAsc
			m.refreshMessageRows()
		}
		return m, nil

	case key.Matches(msg, keys.Copy):
		if m.activeTab == tabMessages {
			m.copySelected()
		}
		return m, nil

	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down):
		if m.activeTab == tabMessages {
			var cmd tea.Cmd
			m.msgTable, cmd = m.msgTable.Update(msg)
			return m, cmd
		}
		if key.Matches(msg, keys.Up) {
			m.view.LineUp(1)
		} else {
			m.view.LineDown(1)
		}
		return m, nil
	}

	return m, nil
}

func (m model) focusInput(f focusField) (tea.Model, tea.Cmd) {
	m.focus = f
	m.inputErr = ""
	m.statusMsg = ""
	switch f {
	case focusSearch:
		return m, m.searchInput.Focus()
	case focusFrom:
		return m, m.fromInput.Focus()
	default:
		return m, m.toInput.Focus()
	}
}

func (m model) updateFocusedInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case msg.Type == tea.KeyEsc:
		m.blur()
		return m, nil

	case key.Matches(msg, keys.Enter):
		if m.focus == focusFrom || m.focus == focusTo {
			m.applyDateInput()
			// An explicit date edit makes the range custom.
			m.presetIdx = indexOfPreset(filter.PresetCustom)
		}
		m.blur()
		m.recompute()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusSearch:
		before := m.searchInput.Value()
		m.searchInput, cmd = m.searchInput.Update(msg)
		if v := m.searchInput.Value(); v != before {
			return m, tea.Batch(cmd, m.scheduleDebounce(v))
		}
	case focusFrom:
		m.fromInput, cmd = m.fromInput.Update(msg)
	case focusTo:
		m.toInput, cmd = m.toInput.Update(msg)
	}
	return m, cmd
}

// applyDateInput validates the focused date field, flagging bad input in
// the status bar. An empty field clears that bound.
func (m *model) applyDateInput() {
	in := &m.fromInput
	if m.focus == focusTo {
		in = &m.toInput
	}
	v := in.Value()
	if v == "" {
		return
	}
	if _, err := time.ParseInLocation(parse.DayLayout, v, time.UTC); err != nil {
		m.inputErr = fmt.Sprintf("bad date %q (want YYYY-MM-DD)", v)
		in.SetValue("")
	}
}

func (m *model) blur() {
	m.searchInput.Blur()
	m.fromInput.Blur()
	m.toInput.Blur()
	m.focus = focusNone
}

func (m *model) copySelected() {
	i := m.msgTable.Cursor()
	if i < 0 || i >= len(m.sorted) {
		return
	}
	if err := clipboard.WriteAll(m.sorted[i].Content); err != nil {
		m.statusMsg = "clipboard unavailable"
		return
	}
	m.statusMsg = "Copied message content"
}
