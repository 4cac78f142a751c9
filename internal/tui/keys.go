package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Preset   key.Binding
	Type     key.Binding
	Author   key.Binding
	Search   key.Binding
	FromDate key.Binding
	ToDate   key.Binding
	Sort     key.Binding
	Copy     key.Binding
	Enter    key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+k"),
		key.WithHelp("up/C-k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+j"),
		key.WithHelp("dn/C-j", "down"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab", "right"),
		key.WithHelp("tab", "next view"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab", "left"),
		key.WithHelp("S-tab", "prev view"),
	),
	Preset: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "cycle preset"),
	),
	Type: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "cycle type"),
	),
	Author: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "cycle author"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	FromDate: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "from date"),
	),
	ToDate: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "until date"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "toggle sort"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy message"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}
