package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorPrimary   = lipgloss.Color("12")  // bright blue
	colorSecondary = lipgloss.Color("10")  // bright green
	colorDim       = lipgloss.Color("240") // gray
	colorHighlight = lipgloss.Color("11")  // bright yellow
	colorBorder    = lipgloss.Color("238") // dark gray
	colorBar       = lipgloss.Color("14")  // bright cyan

	// Input area
	styleInput = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	// Sidebar
	styleSidebarLabel = lipgloss.NewStyle().
				Foreground(colorDim)

	styleSidebarValue = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	styleSidebarFocus = lipgloss.NewStyle().
				Foreground(colorHighlight).
				Bold(true)

	// Tab bar
	styleTabActive = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true).
			Padding(0, 1)

	styleTabInactive = lipgloss.NewStyle().
				Foreground(colorDim).
				Padding(0, 1)

	// Metric row
	styleMetricValue = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true)

	styleMetricLabel = lipgloss.NewStyle().
				Foreground(colorDim)

	// Charts
	styleBar = lipgloss.NewStyle().
			Foreground(colorBar)

	styleChartLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleDim = lipgloss.NewStyle().
			Foreground(colorDim)

	// Panels
	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)

	styleActiveBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary)

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)

	styleTitle = lipgloss.NewStyle().
			Foreground(colorDim).
			Bold(true)
)
