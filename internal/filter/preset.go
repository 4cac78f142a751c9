package filter

import (
	"strings"
	"time"
)

// Preset is a canned date range anchored at the newest day in the table.
type Preset int

const (
	PresetAll Preset = iota
	PresetLast7
	PresetLast30
	PresetLast90
	PresetCustom
)

// Presets lists the selectable presets in cycling order.
var Presets = []Preset{PresetAll, PresetLast7, PresetLast30, PresetLast90, PresetCustom}

func (p Preset) String() string {
	switch p {
	case PresetLast7:
		return "Last 7 days"
	case PresetLast30:
		return "Last 30 days"
	case PresetLast90:
		return "Last 90 days"
	case PresetCustom:
		return "Custom"
	default:
		return "All time"
	}
}

// ParsePreset accepts the forms used on the command line ("all", "7d",
// "last 7 days", "custom", ...). The bool is false for unknown input.
func ParsePreset(s string) (Preset, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "all time", "alltime":
		return PresetAll, true
	case "7", "7d", "last7", "last 7 days":
		return PresetLast7, true
	case "30", "30d", "last30", "last 30 days":
		return PresetLast30, true
	case "90", "90d", "last90", "last 90 days":
		return PresetLast90, true
	case "custom":
		return PresetCustom, true
	}
	return PresetAll, false
}

// Range resolves the preset against the table's day bounds. The "last N
// days" presets subtract N whole days from the newest day, giving an
// inclusive range of N+1 calendar days. PresetAll and PresetCustom return
// the full bounds; Custom is then narrowed by the caller.
func (p Preset) Range(min, max time.Time) (start, end time.Time) {
	switch p {
	case PresetLast7:
		return max.AddDate(0, 0, -7), max
	case PresetLast30:
		return max.AddDate(0, 0, -30), max
	case PresetLast90:
		return max.AddDate(0, 0, -90), max
	default:
		return min, max
	}
}

// Days returns the number of calendar days in the inclusive range,
// 0 for an inverted or unresolved range. Start and end are expected to be
// day-truncated UTC instants.
func Days(start, end time.Time) int {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
