package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"chatlens/internal/config"
	"chatlens/internal/filter"
	"chatlens/internal/parse"
)

// filterFlags is the filter surface shared by stats, messages, and export.
type filterFlags struct {
	from   string
	to     string
	preset string
	typ    string
	author string
	search string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "Start of date range (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&f.to, "to", "", "End of date range (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&f.preset, "preset", "", "Date preset (all/7d/30d/90d); overridden by --from/--to")
	cmd.Flags().StringVar(&f.typ, "type", "", "Only messages of this type")
	cmd.Flags().StringVar(&f.author, "author", "", "Only messages by this author")
	cmd.Flags().StringVar(&f.search, "search", "", "Case-insensitive substring match on content")
}

// spec resolves the flags against the table's day bounds. An explicit
// --from/--to wins over any preset; a preset from config applies only when
// no flag narrowed the range.
func (f *filterFlags) spec(table *parse.Table, cfg *config.Config) (filter.Spec, error) {
	spec := filter.Spec{
		Type:   f.typ,
		Author: f.author,
		Search: f.search,
	}

	presetName := f.preset
	if presetName == "" && f.from == "" && f.to == "" {
		presetName = cfg.Preset
	}
	if presetName != "" {
		p, ok := filter.ParsePreset(presetName)
		if !ok {
			return filter.Spec{}, fmt.Errorf("unknown preset %q (want all, 7d, 30d, or 90d)", presetName)
		}
		if min, max, ok := table.Bounds(); ok {
			spec.Start, spec.End = p.Range(min, max)
		}
	}

	if f.from != "" {
		day, err := parseDay(f.from)
		if err != nil {
			return filter.Spec{}, fmt.Errorf("--from: %w", err)
		}
		spec.Start = day
	}
	if f.to != "" {
		day, err := parseDay(f.to)
		if err != nil {
			return filter.Spec{}, fmt.Errorf("--to: %w", err)
		}
		spec.End = day
	}

	return spec, nil
}

func parseDay(s string) (time.Time, error) {
	day, err := time.ParseInLocation(parse.DayLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q (want YYYY-MM-DD)", s)
	}
	return day, nil
}

// loadTable resolves the export path (argument, falling back to the
// configured default_file) and loads it.
func loadTable(args []string, cfg *config.Config) (*parse.Table, error) {
	path := cfg.DefaultFile
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return nil, fmt.Errorf("no export file given (pass a path or set default_file in config)")
	}
	table, err := parse.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return table, nil
}
