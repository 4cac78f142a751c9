package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"chatlens/internal/config"
	"chatlens/internal/parse"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [file]",
		Short: "Self-check: verify the export file loads and show what is inside",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			path := cfg.DefaultFile
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no export file given (pass a path or set default_file in config)")
			}

			fmt.Println("=== File ===")
			info, err := os.Stat(path)
			if err != nil {
				fmt.Printf("  Path: %s (NOT FOUND)\n", path)
				return err
			}
			fmt.Printf("  Path: %s\n", path)
			fmt.Printf("  Size: %s\n", humanize.Bytes(uint64(info.Size())))

			fmt.Println("\n=== Load ===")
			table, err := parse.LoadFile(path)
			if err != nil {
				var nerr *parse.NormalizationError
				if errors.As(err, &nerr) {
					fmt.Printf("  Status: FAILED - timestamp column unusable\n")
					fmt.Printf("  Rows dropped: %d\n", nerr.Rows)
					fmt.Printf("  Bad samples:  %s\n", strings.Join(nerr.Samples, ", "))
					return err
				}
				fmt.Printf("  Status: FAILED - %v\n", err)
				return err
			}
			fmt.Printf("  Messages: %s\n", humanize.Comma(int64(table.Len())))
			if table.Dropped > 0 {
				fmt.Printf("  Dropped:  %d (bad timestamps, e.g. %s)\n",
					table.Dropped, strings.Join(table.DroppedSamples, ", "))
			} else {
				fmt.Println("  Dropped:  0")
			}

			if min, max, ok := table.Bounds(); ok {
				fmt.Println("\n=== Date Range ===")
				fmt.Printf("  %s .. %s\n", min.Format(parse.DayLayout), max.Format(parse.DayLayout))
			}

			fmt.Println("\n=== Types ===")
			for _, t := range table.Types() {
				fmt.Printf("  %s\n", t)
			}

			authors := table.Authors()
			fmt.Printf("\n=== Authors (%d) ===\n", len(authors))
			for _, a := range authors {
				fmt.Printf("  %s\n", a)
			}

			return nil
		},
	}
}
