package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chatlens/internal/config"
	"chatlens/internal/export"
	"chatlens/internal/pipeline"
)

func exportCmd() *cobra.Command {
	var flags filterFlags
	var out, format string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the filtered messages and aggregates to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			table, err := loadTable(args, cfg)
			if err != nil {
				return err
			}

			spec, err := flags.spec(table, cfg)
			if err != nil {
				return err
			}

			res := pipeline.Run(*table, spec)
			if err := export.WriteFile(out, format, res); err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Wrote %d of %d messages to %s (%s)\n",
				len(res.Messages), table.Len(), out, format)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output path (required)")
	cmd.Flags().StringVar(&format, "format", export.FormatJSON, "Output format (json/csv/sqlite)")
	cmd.MarkFlagRequired("output")

	return cmd
}
