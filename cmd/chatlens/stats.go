package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"chatlens/internal/config"
	"chatlens/internal/filter"
	"chatlens/internal/pipeline"
	"chatlens/internal/render"
)

func statsCmd() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Print the aggregate report for a chat export",
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

			// Styled report on a terminal; plain text for pipes.
			color := term.IsTerminal(int(os.Stdout.Fd()))
			fmt.Print(render.Report(res.Stats, render.Options{NoColor: !color}))
			fmt.Println()
			fmt.Println(render.Caption(len(res.Messages), table.Len()))
			if days := filter.Days(spec.Start, spec.End); days > 0 {
				fmt.Printf("Selected range: %d days\n", days)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
