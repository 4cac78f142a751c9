package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"chatlens/internal/config"
	"chatlens/internal/pipeline"
	"chatlens/internal/render"
	"chatlens/internal/tui"
)

func messagesCmd() *cobra.Command {
	var flags filterFlags
	var long bool

	cmd := &cobra.Command{
		Use:   "messages [file]",
		Short: "List filtered messages",
		Long: `Lists the messages matching the filter flags. Output is TSV for pipes:
  timestamp, author, type, content

with tabs and newlines inside content flattened to spaces. On a terminal
this opens the dashboard instead, pre-filtered by the same flags. With
--long it prints a full listing (wrapped content, search matches
highlighted) to either destination.`,
		Args: cobra.MaximumNArgs(1),
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

			tty := term.IsTerminal(int(os.Stdout.Fd()))

			if long {
				width := 0
				if tty {
					width, _, _ = term.GetSize(int(os.Stdout.Fd()))
				}
				res := pipeline.Run(*table, spec)
				fmt.Print(render.Messages(res.Messages, render.Options{
					Width:      width,
					Query:      spec.Search,
					TimeFormat: cfg.TimeFormat,
					NoColor:    !tty,
				}))
				fmt.Println()
				fmt.Println(render.Caption(len(res.Messages), table.Len()))
				return nil
			}

			// Interactive dashboard on a terminal; TSV output for pipes.
			if tty {
				return tui.RunWithTable(table, spec, cfg)
			}

			res := pipeline.Run(*table, spec)
			if len(res.Messages) == 0 {
				fmt.Fprintln(os.Stderr, "No messages match.")
				return nil
			}
			for _, m := range res.Messages {
				fmt.Printf("%s\t%s\t%s\t%s\n",
					m.Timestamp.UTC().Format("2006-01-02 15:04:05"),
					flatten(m.Author),
					m.Type,
					flatten(m.Content),
				)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&long, "long", "l", false, "Print a full listing instead of TSV or the dashboard")
	return cmd
}

// flatten makes a value safe for one TSV field.
func flatten(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
