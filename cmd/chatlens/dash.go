package main

import (
	"github.com/spf13/cobra"

	"chatlens/internal/config"
	"chatlens/internal/tui"
)

func dashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dash [file]",
		Short: "Open the interactive dashboard",
		Long:  `Opens a full-screen dashboard over a chat export: filter sidebar, aggregate metrics, timeline, author and activity views, and a sortable message table. Falls back to default_file from config when no path is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			path := cfg.DefaultFile
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				return cmd.Help()
			}

			return tui.Run(path, cfg)
		},
	}
}
