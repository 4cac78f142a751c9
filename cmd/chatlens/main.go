package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chatlens/internal/logging"
)

var version = "dev"

func main() {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:     "chatlens",
		Short:   "chatlens - interactive dashboard for chat exports",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// The dashboard owns the terminal; stray log writes would
			// corrupt the alt screen.
			quiet := cmd.Name() == "dash"
			logging.Init(quiet, logging.ParseLevel(logLevel))
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug/info/warn/error)")

	rootCmd.AddCommand(dashCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(messagesCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
