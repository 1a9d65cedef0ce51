// Package cmd defines and implements the CLI commands for the shadowbot executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shadowbot",
		Short: "A single-operator Telegram intelligence agent.",
		Long: `shadowbot receives Telegram webhook updates for one authorized operator,
gathers content from URLs or uploaded documents, and replies with an
AI-generated summary in the SHADOW persona.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
