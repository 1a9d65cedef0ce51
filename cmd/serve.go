package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shadowintel/shadowbot/internal/app"
	"github.com/shadowintel/shadowbot/internal/config"
)

// newServeCmd creates and configures the 'serve' subcommand, which runs the
// webhook server and worker pool until interrupted.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Starts the webhook server and worker pool",
		Long: `Starts the HTTP server that receives Telegram webhook updates and the
worker pool that processes them. Blocks until SIGINT or SIGTERM.`,
		RunE: runServeCommand,
	}
}

func runServeCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	a, err := app.Build(cmd.Context(), &cfg)
	if err != nil {
		return fmt.Errorf("build application: %w", err)
	}

	return a.Run(cmd.Context())
}
