package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kumolabai/nftgo-mcp/pkg/config"
	"github.com/spf13/cobra"
)

// settings resolves flags, environment and .env values.
var settings = config.NewViper()

var rootCmd = &cobra.Command{
	Use:   "nftgo-mcp <api-key>",
	Short: "MCP server for the NFTGo data API",
	Long: `nftgo-mcp exposes the NFTGo data API (https://data-api.nftgo.io) to MCP clients.

It serves the documented endpoints as resources and offers three tools:
request (forward an HTTP call with the API key injected), api-path-schema
and api-documentation.

The API key is the only argument. When omitted, NFTGO_API_KEY is read from
the environment or from a .env file in the working directory.`,
	Example:      "  nftgo-mcp <api-key>\n  nftgo-mcp <api-key> --http :8080",
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runServe,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() { config.LoadEnvFiles() })

	rootCmd.PersistentFlags().String(config.KeyLogLevel, "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String(config.KeyLogFormat, "console", "log format (console, json)")
	_ = settings.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup(config.KeyLogLevel))
	_ = settings.BindPFlag(config.KeyLogFormat, rootCmd.PersistentFlags().Lookup(config.KeyLogFormat))
}
