package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/kumolabai/nftgo-mcp/pkg/config"
	"github.com/kumolabai/nftgo-mcp/pkg/forward"
	"github.com/kumolabai/nftgo-mcp/pkg/logging"
	nftgo_mcp "github.com/kumolabai/nftgo-mcp/pkg/mcp"
	"github.com/kumolabai/nftgo-mcp/pkg/openapi"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(settings, args)
	if err != nil {
		return err
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Output:  os.Stderr,
		NoColor: os.Getenv("NO_COLOR") != "",
	})

	catalog, err := openapi.LoadDefault()
	if err != nil {
		return fmt.Errorf("failed to load endpoint catalog: %w", err)
	}

	forwarder := forward.New(cfg.APIKey, nil, logger)
	adapter := nftgo_mcp.NewAdapter(catalog, forwarder, logger)
	server := nftgo_mcp.NewServer(adapter, catalog.Title())

	if cfg.HTTPAddr != "" {
		logger.Info().Str("transport", "http").Str("addr", cfg.HTTPAddr).Int("endpoints", catalog.Len()).Msg("starting MCP server")
		return serveHTTP(cmd.Context(), cfg.HTTPAddr, nftgo_mcp.NewHTTPHandler(server, logger), logger)
	}

	logger.Info().Str("transport", "stdio").Int("endpoints", catalog.Len()).Msg("starting MCP server")

	// Run the server over stdin/stdout, until the client disconnects
	if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func serveHTTP(ctx context.Context, addr string, handler http.Handler, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("http shutdown")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func init() {
	rootCmd.Flags().String(config.KeyHTTPAddr, "", "serve MCP over streamable HTTP on this address instead of stdio")
	_ = settings.BindPFlag(config.KeyHTTPAddr, rootCmd.Flags().Lookup(config.KeyHTTPAddr))
}
