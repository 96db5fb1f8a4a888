package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

// Server identity reported to MCP clients.
const (
	ServerName         = "nftgo-api"
	ServerVersion      = "0.1.0"
	ServerInstructions = "This is an assistant for NFT data in ethereum build with NFTGo API V1.1"
)

// NewServer creates an MCP server with the adapter's tools and resources
// registered.
func NewServer(adapter *Adapter, title string) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: ServerName, Title: title, Version: ServerVersion},
		&mcp.ServerOptions{Instructions: ServerInstructions},
	)
	adapter.Register(server)
	return server
}

// Register adds the tools and one resource per endpoint to server.
//
// Tools go through server.AddTool, which leaves argument checking to
// CallTool, so clients get the per-field "Invalid arguments" report. The
// server lists resources sorted by URI; api-documentation keeps catalog
// order.
func (a *Adapter) Register(server *mcp.Server) {
	for _, tool := range a.ListTools() {
		server.AddTool(tool, a.toolHandler(tool.Name))
	}

	for _, resource := range a.ListResources() {
		server.AddResource(resource, a.readResourceHandler)
	}
}

func (a *Adapter) toolHandler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input := ToolInput{}
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &input); err != nil {
				return toolError(fmt.Errorf("failed to decode arguments: %w", err)), nil
			}
		}

		result, err := a.CallTool(ctx, name, input)
		if err != nil {
			return toolError(err), nil
		}
		return result, nil
	}
}

// toolError reports a failed call as a tool result, so the calling agent
// sees the message.
func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		IsError: true,
	}
}

func (a *Adapter) readResourceHandler(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return a.ReadResource(req.Params.URI)
}

// NewHTTPHandler serves server over streamable HTTP at /mcp, with a /health
// probe alongside.
func NewHTTPHandler(server *mcp.Server, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil))

	return r
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("http request")
		})
	}
}
