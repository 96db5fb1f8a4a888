package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kumolabai/nftgo-mcp/pkg/forward"
	"github.com/kumolabai/nftgo-mcp/pkg/openapi"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

// Forwarder performs a single upstream request.
type Forwarder interface {
	Forward(ctx context.Context, req forward.Request) (*forward.Response, error)
}

// Adapter maps MCP resource and tool operations onto the endpoint catalog and
// the request forwarder.
type Adapter struct {
	catalog   *openapi.Catalog
	forwarder Forwarder
	logger    zerolog.Logger
}

// UnknownToolError is returned by CallTool for a name outside the tool set.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("Unknown tool: %s", e.Name)
}

// NewAdapter returns an Adapter over catalog and forwarder.
func NewAdapter(catalog *openapi.Catalog, forwarder Forwarder, logger zerolog.Logger) *Adapter {
	return &Adapter{catalog: catalog, forwarder: forwarder, logger: logger}
}

// ListResources returns one resource per cataloged endpoint, in catalog order.
func (a *Adapter) ListResources() []*mcp.Resource {
	endpoints := a.catalog.ListEndpoints()
	resources := make([]*mcp.Resource, 0, len(endpoints))
	for _, e := range endpoints {
		resources = append(resources, &mcp.Resource{
			URI:      e.URI,
			MIMEType: e.MIMEType,
			Name:     e.Name,
		})
	}
	return resources
}

// ReadResource returns the endpoint description addressed by uri.
func (a *Adapter) ReadResource(uri string) (*mcp.ReadResourceResult, error) {
	path, err := a.catalog.PathFromURI(uri)
	if err != nil {
		return nil, err
	}

	text, err := a.describe(path)
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: openapi.ResourceMIMEType,
				Text:     text,
			},
		},
	}, nil
}

// ListTools returns the fixed tool set.
func (a *Adapter) ListTools() []*mcp.Tool {
	return tools(a.catalog.BaseURL())
}

// CallTool dispatches a tool call by name. Argument validation failures are
// returned as *ValidationError.
func (a *Adapter) CallTool(ctx context.Context, name string, input ToolInput) (*mcp.CallToolResult, error) {
	var (
		text string
		err  error
	)

	switch name {
	case ToolRequest:
		text, err = a.request(ctx, input)
	case ToolAPIDocumentation:
		text, err = a.documentation()
	case ToolAPIPathSchema:
		text, err = a.pathSchema(input)
	default:
		err = &UnknownToolError{Name: name}
	}

	if err != nil {
		a.logger.Warn().Err(err).Str("tool", name).Msg("tool call failed")
		return nil, err
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil
}

func (a *Adapter) request(ctx context.Context, input ToolInput) (string, error) {
	req, err := decodeRequest(input)
	if err != nil {
		return "", err
	}

	resp, err := a.forwarder.Forward(ctx, req)
	if err != nil {
		return "", err
	}

	return encode(struct {
		Response *forward.Response `json:"response"`
	}{resp})
}

func (a *Adapter) documentation() (string, error) {
	return encode(struct {
		Resources []openapi.Endpoint `json:"resources"`
	}{a.catalog.ListEndpoints()})
}

// pathSchema returns the endpoint description as is, without the envelope
// the other tools put around their results.
func (a *Adapter) pathSchema(input ToolInput) (string, error) {
	path, err := decodePath(input)
	if err != nil {
		return "", err
	}
	return a.describe(path)
}

func (a *Adapter) describe(path string) (string, error) {
	spec, err := a.catalog.DescribeEndpoint(path)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode endpoint description: %w", err)
	}
	return string(data), nil
}

func encode(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode tool result: %w", err)
	}
	return string(data), nil
}
