package mcp

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names.
const (
	ToolRequest          = "request"
	ToolAPIPathSchema    = "api-path-schema"
	ToolAPIDocumentation = "api-documentation"
)

// ToolInput is the raw argument object of a tool call.
type ToolInput map[string]interface{}

// tools returns the fixed tool set. It does not depend on the catalog.
func tools(host string) []*mcp.Tool {
	return []*mcp.Tool{
		{
			Name:        ToolRequest,
			Description: fmt.Sprintf("Make an HTTP to NFTGo API(%s) request with curl", host),
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"type": {
						Type:        "string",
						Description: "Type of the request. GET, POST, PUT, DELETE",
					},
					"url": {
						Type:        "string",
						Description: "Url to make the request to",
					},
					"headers": {
						Type:        "object",
						Description: "Headers to include in the request",
					},
					"body": {
						Description: "Body to include in the request",
					},
				},
				Required: []string{"type", "url", "headers", "body"},
			},
		},
		{
			Name:        ToolAPIPathSchema,
			Description: "Get detail description and parameters of a NFT API path",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"path": {
						Type:        "string",
						Description: "Path to get the api detail of, format should be like: /eth/v1/nft/name/{keywords} or /eth/v1/nft/{contract}/{tokenId}/metrics",
					},
				},
				Required: []string{"path"},
			},
		},
		{
			Name:        ToolAPIDocumentation,
			Description: "Get all NFT API documentation and endpoints",
			InputSchema: &jsonschema.Schema{
				Type:       "object",
				Properties: map[string]*jsonschema.Schema{},
				Required:   []string{},
			},
		},
	}
}
