package openapi

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const bothMethodsDoc = `
openapi: 3.0.1
info:
  title: Test API
  version: "1"
servers:
  - url: https://api.example.com/
paths:
  /items:
    post:
      summary: Create Item
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Item'
      responses:
        '200':
          description: OK
    get:
      summary: List Items
      parameters:
        - name: limit
          in: query
          schema:
            type: integer
      responses:
        '200':
          description: OK
  /items/create:
    post:
      description: Create an item
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Item'
      responses:
        '200':
          description: OK
components:
  schemas:
    Item:
      type: object
      properties:
        name:
          type: string
`

func loadDefault(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error: %v", err)
	}
	return c
}

func TestLoadDefault(t *testing.T) {
	c := loadDefault(t)

	if c.BaseURL() != DefaultHost {
		t.Errorf("BaseURL() = %q, expected %q", c.BaseURL(), DefaultHost)
	}
	if c.Title() != "NFTGo Data API" {
		t.Errorf("Title() = %q", c.Title())
	}

	endpoints := c.ListEndpoints()
	if len(endpoints) != c.doc.Paths.Len() {
		t.Fatalf("ListEndpoints() returned %d entries, expected %d", len(endpoints), c.doc.Paths.Len())
	}

	seen := make(map[string]bool)
	for _, e := range endpoints {
		if seen[e.URI] {
			t.Errorf("duplicate URI %s", e.URI)
		}
		seen[e.URI] = true

		if !strings.HasSuffix(e.Name, " API Doc") || strings.TrimSuffix(e.Name, " API Doc") == "" {
			t.Errorf("unexpected display name %q for %s", e.Name, e.URI)
		}
		if e.MIMEType != "application/json" {
			t.Errorf("MIMEType = %q for %s", e.MIMEType, e.URI)
		}
	}
}

func TestListEndpointsOrder(t *testing.T) {
	c := loadDefault(t)
	endpoints := c.ListEndpoints()

	first := endpoints[0]
	if first.URI != "https://data-api.nftgo.io/eth/v1/nft/%7Bcontract%7D/%7BtokenId%7D/info" {
		t.Errorf("first URI = %s", first.URI)
	}
	if first.Name != "Get NFT Info API Doc" {
		t.Errorf("first name = %s", first.Name)
	}

	// The last entry only carries a description.
	last := endpoints[len(endpoints)-1]
	if last.URI != "https://data-api.nftgo.io/eth/v1/price" {
		t.Errorf("last URI = %s", last.URI)
	}
	if last.Name != "Return the latest ETH price in USD. API Doc" {
		t.Errorf("last name = %s", last.Name)
	}

	paths := c.Paths()
	for i, e := range endpoints {
		if e.URI != c.URI(paths[i]) {
			t.Errorf("entry %d: URI %s does not match path %s", i, e.URI, paths[i])
		}
	}
}

func TestURIRoundTrip(t *testing.T) {
	c := loadDefault(t)

	for _, e := range c.ListEndpoints() {
		path, err := c.PathFromURI(e.URI)
		if err != nil {
			t.Errorf("PathFromURI(%s) error: %v", e.URI, err)
			continue
		}
		if !c.Has(path) {
			t.Errorf("PathFromURI(%s) = %s, not a cataloged path", e.URI, path)
		}
		if _, err := c.DescribeEndpoint(path); err != nil {
			t.Errorf("DescribeEndpoint(%s) error: %v", path, err)
		}
	}
}

func TestPathFromURIInvalidEscape(t *testing.T) {
	c := loadDefault(t)

	if _, err := c.PathFromURI(DefaultHost + "/eth/v1/%zz"); err == nil {
		t.Error("expected error for malformed escape")
	}
}

func TestDescribeEndpoint(t *testing.T) {
	c := loadDefault(t)

	tests := []struct {
		name       string
		path       string
		method     string
		params     []string
		bodyFields []string
	}{
		{
			name:   "query parameters",
			path:   "/eth/v1/nft/holders",
			method: "GET",
			params: []string{"contract_address", "token_ids", "offset", "limit"},
		},
		{
			name:   "path parameters from components",
			path:   "/eth/v1/nft/{contract}/{tokenId}/metrics",
			method: "GET",
			params: []string{"contract", "tokenId"},
		},
		{
			name:   "no parameters",
			path:   "/eth/v1/market/metrics",
			method: "GET",
		},
		{
			name:       "post with body",
			path:       "/eth/v1/nft/batch-info",
			method:     "POST",
			bodyFields: []string{"nft_list"},
		},
		{
			name:       "post with array body",
			path:       "/eth/v1/address/batch-metrics",
			method:     "POST",
			bodyFields: []string{"addresses"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := c.DescribeEndpoint(tt.path)
			if err != nil {
				t.Fatalf("DescribeEndpoint() error: %v", err)
			}

			if spec.Method != tt.method {
				t.Errorf("Method = %s, expected %s", spec.Method, tt.method)
			}

			if len(spec.Parameters) != len(tt.params) {
				t.Fatalf("got %d parameters, expected %d", len(spec.Parameters), len(tt.params))
			}
			for i, name := range tt.params {
				if spec.Parameters[i].Name != name {
					t.Errorf("parameter %d = %s, expected %s", i, spec.Parameters[i].Name, name)
				}
			}

			if tt.bodyFields == nil {
				if spec.Body != nil {
					t.Error("expected no body")
				}
				return
			}
			if spec.Body == nil {
				t.Fatal("expected body schema")
			}
			for _, field := range tt.bodyFields {
				if _, ok := spec.Body.Properties[field]; !ok {
					t.Errorf("body is missing property %s", field)
				}
			}
		})
	}
}

func TestDescribeEndpointJSON(t *testing.T) {
	c := loadDefault(t)

	spec, err := c.DescribeEndpoint("/eth/v1/nft/batch-info")
	if err != nil {
		t.Fatalf("DescribeEndpoint() error: %v", err)
	}

	data, err := json.Marshal(spec)
	if err != nil {
		t.Fatalf("json.Marshal() error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if decoded["method"] != "POST" {
		t.Errorf("method = %v", decoded["method"])
	}
	if _, ok := decoded["parameters"]; ok {
		t.Error("parameters should be omitted when the endpoint has none")
	}
	body, ok := decoded["body"].(map[string]interface{})
	if !ok {
		t.Fatalf("body = %v", decoded["body"])
	}
	if body["type"] != "object" {
		t.Errorf("body type = %v", body["type"])
	}
}

func TestDescribeEndpointNotFound(t *testing.T) {
	c := loadDefault(t)

	_, err := c.DescribeEndpoint("/eth/v1/does-not-exist")
	if !errors.Is(err, ErrEndpointNotFound) {
		t.Fatalf("expected ErrEndpointNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "/eth/v1/does-not-exist") {
		t.Errorf("error %q does not name the path", err)
	}
}

func TestGetTakesPrecedenceOverPost(t *testing.T) {
	c, err := Load([]byte(bothMethodsDoc))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if c.BaseURL() != "https://api.example.com" {
		t.Errorf("BaseURL() = %s", c.BaseURL())
	}

	spec, err := c.DescribeEndpoint("/items")
	if err != nil {
		t.Fatalf("DescribeEndpoint() error: %v", err)
	}
	if spec.Method != "GET" {
		t.Errorf("Method = %s, expected GET", spec.Method)
	}
	if len(spec.Parameters) != 1 || spec.Parameters[0].Name != "limit" {
		t.Errorf("unexpected parameters %v", spec.Parameters)
	}
	if spec.Body != nil {
		t.Error("GET description should not carry the POST body")
	}

	endpoints := c.ListEndpoints()
	if len(endpoints) != 2 {
		t.Fatalf("got %d endpoints", len(endpoints))
	}
	if endpoints[0].Name != "List Items API Doc" {
		t.Errorf("name = %s", endpoints[0].Name)
	}
	if endpoints[1].Name != "Create an item API Doc" {
		t.Errorf("name = %s", endpoints[1].Name)
	}
}

func TestLoadRejectsInvalidCatalog(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "put only",
			doc: `
openapi: 3.0.1
info:
  title: Test API
  version: "1"
paths:
  /items:
    put:
      summary: Replace Items
      responses:
        '200':
          description: OK
`,
		},
		{
			name: "no summary or description",
			doc: `
openapi: 3.0.1
info:
  title: Test API
  version: "1"
paths:
  /items:
    get:
      responses:
        '200':
          description: OK
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc))
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestLoadRejectsMalformedDocument(t *testing.T) {
	if _, err := Load([]byte("not: [an openapi document")); err == nil {
		t.Error("expected error for malformed document")
	}
}

func TestResolveSchema(t *testing.T) {
	c := loadDefault(t)

	tests := []struct {
		name  string
		ref   string
		found bool
	}{
		{name: "full reference", ref: "#/components/schemas/NFTBatchInfoRequest", found: true},
		{name: "bare name", ref: "NFTKey", found: true},
		{name: "missing", ref: "#/components/schemas/Missing", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := c.ResolveSchema(tt.ref)
			if tt.found {
				if err != nil || schema == nil {
					t.Errorf("ResolveSchema(%s) = %v, %v", tt.ref, schema, err)
				}
				return
			}
			if !errors.Is(err, ErrSchemaNotFound) {
				t.Errorf("expected ErrSchemaNotFound, got %v", err)
			}
		})
	}
}

func TestPathOrder(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected []string
	}{
		{
			name:     "yaml",
			data:     "paths:\n  /z: {}\n  /a: {}\n  /m: {}\n",
			expected: []string{"/z", "/a", "/m"},
		},
		{
			name:     "json",
			data:     `{"openapi": "3.0.1", "paths": {"/z": {}, "/a": {}}}`,
			expected: []string{"/z", "/a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := pathOrder([]byte(tt.data))
			if err != nil {
				t.Fatalf("pathOrder() error: %v", err)
			}
			if strings.Join(order, ",") != strings.Join(tt.expected, ",") {
				t.Errorf("pathOrder() = %v, expected %v", order, tt.expected)
			}
		})
	}

	if _, err := pathOrder([]byte("openapi: 3.0.1\n")); !errors.Is(err, ErrInvalidCatalog) {
		t.Errorf("expected ErrInvalidCatalog for a document without paths, got %v", err)
	}
}
