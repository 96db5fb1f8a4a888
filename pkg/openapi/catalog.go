package openapi

import (
	"context"
	_ "embed"
	"fmt"
	"net/url"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// DefaultHost is the upstream NFTGo data API host.
const DefaultHost = "https://data-api.nftgo.io"

// ResourceMIMEType is the MIME type of every endpoint document.
const ResourceMIMEType = "application/json"

const schemaRefPrefix = "#/components/schemas/"

//go:embed nftgo.yaml
var nftgoSpec []byte

// Catalog is the immutable set of documented NFTGo endpoints. It is safe for
// concurrent use since nothing mutates it after Load returns.
type Catalog struct {
	doc     *openapi3.T
	order   []string
	baseURL string
}

// Endpoint is one entry of the endpoint listing.
type Endpoint struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType"`
	Name     string `json:"name"`
}

// EndpointSpec describes how to call a single path.
type EndpointSpec struct {
	Method     string               `json:"method"`
	Parameters []*openapi3.Parameter `json:"parameters,omitempty"`
	Body       *openapi3.Schema     `json:"body,omitempty"`
}

// LoadDefault loads the embedded NFTGo catalog.
func LoadDefault() (*Catalog, error) {
	return Load(nftgoSpec)
}

// Load parses and validates an OpenAPI 3 document and builds a Catalog from it.
func Load(data []byte) (*Catalog, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}

	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}

	order, err := pathOrder(data)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		doc:     doc,
		order:   order,
		baseURL: baseURL(doc),
	}

	if err := c.check(); err != nil {
		return nil, err
	}

	return c, nil
}

func baseURL(doc *openapi3.T) string {
	if len(doc.Servers) > 0 && doc.Servers[0].URL != "" {
		return strings.TrimSuffix(doc.Servers[0].URL, "/")
	}
	return DefaultHost
}

// check enforces the invariants the rest of the package relies on.
func (c *Catalog) check() error {
	if len(c.order) != c.doc.Paths.Len() {
		return &CatalogError{Reason: fmt.Sprintf("found %d path keys but %d paths", len(c.order), c.doc.Paths.Len())}
	}

	for _, path := range c.order {
		item := c.doc.Paths.Value(path)
		if item == nil {
			return &CatalogError{Path: path, Reason: "path is not defined"}
		}

		op := detail(item)
		if op == nil {
			return &CatalogError{Path: path, Reason: "neither GET nor POST is defined"}
		}
		if op.Summary == "" && op.Description == "" {
			return &CatalogError{Path: path, Reason: "operation has neither summary nor description"}
		}

		seen := make(map[string]bool)
		for _, ref := range op.Parameters {
			if ref == nil || ref.Value == nil {
				return &CatalogError{Path: path, Reason: "unresolved parameter"}
			}
			if seen[ref.Value.Name] {
				return &CatalogError{Path: path, Reason: fmt.Sprintf("duplicate parameter %q", ref.Value.Name)}
			}
			seen[ref.Value.Name] = true
		}
	}

	return nil
}

// detail returns the operation used to describe a path. GET wins over POST.
func detail(item *openapi3.PathItem) *openapi3.Operation {
	if item.Get != nil {
		return item.Get
	}
	return item.Post
}

// BaseURL returns the upstream host the catalog documents.
func (c *Catalog) BaseURL() string {
	return c.baseURL
}

// Title returns the document title.
func (c *Catalog) Title() string {
	if c.doc.Info == nil {
		return ""
	}
	return c.doc.Info.Title
}

// Len returns the number of cataloged paths.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Paths returns the cataloged path keys in document order.
func (c *Catalog) Paths() []string {
	paths := make([]string, len(c.order))
	copy(paths, c.order)
	return paths
}

// Has reports whether path is a cataloged path key.
func (c *Catalog) Has(path string) bool {
	return c.doc.Paths.Value(path) != nil
}

// ListEndpoints returns one entry per cataloged path, in document order.
func (c *Catalog) ListEndpoints() []Endpoint {
	endpoints := make([]Endpoint, 0, len(c.order))
	for _, path := range c.order {
		op := detail(c.doc.Paths.Value(path))

		name := op.Summary
		if name == "" {
			name = op.Description
		}

		endpoints = append(endpoints, Endpoint{
			URI:      c.URI(path),
			MIMEType: ResourceMIMEType,
			Name:     name + " API Doc",
		})
	}
	return endpoints
}

// URI builds the resource URI of a path. Characters that are not valid in a
// URL path, such as the braces of path templates, come out percent-encoded.
func (c *Catalog) URI(path string) string {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return c.baseURL + path
	}
	return u.String()
}

// PathFromURI recovers the path key from a resource URI built by URI.
func (c *Catalog) PathFromURI(uri string) (string, error) {
	path, err := url.PathUnescape(strings.Replace(uri, c.baseURL, "", 1))
	if err != nil {
		return "", fmt.Errorf("failed to decode resource URI %q: %w", uri, err)
	}
	return path, nil
}

// Method returns the HTTP method documented for path.
func (c *Catalog) Method(path string) (string, error) {
	item := c.doc.Paths.Value(path)
	if item == nil {
		return "", &EndpointNotFoundError{Path: path}
	}
	if item.Get != nil {
		return "GET", nil
	}
	return "POST", nil
}

// DescribeEndpoint returns the method, parameters and resolved request body
// of a cataloged path.
func (c *Catalog) DescribeEndpoint(path string) (*EndpointSpec, error) {
	item := c.doc.Paths.Value(path)
	if item == nil {
		return nil, &EndpointNotFoundError{Path: path}
	}

	method, _ := c.Method(path)
	op := detail(item)
	spec := &EndpointSpec{Method: method}

	for _, ref := range op.Parameters {
		spec.Parameters = append(spec.Parameters, ref.Value)
	}

	if ref := requestBodyRef(op); ref != "" {
		// A dangling reference leaves the body out, like an absent one.
		if body, err := c.ResolveSchema(ref); err == nil {
			spec.Body = body
		}
	}

	return spec, nil
}

// requestBodyRef returns the $ref of the JSON request body schema, if any.
func requestBodyRef(op *openapi3.Operation) string {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return ""
	}
	media := op.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil {
		return ""
	}
	return media.Schema.Ref
}

// ResolveSchema looks up a component schema by reference ("#/components/schemas/Name")
// or by bare name.
func (c *Catalog) ResolveSchema(ref string) (*openapi3.Schema, error) {
	name := strings.TrimPrefix(ref, schemaRefPrefix)
	if c.doc.Components != nil {
		if schema, ok := c.doc.Components.Schemas[name]; ok && schema != nil && schema.Value != nil {
			return schema.Value, nil
		}
	}
	return nil, &SchemaNotFoundError{Ref: ref}
}
