package openapi

import (
	"errors"
	"fmt"
)

var (
	// ErrEndpointNotFound indicates a path key that is not in the catalog.
	ErrEndpointNotFound = errors.New("endpoint not found")

	// ErrSchemaNotFound indicates a schema reference with no matching definition.
	ErrSchemaNotFound = errors.New("schema not found")

	// ErrInvalidCatalog indicates a document that violates the catalog invariants.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// EndpointNotFoundError is returned for a path that was never listed.
type EndpointNotFoundError struct {
	Path string
}

func (e *EndpointNotFoundError) Error() string {
	return fmt.Sprintf("endpoint not found: %s", e.Path)
}

func (e *EndpointNotFoundError) Is(target error) bool {
	return target == ErrEndpointNotFound
}

// SchemaNotFoundError is returned by ResolveSchema.
type SchemaNotFoundError struct {
	Ref string
}

func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("schema not found: %s", e.Ref)
}

func (e *SchemaNotFoundError) Is(target error) bool {
	return target == ErrSchemaNotFound
}

// CatalogError reports why a document cannot be used as a catalog.
type CatalogError struct {
	Path   string
	Reason string
}

func (e *CatalogError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid catalog: %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("invalid catalog: %s", e.Reason)
}

func (e *CatalogError) Is(target error) bool {
	return target == ErrInvalidCatalog
}
