package openapi

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// pathOrder returns the keys of the top-level "paths" mapping in the order
// they appear in the document. The OpenAPI loader keeps paths in a map, which
// loses that order. JSON documents parse as YAML flow mappings.
func pathOrder(data []byte) ([]string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, &CatalogError{Reason: "empty document"}
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, &CatalogError{Reason: "document is not a mapping"}
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != "paths" {
			continue
		}

		paths := doc.Content[i+1]
		if paths.Kind != yaml.MappingNode {
			return nil, &CatalogError{Reason: "paths is not a mapping"}
		}

		keys := make([]string, 0, len(paths.Content)/2)
		for j := 0; j+1 < len(paths.Content); j += 2 {
			keys = append(keys, paths.Content[j].Value)
		}
		return keys, nil
	}

	return nil, &CatalogError{Reason: "document has no paths"}
}
