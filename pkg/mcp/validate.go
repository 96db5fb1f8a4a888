package mcp

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kumolabai/nftgo-mcp/pkg/forward"
)

// ErrInvalidArguments matches any *ValidationError.
var ErrInvalidArguments = errors.New("invalid arguments")

// FieldIssue is a single failed check on a tool argument.
type FieldIssue struct {
	Path    string
	Message string
}

// ValidationError lists every argument that failed validation.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Path, issue.Message))
	}
	return "Invalid arguments: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArguments
}

type validator struct {
	issues []FieldIssue
}

func (v *validator) fail(path, format string, args ...interface{}) {
	v.issues = append(v.issues, FieldIssue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) err() error {
	if len(v.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: v.issues}
}

// str checks that key holds a string.
func (v *validator) str(input ToolInput, key string) (string, bool) {
	value, exists := input[key]
	if !exists {
		v.fail(key, "Required")
		return "", false
	}
	s, ok := value.(string)
	if !ok {
		v.fail(key, "Expected string, received %s", typeName(value))
		return "", false
	}
	return s, true
}

// decodeRequest validates the arguments of the request tool. All four fields
// must be present; body may be null.
func decodeRequest(input ToolInput) (forward.Request, error) {
	v := &validator{}
	var req forward.Request

	if method, ok := v.str(input, "type"); ok {
		if forward.ValidMethod(method) {
			req.Method = method
		} else {
			v.fail("type", "Invalid enum value. Expected %s, received '%s'", quoteMethods(), method)
		}
	}

	if url, ok := v.str(input, "url"); ok {
		req.URL = url
	}

	if value, exists := input["headers"]; !exists {
		v.fail("headers", "Required")
	} else if headers, ok := value.(map[string]interface{}); !ok {
		v.fail("headers", "Expected object, received %s", typeName(value))
	} else {
		req.Headers = make(map[string]string, len(headers))
		keys := make([]string, 0, len(headers))
		for key := range headers {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			s, ok := headers[key].(string)
			if !ok {
				v.fail("headers."+key, "Expected string, received %s", typeName(headers[key]))
				continue
			}
			req.Headers[key] = s
		}
	}

	if body, exists := input["body"]; !exists {
		v.fail("body", "Required")
	} else {
		req.Body = body
	}

	if err := v.err(); err != nil {
		return forward.Request{}, err
	}
	return req, nil
}

// decodePath validates the arguments of the api-path-schema tool.
func decodePath(input ToolInput) (string, error) {
	v := &validator{}
	path, _ := v.str(input, "path")
	return path, v.err()
}

func quoteMethods() string {
	quoted := make([]string, len(forward.Methods))
	for i, m := range forward.Methods {
		quoted[i] = "'" + m + "'"
	}
	return strings.Join(quoted, " | ")
}

// typeName names the JSON type of a decoded value.
func typeName(value interface{}) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32:
		return "number"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}
