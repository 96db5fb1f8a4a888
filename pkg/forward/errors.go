package forward

import (
	"errors"
	"fmt"
)

var (
	// ErrHTTPStatus matches any *HTTPError.
	ErrHTTPStatus = errors.New("upstream http error")

	// ErrTransport matches any *TransportError.
	ErrTransport = errors.New("transport error")
)

// HTTPError is returned when the upstream answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrHTTPStatus
}

// TransportError wraps a network level failure (DNS, connection, timeout).
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
