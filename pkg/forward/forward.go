// Package forward relays single HTTP requests to the NFTGo API on behalf of a
// tool caller.
package forward

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// APIKeyHeader carries the NFTGo API key on every forwarded request.
const APIKeyHeader = "X-API-KEY"

// Methods lists the HTTP methods the forwarder accepts.
var Methods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}

// Request is a single call to forward.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    interface{}
}

// Response is the upstream outcome, relayed unmodified.
type Response struct {
	Status  int               `json:"status"`
	Data    string            `json:"data"`
	Headers map[string]string `json:"headers"`
}

// Forwarder issues requests with the configured API key injected.
type Forwarder struct {
	apiKey string
	client *http.Client
	logger zerolog.Logger
}

// New returns a Forwarder. If httpClient is nil, a client with no timeout is
// used.
func New(apiKey string, httpClient *http.Client, logger zerolog.Logger) *Forwarder {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Forwarder{apiKey: apiKey, client: httpClient, logger: logger}
}

// ValidMethod reports whether method is one of Methods.
func ValidMethod(method string) bool {
	for _, m := range Methods {
		if m == method {
			return true
		}
	}
	return false
}

// Forward performs exactly one HTTP request. A non-2xx status yields an
// *HTTPError, a network failure a *TransportError. Nothing is retried.
func (f *Forwarder) Forward(ctx context.Context, req Request) (*Response, error) {
	if !ValidMethod(req.Method) {
		return nil, fmt.Errorf("unsupported method %q", req.Method)
	}

	body, err := encodeBody(req.Method, req.Body)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	setHeaders(httpReq, req.Headers, f.apiKey, body != nil)

	resp, err := f.client.Do(httpReq)
	if err != nil {
		f.logger.Error().Err(err).Str("method", req.Method).Str("url", req.URL).Msg("request failed")
		return nil, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}
	defer resp.Body.Close()

	f.logger.Debug().Str("method", req.Method).Str("url", req.URL).Int("status", resp.StatusCode).Msg("forwarded request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		f.logger.Error().Err(err).Str("method", req.Method).Str("url", req.URL).Msg("failed to read response body")
		return nil, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}

	return &Response{
		Status:  resp.StatusCode,
		Data:    string(data),
		Headers: flattenHeaders(resp.Header),
	}, nil
}

// encodeBody serializes the body for POST and PUT. Other methods never send one.
func encodeBody(method string, body interface{}) ([]byte, error) {
	if body == nil || (method != http.MethodPost && method != http.MethodPut) {
		return nil, nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return data, nil
}

// setHeaders copies the caller headers and then sets the API key, so a caller
// supplied key under any casing is replaced.
func setHeaders(req *http.Request, headers map[string]string, apiKey string, hasBody bool) {
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	if hasBody && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	req.Header.Set(APIKeyHeader, apiKey)
}

// flattenHeaders lowercases header names and joins repeated values.
func flattenHeaders(header http.Header) map[string]string {
	flat := make(map[string]string, len(header))
	for key, values := range header {
		flat[strings.ToLower(key)] = strings.Join(values, ", ")
	}
	return flat
}
