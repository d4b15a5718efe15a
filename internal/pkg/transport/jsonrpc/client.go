// Package jsonrpc provides a JSON-RPC 2.0 client over HTTP.
//
// Requests go through the retrying client of the transport/http package. Errors
// are classified so callers can tell transport failures, HTTP rate limiting and
// provider-side error objects apart with errors.Is and errors.As.
package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	transporthttp "github.com/gabapcia/transferwatch/internal/pkg/transport/http"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

var (
	// ErrProviderReturnedError indicates that the remote JSON-RPC server returned an error response.
	ErrProviderReturnedError = errors.New("provider error")

	// ErrTransport indicates that no usable JSON-RPC response was received: the
	// request failed, timed out, or the server answered with something other than
	// a JSON-RPC payload.
	ErrTransport = errors.New("transport failure")

	// ErrRateLimited indicates that the provider rejected the request for exceeding
	// its rate limit, either with HTTP 429 or with a rate-limit error object.
	ErrRateLimited = errors.New("rate limited")
)

// Provider error codes commonly used to signal rate limiting.
const (
	codeLimitExceeded    = -32005
	codeRequestThrottled = -32029
)

// ProviderError is the error object of a JSON-RPC response.
type ProviderError struct {
	Code    int    `json:"code"`    // error code defined by JSON-RPC 2.0 or the server
	Message string `json:"message"` // human-readable error message
}

// Error formats the provider error with its code and message.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: [%d] - %s", ErrProviderReturnedError, e.Code, e.Message)
}

// Unwrap makes errors.Is(err, ErrProviderReturnedError) hold.
func (e *ProviderError) Unwrap() error {
	return ErrProviderReturnedError
}

// IsRateLimit reports whether the error object signals rate limiting.
func (e *ProviderError) IsRateLimit() bool {
	if e.Code == codeLimitExceeded || e.Code == codeRequestThrottled {
		return true
	}

	msg := strings.ToLower(e.Message)
	return strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "limit exceeded") ||
		strings.Contains(msg, "too many requests")
}

// response represents a standard JSON-RPC 2.0 response.
type response struct {
	JsonRPC string          `json:"jsonrpc"` // JSON-RPC protocol version (usually "2.0")
	Error   *ProviderError  `json:"error"`   // set when the call failed
	Result  json.RawMessage `json:"result"`  // raw result payload returned by the server
}

// Err returns the error described by the response, if any. Rate-limit error
// objects also match ErrRateLimited.
func (r response) Err() error {
	if r.Error == nil {
		return nil
	}

	if r.Error.IsRateLimit() {
		return fmt.Errorf("%w: %w", ErrRateLimited, r.Error)
	}

	return r.Error
}

// Client defines the interface for a generic JSON-RPC client.
// It can be used to abstract the underlying implementation and facilitate mocking or testing.
type Client interface {
	// Fetch sends a JSON-RPC request with the given method name and parameters.
	// It returns the raw JSON result or an error if the request or response fails.
	Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error)
}

// client is the default implementation of the Client interface.
type client struct {
	providerEndpoint string                // the URL of the remote JSON-RPC server
	httpClient       *retryablehttp.Client // the HTTP client used to perform requests
}

// Compile-time assertion that client implements the Client interface.
var _ Client = (*client)(nil)

// Fetch sends a JSON-RPC request to the remote server with the given method and parameters.
// The `id` field in the request is generated as a UUID string.
//
// Errors:
//   - ErrTransport: the request failed or the response was not JSON-RPC
//   - ErrRateLimited: HTTP 429 or a rate-limit error object
//   - *ProviderError (matching ErrProviderReturnedError): any other error object
func (c *client) Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}

	body, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      uuid.NewString(),
		"method":  method,
		"params":  params,
	})
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.providerEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if res != nil {
		defer res.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTransport, method, err)
	}

	if res.StatusCode == http.StatusTooManyRequests {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("%w: %s: http status %d", ErrRateLimited, method, res.StatusCode)
	}

	var data response
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %s: http status %d: decode response: %w", ErrTransport, method, res.StatusCode, err)
	}

	if err := data.Err(); err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: http status %d", ErrTransport, method, res.StatusCode)
	}

	return data.Result, nil
}

// Option configures the underlying HTTP client.
type Option = transporthttp.Option

// Options of the underlying HTTP client, re-exported for convenience.
var (
	WithTimeout      = transporthttp.WithTimeout
	WithRetryWaitMin = transporthttp.WithRetryWaitMin
	WithRetryWaitMax = transporthttp.WithRetryWaitMax
	WithRetryMax     = transporthttp.WithRetryMax
)

// NewClient returns a Client that sends JSON-RPC requests to providerEndpoint
// through a retrying HTTP client built with opts.
func NewClient(providerEndpoint string, opts ...Option) *client {
	return &client{
		providerEndpoint: providerEndpoint,
		httpClient:       transporthttp.NewClient(opts...),
	}
}
