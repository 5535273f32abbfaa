package geocoding

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Transport sends a GET request to endpoint with the given query parameters
// and returns the response body. Implementations must be safe for concurrent
// use when the client is shared.
type Transport interface {
	Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultTimeout bounds a single request made by the default transport.
const DefaultTimeout = 10 * time.Second

// HTTPTransport implements Transport on top of an HTTPClient.
type HTTPTransport struct {
	client HTTPClient
}

// NewHTTPTransport creates a transport that sends requests through client.
func NewHTTPTransport(client HTTPClient) *HTTPTransport {
	return &HTTPTransport{client: client}
}

// NewDefaultHTTPTransport creates a transport backed by an *http.Client with
// the given timeout. A non-positive timeout falls back to DefaultTimeout.
func NewDefaultHTTPTransport(timeout time.Duration) *HTTPTransport {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return NewHTTPTransport(&http.Client{Timeout: timeout})
}

// Get performs the request and returns the body of a 2xx response.
// Any other status is reported as a *StatusError.
func (ht *HTTPTransport) Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	reqURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse endpoint URL: %w", err)
	}

	query := reqURL.Query()
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := ht.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
