package geocoding_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/UnknownOlympus/mapquest/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func TestHTTPTransport_Get(t *testing.T) {
	ctx := t.Context()
	params := url.Values{"key": {"test-api-key"}, "location": {"Kyiv, Khreshchatyk 1"}}

	t.Run("successful request", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Equal(t, "geocoding.test", req.URL.Host)
				assert.Equal(t, "/geocoding/v1/address", req.URL.Path)
				assert.Equal(t, "test-api-key", req.URL.Query().Get("key"))
				assert.Equal(t, "Kyiv, Khreshchatyk 1", req.URL.Query().Get("location"))
				assert.Equal(t, "application/json", req.Header.Get("Accept"))

				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`{"ok":true}`)),
				}, nil
			},
		}

		transport := geocoding.NewHTTPTransport(mockClient)
		body, err := transport.Get(ctx, "https://geocoding.test/geocoding/v1/address", params)

		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true}`, string(body))
	})

	t.Run("endpoint query is kept", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "json", req.URL.Query().Get("outFormat"))
				assert.Equal(t, "test-api-key", req.URL.Query().Get("key"))

				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`{}`)),
				}, nil
			},
		}

		transport := geocoding.NewHTTPTransport(mockClient)
		_, err := transport.Get(ctx, "https://geocoding.test/address?outFormat=json", params)

		require.NoError(t, err)
	})

	t.Run("non-2xx status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusForbidden,
					Body:       io.NopCloser(bytes.NewBufferString(`The AppKey submitted with this request is invalid.`)),
				}, nil
			},
		}

		transport := geocoding.NewHTTPTransport(mockClient)
		body, err := transport.Get(ctx, "https://geocoding.test/address", params)

		require.Nil(t, body)
		var statusErr *geocoding.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusForbidden, statusErr.Code)
		assert.Contains(t, err.Error(), "geocoding API returned status 403")
	})

	t.Run("HTTP client returns error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		transport := geocoding.NewHTTPTransport(mockClient)
		body, err := transport.Get(ctx, "https://geocoding.test/address", params)

		require.Nil(t, body)
		require.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "failed to execute geocoding request")
	})

	t.Run("invalid endpoint", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("HTTP client should not be called for an invalid endpoint")
				return nil, nil
			},
		}

		transport := geocoding.NewHTTPTransport(mockClient)
		_, err := transport.Get(ctx, "://missing-scheme", params)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse endpoint URL")
	})

	t.Run("context cancellation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				return nil, req.Context().Err()
			},
		}

		transport := geocoding.NewHTTPTransport(mockClient)
		_, err := transport.Get(cancelled, "https://geocoding.test/address", params)

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestClient_OverHTTP(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()

		switch r.URL.Path {
		case "/geocoding/v1/address":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(readFixture(t, "geocode.json"))
		case "/geocoding/v1/reverse":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("internal error"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	transport := geocoding.NewHTTPTransport(server.Client())
	client := geocoding.NewWithTransport(transport, server.URL+"/geocoding/v1", "secret", slog.Default())

	t.Run("forward geocoding", func(t *testing.T) {
		address := "1600 Amphitheatre Parkway, Mountain View, CA"
		resp, err := client.Geocode(t.Context(), address)

		require.NoError(t, err)
		assert.Equal(t, "secret", gotQuery.Get("key"))
		assert.Equal(t, address, gotQuery.Get("location"))
		require.Len(t, resp.Results, 1)
		assert.Equal(t, address, resp.Results[0].ProvidedLocation.Location)
	})

	t.Run("reverse geocoding server error", func(t *testing.T) {
		resp, err := client.ReverseGeocode(t.Context(), 37.4224, -122.0841)

		require.Nil(t, resp)
		assert.Equal(t, "37.4224,-122.0841", gotQuery.Get("location"))
		require.ErrorIs(t, err, geocoding.ErrTransport)

		var statusErr *geocoding.StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
		assert.Equal(t, "internal error", statusErr.Body)
	})
}

func TestNewDefaultHTTPTransport(t *testing.T) {
	require.NotNil(t, geocoding.NewDefaultHTTPTransport(0))
	require.NotNil(t, geocoding.NewDefaultHTTPTransport(geocoding.DefaultTimeout))
}
