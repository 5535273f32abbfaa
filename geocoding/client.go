// Package geocoding is a client for the MapQuest Geocoding API v1.
//
// The client sends one GET request per call through a Transport and decodes
// the JSON body into the types of the models package. It does not interpret
// the status envelope of the response: a body with a non-zero
// Info.StatusCode is returned as-is and callers decide what to do with it.
package geocoding

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/UnknownOlympus/mapquest/models"
)

// BaseURL is the MapQuest geocoding API base URL.
const BaseURL = "http://www.mapquestapi.com/geocoding/v1"

// maxLoggedBody caps how much of an undecodable body is written to the log.
const maxLoggedBody = 256

// Endpoint paths, relative to the base URL.
const (
	EndpointAddress = "/address"
	EndpointReverse = "/reverse"
)

// Outcomes reported to a RequestObserver.
const (
	OutcomeSuccess        = "success"
	OutcomeTransportError = "transport_error"
	OutcomeDecodeError    = "decode_error"
)

// RequestObserver receives one observation per call made by the client.
type RequestObserver interface {
	ObserveRequest(endpoint, outcome string, duration time.Duration, locations int)
}

// Client talks to the geocoding API. It holds no mutable state and can be
// shared between goroutines as long as its Transport can.
type Client struct {
	transport Transport       // transport sends the requests
	baseURL   string          // baseURL is prepended to the endpoint paths
	apiKey    string          // apiKey is sent as the "key" query parameter
	log       *slog.Logger    // log is the logger for logging operations
	observer  RequestObserver // observer is optional
}

// New creates a client for the public API using an HTTP transport with the
// default timeout. The key is not validated and no request is made.
// You can get an API key at https://developer.mapquest.com/user/me/apps
func New(apiKey string, log *slog.Logger) *Client {
	return NewWithTransport(NewDefaultHTTPTransport(DefaultTimeout), BaseURL, apiKey, log)
}

// NewWithTransport creates a client that sends its requests through transport
// to the API rooted at baseURL.
func NewWithTransport(transport Transport, baseURL, apiKey string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		transport: transport,
		baseURL:   baseURL,
		apiKey:    apiKey,
		log:       log,
	}
}

// BaseURL returns the URL the endpoint paths are appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WithObserver returns a copy of the client that reports every call to observer.
func (c *Client) WithObserver(observer RequestObserver) *Client {
	clone := *c
	clone.observer = observer
	return &clone
}

// Geocode finds the latitude and longitude of an address (forward geocoding).
// The address is sent verbatim as the "location" parameter.
// See https://developer.mapquest.com/documentation/geocoding-api/address/get/
func (c *Client) Geocode(ctx context.Context, address string) (*models.GeocodeResponse, error) {
	return fetch(ctx, c, "geocode", EndpointAddress, address,
		func(resp *models.GeocodeResponse) [][]models.Location {
			groups := make([][]models.Location, 0, len(resp.Results))
			for _, result := range resp.Results {
				groups = append(groups, result.Locations)
			}
			return groups
		})
}

// ReverseGeocode finds the address, or the nearest address point, of a
// latitude/longitude pair.
// See https://developer.mapquest.com/documentation/geocoding-api/reverse/get
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float32) (*models.ReverseGeocodeResponse, error) {
	return fetch(ctx, c, "reverse geocode", EndpointReverse, FormatLatLng(lat, lng),
		func(resp *models.ReverseGeocodeResponse) [][]models.Location {
			groups := make([][]models.Location, 0, len(resp.Results))
			for _, result := range resp.Results {
				groups = append(groups, result.Locations)
			}
			return groups
		})
}

// FormatLatLng renders a point as "<lat>,<lng>" using the shortest decimal
// representation of each single-precision value. Non-finite values are
// written as "+Inf", "-Inf" and "NaN" and are not checked.
func FormatLatLng(lat, lng float32) string {
	return strconv.FormatFloat(float64(lat), 'f', -1, 32) + "," + strconv.FormatFloat(float64(lng), 'f', -1, 32)
}

// fetch performs one request against path and decodes the body into T.
// locations flattens the decoded candidates for logging and observation.
func fetch[T any](
	ctx context.Context,
	c *Client,
	op, path, location string,
	locations func(*T) [][]models.Location,
) (*T, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("location", location)

	c.log.DebugContext(ctx, "Sending geocoding request", "op", op, "endpoint", path, "location", location)

	start := time.Now()
	body, err := c.transport.Get(ctx, c.baseURL+path, params)
	if err != nil {
		c.observe(path, OutcomeTransportError, time.Since(start), 0)
		c.log.ErrorContext(ctx, "Geocoding request failed", "op", op, "endpoint", path, "error", err)
		return nil, &TransportError{Op: op, Err: err}
	}

	var resp T
	if err = json.Unmarshal(body, &resp); err != nil {
		c.observe(path, OutcomeDecodeError, time.Since(start), 0)
		c.log.ErrorContext(ctx, "Failed to decode geocoding response",
			"op", op, "error", err, "body_length", len(body), "body_prefix", bodyPrefix(body))
		return nil, &DecodeError{Op: op, Err: err}
	}

	count := 0
	for _, group := range locations(&resp) {
		count += len(group)
		for _, loc := range group {
			if !loc.DisplayLatLng.InRange() {
				c.log.DebugContext(ctx, "Service returned an out-of-range display coordinate",
					"op", op, "lat", loc.DisplayLatLng.Lat, "lng", loc.DisplayLatLng.Lng)
			}
		}
	}
	c.observe(path, OutcomeSuccess, time.Since(start), count)
	c.log.DebugContext(ctx, "Geocoding request completed", "op", op, "endpoint", path, "locations", count)

	return &resp, nil
}

func bodyPrefix(body []byte) string {
	if len(body) <= maxLoggedBody {
		return string(body)
	}
	return string(body[:maxLoggedBody])
}

func (c *Client) observe(endpoint, outcome string, duration time.Duration, locations int) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveRequest(endpoint, outcome, duration, locations)
}
