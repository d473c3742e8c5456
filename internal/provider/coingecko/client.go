// Package coingecko adapts the CoinGecko public API: the coin catalog, simple
// prices, and the trending feed, plus the ticker-to-coin-id resolution on top.
package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"mime"
	"net/http"
	"net/url"
)

const baseURL = "https://api.coingecko.com/api/v3"

// apiKeyHeader authenticates demo-plan keys.
const apiKeyHeader = "x-cg-demo-api-key"

var (
	// ErrUnexpectedContentType is returned when a 2xx response is not JSON.
	ErrUnexpectedContentType = errors.New("unexpected content type")
	// ErrMissingField is returned when a response lacks a required field.
	ErrMissingField = errors.New("missing field")
	// ErrRateLimited is returned when the API answers 429.
	ErrRateLimited = errors.New("rate limited")
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=coingecko_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the CoinGecko API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient performs the requests.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query contains additional query parameters to be sent with each request.
	query url.Values
}

// ClientOption is a configuration option for the CoinGecko client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithAPIKey authenticates requests with a demo API key. Empty keys are ignored;
// the public endpoints work without one at a lower rate limit.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		if key != "" {
			c.header.Set(apiKeyHeader, key)
		}
	}
}

// NewClient creates a new CoinGecko client.
func NewClient(options ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{"Accept": []string{"application/json"}},
		query:      url.Values{},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// getJSON performs a GET on path and decodes a JSON body into out.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	query := maps.Clone(c.query)
	for k, vs := range params {
		for _, v := range vs {
			query.Add(k, v)
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, path)
	case res.StatusCode < 200 || res.StatusCode >= 300:
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("unexpected status code: %d: %s", res.StatusCode, string(b))
	}

	mediaType, _, err := mime.ParseMediaType(res.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return fmt.Errorf("%w: %q", ErrUnexpectedContentType, res.Header.Get("Content-Type"))
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
