// Package alphavantage adapts the Alpha Vantage equity API: global quotes and
// symbol search.
package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
)

const baseURL = "https://www.alphavantage.co"

var (
	// ErrNoQuote is returned when the response carries no quote object.
	ErrNoQuote = errors.New("no quote in response")
	// ErrThrottled is returned when the API answers 200 with a usage note instead of data.
	ErrThrottled = errors.New("throttled by upstream")
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=alphavantage_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the Alpha Vantage API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient performs the requests.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query contains additional query parameters to be sent with each request.
	query url.Values
	// hasKey records whether an API key was configured.
	hasKey bool
}

// ClientOption is a configuration option for the Alpha Vantage client.
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

// NewClient creates a new Alpha Vantage client. An empty key yields a client
// that reports HasKey() == false.
func NewClient(key string, options ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
	}
	if key != "" {
		// https://www.alphavantage.co/documentation/
		c.query.Add("apikey", key)
		c.hasKey = true
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// HasKey reports whether requests will be authenticated.
func (c *Client) HasKey() bool { return c.hasKey }

// get performs GET /query with function and params and decodes into out.
func (c *Client) get(ctx context.Context, function string, params url.Values, out any) error {
	query := maps.Clone(c.query)
	query.Set("function", function)
	for k, vs := range params {
		for _, v := range vs {
			query.Add(k, v)
		}
	}

	u := fmt.Sprintf("%s/query?%s", c.baseURL, query.Encode())
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

	if res.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("unexpected status code: %d: %s", res.StatusCode, string(b))
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", function, err)
	}

	// Usage limits come back as 200 with a single "Note" or "Information" field.
	var notice struct {
		Note        string `json:"Note"`
		Information string `json:"Information"`
		Error       string `json:"Error Message"`
	}
	if err := json.Unmarshal(raw, &notice); err != nil {
		return fmt.Errorf("decoding %s response: %w", function, err)
	}
	switch {
	case notice.Error != "":
		return fmt.Errorf("upstream error: %s", notice.Error)
	case notice.Note != "":
		return fmt.Errorf("%w: %s", ErrThrottled, notice.Note)
	case notice.Information != "":
		return fmt.Errorf("%w: %s", ErrThrottled, notice.Information)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", function, err)
	}
	return nil
}
