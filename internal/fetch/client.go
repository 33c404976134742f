package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
)

// Fetch error kinds.
// All fetch failures wrap one of these sentinels so callers can classify
// the outcome with errors.Is without inspecting error strings.
var (
	// ErrFetch indicates the page could not be retrieved: a transport
	// failure (DNS, connection refused, timeout) or a non-success HTTP
	// status.
	ErrFetch = errors.New("fetch failed")

	// ErrParse indicates the response body could not be decoded to text.
	ErrParse = errors.New("parse failed")
)

// Client fetches web pages over HTTP.
//
// Design decision: We wrap *http.Client rather than exposing it because:
//  1. The body size limit and charset decoding belong with the fetch
//  2. Per-site headers and cookies are applied uniformly
//  3. Tests can inject a custom transport via WithHTTPClient
type Client struct {
	// httpClient performs the actual requests.
	httpClient *http.Client

	// userAgent is the User-Agent header to use.
	userAgent string

	// maxBodySize limits the size of response bodies to read.
	maxBodySize int64

	// headers are extra request headers, typically from site config.
	headers map[string]string

	// cookie is an optional Cookie header value, from site config.
	cookie string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size in bytes.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// WithHeaders sets extra HTTP headers to send with the request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.headers = headers
	}
}

// WithCookie sets the Cookie header value to send with the request.
func WithCookie(cookie string) Option {
	return func(c *Client) {
		c.cookie = cookie
	}
}

// WithHTTPClient replaces the underlying HTTP client.
// Options that modify the client, such as WithTimeout, should come after
// this one.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new Client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		userAgent:   "pagetitle/1.0 (+https://github.com/nao1215/pagetitle)",
		maxBodySize: 5 * 1024 * 1024, // 5MB
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Response holds the fully buffered result of a fetch.
type Response struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// ContentType is the MIME type from the Content-Type header.
	ContentType string

	// Headers contains all response headers.
	Headers http.Header

	// Body is the response body decoded to UTF-8.
	Body string
}

// Fetch retrieves the URL and returns the buffered, decoded response.
// The URL is used verbatim; no validation or normalization is performed.
// The body is read fully into memory before returning, so parsing always
// starts after the fetch has completed.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrFetch, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")

	// Decode to UTF-8 based on the declared charset (or sniffed from the
	// body when the header is silent). charset.NewReader needs the first
	// bytes for sniffing, so the limit goes underneath it.
	limited := io.LimitReader(resp.Body, c.maxBodySize)
	decoded, err := charset.NewReader(limited, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	body, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Headers:     resp.Header,
		Body:        string(body),
	}, nil
}
