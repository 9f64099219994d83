// Package webfetch performs HTTP GET requests with the identifying
// headers used by every tool in this repo. One outbound call per Fetch,
// no caching, no retries.
package webfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "jobs-agent/1.0 (+https://github.com/mattvollmer/jobs-agent)"

	// AcceptHTML is the Accept header used for page fetches.
	AcceptHTML = "text/html,application/xhtml+xml"
	// AcceptText is the Accept header used for plain-text document exports.
	AcceptText = "text/plain,text/html;q=0.9,*/*;q=0.8"
)

// Result holds the body and response metadata of a successful fetch.
// Body is only ever populated for 2xx responses.
type Result struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        string
}

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string // e.g. "404 Not Found"
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %s", e.URL, e.Status)
}

// Client fetches web pages via HTTP.
type Client struct {
	http *http.Client
}

// New creates a Client with a default timeout.
func New() *Client {
	return &Client{http: &http.Client{Timeout: defaultTimeout}}
}

// NewWithHTTPClient creates a Client around an existing http.Client.
// Tests use this to point at httptest servers.
func NewWithHTTPClient(hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{http: hc}
}

// Fetch retrieves the given URL expecting an HTML response.
func (c *Client) Fetch(ctx context.Context, url string) (*Result, error) {
	return c.FetchAs(ctx, url, AcceptHTML)
}

// FetchAs retrieves the given URL with an explicit Accept header.
// Non-2xx responses return a *StatusError; the body is discarded.
func (c *Client) FetchAs(ctx context.Context, url, accept string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body of %s: %w", url, err)
	}

	return &Result{
		URL:         url,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(body),
	}, nil
}
