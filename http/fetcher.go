// Package http provides the network-facing implementations: the
// browser-approximating page fetcher and the vendor API clients (Twitter
// mirror/oEmbed, YouTube oEmbed, Microlink rendering fallback).
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/unfurl-go/unfurl"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// maxBodyBytes bounds how much of a response body is read, so a hostile or
// broken page cannot exhaust memory.
const maxBodyBytes = 16 << 20

// DefaultUserAgent approximates a current desktop Chrome. Several target
// sites return degraded or blocking responses to bot-looking requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// browserHeaders is the fixed header set sent with every page fetch:
// accept/language, client hints, and fetch-context headers matching the
// user agent above.
var browserHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	"sec-ch-ua":                 `"Chromium";v="131", "Not_A Brand";v="24", "Google Chrome";v="131"`,
	"sec-ch-ua-mobile":          "?0",
	"sec-ch-ua-platform":        `"Windows"`,
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Sec-Fetch-User":            "?1",
	"Upgrade-Insecure-Requests": "1",
}

// Ensure Fetcher implements unfurl.Fetcher at compile time.
var _ unfurl.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML with desktop-browser headers and, over HTTPS, a
// browser TLS fingerprint. Any HTTP status yields a Response; only
// transport failures return an error.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHTTPClient replaces the underlying client, bypassing the browser
// TLS transport. Intended for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithUserAgent overrides the default user agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new browser-like Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = newBrowserClient(f.timeout)
	}
	return f
}

// Fetch performs a GET against url and returns the response for any status
// code, reading the body as text in all cases.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*unfurl.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, unfurl.Errorf(unfurl.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, unfurl.Errorf(unfurl.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, unfurl.Errorf(unfurl.EUNAVAILABLE, "read body of %s: %v", url, err)
	}

	status := resp.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return &unfurl.Response{
		StatusCode: resp.StatusCode,
		Status:     status,
		Body:       string(body),
	}, nil
}
