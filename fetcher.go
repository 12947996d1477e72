package unfurl

import "context"

// Response is the outcome of a primary page fetch. The body is captured for
// every status code: anti-bot interstitials and error pages still carry
// markup worth inspecting.
type Response struct {
	// StatusCode is the numeric HTTP status, e.g. 403.
	StatusCode int

	// Status is the full status line, e.g. "403 Forbidden".
	Status string

	// Body is the response body read as text.
	Body string
}

// OK reports whether the status indicates a usable (non-failure) response.
func (r *Response) OK() bool {
	return r.StatusCode < 400
}

// Fetcher retrieves raw HTML from URLs. Implementations approximate a
// desktop browser (headers, TLS fingerprint) because several target sites
// degrade or block responses to bot-looking requests.
//
// A Fetcher returns an error only for transport-level failures; any HTTP
// status, including failures, yields a Response.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Response, error)
}

// Extractor produces a Record from already-fetched HTML. Implementations
// perform no network calls. The original URL is supplied for canonical-URL
// fallback and relative reference resolution.
type Extractor interface {
	Extract(html string, url string) (*Record, error)
}

// Resolver produces a Record for a URL by consulting a vendor or fallback
// API instead of (or in addition to) the page itself. Implementations
// absorb vendor failures where the contract calls for degrading to an
// all-null record, and return ENOTFOUND when they have nothing at all.
type Resolver interface {
	Resolve(ctx context.Context, url string) (*Record, error)
}

// Service is the inbound contract of the engine: one URL in, one normalized
// Record out. It fails only when nothing at all could be extracted.
type Service interface {
	Extract(ctx context.Context, url string) (*Record, error)
}
