// Package extract composes the fetcher, classifiers, extractors, and
// fallback clients into the extraction orchestrator. It owns the overall
// control flow: fetch-or-API decision, challenge detection, routing, and
// the fallback policy.
package extract

import (
	"context"

	"github.com/unfurl-go/unfurl"
)

// Ensure Service implements unfurl.Service at compile time.
var _ unfurl.Service = (*Service)(nil)

// Service is the extraction entry point. Exactly one network call chain
// runs per Extract invocation, strictly sequential: later calls are gated
// on the outcome of earlier ones, never issued speculatively. The service
// holds no cross-call state, so concurrent Extract calls are independent.
type Service struct {
	// Fetcher performs the primary page fetch.
	Fetcher unfurl.Fetcher

	// Generic handles everything without a specialized strategy.
	Generic unfurl.Extractor

	// Amazon and Packt handle their HTML-based specializations.
	Amazon unfurl.Extractor
	Packt  unfurl.Extractor

	// Twitter and YouTube replace the fetch entirely: both platforms
	// reject anonymous HTML scraping, so their vendor APIs are consulted
	// before any page round-trip.
	Twitter unfurl.Resolver
	YouTube unfurl.Resolver

	// Fallback is the remote rendering client consulted when the primary
	// fetch is blocked or yields no usable signal. Optional.
	Fallback unfurl.Resolver

	// EagerFallback skips the cheap generic-from-broken-HTML attempt on
	// HTTP failures and goes straight to the remote fallback, trading
	// extra fallback cost for completeness.
	EagerFallback bool
}

// Extract fetches url (or substitutes a vendor API call), routes to the
// matching extractor, and returns a normalized record. It fails only when
// nothing at all could be extracted.
func (s *Service) Extract(ctx context.Context, url string) (*unfurl.Record, error) {
	kind := unfurl.Classify(url)

	// Video and short-post URLs never hit the page: a direct fetch would
	// only find an authentication wall or a JS shell.
	switch kind {
	case unfurl.KindVideo:
		return s.YouTube.Resolve(ctx, url)
	case unfurl.KindShortPost:
		return s.Twitter.Resolve(ctx, url)
	}

	resp, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	if !resp.OK() {
		return s.extractFromFailure(ctx, url, resp)
	}

	switch kind {
	case unfurl.KindProduct:
		return s.Amazon.Extract(resp.Body, url)
	case unfurl.KindPublisher:
		return s.Packt.Extract(resp.Body, url)
	}
	return s.Generic.Extract(resp.Body, url)
}

// extractFromFailure handles a non-success HTTP status. Anti-bot responses
// often still carry partially useful markup, so the cheap local attempt
// runs first and the remote fallback only when that attempt is a challenge
// page or empty (unless EagerFallback flips the order).
func (s *Service) extractFromFailure(ctx context.Context, url string, resp *unfurl.Response) (*unfurl.Record, error) {
	if !s.EagerFallback {
		rec, err := s.Generic.Extract(resp.Body, url)
		if err == nil && rec.HasSignal() && !IsChallengeTitle(rec.Title) {
			return rec, nil
		}
	}

	if s.Fallback != nil {
		if rec, err := s.Fallback.Resolve(ctx, url); err == nil && rec.HasSignal() {
			return rec, nil
		}
	}

	return nil, unfurl.Errorf(unfurl.EUNAVAILABLE, "extraction failed: HTTP %s for %s", resp.Status, url)
}
