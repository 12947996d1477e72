package mock

import (
	"context"

	"github.com/unfurl-go/unfurl"
)

var _ unfurl.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of unfurl.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*unfurl.Response, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*unfurl.Response, error) {
	return f.FetchFn(ctx, url)
}
