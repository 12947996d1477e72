package mock

import (
	"context"

	"github.com/unfurl-go/unfurl"
)

var _ unfurl.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of unfurl.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, url string) (*unfurl.Record, error)
}

func (r *Resolver) Resolve(ctx context.Context, url string) (*unfurl.Record, error) {
	return r.ResolveFn(ctx, url)
}
