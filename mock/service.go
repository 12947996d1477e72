package mock

import (
	"context"

	"github.com/unfurl-go/unfurl"
)

var _ unfurl.Service = (*Service)(nil)

// Service is a mock implementation of unfurl.Service.
type Service struct {
	ExtractFn func(ctx context.Context, url string) (*unfurl.Record, error)
}

func (s *Service) Extract(ctx context.Context, url string) (*unfurl.Record, error) {
	return s.ExtractFn(ctx, url)
}
