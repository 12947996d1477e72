// Package slog provides logging decorators for the domain interfaces,
// keeping the core extractors free of logging concerns.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/unfurl-go/unfurl"
)

// Ensure LoggingService implements unfurl.Service.
var _ unfurl.Service = (*LoggingService)(nil)

// LoggingService wraps a Service and logs each extraction with its
// duration and outcome.
type LoggingService struct {
	next   unfurl.Service
	logger *slog.Logger
}

// NewLoggingService creates a new LoggingService.
func NewLoggingService(next unfurl.Service, logger *slog.Logger) *LoggingService {
	return &LoggingService{next: next, logger: logger}
}

// Extract delegates to the wrapped service and logs the result.
func (s *LoggingService) Extract(ctx context.Context, url string) (*unfurl.Record, error) {
	begin := time.Now()
	rec, err := s.next.Extract(ctx, url)
	if err != nil {
		s.logger.Error("extract",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	s.logger.Info("extract",
		"url", url,
		"kind", string(unfurl.Classify(url)),
		"title", rec.Title,
		"duration", time.Since(begin),
	)
	return rec, nil
}
