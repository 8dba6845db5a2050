// Package slog provides logging decorators for filmcard collaborators.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/filmcard"
)

// Ensure LoggingSearchService implements filmcard.SearchService.
var _ filmcard.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with logging.
type LoggingSearchService struct {
	next   filmcard.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next filmcard.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the operation.
func (s *LoggingSearchService) Search(ctx context.Context, query string, opts filmcard.SearchOptions) (results []filmcard.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"provider", s.next.Name(),
			"query", query,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, opts)
}

// Name delegates to the wrapped service.
func (s *LoggingSearchService) Name() string {
	return s.next.Name()
}
