package mock

import (
	"context"

	"github.com/fwojciec/filmcard"
)

var _ filmcard.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of filmcard.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, opts filmcard.SearchOptions) ([]filmcard.SearchResult, error)
	NameFn   func() string
}

func (s *SearchService) Search(ctx context.Context, query string, opts filmcard.SearchOptions) ([]filmcard.SearchResult, error) {
	return s.SearchFn(ctx, query, opts)
}

func (s *SearchService) Name() string {
	return s.NameFn()
}
