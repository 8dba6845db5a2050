package filmcard

import "context"

// SearchResult is a single hit returned by a SearchService.
type SearchResult struct {
	Title   string
	Snippet string
	URL     string
}

// SearchOptions configures a search.
type SearchOptions struct {
	// Destination is the output destination the lookup was issued from.
	// Providers may use it for per-destination settings such as region.
	Destination string

	// MaxResults caps the number of results. Zero means provider default.
	MaxResults int
}

// SearchService resolves a free-text query to candidate pages.
type SearchService interface {
	// Search returns results in provider order.
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)

	// Name returns the provider's identifier (e.g., "duckduckgo").
	Name() string
}
