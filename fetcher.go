package filmcard

import (
	"context"
	"net/http"
)

// Fetcher retrieves raw title pages.
type Fetcher interface {
	// Fetch retrieves the page at url sending the given request headers.
	// The context controls timeout and cancellation.
	// Returns EDOCUMENT if the page cannot be retrieved.
	Fetch(ctx context.Context, url string, headers http.Header) ([]byte, error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DefaultUserAgent identifies us to the origin, which rejects requests
// that lack a plausible browser identity.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"

// DefaultHeaders returns the request headers sent with every fetch.
func DefaultHeaders() http.Header {
	h := make(http.Header)
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	h.Set("Accept-Language", "en-US,en;q=0.5")
	h.Set("User-Agent", DefaultUserAgent)
	return h
}

// HostLimiter paces requests per origin host.
type HostLimiter interface {
	// Wait blocks until a request to host is allowed.
	// Returns an error if ctx is done first.
	Wait(ctx context.Context, host string) error
}
