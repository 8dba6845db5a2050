package mock

import (
	"context"
	"net/http"

	"github.com/fwojciec/filmcard"
)

var _ filmcard.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of filmcard.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string, headers http.Header) ([]byte, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string, headers http.Header) ([]byte, error) {
	return f.FetchFn(ctx, url, headers)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
