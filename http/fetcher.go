// Package http provides net/http implementations of the filmcard fetch and
// search collaborators.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/filmcard"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// MaxBodySize caps the number of bytes read from a single response.
const MaxBodySize = 8 << 20

// Ensure Fetcher implements filmcard.Fetcher at compile time.
var _ filmcard.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves title pages with plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithClient sets the underlying HTTP client. The client's own timeout is
// left untouched.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// Fetch retrieves the page at url and returns its body transcoded to UTF-8.
// The response charset is taken from the Content-Type header or sniffed
// from the document itself.
func (f *Fetcher) Fetch(ctx context.Context, url string, headers http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, filmcard.Errorf(filmcard.EDOCUMENT, "invalid page url %q", url)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, filmcard.Errorf(filmcard.EDOCUMENT, "fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, filmcard.Errorf(filmcard.EDOCUMENT, "HTTP %d for %s", resp.StatusCode, url)
	}

	r, err := charset.NewReader(io.LimitReader(resp.Body, MaxBodySize), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, filmcard.Errorf(filmcard.EDOCUMENT, "decoding %s: %v", url, err)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, filmcard.Errorf(filmcard.EDOCUMENT, "reading %s: %v", url, err)
	}

	return body, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
