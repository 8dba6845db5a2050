// Package rod implements filmcard.Fetcher with headless Chrome, for title
// pages that only render their details after JavaScript runs.
package rod

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/fwojciec/filmcard"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout is the default per-page navigation timeout.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements filmcard.Fetcher at compile time.
var _ filmcard.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
	closed  atomic.Bool
}

// Option configures a Fetcher.
type Option func(*fetcherConfig)

type fetcherConfig struct {
	timeout  time.Duration
	maxPages int64
}

// WithFetchTimeout sets the per-page timeout applied on top of the caller's
// context.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *fetcherConfig) {
		c.timeout = d
	}
}

// WithRecycleAfter sets how many pages the browser renders before it is
// replaced with a fresh instance.
func WithRecycleAfter(n int64) Option {
	return func(c *fetcherConfig) {
		c.maxPages = n
	}
}

// NewFetcher launches a headless browser and returns a Fetcher backed by it.
// Close must be called when the Fetcher is no longer needed.
//
// Returns EUNAVAILABLE if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	cfg := fetcherConfig{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	manager, err := NewBrowserManager(WithMaxPages(cfg.maxPages))
	if err != nil {
		return nil, filmcard.Errorf(filmcard.EUNAVAILABLE, "browser unavailable: %v", err)
	}

	return &Fetcher{manager: manager, timeout: cfg.timeout}, nil
}

// Fetch navigates to url with the given request headers and returns the
// rendered HTML. A non-200 document response is an EDOCUMENT error.
func (f *Fetcher) Fetch(ctx context.Context, url string, headers http.Header) ([]byte, error) {
	if f.closed.Load() {
		return nil, filmcard.Errorf(filmcard.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, filmcard.Errorf(filmcard.EDOCUMENT, "fetching %s: %v", url, err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, filmcard.Errorf(filmcard.EDOCUMENT, "opening page: %v", err)
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	page = page.Context(ctx)

	if ua := headers.Get("User-Agent"); ua != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent:      ua,
			AcceptLanguage: headers.Get("Accept-Language"),
		}); err != nil {
			return nil, filmcard.Errorf(filmcard.EDOCUMENT, "setting user agent: %v", err)
		}
	}
	if extra := extraHeaders(headers); len(extra) > 0 {
		cleanup, err := page.SetExtraHeaders(extra)
		if err != nil {
			return nil, filmcard.Errorf(filmcard.EDOCUMENT, "setting headers: %v", err)
		}
		defer cleanup()
	}

	var resp proto.NetworkResponseReceived
	waitResponse := page.WaitEvent(&resp)

	if err := page.Navigate(url); err != nil {
		return nil, filmcard.Errorf(filmcard.EDOCUMENT, "navigating to %s: %v", url, err)
	}
	waitResponse()
	if resp.Response != nil && resp.Type == proto.NetworkResourceTypeDocument && resp.Response.Status != http.StatusOK {
		return nil, filmcard.Errorf(filmcard.EDOCUMENT, "HTTP %d for %s", resp.Response.Status, url)
	}

	if err := page.WaitLoad(); err != nil {
		return nil, filmcard.Errorf(filmcard.EDOCUMENT, "loading %s: %v", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, filmcard.Errorf(filmcard.EDOCUMENT, "reading %s: %v", url, err)
	}

	return []byte(html), nil
}

// extraHeaders flattens headers into the key/value list rod expects.
// User-Agent and Accept-Language are sent through the override instead.
func extraHeaders(headers http.Header) []string {
	var out []string
	for k, vs := range headers {
		if k == "User-Agent" || k == "Accept-Language" {
			continue
		}
		for _, v := range vs {
			out = append(out, k, v)
		}
	}
	return out
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
