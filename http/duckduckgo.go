package http

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fwojciec/filmcard"
	"github.com/fwojciec/filmcard/goquery"
)

// DefaultDuckDuckGoURL is the JavaScript-free DuckDuckGo results endpoint.
const DefaultDuckDuckGoURL = "https://html.duckduckgo.com/html/"

// Ensure DuckDuckGoSearch implements filmcard.SearchService at compile time.
var _ filmcard.SearchService = (*DuckDuckGoSearch)(nil)

// DuckDuckGoSearch queries the DuckDuckGo HTML endpoint and scrapes its
// result list. It needs no API key.
type DuckDuckGoSearch struct {
	// BaseURL overrides DefaultDuckDuckGoURL.
	BaseURL string

	client *http.Client
}

// NewDuckDuckGoSearch creates a DuckDuckGoSearch. A nil client gets a
// default client with DefaultFetchTimeout.
func NewDuckDuckGoSearch(client *http.Client) *DuckDuckGoSearch {
	return &DuckDuckGoSearch{
		BaseURL: DefaultDuckDuckGoURL,
		client:  clientOrDefault(client),
	}
}

// Name returns "duckduckgo".
func (s *DuckDuckGoSearch) Name() string { return "duckduckgo" }

// Search runs query and returns results in page order.
func (s *DuckDuckGoSearch) Search(ctx context.Context, query string, opts filmcard.SearchOptions) ([]filmcard.SearchResult, error) {
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return nil, filmcard.Errorf(filmcard.EUNAVAILABLE, "duckduckgo: invalid base url: %v", err)
	}
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	headers := make(http.Header)
	headers.Set("User-Agent", filmcard.DefaultUserAgent)

	body, err := get(ctx, s.client, s.Name(), u.String(), headers)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	results, err := goquery.ParseDuckDuckGoResults(body)
	if err != nil {
		return nil, err
	}
	return limit(results, opts), nil
}
