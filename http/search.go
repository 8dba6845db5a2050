package http

import (
	"context"
	"io"
	"net/http"

	"github.com/fwojciec/filmcard"
)

// DefaultMaxResults is used when SearchOptions.MaxResults is zero.
const DefaultMaxResults = 10

// get issues a GET request for a search endpoint and returns the open body.
// Failures are reported as EUNAVAILABLE since the search collaborator could
// not be used.
func get(ctx context.Context, client *http.Client, provider, target string, headers http.Header) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, filmcard.Errorf(filmcard.EUNAVAILABLE, "%s: invalid request: %v", provider, err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, filmcard.Errorf(filmcard.EUNAVAILABLE, "%s: %v", provider, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, filmcard.Errorf(filmcard.EUNAVAILABLE, "%s: HTTP %d", provider, resp.StatusCode)
	}

	return resp.Body, nil
}

// limit truncates results to opts.MaxResults, or DefaultMaxResults when unset.
func limit(results []filmcard.SearchResult, opts filmcard.SearchOptions) []filmcard.SearchResult {
	n := opts.MaxResults
	if n <= 0 {
		n = DefaultMaxResults
	}
	if len(results) > n {
		return results[:n]
	}
	return results
}

func clientOrDefault(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: DefaultFetchTimeout}
}
