package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/fwojciec/filmcard"
)

// Ensure SearxNGSearch implements filmcard.SearchService at compile time.
var _ filmcard.SearchService = (*SearxNGSearch)(nil)

// SearxNGSearch queries a SearxNG instance's JSON API.
// The instance must have the json format enabled.
type SearxNGSearch struct {
	BaseURL string
	APIKey  string

	client *http.Client
}

// NewSearxNGSearch creates a SearxNGSearch against baseURL.
func NewSearxNGSearch(baseURL string, client *http.Client) *SearxNGSearch {
	return &SearxNGSearch{
		BaseURL: baseURL,
		client:  clientOrDefault(client),
	}
}

// Name returns "searxng".
func (s *SearxNGSearch) Name() string { return "searxng" }

// Search runs query and returns results in ranking order.
func (s *SearxNGSearch) Search(ctx context.Context, query string, opts filmcard.SearchOptions) ([]filmcard.SearchResult, error) {
	if s.BaseURL == "" {
		return nil, filmcard.Errorf(filmcard.EUNAVAILABLE, "searxng: missing base url")
	}
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return nil, filmcard.Errorf(filmcard.EUNAVAILABLE, "searxng: invalid base url: %v", err)
	}
	if !strings.HasSuffix(u.Path, "/search") {
		u.Path = strings.TrimRight(u.Path, "/") + "/search"
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("categories", "general")
	if opts.MaxResults > 0 {
		q.Set("count", strconv.Itoa(opts.MaxResults))
	}
	if s.APIKey != "" {
		q.Set("apikey", s.APIKey)
	}
	u.RawQuery = q.Encode()

	body, err := get(ctx, s.client, s.Name(), u.String(), nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sr searxResponse
	if err := json.NewDecoder(body).Decode(&sr); err != nil {
		return nil, filmcard.Errorf(filmcard.EUNAVAILABLE, "searxng: decoding response: %v", err)
	}

	results := make([]filmcard.SearchResult, 0, len(sr.Results))
	for _, r := range sr.Results {
		if r.URL == "" {
			continue
		}
		results = append(results, filmcard.SearchResult{
			Title:   strings.TrimSpace(r.Title),
			Snippet: strings.TrimSpace(r.Content),
			URL:     strings.TrimSpace(r.URL),
		})
	}
	return limit(results, opts), nil
}

type searxResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}
