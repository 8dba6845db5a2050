package http

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/filmcard"
)

// Ensure RSSSearch implements filmcard.SearchService at compile time.
var _ filmcard.SearchService = (*RSSSearch)(nil)

// RSSSearch queries any engine exposing OpenSearch results as RSS 2.0.
//
// Template is an OpenSearch URL template. {searchTerms} is replaced by the
// escaped query and {count} by the result limit, e.g.
//
//	https://www.bing.com/search?format=rss&q={searchTerms}&count={count}
type RSSSearch struct {
	Template string

	client *http.Client
}

// NewRSSSearch creates an RSSSearch for the given URL template.
func NewRSSSearch(template string, client *http.Client) *RSSSearch {
	return &RSSSearch{
		Template: template,
		client:   clientOrDefault(client),
	}
}

// Name returns "rss".
func (s *RSSSearch) Name() string { return "rss" }

// Search fetches the feed for query and returns its items in feed order.
func (s *RSSSearch) Search(ctx context.Context, query string, opts filmcard.SearchOptions) ([]filmcard.SearchResult, error) {
	if !strings.Contains(s.Template, "{searchTerms}") {
		return nil, filmcard.Errorf(filmcard.EUNAVAILABLE, "rss: template has no {searchTerms} parameter")
	}
	count := opts.MaxResults
	if count <= 0 {
		count = DefaultMaxResults
	}
	target := strings.NewReplacer(
		"{searchTerms}", url.QueryEscape(query),
		"{count}", strconv.Itoa(count),
	).Replace(s.Template)

	body, err := get(ctx, s.client, s.Name(), target, nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, filmcard.Errorf(filmcard.EUNAVAILABLE, "rss: parsing feed: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, filmcard.Errorf(filmcard.EUNAVAILABLE, "rss: empty feed")
	}

	return limit(parseItems(root), opts), nil
}

// parseItems extracts <item> elements from an <rss><channel> feed.
func parseItems(root *etree.Element) []filmcard.SearchResult {
	var results []filmcard.SearchResult
	for _, item := range root.FindElements("//item") {
		link := childText(item, "link")
		if link == "" {
			continue
		}
		results = append(results, filmcard.SearchResult{
			Title:   childText(item, "title"),
			Snippet: childText(item, "description"),
			URL:     link,
		})
	}
	return results
}

func childText(e *etree.Element, tag string) string {
	c := e.SelectElement(tag)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Text())
}
