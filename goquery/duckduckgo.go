package goquery

import (
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/filmcard"
)

// ParseDuckDuckGoResults extracts organic results from a DuckDuckGo HTML
// results page. Sponsored results are skipped and redirect links of the
// form //duckduckgo.com/l/?uddg=<target> are unwrapped to their target.
func ParseDuckDuckGoResults(r io.Reader) ([]filmcard.SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, filmcard.Errorf(filmcard.EUNAVAILABLE, "failed to parse search results: %v", err)
	}

	var results []filmcard.SearchResult
	doc.Find("div.result").Each(func(_ int, s *goquery.Selection) {
		if s.HasClass("result--ad") {
			return
		}
		link := s.Find("a.result__a").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		target := unwrapRedirect(href)
		if target == "" {
			return
		}
		results = append(results, filmcard.SearchResult{
			Title:   strings.TrimSpace(link.Text()),
			Snippet: strings.Join(strings.Fields(s.Find(".result__snippet").First().Text()), " "),
			URL:     target,
		})
	})
	return results, nil
}

// unwrapRedirect returns the destination of a DuckDuckGo redirect link, or
// href itself when it is not a redirect.
func unwrapRedirect(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" && strings.HasPrefix(u.Path, "/l/") {
		return target
	}
	return href
}
