package main_test

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/fwojciec/filmcard"
	main "github.com/fwojciec/filmcard/cmd/filmcard"
	"github.com/fwojciec/filmcard/goquery"
	"github.com/fwojciec/filmcard/lookup"
	"github.com/fwojciec/filmcard/mock"
	"github.com/fwojciec/filmcard/norm"
)

// titlePage returns a minimal title page for name and year.
func titlePage(name, year string) string {
	return `<html><head><title>` + name + ` (` + year + `) - IMDb</title></head>` +
		`<body><h1 itemprop="name">` + name + `</h1></body></html>`
}

// newDeps returns Dependencies whose lookup service searches with search
// and fetches pages from pages by URL.
func newDeps(search filmcard.SearchService, pages map[string]string) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string, _ http.Header) ([]byte, error) {
			page, ok := pages[url]
			if !ok {
				return nil, filmcard.Errorf(filmcard.EDOCUMENT, "HTTP 404 for %s", url)
			}
			return []byte(page), nil
		},
	}

	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdin:  strings.NewReader(""),
		Stdout: stdout,
		Stderr: stderr,
		Lookup: &lookup.Service{
			Search:    search,
			Fetcher:   fetcher,
			Parser:    goquery.NewParser(),
			Extractor: filmcard.NewExtractor(norm.NewNormalizer()),
			Rules:     goquery.DefaultRules(),
		},
	}
	return deps, stdout, stderr
}

// titleSearch maps each query word to the title URL "http://www.imdb.com/title/tt<word>/".
func titleSearch() *mock.SearchService {
	return &mock.SearchService{
		SearchFn: func(_ context.Context, q string, _ filmcard.SearchOptions) ([]filmcard.SearchResult, error) {
			words := strings.Fields(q)
			return []filmcard.SearchResult{{URL: "http://www.imdb.com/title/tt" + words[len(words)-1] + "/"}}, nil
		},
		NameFn: func() string { return "test" },
	}
}
