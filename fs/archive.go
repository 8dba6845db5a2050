// Package fs keeps copies of fetched title pages on disk.
package fs

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/filmcard"
)

// Ensure Archive implements filmcard.Fetcher at compile time.
var _ filmcard.Fetcher = (*Archive)(nil)

// Archive wraps a Fetcher and saves every page it returns under Dir, so
// the page can later be re-extracted with a local file.
//
// Files are written to a temporary name and renamed into place, so a
// reader never sees a partial page.
type Archive struct {
	next filmcard.Fetcher
	dir  string

	// OnError, if set, is called when a fetched page cannot be saved.
	// Save failures never fail the fetch.
	OnError func(url string, err error)
}

// NewArchive returns an Archive saving pages fetched by next under dir.
func NewArchive(next filmcard.Fetcher, dir string) *Archive {
	return &Archive{next: next, dir: dir}
}

func (a *Archive) Fetch(ctx context.Context, rawURL string, headers http.Header) ([]byte, error) {
	page, err := a.next.Fetch(ctx, rawURL, headers)
	if err != nil {
		return nil, err
	}

	if _, err := a.Save(rawURL, page); err != nil && a.OnError != nil {
		a.OnError(rawURL, err)
	}
	return page, nil
}

func (a *Archive) Close() error {
	return a.next.Close()
}

// Save writes page to the path for rawURL and returns that path.
func (a *Archive) Save(rawURL string, page []byte) (string, error) {
	rel, err := URLToPath(rawURL)
	if err != nil {
		return "", err
	}
	full := filepath.Join(a.dir, rel)

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".page-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(page); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		return "", err
	}
	return full, nil
}

// URLToPath converts a page URL to a relative file path.
// Example: https://www.imdb.com/title/tt0133093/ → www.imdb.com/title/tt0133093.html
//
// The query string is folded into the name so legacy references such as
// /Title?0133093 get distinct files.
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", filmcard.Errorf(filmcard.EINVALID, "invalid URL %q", rawURL)
	}
	if u.Host == "" {
		return "", filmcard.Errorf(filmcard.EINVALID, "URL %q has no host", rawURL)
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		path = "index"
	}
	if u.RawQuery != "" {
		path += "_" + u.RawQuery
	}

	// Keep every segment inside the archive directory.
	segments := strings.Split(path, "/")
	clean := make([]string, 0, len(segments)+1)
	clean = append(clean, safeSegment(u.Host))
	for _, s := range segments {
		if s == "" || s == "." || s == ".." {
			continue
		}
		clean = append(clean, safeSegment(s))
	}
	return filepath.Join(clean...) + ".html", nil
}

func safeSegment(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\\', ':', '*', '?', '"', '<', '>', '|', '&', '=':
			return '_'
		}
		return r
	}, s)
}
