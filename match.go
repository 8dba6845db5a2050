package filmcard

import (
	"net/url"
	"strings"
)

// TitleMatcher decides whether a search result points at a title page.
//
// The origin site's URL scheme is outside our control, so the shape is
// configured rather than hard-coded: a reference matches if its final path
// segment starts with one of Markers, or if its last non-empty path segment
// starts with one of IDPrefixes.
type TitleMatcher struct {
	// Markers are prefixes of the raw final segment, e.g. "Title?" for
	// legacy references such as http://www.imdb.com/Title?0133093.
	Markers []string

	// IDPrefixes are prefixes of the title identifier segment, e.g. "tt"
	// for /title/tt1375666/.
	IDPrefixes []string
}

// DefaultTitleMatcher returns the matcher for IMDb title pages.
func DefaultTitleMatcher() *TitleMatcher {
	return &TitleMatcher{
		Markers:    []string{"Title?"},
		IDPrefixes: []string{"tt"},
	}
}

// Match reports whether ref looks like a title page reference.
// A nil matcher matches every reference.
func (m *TitleMatcher) Match(ref string) bool {
	if m == nil {
		return true
	}

	// Markers apply to the raw text since they may contain "?".
	raw := ref
	if i := strings.LastIndex(raw, "/"); i >= 0 {
		raw = raw[i+1:]
	}
	for _, marker := range m.Markers {
		if marker != "" && strings.HasPrefix(raw, marker) {
			return true
		}
	}

	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	segment := lastSegment(u.Path)
	for _, prefix := range m.IDPrefixes {
		if prefix != "" && strings.HasPrefix(segment, prefix) {
			return true
		}
	}
	return false
}

// lastSegment returns the last non-empty segment of a URL path.
func lastSegment(path string) string {
	path = strings.TrimRight(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// SelectCandidate returns the URL of the first result m matches.
// Returns false if no result matches.
func (m *TitleMatcher) SelectCandidate(results []SearchResult) (string, bool) {
	for _, r := range results {
		if r.URL != "" && m.Match(r.URL) {
			return r.URL, true
		}
	}
	return "", false
}
