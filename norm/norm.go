// Package norm provides a filmcard.Normalizer built on golang.org/x/text.
package norm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/filmcard"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var _ filmcard.Normalizer = (*Normalizer)(nil)

// Normalizer strips boilerplate substrings, folds Unicode compatibility
// variants to plain equivalents and collapses whitespace.
// Normalizer is safe for concurrent use.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize removes every strip substring from s, applies NFKD with
// combining marks dropped and re-composes to NFC, folds typographic dashes
// to "-", then collapses runs of whitespace. The steps repeat until the
// result is stable so that Normalize is idempotent. Invalid UTF-8 is
// returned unchanged.
func (n *Normalizer) Normalize(s string, strip ...string) string {
	if !utf8.ValidString(s) {
		return s
	}

	for {
		next := collapse(fold(remove(s, strip)))
		if next == s {
			return s
		}
		s = next
	}
}

// remove deletes strip substrings until none is left, including matches
// formed by joining the text around an earlier removal.
func remove(s string, strip []string) string {
	for {
		prev := s
		for _, x := range strip {
			if x != "" {
				s = strings.ReplaceAll(s, x, "")
			}
		}
		if s == prev {
			return s
		}
	}
}

// fold maps compatibility variants (ligatures, full-width forms, accented
// letters) to their plain forms where a decomposition exists, and dashes
// without one to "-".
func fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), runes.Map(foldDash), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func foldDash(r rune) rune {
	switch r {
	case '\u2010', '\u2011', '\u2012', '\u2013', '\u2014', '\u2015', '\u2212':
		return '-'
	}
	return r
}
