package filmcard

import (
	"regexp"
	"strings"
)

// yearPattern matches a four-digit year optionally followed by a range
// separator and an optional closing year, e.g. "2010", "2005–2013", "2019– ".
var yearPattern = regexp.MustCompile(`\d{4}(?:\s*[-–—]\s*(?:\d{4})?)?`)

// Assemble completes a record produced by Extractor.Extract. It sets url to
// ref and derives year from the title. An empty ref leaves url absent so
// templates referencing it are skipped.
func Assemble(rec *Record, ref string) *Record {
	if ref != "" {
		rec.Set(FieldURL, ref)
	}

	title, _ := rec.Get(FieldTitle)
	rec.Set(FieldYear, ParseYear(title))
	return rec
}

// ParseYear returns the release year from the trailing parenthetical of a
// page title such as "Inception (2010)". Ranges keep both ends with dashes
// normalized to "-". Returns "" if there is no parenthetical or it holds
// no four-digit year.
func ParseYear(title string) string {
	i := strings.LastIndex(title, "(")
	if i < 0 {
		return ""
	}
	inner := title[i+1:]
	if j := strings.Index(inner, ")"); j >= 0 {
		inner = inner[:j]
	}

	m := yearPattern.FindString(inner)
	if m == "" {
		return ""
	}
	m = strings.NewReplacer("–", "-", "—", "-", " ", "").Replace(m)
	return m
}
