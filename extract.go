package filmcard

import "fmt"

// Normalizer canonicalizes extracted text.
type Normalizer interface {
	// Normalize removes each strip substring from s and folds Unicode
	// compatibility variants into their plain equivalents.
	// Normalize must be idempotent and must never fail.
	Normalize(s string, strip ...string) string
}

// Extractor applies a RuleTable to a Document.
// An Extractor is safe for concurrent use if its Normalizer is.
type Extractor struct {
	normalizer Normalizer

	// OnAnomaly, if set, is called for every transform that failed on the
	// nodes its selector matched.
	OnAnomaly func(*TransformError)
}

// NewExtractor returns an Extractor that normalizes values with n.
func NewExtractor(n Normalizer) *Extractor {
	return &Extractor{normalizer: n}
}

// Extract evaluates rules against doc and returns the extracted fields.
//
// For every field the rules are tried in order and the first rule whose
// selector matches at least one node and whose transform succeeds fixes the
// field. Fields with no such rule are absent, except rating which defaults
// to UnratedSentinel.
func (e *Extractor) Extract(doc Document, rules RuleTable) *Record {
	rec := NewRecord()
	rec.Set(FieldRating, UnratedSentinel)

	for field, fieldRules := range rules {
		for _, rule := range fieldRules {
			v, ok := e.apply(doc, field, rule)
			if ok {
				rec.Set(field, v)
				break
			}
		}
	}
	return rec
}

// apply evaluates a single rule. It reports false when the selector matches
// nothing or the transform fails.
func (e *Extractor) apply(doc Document, field Field, rule Rule) (string, bool) {
	nodes := doc.Query(rule.Selector)
	if len(nodes) == 0 {
		return "", false
	}

	raw, err := runTransform(rule.Transform, nodes)
	if err != nil {
		if e.OnAnomaly != nil {
			e.OnAnomaly(&TransformError{Field: field, Selector: rule.Selector, Err: err})
		}
		return "", false
	}

	if e.normalizer == nil {
		return raw, true
	}
	return e.normalizer.Normalize(raw, rule.Strip...), true
}

// runTransform calls t, converting a panic into an error so that one
// malformed page section cannot abort the whole extraction.
func runTransform(t Transform, nodes []Node) (s string, err error) {
	if t == nil {
		return "", fmt.Errorf("no transform")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transform panicked: %v", r)
		}
	}()
	return t(nodes)
}
