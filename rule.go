package filmcard

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Transform converts the nodes matched by a rule's selector into a raw
// field value. It is only called with a non-empty slice.
type Transform func(nodes []Node) (string, error)

// Rule pairs a selector with the transform applied to its matches.
type Rule struct {
	// Selector locates candidate nodes in the document.
	Selector string

	// Transform turns the matched nodes into a raw value.
	Transform Transform

	// Strip lists substrings removed from the value during normalization,
	// e.g. label boilerplate such as "Genres: ".
	Strip []string
}

// RuleTable maps each field to its rules in priority order.
type RuleTable map[Field][]Rule

// TransformError reports a transform that failed on the nodes its
// selector matched. The extractor treats the rule as non-matching.
type TransformError struct {
	Field    Field
	Selector string
	Err      error
}

// Error implements the error interface.
func (e *TransformError) Error() string {
	return fmt.Sprintf("transform %s (%s): %v", e.Field, e.Selector, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransformError) Unwrap() error {
	return e.Err
}

// OwnText returns the direct text of the first matched node.
func OwnText() Transform {
	return func(nodes []Node) (string, error) {
		return nodes[0].Text(), nil
	}
}

// FullText returns the descendant-inclusive text of the first matched node.
func FullText() Transform {
	return func(nodes []Node) (string, error) {
		return nodes[0].FullText(), nil
	}
}

// JoinOwnText joins the direct text of every matched node with sep.
// Nodes without direct text are skipped; it fails if none have any.
func JoinOwnText(sep string) Transform {
	return func(nodes []Node) (string, error) {
		return join(nodes, sep, Node.Text)
	}
}

// JoinFullText joins the full text of every matched node with sep.
// Nodes without text are skipped; it fails if none have any.
func JoinFullText(sep string) Transform {
	return func(nodes []Node) (string, error) {
		return join(nodes, sep, Node.FullText)
	}
}

func join(nodes []Node, sep string, text func(Node) string) (string, error) {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if s := text(n); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("%d matched nodes carry no text", len(nodes))
	}
	return strings.Join(parts, sep), nil
}

// Attr returns the named attribute of the first matched node.
func Attr(name string) Transform {
	return func(nodes []Node) (string, error) {
		v, ok := nodes[0].Attr(name)
		if !ok {
			return "", fmt.Errorf("attribute %q missing", name)
		}
		return strings.TrimSpace(v), nil
	}
}

// JSONLD decodes the first matched node's text as JSON-LD and returns the
// value found by walking path. Objects along the path named by an array
// are searched element-wise and string leaves are joined with ", ".
func JSONLD(path ...string) Transform {
	return func(nodes []Node) (string, error) {
		var v any
		if err := json.Unmarshal([]byte(nodes[0].FullText()), &v); err != nil {
			return "", fmt.Errorf("decode json-ld: %w", err)
		}
		for _, key := range path {
			v = lookupKey(v, key)
			if v == nil {
				return "", fmt.Errorf("json-ld key %q missing", key)
			}
		}
		s, ok := jsonString(v)
		if !ok {
			return "", fmt.Errorf("json-ld value at %s is not text", strings.Join(path, "."))
		}
		return s, nil
	}
}

func lookupKey(v any, key string) any {
	switch t := v.(type) {
	case map[string]any:
		return t[key]
	case []any:
		var out []any
		for _, e := range t {
			if x := lookupKey(e, key); x != nil {
				out = append(out, x)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}
	return nil
}

func jsonString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := jsonString(e)
			if !ok {
				return "", false
			}
			parts = append(parts, s)
		}
		if len(parts) == 0 {
			return "", false
		}
		return strings.Join(parts, ", "), true
	}
	return "", false
}
