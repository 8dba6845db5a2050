package filmcard

import "io"

// Node is a single element matched by a selector.
type Node interface {
	// Text returns the node's own direct text with leading and trailing
	// whitespace trimmed. Text of descendant elements is not included.
	Text() string

	// FullText returns the text of the node and all its descendants with
	// runs of whitespace collapsed to single spaces.
	FullText() string

	// Attr returns the value of the named attribute.
	Attr(name string) (string, bool)
}

// Document is a read-only parsed title page.
type Document interface {
	// Query returns the nodes matching selector in document order.
	// Returns an empty slice when nothing matches, including when the
	// selector itself is invalid.
	Query(selector string) []Node
}

// DocumentParser parses raw page bytes into a Document.
type DocumentParser interface {
	// Parse reads and parses a page.
	// Returns EDOCUMENT if the input cannot be read or parsed.
	Parse(r io.Reader) (Document, error)
}
