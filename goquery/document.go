// Package goquery implements the filmcard document model over parsed HTML
// and provides the default rule table for IMDb title pages.
//
// Selectors are CSS as understood by cascadia, including the :has,
// :haschild, :contains and :containsOwn extensions used to express
// label-based lookups such as "the block whose heading says Language:".
package goquery

import (
	"bytes"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/filmcard"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var (
	_ filmcard.DocumentParser = (*Parser)(nil)
	_ filmcard.Document       = (*Document)(nil)
	_ filmcard.Node           = (*Node)(nil)
)

// Parser parses HTML pages into Documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads r and parses it as HTML.
// Returns EDOCUMENT if r cannot be read or holds no content.
func (p *Parser) Parse(r io.Reader) (filmcard.Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, filmcard.Errorf(filmcard.EDOCUMENT, "failed to read document: %v", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, filmcard.Errorf(filmcard.EDOCUMENT, "empty document")
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return nil, filmcard.Errorf(filmcard.EDOCUMENT, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc}, nil
}

// ParseString is a convenience wrapper around Parse.
func (p *Parser) ParseString(s string) (filmcard.Document, error) {
	return p.Parse(strings.NewReader(s))
}

// Document is a parsed HTML page.
type Document struct {
	doc *goquery.Document
}

// Query returns the elements matching the CSS selector in document order.
// Invalid selectors match nothing.
func (d *Document) Query(selector string) []filmcard.Node {
	sel := d.doc.Find(selector)
	nodes := make([]filmcard.Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &Node{sel: s})
	})
	return nodes
}

// Node is a single matched element.
type Node struct {
	sel *goquery.Selection
}

// Text returns the element's direct text children joined and trimmed.
func (n *Node) Text() string {
	if len(n.sel.Nodes) == 0 {
		return ""
	}
	var b strings.Builder
	for c := n.sel.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

// FullText returns the text of the element and its descendants with
// whitespace collapsed.
func (n *Node) FullText() string {
	return strings.Join(strings.Fields(n.sel.Text()), " ")
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}
