package mock

import (
	"io"

	"github.com/fwojciec/filmcard"
)

var (
	_ filmcard.Document       = (*Document)(nil)
	_ filmcard.Node           = (*Node)(nil)
	_ filmcard.DocumentParser = (*DocumentParser)(nil)
)

// Document is a mock implementation of filmcard.Document.
type Document struct {
	QueryFn func(selector string) []filmcard.Node
}

func (d *Document) Query(selector string) []filmcard.Node {
	return d.QueryFn(selector)
}

// Node is a mock implementation of filmcard.Node.
type Node struct {
	TextFn     func() string
	FullTextFn func() string
	AttrFn     func(name string) (string, bool)
}

func (n *Node) Text() string {
	return n.TextFn()
}

func (n *Node) FullText() string {
	return n.FullTextFn()
}

func (n *Node) Attr(name string) (string, bool) {
	return n.AttrFn(name)
}

// DocumentParser is a mock implementation of filmcard.DocumentParser.
type DocumentParser struct {
	ParseFn func(r io.Reader) (filmcard.Document, error)
}

func (p *DocumentParser) Parse(r io.Reader) (filmcard.Document, error) {
	return p.ParseFn(r)
}
