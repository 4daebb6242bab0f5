// Package html builds content trees from HTML documents using
// golang.org/x/net/html, which implements the HTML5 parsing algorithm. The
// resulting text nodes are the ones a browser would build for the same page.
package html

import (
	"bytes"
	"context"
	"fmt"
	"io"

	xhtml "golang.org/x/net/html"

	"github.com/yaklabco/deeplinks/pkg/dom"
)

// Parser parses HTML into a dom.Document.
type Parser struct{}

// New creates an HTML parser.
func New() *Parser {
	return &Parser{}
}

// Parse converts raw HTML bytes into a dom.Document. Doctype nodes are
// dropped; comments are kept. Adjacent text nodes are merged.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*dom.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	root, err := ParseReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	return dom.NewDocument(path, copyContent(content), root), nil
}

// ParseReader parses an HTML document from r and returns its root node.
func ParseReader(r io.Reader) (*dom.Node, error) {
	src, err := xhtml.Parse(r)
	if err != nil {
		return nil, err
	}
	root := convert(src)
	if root == nil {
		root = dom.NewDocumentNode()
	}
	dom.Normalize(root)
	return root, nil
}

// convert maps an x/net/html node and its subtree onto dom nodes.
// It returns nil for nodes with no dom counterpart.
func convert(src *xhtml.Node) *dom.Node {
	var node *dom.Node
	switch src.Type {
	case xhtml.DocumentNode:
		node = dom.NewDocumentNode()
	case xhtml.ElementNode:
		attrs := make([]dom.Attr, 0, len(src.Attr))
		for _, a := range src.Attr {
			key := a.Key
			if a.Namespace != "" {
				key = a.Namespace + ":" + a.Key
			}
			attrs = append(attrs, dom.Attr{Key: key, Value: a.Val})
		}
		node = dom.NewElement(src.Data, attrs...)
	case xhtml.TextNode:
		return dom.NewText(src.Data)
	case xhtml.CommentNode:
		return dom.NewComment(src.Data)
	default:
		// Doctype, raw and error nodes carry no addressable content.
		return nil
	}

	for child := src.FirstChild; child != nil; child = child.NextSibling {
		if c := convert(child); c != nil {
			dom.AppendChild(node, c)
		}
	}
	return node
}

func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
