package fragment_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/deeplinks/pkg/dom"
	"github.com/yaklabco/deeplinks/pkg/fragment"
)

// tree builds an element whose string children become text nodes.
func tree(tag string, children ...any) *dom.Node {
	el := dom.NewElement(tag)
	for _, c := range children {
		switch v := c.(type) {
		case string:
			dom.AppendChild(el, dom.NewText(v))
		case *dom.Node:
			dom.AppendChild(el, v)
		default:
			panic("tree: unsupported child")
		}
	}
	return el
}

func page(children ...any) *dom.Document {
	body := tree("body", children...)
	root := dom.Append(dom.NewDocumentNode(), dom.Append(dom.NewElement("html"), dom.NewElement("head"), body))
	return dom.NewDocument("fixture.html", nil, root)
}

const (
	uhOh       = "uh oh"
	ident      = "identical text nodes"
	identQ     = "identical text nodes?"
	hmmm       = "hmmm"
	identCount = 5
)

// dupesPage mirrors a page with five pairs of identical paragraphs:
//
//	uh oh / (identical text nodes / identical text nodes?) x5 / hmmm
//
// with a "\n" text node between blocks.
func dupesPage() *dom.Document {
	children := []any{tree("p", uhOh), "\n"}
	for range identCount {
		children = append(children, tree("p", ident), "\n", tree("p", identQ), "\n")
	}
	children = append(children, tree("p", hmmm))
	return page(children...)
}

// identNode returns the k-th (1-based) "identical text nodes" text node;
// identQNode the k-th "identical text nodes?" one.
func identNode(t *testing.T, doc *dom.Document, k int) *dom.Node {
	t.Helper()
	return textAt(t, doc, 2+4*(k-1))
}

func identQNode(t *testing.T, doc *dom.Document, k int) *dom.Node {
	t.Helper()
	return textAt(t, doc, 4+4*(k-1))
}

func textAt(t *testing.T, doc *dom.Document, i int) *dom.Node {
	t.Helper()
	nodes := doc.TextNodes()
	require.Less(t, i, len(nodes))
	return nodes[i]
}

// span returns a range between two text boundaries.
func span(start *dom.Node, startOffset int, end *dom.Node, endOffset int) *dom.Range {
	return &dom.Range{StartContainer: start, StartOffset: startOffset, EndContainer: end, EndOffset: endOffset}
}

// selectedText decodes frag and returns the text of every range.
func selectedText(t *testing.T, doc *dom.Document, frag string) string {
	t.Helper()
	sel := dom.NewSelection()
	ranges, err := fragment.DecodeFragment(doc, frag)
	require.NoError(t, err)
	for _, r := range ranges {
		sel.AddRange(r)
	}
	return sel.String()
}
