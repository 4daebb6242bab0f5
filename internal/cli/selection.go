package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/deeplinks/pkg/dom"
)

// errQuoteNotFound means a quoted string does not occur in the document text.
var errQuoteNotFound = errors.New("text not found in document")

// point is a boundary given on the command line: a text node index in
// document order and a UTF-16 offset into it.
type point struct {
	node   int
	offset int
}

// parseRangeSpec parses "A:O-B:P", or "A:O-P" for a range inside one node.
func parseRangeSpec(spec string) (point, point, error) {
	startSpec, endSpec, ok := strings.Cut(spec, "-")
	if !ok {
		return point{}, point{}, fmt.Errorf("range %q: want NODE:OFFSET-NODE:OFFSET", spec)
	}
	start, err := parsePoint(startSpec)
	if err != nil {
		return point{}, point{}, fmt.Errorf("range %q: %w", spec, err)
	}
	if !strings.Contains(endSpec, ":") {
		endSpec = strconv.Itoa(start.node) + ":" + endSpec
	}
	end, err := parsePoint(endSpec)
	if err != nil {
		return point{}, point{}, fmt.Errorf("range %q: %w", spec, err)
	}
	return start, end, nil
}

func parsePoint(s string) (point, error) {
	nodeStr, offsetStr, ok := strings.Cut(s, ":")
	if !ok {
		return point{}, fmt.Errorf("boundary %q: want NODE:OFFSET", s)
	}
	node, err := strconv.Atoi(nodeStr)
	if err != nil || node < 0 {
		return point{}, fmt.Errorf("boundary %q: bad node index", s)
	}
	offset, err := strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		return point{}, fmt.Errorf("boundary %q: bad offset", s)
	}
	return point{node: node, offset: offset}, nil
}

// rangeFromSpec builds a range over the text nodes of doc.
func rangeFromSpec(doc *dom.Document, spec string) (*dom.Range, error) {
	start, end, err := parseRangeSpec(spec)
	if err != nil {
		return nil, err
	}
	nodes := doc.TextNodes()
	for _, p := range []point{start, end} {
		if p.node >= len(nodes) {
			return nil, fmt.Errorf("range %q: node %d out of range, document has %d text nodes",
				spec, p.node, len(nodes))
		}
	}
	if end.node < start.node || (end.node == start.node && end.offset < start.offset) {
		return nil, fmt.Errorf("range %q: end is before start", spec)
	}

	r := dom.NewRange(doc.Body())
	if err := r.SetStart(nodes[start.node], start.offset); err != nil {
		return nil, fmt.Errorf("range %q: %w", spec, err)
	}
	if err := r.SetEnd(nodes[end.node], end.offset); err != nil {
		return nil, fmt.Errorf("range %q: %w", spec, err)
	}
	return r, nil
}

// rangeFromQuote selects the first occurrence of quote in the text of doc.
// The quote may span text nodes.
func rangeFromQuote(doc *dom.Document, quote string) (*dom.Range, error) {
	if quote == "" {
		return nil, errors.New("empty quote")
	}
	nodes := doc.TextNodes()

	// starts[i] is the byte offset of nodes[i] in the joined text.
	starts := make([]int, len(nodes))
	var text strings.Builder
	for i, n := range nodes {
		starts[i] = text.Len()
		text.WriteString(n.Data)
	}

	at := strings.Index(text.String(), quote)
	if at < 0 {
		return nil, fmt.Errorf("%q: %w", quote, errQuoteNotFound)
	}
	end := at + len(quote)

	r := dom.NewRange(doc.Body())
	startNode := nodeContaining(nodes, starts, at, false)
	if err := r.SetStart(nodes[startNode], utf16Offset(nodes[startNode], at-starts[startNode])); err != nil {
		return nil, err
	}
	endNode := nodeContaining(nodes, starts, end, true)
	if err := r.SetEnd(nodes[endNode], utf16Offset(nodes[endNode], end-starts[endNode])); err != nil {
		return nil, err
	}
	return r, nil
}

// nodeContaining finds the node holding byte offset pos of the joined text.
// With atEnd, a position on the boundary between two nodes belongs to the
// earlier one, so an end boundary never lands at offset 0 of the next node.
func nodeContaining(nodes []*dom.Node, starts []int, pos int, atEnd bool) int {
	for i := len(nodes) - 1; i >= 0; i-- {
		if starts[i] < pos || (!atEnd && starts[i] == pos && len(nodes[i].Data) > 0) {
			return i
		}
	}
	return 0
}

func utf16Offset(n *dom.Node, byteOffset int) int {
	return dom.ByteToUTF16Offset(n.Data, byteOffset)
}
