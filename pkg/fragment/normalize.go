package fragment

import (
	"github.com/yaklabco/deeplinks/pkg/dom"
)

// A Normalizer maps a raw selection range onto a range whose boundaries are
// both text nodes. It returns ErrEmptyNormalization when no text qualifies.
type Normalizer func(r *dom.Range) (*dom.Range, error)

// NormalizeSimple moves element boundaries onto text: the start descends to
// the first text node in its container at offset 0, the end to the last
// text node at its full length. Text boundaries are kept as they are.
func NormalizeSimple(r *dom.Range) (*dom.Range, error) {
	start, startOffset := r.StartContainer, r.StartOffset
	if !start.IsText() {
		start, startOffset = dom.FirstText(start), 0
	}
	end, endOffset := r.EndContainer, r.EndOffset
	if !end.IsText() {
		end = dom.LastText(end)
		if end != nil {
			endOffset = end.Length()
		}
	}
	if start == nil || end == nil {
		return nil, ErrEmptyNormalization
	}
	return &dom.Range{StartContainer: start, StartOffset: startOffset, EndContainer: end, EndOffset: endOffset}, nil
}

// pointAt turns a range boundary into a node in the tree plus an offset.
// For text nodes and childless elements the boundary is kept. Otherwise the
// boundary names the child at the offset: text children get a text offset
// (0, or the full length past the last child), element children get 0 for
// "before" or 1 for "after".
func pointAt(container *dom.Node, offset int) (*dom.Node, int) {
	count := container.ChildCount()
	if container.IsText() || count == 0 {
		return container, offset
	}
	child := container.ChildAt(min(offset, count-1))
	after := offset >= count
	switch {
	case child.IsText() && after:
		return child, child.Length()
	case after:
		return child, 1
	default:
		return child, 0
	}
}

// lastDescendant returns the deepest last node of n's subtree.
func lastDescendant(n *dom.Node) *dom.Node {
	for n.LastChild != nil {
		n = n.LastChild
	}
	return n
}

func filled(n *dom.Node) bool {
	return n.IsText() && !dom.IsBlank(n.WholeText())
}

type normalizeStage int

const (
	seekStartNode normalizeStage = iota
	seekStartText
	seekEndNode
)

// NormalizeStrict returns a range covering the same text whose boundaries
// both sit in text nodes that are not blank. Blank text at either edge is
// trimmed off. A start boundary after an element skips that element's
// subtree, and an end boundary after an element takes in its subtree.
func NormalizeStrict(r *dom.Range) (*dom.Range, error) {
	root := r.CommonAncestor()
	if root == nil {
		return nil, ErrEmptyNormalization
	}
	startNode, startOffset := pointAt(r.StartContainer, r.StartOffset)
	endNode, endOffset := pointAt(r.EndContainer, r.EndOffset)
	if !endNode.IsText() && endOffset == 1 {
		if last := lastDescendant(endNode); last != endNode {
			endNode, endOffset = last, last.Length()
		}
	}

	var (
		stage   = seekStartNode
		out     dom.Range
		prevEnd *dom.Node
		ended   bool
	)
	for n := root; n != nil; n = dom.Following(n, root, true) {
		if stage == seekStartNode && n == startNode {
			if !n.IsText() && startOffset != 0 {
				n = dom.Following(n, root, false)
				if n == nil {
					return nil, ErrEmptyNormalization
				}
			}
			stage = seekStartText
		}
		if filled(n) {
			if stage == seekStartText {
				out.StartContainer, out.StartOffset = n, 0
				if n == startNode {
					out.StartOffset = startOffset
				}
				stage = seekEndNode
			}
			if stage == seekEndNode {
				prevEnd = out.EndContainer
				out.EndContainer, out.EndOffset = n, n.Length()
			}
		}
		if stage == seekEndNode && n == endNode {
			if filled(n) {
				out.EndOffset = endOffset
				if endOffset == 0 && prevEnd != nil {
					out.EndContainer, out.EndOffset = prevEnd, prevEnd.Length()
				}
			}
			ended = true
			break
		}
	}
	if !ended {
		return nil, ErrEmptyNormalization
	}
	return &out, nil
}
