package dom

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIndexSize is returned when a boundary offset exceeds the node length.
var ErrIndexSize = errors.New("offset out of range")

// Range is a span between two boundary points.
// A boundary point is a container node plus an offset: a UTF-16 offset for
// text nodes, a child index for elements.
type Range struct {
	StartContainer *Node
	StartOffset    int
	EndContainer   *Node
	EndOffset      int
}

// NewRange returns a collapsed range at (root, 0), the equivalent of a
// freshly constructed browser Range.
func NewRange(root *Node) *Range {
	return &Range{StartContainer: root, EndContainer: root}
}

// SetStart moves the start boundary. If the new start is after the end, the
// range collapses to the new start.
func (r *Range) SetStart(node *Node, offset int) error {
	if err := checkOffset(node, offset); err != nil {
		return err
	}
	r.StartContainer, r.StartOffset = node, offset
	if r.EndContainer == nil || CommonAncestor(node, r.EndContainer) == nil ||
		ComparePoints(node, offset, r.EndContainer, r.EndOffset) == After {
		r.EndContainer, r.EndOffset = node, offset
	}
	return nil
}

// SetEnd moves the end boundary. If the new end is before the start, the
// range collapses to the new end.
func (r *Range) SetEnd(node *Node, offset int) error {
	if err := checkOffset(node, offset); err != nil {
		return err
	}
	r.EndContainer, r.EndOffset = node, offset
	if r.StartContainer == nil || CommonAncestor(node, r.StartContainer) == nil ||
		ComparePoints(node, offset, r.StartContainer, r.StartOffset) == Before {
		r.StartContainer, r.StartOffset = node, offset
	}
	return nil
}

func checkOffset(node *Node, offset int) error {
	if node == nil {
		return fmt.Errorf("nil boundary node: %w", ErrIndexSize)
	}
	if offset < 0 || offset > node.Length() {
		return fmt.Errorf("offset %d for node of length %d: %w", offset, node.Length(), ErrIndexSize)
	}
	return nil
}

// Collapsed reports whether start and end are the same boundary point.
func (r *Range) Collapsed() bool {
	return r.StartContainer == r.EndContainer && r.StartOffset == r.EndOffset
}

// CommonAncestor returns the deepest node containing both boundaries.
func (r *Range) CommonAncestor() *Node {
	return CommonAncestor(r.StartContainer, r.EndContainer)
}

// Clone returns a copy of the range.
func (r *Range) Clone() *Range {
	c := *r
	return &c
}

// String returns the text the range covers: the selected portion of every
// text node between the boundaries, in document order.
func (r *Range) String() string {
	if r == nil || r.StartContainer == nil || r.EndContainer == nil || r.Collapsed() {
		return ""
	}
	if r.StartContainer == r.EndContainer && r.StartContainer.IsText() {
		return UTF16Substring(r.StartContainer.Data, r.StartOffset, r.EndOffset)
	}

	root := r.CommonAncestor()
	if root == nil {
		return ""
	}

	var sb strings.Builder
	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(n *Node) error {
		if !n.IsText() {
			return nil
		}
		length := n.Length()
		if ComparePoints(n, 0, r.EndContainer, r.EndOffset) != Before {
			return nil
		}
		if ComparePoints(n, length, r.StartContainer, r.StartOffset) != After {
			return nil
		}
		from, to := 0, length
		if n == r.StartContainer {
			from = r.StartOffset
		}
		if n == r.EndContainer {
			to = r.EndOffset
		}
		sb.WriteString(UTF16Substring(n.Data, from, to))
		return nil
	})
	return sb.String()
}
