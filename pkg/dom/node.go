// Package dom provides the content tree that deep-link fragments address.
// It models the subset of the browser DOM the fragment codec reads: element,
// text and comment nodes linked into a tree, ranges between boundary points,
// and a host selection holding an ordered list of ranges.
//
// Offsets into text nodes are UTF-16 code units, as they are in a browser.
package dom

import "strings"

// NodeKind classifies a node.
type NodeKind uint8

// Node kinds. The numbering follows no external standard.
const (
	NodeDocument NodeKind = iota
	NodeElement
	NodeText
	NodeComment
)

// String returns a human-readable name for the kind.
func (k NodeKind) String() string {
	switch k {
	case NodeDocument:
		return "Document"
	case NodeElement:
		return "Element"
	case NodeText:
		return "Text"
	case NodeComment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Attr is a single element attribute.
type Attr struct {
	Key   string
	Value string
}

// Node is a single node in the content tree.
// Nodes form a tree structure with parent/child/sibling relationships.
// Identity matters: two text nodes with equal Data are still different nodes.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Tag is the lower-case element name for NodeElement.
	Tag string

	// Attrs holds element attributes in source order.
	Attrs []Attr

	// Data is the character data of text and comment nodes.
	Data string
}

// IsText returns true if this is a text node.
func (n *Node) IsText() bool {
	return n != nil && n.Kind == NodeText
}

// IsElement returns true if this is an element node.
func (n *Node) IsElement() bool {
	return n != nil && n.Kind == NodeElement
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// ChildAt returns the i-th child, or nil if i is out of range.
func (n *Node) ChildAt(i int) *Node {
	if i < 0 {
		return nil
	}
	child := n.FirstChild
	for ; child != nil && i > 0; i-- {
		child = child.Next
	}
	return child
}

// Index returns the position of n among its siblings.
func (n *Node) Index() int {
	index := 0
	for sib := n.Prev; sib != nil; sib = sib.Prev {
		index++
	}
	return index
}

// Attr returns the value of the named attribute and whether it was present.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// ID returns the element's id attribute.
func (n *Node) ID() string {
	id, _ := n.Attr("id")
	return id
}

// ParentElement returns the closest ancestor that is an element.
func (n *Node) ParentElement() *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind == NodeElement {
			return p
		}
	}
	return nil
}

// Length returns the node length used by boundary points: the UTF-16 length
// of the data for text and comment nodes, the child count otherwise.
func (n *Node) Length() int {
	switch n.Kind {
	case NodeText, NodeComment:
		return UTF16Length(n.Data)
	default:
		return n.ChildCount()
	}
}

// WholeText returns the data of n joined with the data of every text node
// directly adjacent to it among its siblings.
func (n *Node) WholeText() string {
	if !n.IsText() {
		return ""
	}
	first := n
	for first.Prev.IsText() {
		first = first.Prev
	}
	if first == n && !n.Next.IsText() {
		return n.Data
	}
	var sb strings.Builder
	for t := first; t.IsText(); t = t.Next {
		sb.WriteString(t.Data)
	}
	return sb.String()
}

// TextContent returns the concatenated data of all descendant text nodes.
func (n *Node) TextContent() string {
	if n.IsText() || n.Kind == NodeComment {
		return n.Data
	}
	var sb strings.Builder
	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(n, func(child *Node) error {
		if child.IsText() {
			sb.WriteString(child.Data)
		}
		return nil
	})
	return sb.String()
}
