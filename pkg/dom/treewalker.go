package dom

// Show is a bit mask selecting which node kinds a TreeWalker yields.
type Show uint8

// Show masks. Nodes that are not shown are skipped, but their descendants
// are still visited.
const (
	ShowElement Show = 1 << iota
	ShowText
	ShowComment
	ShowDocument

	ShowAll = ShowElement | ShowText | ShowComment | ShowDocument
)

func (s Show) accepts(n *Node) bool {
	switch n.Kind {
	case NodeElement:
		return s&ShowElement != 0
	case NodeText:
		return s&ShowText != 0
	case NodeComment:
		return s&ShowComment != 0
	case NodeDocument:
		return s&ShowDocument != 0
	default:
		return false
	}
}

// TreeWalker iterates the subtree of a root node in document order.
// It starts positioned on the root, which NextNode never returns.
type TreeWalker struct {
	root    *Node
	show    Show
	current *Node
}

// NewTreeWalker creates a walker over root's subtree.
func NewTreeWalker(root *Node, show Show) *TreeWalker {
	return &TreeWalker{root: root, show: show, current: root}
}

// Root returns the node the walker was created with.
func (w *TreeWalker) Root() *Node {
	return w.root
}

// CurrentNode returns the node the walker is positioned on.
func (w *TreeWalker) CurrentNode() *Node {
	return w.current
}

// NextNode advances to the next shown node in document order and returns it,
// or returns nil when the subtree is exhausted.
func (w *TreeWalker) NextNode() *Node {
	for n := Following(w.current, w.root, true); n != nil; n = Following(n, w.root, true) {
		if w.show.accepts(n) {
			w.current = n
			return n
		}
	}
	return nil
}

// Following returns the node after n in document order without leaving
// root's subtree. When descend is false, n's own descendants are skipped.
func Following(n, root *Node, descend bool) *Node {
	if n == nil {
		return nil
	}
	if descend && n.FirstChild != nil {
		return n.FirstChild
	}
	for cur := n; cur != nil && cur != root; cur = cur.Parent {
		if cur.Next != nil {
			return cur.Next
		}
	}
	return nil
}
