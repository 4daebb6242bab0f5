package dom

// NewNode creates a new node of the specified kind.
// The node has no parent or children.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewDocumentNode creates a new document root node.
func NewDocumentNode() *Node {
	return NewNode(NodeDocument)
}

// NewElement creates an element with the given tag and attributes.
func NewElement(tag string, attrs ...Attr) *Node {
	n := NewNode(NodeElement)
	n.Tag = tag
	n.Attrs = attrs
	return n
}

// NewText creates a text node holding data.
func NewText(data string) *Node {
	n := NewNode(NodeText)
	n.Data = data
	return n
}

// NewComment creates a comment node holding data.
func NewComment(data string) *Node {
	n := NewNode(NodeComment)
	n.Data = data
	return n
}

// AppendChild appends a child node to a parent.
// It maintains the parent/child/sibling relationships correctly.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	// Remove from previous parent if any.
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
}

// Append appends each child to parent in order and returns parent.
// It exists to build fixture trees compactly.
func Append(parent *Node, children ...*Node) *Node {
	for _, child := range children {
		AppendChild(parent, child)
	}
	return parent
}

// InsertBefore inserts newNode before sibling.
// sibling must have a parent.
func InsertBefore(sibling, newNode *Node) {
	if sibling == nil || newNode == nil || sibling.Parent == nil {
		return
	}

	parent := sibling.Parent

	// Remove newNode from its current parent if any.
	if newNode.Parent != nil {
		RemoveChild(newNode.Parent, newNode)
	}

	newNode.Parent = parent
	newNode.Prev = sibling.Prev
	newNode.Next = sibling

	if sibling.Prev != nil {
		sibling.Prev.Next = newNode
	} else {
		parent.FirstChild = newNode
	}

	sibling.Prev = newNode
}

// RemoveChild removes a child from its parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// Normalize merges adjacent text nodes and removes empty ones below root,
// so that every text node's Data equals its WholeText.
func Normalize(root *Node) {
	if root == nil {
		return
	}
	for child := root.FirstChild; child != nil; {
		next := child.Next
		if child.IsText() {
			for next.IsText() {
				child.Data += next.Data
				following := next.Next
				RemoveChild(root, next)
				next = following
			}
			if child.Data == "" {
				RemoveChild(root, child)
			}
		} else {
			Normalize(child)
		}
		child = next
	}
}
