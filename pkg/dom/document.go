package dom

// Document is a parsed document: its source plus the content tree.
type Document struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the raw source bytes.
	Content []byte

	// Root is the document node.
	Root *Node
}

// NewDocument wraps root in a Document.
func NewDocument(path string, content []byte, root *Node) *Document {
	return &Document{Path: path, Content: content, Root: root}
}

// Body returns the <body> element when there is one, otherwise the root.
// Fragments address the text nodes below Body.
func (d *Document) Body() *Node {
	if d == nil || d.Root == nil {
		return nil
	}
	if body := FindFirst(d.Root, func(n *Node) bool {
		return n.IsElement() && n.Tag == "body"
	}); body != nil {
		return body
	}
	return d.Root
}

// ElementByID returns the first element whose id attribute equals id.
func (d *Document) ElementByID(id string) *Node {
	if d == nil || id == "" {
		return nil
	}
	return FindFirst(d.Root, func(n *Node) bool {
		return n.IsElement() && n.ID() == id
	})
}

// TextNodes returns the text nodes below Body in document order.
func (d *Document) TextNodes() []*Node {
	body := d.Body()
	if body == nil {
		return nil
	}
	var nodes []*Node
	walker := NewTreeWalker(body, ShowText)
	for n := walker.NextNode(); n != nil; n = walker.NextNode() {
		nodes = append(nodes, n)
	}
	return nodes
}
