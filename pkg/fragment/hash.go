package fragment

import (
	"github.com/yaklabco/deeplinks/pkg/cyrb53"
	"github.com/yaklabco/deeplinks/pkg/dom"
	"github.com/yaklabco/deeplinks/pkg/radix64"
)

// HashText returns the node hash of a literal string.
func HashText(s string) string {
	return radix64.Encode(cyrb53.Sum(s))
}

// HashNode returns the content hash of a text node's whole text.
// Nodes with equal whole text hash equally.
func HashNode(n *dom.Node) string {
	return HashText(n.WholeText())
}
