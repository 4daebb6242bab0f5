package dom

// Boundary point positions relative to one another.
const (
	Before = -1
	Equal  = 0
	After  = 1
)

// IsInclusiveAncestor reports whether a is b or one of b's ancestors.
func IsInclusiveAncestor(a, b *Node) bool {
	for n := b; n != nil; n = n.Parent {
		if n == a {
			return true
		}
	}
	return false
}

// ancestry returns the chain of nodes from the tree root down to n.
func ancestry(n *Node) []*Node {
	var chain []*Node
	for p := n; p != nil; p = p.Parent {
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// CompareOrder reports whether a comes Before, After or is Equal to b in
// document order. Nodes in different trees compare as Equal.
// An ancestor precedes its descendants.
func CompareOrder(a, b *Node) int {
	if a == b {
		return Equal
	}
	pa, pb := ancestry(a), ancestry(b)
	if len(pa) == 0 || len(pb) == 0 || pa[0] != pb[0] {
		return Equal
	}

	i := 0
	for i < len(pa) && i < len(pb) && pa[i] == pb[i] {
		i++
	}
	switch {
	case i == len(pa):
		return Before // a is an ancestor of b
	case i == len(pb):
		return After // b is an ancestor of a
	}
	if pa[i].Index() < pb[i].Index() {
		return Before
	}
	return After
}

// CommonAncestor returns the deepest node that is an inclusive ancestor of
// both a and b, or nil when they are in different trees.
func CommonAncestor(a, b *Node) *Node {
	pa, pb := ancestry(a), ancestry(b)
	var common *Node
	for i := 0; i < len(pa) && i < len(pb) && pa[i] == pb[i]; i++ {
		common = pa[i]
	}
	return common
}

// ComparePoints compares boundary point (nodeA, offsetA) with (nodeB, offsetB).
func ComparePoints(nodeA *Node, offsetA int, nodeB *Node, offsetB int) int {
	if nodeA == nodeB {
		switch {
		case offsetA < offsetB:
			return Before
		case offsetA > offsetB:
			return After
		default:
			return Equal
		}
	}

	if CompareOrder(nodeA, nodeB) == After {
		return -ComparePoints(nodeB, offsetB, nodeA, offsetA)
	}

	if IsInclusiveAncestor(nodeA, nodeB) {
		child := nodeB
		for child.Parent != nodeA {
			child = child.Parent
		}
		if child.Index() < offsetA {
			return After
		}
	}

	return Before
}
