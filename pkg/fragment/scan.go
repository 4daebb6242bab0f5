package fragment

import (
	"strings"

	"github.com/yaklabco/deeplinks/pkg/dom"
)

// Source is the document a fragment is encoded against or resolved in.
// *dom.Document satisfies it.
type Source interface {
	// Body is the root that degenerate ranges collapse onto.
	Body() *dom.Node
	// TextNodes lists the addressable text nodes in document order. Two calls
	// on an unchanged document must return the same nodes in the same order.
	TextNodes() []*dom.Node
}

// Tag marks whether a matched node carries the start hash or the end hash.
type Tag byte

// Match tags.
const (
	TagStart Tag = 's'
	TagEnd   Tag = 'e'
)

// Target is what a scan looks for: the two boundary hashes, and for an
// encode also the actual boundary nodes whose positions are wanted.
type Target struct {
	StartHash string
	EndHash   string
	StartNode *dom.Node
	EndNode   *dom.Node
}

// Match is a text node whose hash equals one of a target's hashes. A node
// matching both hashes is tagged TagStart.
type Match struct {
	Node *dom.Node
	Tag  Tag
}

// Scan is the result of looking for one target: every matching node in
// document order, plus the positions of the target's own nodes.
type Scan struct {
	Matches []Match
	// StartIndex and EndIndex are the positions of Target.StartNode and
	// Target.EndNode in Matches, or -1 when not seen.
	StartIndex int
	EndIndex   int
	// EndCount counts matches tagged TagEnd.
	EndCount int
}

// ScanTargets walks src's text nodes once, hashing each node a single time,
// and folds every node into the scan of each target it matches.
func ScanTargets(src Source, targets []Target) []Scan {
	scans := make([]Scan, len(targets))
	for i := range scans {
		scans[i].StartIndex, scans[i].EndIndex = -1, -1
	}
	if len(targets) == 0 {
		return scans
	}

	for _, node := range src.TextNodes() {
		hash := HashNode(node)
		for i, t := range targets {
			scans[i] = scans[i].fold(t, node, hash)
		}
	}
	return scans
}

func (s Scan) fold(t Target, node *dom.Node, hash string) Scan {
	if node == t.StartNode {
		s.StartIndex = len(s.Matches)
	}
	if node == t.EndNode {
		s.EndIndex = len(s.Matches)
	}
	switch hash {
	case t.StartHash:
		s.Matches = append(s.Matches, Match{Node: node, Tag: TagStart})
	case t.EndHash:
		s.Matches = append(s.Matches, Match{Node: node, Tag: TagEnd})
		s.EndCount++
	}
	return s
}

// Tags returns the tag sequence, one byte per match.
func (s Scan) Tags() string {
	var sb strings.Builder
	sb.Grow(len(s.Matches))
	for _, m := range s.Matches {
		sb.WriteByte(byte(m.Tag))
	}
	return sb.String()
}

// Ambiguous reports whether some tag value repeats, meaning the hashes alone
// cannot tell the boundary nodes apart.
func (s Scan) Ambiguous() bool {
	seen := map[Tag]bool{}
	for _, m := range s.Matches {
		if seen[m.Tag] {
			return true
		}
		seen[m.Tag] = true
	}
	return false
}

func (s Scan) at(i int) *dom.Node {
	if i < 0 || i >= len(s.Matches) {
		return nil
	}
	return s.Matches[i].Node
}

// Resolve picks the start and end nodes for d from the scan. Either result
// is nil when nothing fits.
//
// Resolution order:
//  1. d's disambiguation indices, when its tag sequence equals the fresh one;
//  2. the first match for both ends, when both hashes are the same;
//  3. a positional guess: with several end matches, the first start match and
//     the match after it; otherwise the first end match and the match before.
//
// The guess can pick the wrong pair once the document has changed.
func (s Scan) Resolve(d Descriptor) (start, end *dom.Node) {
	if d.Dedupe != nil && d.Dedupe.Tags == s.Tags() {
		start, end = s.at(d.Dedupe.Start), s.at(d.Dedupe.End)
		if start != nil && end != nil {
			return start, end
		}
	}

	if d.SingleNode() {
		first := s.at(0)
		return first, first
	}

	anchor := TagEnd
	if s.EndCount > 1 {
		anchor = TagStart
	}
	idx := -1
	for i, m := range s.Matches {
		if m.Tag == anchor {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}
	if anchor == TagStart {
		return s.at(idx), s.at(idx + 1)
	}
	return s.at(idx - 1), s.at(idx)
}
