package dom

import "strings"

// Selection is a host selection: an ordered list of ranges.
//
// A browser that cannot hold several ranges at once silently ignores every
// AddRange after the first. MaxRanges models that: when positive, ranges
// beyond the limit are dropped.
type Selection struct {
	// MaxRanges caps how many ranges the selection holds. Zero means no limit.
	MaxRanges int

	// OnScroll, when set, is called with the element a caller asked to bring
	// into view.
	OnScroll func(n *Node)

	ranges []*Range
}

// NewSelection returns an empty selection with no range limit.
func NewSelection() *Selection {
	return &Selection{}
}

// RangeCount returns the number of ranges in the selection.
func (s *Selection) RangeCount() int {
	return len(s.ranges)
}

// RangeAt returns the i-th range, or nil if i is out of range.
func (s *Selection) RangeAt(i int) *Range {
	if i < 0 || i >= len(s.ranges) {
		return nil
	}
	return s.ranges[i]
}

// Ranges returns a copy of the selection's ranges.
func (s *Selection) Ranges() []*Range {
	out := make([]*Range, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// AddRange appends r unless the selection is full.
func (s *Selection) AddRange(r *Range) {
	if r == nil {
		return
	}
	if s.MaxRanges > 0 && len(s.ranges) >= s.MaxRanges {
		return
	}
	s.ranges = append(s.ranges, r)
}

// RemoveAllRanges empties the selection.
func (s *Selection) RemoveAllRanges() {
	s.ranges = nil
}

// ScrollIntoView asks the host to reveal n.
func (s *Selection) ScrollIntoView(n *Node) {
	if s.OnScroll != nil && n != nil {
		s.OnScroll(n)
	}
}

// String returns the concatenated text of all ranges.
func (s *Selection) String() string {
	var sb strings.Builder
	for _, r := range s.ranges {
		sb.WriteString(r.String())
	}
	return sb.String()
}
