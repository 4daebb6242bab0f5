package fragment

import (
	"fmt"

	"github.com/yaklabco/deeplinks/pkg/dom"
)

// Apply replaces the contents of sel with ranges, in order, and scrolls the
// element holding the first range into view. It returns the number of ranges
// the selection kept. When that is fewer than len(ranges) the error wraps
// ErrMultiRangeUnsupported; the kept ranges stay selected. Nil ranges are
// ignored.
func Apply(sel *dom.Selection, ranges []*dom.Range) (int, error) {
	kept := make([]*dom.Range, 0, len(ranges))
	for _, r := range ranges {
		if r != nil {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return 0, nil
	}
	sel.RemoveAllRanges()
	for _, r := range kept {
		sel.AddRange(r)
	}
	if first := kept[0]; first.StartContainer != nil {
		target := first.StartContainer.ParentElement()
		if target == nil {
			target = first.StartContainer
		}
		sel.ScrollIntoView(target)
	}
	if n := sel.RangeCount(); n != len(kept) {
		return n, fmt.Errorf("kept %d of %d ranges: %w", n, len(kept), ErrMultiRangeUnsupported)
	}
	return len(kept), nil
}
