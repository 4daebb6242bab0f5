package fragment

import (
	"fmt"

	"github.com/yaklabco/deeplinks/pkg/dom"
)

// EncodeSelection writes the fragment for every range of sel, in the
// selection's own order, using the codec for version. It returns "" when
// no range has text to anchor on.
func EncodeSelection(src Source, sel *dom.Selection, version int) (string, error) {
	return EncodeRanges(src, sel.Ranges(), version)
}

// EncodeRanges is EncodeSelection for a bare list of ranges.
func EncodeRanges(src Source, ranges []*dom.Range, version int) (string, error) {
	c, ok := DefaultRegistry.Get(version)
	if !ok {
		return "", fmt.Errorf("version %d: %w", version, ErrUnknownVersion)
	}
	return c.Encode(src, ranges), nil
}
