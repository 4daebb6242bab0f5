package fragment

import (
	"github.com/yaklabco/deeplinks/pkg/dom"
)

// Decode resolves every descriptor of fragment against src, dispatching on
// the version digit. The leading '#' is optional. An unknown version yields
// an error wrapping ErrUnknownVersion; failures of single descriptors are
// reported in their Result and never affect the other descriptors.
func Decode(src Source, fragment string) ([]Result, error) {
	c, body, err := DefaultRegistry.Lookup(fragment)
	if err != nil {
		return nil, err
	}
	return c.Decode(src, body), nil
}

// DecodeFragment returns the ranges of fragment in descriptor order.
// Descriptors that do not resolve produce collapsed ranges, so the result
// always has one range per descriptor.
func DecodeFragment(src Source, fragment string) ([]*dom.Range, error) {
	results, err := Decode(src, fragment)
	if err != nil {
		return nil, err
	}
	ranges := make([]*dom.Range, len(results))
	for i, r := range results {
		ranges[i] = r.Range
	}
	return ranges, nil
}
