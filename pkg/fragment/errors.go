package fragment

import "errors"

var (
	// ErrEmptyNormalization means a range has no non-blank text boundary.
	// Such ranges are left out of the encoded fragment.
	ErrEmptyNormalization = errors.New("range has no text to anchor on")

	// ErrUnresolvedBoundary means no node in the document matches a
	// descriptor's hash, or its offset does not fit the matched node.
	ErrUnresolvedBoundary = errors.New("boundary not found in document")

	// ErrMalformedDescriptor means a descriptor does not follow the grammar.
	ErrMalformedDescriptor = errors.New("malformed descriptor")

	// ErrMultiRangeUnsupported means the selection accepted fewer ranges
	// than it was given.
	ErrMultiRangeUnsupported = errors.New("selection does not support multiple ranges")

	// ErrUnknownVersion means the fragment's version digit has no codec.
	ErrUnknownVersion = errors.New("unknown fragment version")
)
