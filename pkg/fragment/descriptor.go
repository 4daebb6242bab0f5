package fragment

import (
	"fmt"
	"strings"
)

// Boundary is one end of a selected span: a node hash plus an offset into
// that node's text, in UTF-16 code units.
type Boundary struct {
	Hash   string
	Offset int
}

// Disambiguation records where the true boundary nodes sit among every node
// sharing their hashes. Tags lists those nodes in document order, 's' for a
// node matching the start hash and 'e' for one matching only the end hash.
// An index of -1 means the index was missing or unreadable.
type Disambiguation struct {
	Tags  string
	Start int
	End   int
}

// Descriptor describes a single range of a fragment.
type Descriptor struct {
	Start  Boundary
	End    Boundary
	Dedupe *Disambiguation
}

// SingleNode reports whether both boundaries name the same hash, in which
// case the descriptor is written in short form.
func (d Descriptor) SingleNode() bool {
	return d.Start.Hash == d.End.Hash
}

// Format writes d with numbers spelled in num:
//
//	hash:start:end                       short form
//	hash:start.hash:end                  long form
//	...~tags~startIndex~endIndex         with disambiguation
func (d Descriptor) Format(num Numbering) string {
	var sb strings.Builder
	sb.WriteString(d.Start.Hash)
	sb.WriteByte(':')
	sb.WriteString(num.format(d.Start.Offset))
	if d.SingleNode() {
		sb.WriteByte(':')
	} else {
		sb.WriteByte('.')
		sb.WriteString(d.End.Hash)
		sb.WriteByte(':')
	}
	sb.WriteString(num.format(d.End.Offset))
	if d.Dedupe != nil {
		sb.WriteByte('~')
		sb.WriteString(d.Dedupe.Tags)
		sb.WriteByte('~')
		sb.WriteString(num.format(d.Dedupe.Start))
		sb.WriteByte('~')
		sb.WriteString(num.format(d.Dedupe.End))
	}
	return sb.String()
}

// ParseDescriptor reads a single descriptor written in num.
//
// The hash/offset part must be well formed. The disambiguation suffix is
// read leniently: missing or unreadable indices become -1 and simply fail to
// resolve later.
func ParseDescriptor(s string, num Numbering) (Descriptor, error) {
	main, suffix, hasSuffix := strings.Cut(s, "~")

	var d Descriptor
	var startOffset, endOffset string
	parts := strings.Split(main, ".")
	switch len(parts) {
	case 1:
		fields := strings.Split(parts[0], ":")
		if len(fields) != 3 {
			return Descriptor{}, fmt.Errorf("%q: want hash:offset:offset: %w", s, ErrMalformedDescriptor)
		}
		d.Start.Hash, d.End.Hash = fields[0], fields[0]
		startOffset, endOffset = fields[1], fields[2]
	case 2:
		start := strings.Split(parts[0], ":")
		end := strings.Split(parts[1], ":")
		if len(start) != 2 || len(end) != 2 {
			return Descriptor{}, fmt.Errorf("%q: want hash:offset.hash:offset: %w", s, ErrMalformedDescriptor)
		}
		d.Start.Hash, startOffset = start[0], start[1]
		d.End.Hash, endOffset = end[0], end[1]
	default:
		return Descriptor{}, fmt.Errorf("%q: too many boundaries: %w", s, ErrMalformedDescriptor)
	}

	if d.Start.Hash == "" || d.End.Hash == "" {
		return Descriptor{}, fmt.Errorf("%q: empty hash: %w", s, ErrMalformedDescriptor)
	}

	var ok bool
	if d.Start.Offset, ok = num.parse(startOffset); !ok {
		return Descriptor{}, fmt.Errorf("%q: bad start offset %q: %w", s, startOffset, ErrMalformedDescriptor)
	}
	if d.End.Offset, ok = num.parse(endOffset); !ok {
		return Descriptor{}, fmt.Errorf("%q: bad end offset %q: %w", s, endOffset, ErrMalformedDescriptor)
	}

	if hasSuffix {
		d.Dedupe = parseDisambiguation(suffix, num)
	}
	return d, nil
}

func parseDisambiguation(s string, num Numbering) *Disambiguation {
	fields := strings.Split(s, "~")
	dd := &Disambiguation{Tags: fields[0], Start: -1, End: -1}
	if len(fields) > 1 {
		if v, ok := num.parse(fields[1]); ok {
			dd.Start = v
		}
	}
	if len(fields) > 2 {
		if v, ok := num.parse(fields[2]); ok {
			dd.End = v
		}
	}
	return dd
}
