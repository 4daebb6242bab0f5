package pretty

import (
	"fmt"
	"strings"
)

const (
	wordRange  = "range"
	wordRanges = "ranges"
)

// DecodeStats counts what happened to the descriptors of one fragment.
type DecodeStats struct {
	Descriptors int
	Resolved    int
	Applied     int
}

// FormatDecodeSummary formats decode statistics as a single line.
// Example: "2 of 3 ranges resolved, 2 applied".
func (s *Styles) FormatDecodeSummary(stats DecodeStats) string {
	if stats.Descriptors == 0 {
		return s.Dim.Render("No ranges in fragment") + "\n"
	}

	word := wordRanges
	if stats.Descriptors == 1 {
		word = wordRange
	}

	var parts []string
	resolved := fmt.Sprintf("%d of %d %s resolved", stats.Resolved, stats.Descriptors, word)
	switch stats.Resolved {
	case stats.Descriptors:
		parts = append(parts, s.Success.Render(resolved))
	case 0:
		parts = append(parts, s.Failure.Render(resolved))
	default:
		parts = append(parts, s.Warning.Render(resolved))
	}

	applied := fmt.Sprintf("%d applied", stats.Applied)
	if stats.Applied < stats.Descriptors {
		parts = append(parts, s.Warning.Render(applied))
	} else {
		parts = append(parts, applied)
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatNodesSummary formats a node listing summary.
// Example: "12 text nodes, 3 share a hash".
func (s *Styles) FormatNodesSummary(nodes, duplicates int) string {
	word := "text nodes"
	if nodes == 1 {
		word = "text node"
	}
	line := fmt.Sprintf("%d %s", nodes, word)
	if duplicates > 0 {
		line += ", " + s.Warning.Render(fmt.Sprintf("%d share a hash", duplicates))
	}
	return line + "\n"
}

// FindStats counts what a multi-document search found.
type FindStats struct {
	Searched int
	Matched  int
	Errored  int
	Resolved int
}

// FormatFindSummary formats search statistics as a single line.
// Example: "2 of 14 documents matched, 3 ranges resolved".
func (s *Styles) FormatFindSummary(stats FindStats) string {
	word := "documents"
	if stats.Searched == 1 {
		word = "document"
	}
	matched := fmt.Sprintf("%d of %d %s matched", stats.Matched, stats.Searched, word)
	if stats.Matched == 0 {
		matched = s.Failure.Render(matched)
	} else {
		matched = s.Success.Render(matched)
	}

	parts := []string{matched}
	if stats.Matched > 0 {
		word = wordRanges
		if stats.Resolved == 1 {
			word = wordRange
		}
		parts = append(parts, fmt.Sprintf("%d %s resolved", stats.Resolved, word))
	}
	if stats.Errored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d unreadable", stats.Errored)))
	}
	return strings.Join(parts, ", ") + "\n"
}
