package dom

import (
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// UTF16Length returns the length of a string in UTF-16 code units.
// DOM offsets into character data count UTF-16 code units, not bytes.
func UTF16Length(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// UTF16ToByteOffset converts a UTF-16 code unit offset into a byte offset.
// Returns -1 if the offset is negative or past the end of s. An offset that
// falls between the two halves of a surrogate pair maps to the start of the
// rune.
func UTF16ToByteOffset(s string, offset int) int {
	if offset < 0 {
		return -1
	}
	units := 0
	for i, r := range s {
		if units >= offset {
			return i
		}
		units += utf16.RuneLen(r)
		if units > offset {
			return i
		}
	}
	if units == offset {
		return len(s)
	}
	return -1
}

// ByteToUTF16Offset converts a byte offset into a UTF-16 code unit offset.
// Returns -1 if the byte offset is out of bounds.
func ByteToUTF16Offset(s string, byteOffset int) int {
	if byteOffset < 0 || byteOffset > len(s) {
		return -1
	}
	units := 0
	for i := 0; i < byteOffset; {
		r, size := utf8.DecodeRuneInString(s[i:])
		units += utf16.RuneLen(r)
		i += size
	}
	return units
}

// UTF16Substring extracts s[start:end] using UTF-16 code unit offsets.
// Offsets are clamped to the string.
func UTF16Substring(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < start {
		return ""
	}
	startByte := UTF16ToByteOffset(s, start)
	if startByte < 0 {
		return ""
	}
	endByte := UTF16ToByteOffset(s, end)
	if endByte < 0 {
		endByte = len(s)
	}
	return s[startByte:endByte]
}

// IsBlank reports whether s is empty or contains only white space. U+FEFF
// counts as white space, as it does for ECMAScript trim.
func IsBlank(s string) bool {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	}) == ""
}
