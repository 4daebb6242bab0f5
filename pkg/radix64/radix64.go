// Package radix64 converts non-negative integers to and from a compact,
// URL-safe base-64 numeral. Unlike encoding/base64 it encodes numbers, not
// bytes: there is no padding and the most significant rixit comes first.
package radix64

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Alphabet holds the 64 rixits in value order.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"

const base = uint64(len(Alphabet))

// ErrInvalidInput is returned when a number has no base-64 representation
// (negative, infinite or NaN).
var ErrInvalidInput = errors.New("invalid input")

// FromNumber encodes the integer part of n.
// Only the floor of n is encoded; fractional parts are discarded.
func FromNumber(n float64) (string, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return "", fmt.Errorf("radix64: %v: %w", n, ErrInvalidInput)
	}
	n = math.Floor(n)
	if n >= math.MaxUint64 {
		return "", fmt.Errorf("radix64: %v out of range: %w", n, ErrInvalidInput)
	}
	return Encode(uint64(n)), nil
}

// Encode returns the minimal-length rixit string for n. Zero encodes as "0".
func Encode(n uint64) string {
	var buf [11]byte // 64^11 > 2^64
	i := len(buf)
	for {
		i--
		buf[i] = Alphabet[n%base]
		n /= base
		if n == 0 {
			break
		}
	}
	return string(buf[i:])
}

// ToNumber reads s as a big-endian base-64 numeral.
//
// Characters outside the alphabet are not rejected: each one contributes -1,
// which corrupts the result. Callers that need validation use Valid first.
func ToNumber(s string) int64 {
	var result int64
	for i := 0; i < len(s); i++ {
		result = result*int64(base) + int64(strings.IndexByte(Alphabet, s[i]))
	}
	return result
}

// Valid reports whether s is a non-empty string of alphabet characters.
func Valid(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(Alphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}
