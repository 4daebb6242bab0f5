// Package cyrb53 implements the cyrb53 string hash: a fast, order-sensitive,
// non-cryptographic 53-bit digest.
//
// The hash is computed over UTF-16 code units so that it agrees with values
// produced in a browser, where strings are sequences of UTF-16 code units.
package cyrb53

import "unicode/utf16"

// Max is one more than the largest value Sum can return.
const Max = 1 << 53

const (
	seed1 uint32 = 0xdeadbeef
	seed2 uint32 = 0x41c6ce57

	prime1 uint32 = 2654435761
	prime2 uint32 = 1597334677
	mix1   uint32 = 2246822507
	mix2   uint32 = 3266489909
)

// Sum returns the cyrb53 hash of s in [0, Max).
func Sum(s string) uint64 {
	return SumUTF16(utf16.Encode([]rune(s)))
}

// SumUTF16 hashes a sequence of UTF-16 code units.
func SumUTF16(units []uint16) uint64 {
	h1, h2 := seed1, seed2
	for _, ch := range units {
		h1 = (h1 ^ uint32(ch)) * prime1
		h2 = (h2 ^ uint32(ch)) * prime2
	}
	h1 = (h1^(h1>>16))*mix1 ^ (h2^(h2>>13))*mix2
	h2 = (h2^(h2>>16))*mix1 ^ (h1^(h1>>13))*mix2
	return uint64(h2&0x1fffff)<<32 | uint64(h1)
}
