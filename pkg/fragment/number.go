package fragment

import (
	"strconv"

	"github.com/yaklabco/deeplinks/pkg/radix64"
)

// Numbering selects how offsets and indices are spelled in a descriptor.
type Numbering int

const (
	// Decimal spells numbers in base 10.
	Decimal Numbering = iota
	// Rixits spells numbers in the base-64 alphabet used for hashes.
	Rixits
)

func (n Numbering) format(v int) string {
	if n == Rixits {
		return radix64.Encode(uint64(v))
	}
	return strconv.Itoa(v)
}

// parse reads a non-negative number, reporting false when s is not one.
func (n Numbering) parse(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if n == Rixits {
		if !radix64.Valid(s) || len(s) > 10 {
			return 0, false
		}
		return int(radix64.ToNumber(s)), true
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}
