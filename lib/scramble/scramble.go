// Package scramble implements the cheat code scrambling function used by
// Star Wars: Jedi Starfighter.
//
// The game lowercases the entered code, prepends the literal "code_" and
// folds every character into a 32-bit accumulator with h = h*5 + c. The
// result is compared against a table of stored digests. The function is
// trivially invertible by brute force, which is what this module exists for.
package scramble

import (
	"fmt"
	"strconv"
	"strings"
)

// CodePrefix is the literal the game prepends to every code before hashing.
const CodePrefix = "code_"

const (
	multiplier = 5 // Accumulator multiplier applied per character
	digestLen  = 8 // Hex characters in the canonical digest form
)

// Digest is the 32-bit scrambled value of a code.
type Digest uint32

// Seed is the accumulator state after folding CodePrefix alone. Folding a
// candidate starting from Seed yields the same value as folding
// CodePrefix+candidate from zero.
var Seed = Fold(0, CodePrefix) //nolint:gochecknoglobals // Precomputed constant

// String returns the canonical form: exactly 8 uppercase hex digits.
func (d Digest) String() string {
	return fmt.Sprintf("%08X", uint32(d))
}

// Fold folds s into the accumulator starting from seed. s is folded as-is,
// callers are responsible for lowercasing.
func Fold(seed Digest, s string) Digest {
	h := uint32(seed)
	for _, r := range s {
		h = h*multiplier + uint32(r)
	}

	return Digest(h)
}

// Sum returns the digest of candidate. The candidate is lowercased first, so
// Sum("ABC") == Sum("abc").
func Sum(candidate string) Digest {
	if isLowerASCII(candidate) {
		h := uint32(Seed)
		for i := 0; i < len(candidate); i++ {
			h = h*multiplier + uint32(candidate[i])
		}

		return Digest(h)
	}

	return Fold(Seed, strings.ToLower(candidate))
}

// SumLowerASCII folds b starting from seed. b must already be lowercase
// ASCII; no normalization is performed. This is the brute force hot path.
func SumLowerASCII(seed Digest, b []byte) Digest {
	h := uint32(seed)
	for _, c := range b {
		h = h*multiplier + uint32(c)
	}

	return Digest(h)
}

// ParseDigest parses a digest from 1-8 hex digits in any case, with an
// optional 0x prefix.
func ParseDigest(s string) (Digest, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(strings.TrimPrefix(trimmed, "0x"), "0X")

	if trimmed == "" || len(trimmed) > digestLen {
		return 0, fmt.Errorf("invalid digest %q: expected 1-%d hex digits", s, digestLen)
	}

	v, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid digest %q: %w", s, err)
	}

	return Digest(v), nil
}

func isLowerASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x80 || (c >= 'A' && c <= 'Z') {
			return false
		}
	}

	return true
}
