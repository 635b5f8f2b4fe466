// Package keyspace enumerates brute force candidates: every string made of a
// fixed prefix followed by lowercase letters, across a range of lengths.
//
// The candidates of a SearchSpace form one flat index space. Lengths are
// visited in increasing order and, within a length, the letter at free
// position j (counted from the end of the prefix) is 'a' + (i / 26^j) % 26,
// so the position right after the prefix cycles fastest. The flat index space
// can be cut into contiguous Ranges so independent workers cover every
// candidate exactly once.
package keyspace

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/unclesp1d3r/swsfsearch/lib/searcherr"
)

const (
	// AlphabetSize is the number of letters a free position can hold.
	AlphabetSize = 26
	// GameCodeLimit is the longest code the game accepts. Longer searches are allowed but pointless in-engine.
	GameCodeLimit = 8
)

// SearchSpace is a validated (min length, max length, prefix) tuple.
type SearchSpace struct {
	MinLength int    // MinLength is the shortest candidate length, prefix included.
	MaxLength int    // MaxLength is the longest candidate length, prefix included.
	Prefix    string // Prefix is the lowercase string every candidate starts with.

	firstLength int    // firstLength is max(MinLength, len(Prefix)).
	total       uint64 // total is the number of candidates.
}

// Range is a half-open [Start, End) slice of a SearchSpace's flat index space.
type Range struct {
	Start uint64
	End   uint64
}

// Len returns the number of candidates in the range.
func (r Range) Len() uint64 {
	if r.End < r.Start {
		return 0
	}

	return r.End - r.Start
}

// NewSearchSpace validates the bounds and prefix and returns the search space.
// It fails before any candidate is produced when a bound is negative, when
// maxLength < minLength, when the prefix is longer than maxLength, when the
// prefix contains anything but letters, or when the candidate count does not
// fit in 64 bits.
func NewSearchSpace(minLength, maxLength int, prefix string) (SearchSpace, error) {
	if minLength < 0 || maxLength < 0 {
		return SearchSpace{}, searcherr.Configf(
			"length bounds must be greater than or equal to 0 (min %d, max %d)", minLength, maxLength)
	}

	if maxLength < minLength {
		return SearchSpace{}, searcherr.Configf(
			"max length %d must be greater than or equal to min length %d", maxLength, minLength)
	}

	prefix = strings.ToLower(prefix)
	if len(prefix) > maxLength {
		return SearchSpace{}, searcherr.Configf("prefix %q is longer than max length %d", prefix, maxLength)
	}

	for _, r := range prefix {
		if r < 'a' || r > 'z' {
			return SearchSpace{}, searcherr.Configf("prefix %q must contain only letters a-z", prefix)
		}
	}

	space := SearchSpace{
		MinLength:   minLength,
		MaxLength:   maxLength,
		Prefix:      prefix,
		firstLength: max(minLength, len(prefix)),
	}

	for length := space.firstLength; length <= maxLength; length++ {
		count, ok := pow26(length - len(prefix))
		if !ok {
			return SearchSpace{}, searcherr.Configf("search space for length %d exceeds 2^64 candidates", length)
		}

		sum, carry := bits.Add64(space.total, count, 0)
		if carry != 0 {
			return SearchSpace{}, searcherr.Configf("search space of lengths %d-%d exceeds 2^64 candidates",
				minLength, maxLength)
		}

		space.total = sum
	}

	return space, nil
}

// Total returns the number of candidates: the sum of 26^(L - len(prefix))
// for every length L in [MinLength, MaxLength] that can hold the prefix.
func (s SearchSpace) Total() uint64 {
	return s.total
}

// ExceedsGameLimit reports whether either bound is longer than the game accepts.
func (s SearchSpace) ExceedsGameLimit() bool {
	return s.MinLength > GameCodeLimit || s.MaxLength > GameCodeLimit
}

// CountForLength returns the number of candidates of the given total length.
func (s SearchSpace) CountForLength(length int) uint64 {
	if length < s.firstLength || length > s.MaxLength {
		return 0
	}

	count, _ := pow26(length - len(s.Prefix))

	return count
}

// Full returns the range covering the whole space.
func (s SearchSpace) Full() Range {
	return Range{Start: 0, End: s.total}
}

// Partition splits the flat index space into at most n contiguous, disjoint
// ranges that together cover every candidate. Earlier ranges receive the
// remainder, so range sizes differ by at most one.
func (s SearchSpace) Partition(n int) []Range {
	if n < 1 {
		n = 1
	}

	if uint64(n) > s.total {
		n = int(s.total) //nolint:gosec // bounded by n above
	}

	if n == 0 {
		return nil
	}

	chunk := s.total / uint64(n)
	rem := s.total % uint64(n)
	ranges := make([]Range, 0, n)

	var start uint64
	for i := range n {
		size := chunk
		if uint64(i) < rem {
			size++
		}

		ranges = append(ranges, Range{Start: start, End: start + size})
		start += size
	}

	return ranges
}

// String describes the space for logs and result headers.
func (s SearchSpace) String() string {
	desc := fmt.Sprintf("lengths %d-%d", s.MinLength, s.MaxLength)
	if s.Prefix != "" {
		desc += fmt.Sprintf(" starting with %q", s.Prefix)
	}

	return desc
}

// pow26 returns 26^n and false on overflow. Negative n yields zero candidates.
func pow26(n int) (uint64, bool) {
	if n < 0 {
		return 0, true
	}

	result := uint64(1)
	for range n {
		hi, lo := bits.Mul64(result, AlphabetSize)
		if hi != 0 {
			return 0, false
		}

		result = lo
	}

	return result, true
}
