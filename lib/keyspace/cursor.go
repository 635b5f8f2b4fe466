package keyspace

import (
	"github.com/unclesp1d3r/swsfsearch/lib/scramble"
)

// Cursor walks one Range of a SearchSpace in enumeration order. It keeps a
// single reusable buffer and advances it like an odometer, so stepping to the
// next candidate costs one byte increment in the common case.
//
// A Cursor is not safe for concurrent use; give each worker its own.
type Cursor struct {
	space SearchSpace
	rng   Range
	seed  scramble.Digest // seed is the accumulator after "code_" and the prefix.
	buf   []byte          // buf holds prefix followed by the free letters.

	index     uint64 // index is the flat index of the current candidate.
	remaining uint64 // remaining is how many more times Next will succeed.
	started   bool
}

// NewCursor returns a cursor positioned before the first candidate of rng.
// Ends past the space's total are clamped.
func NewCursor(space SearchSpace, rng Range) *Cursor {
	c := &Cursor{
		space: space,
		rng:   rng,
		seed:  scramble.Fold(scramble.Seed, space.Prefix),
		buf:   make([]byte, 0, space.MaxLength),
	}
	c.Reset()

	return c
}

// Reset rewinds the cursor to the start of its range. Enumeration is
// deterministic, so a reset cursor yields the same sequence again.
func (c *Cursor) Reset() {
	start, end := c.rng.Start, min(c.rng.End, c.space.total)
	if start > end {
		start = end
	}

	c.index = start
	c.remaining = end - start
	c.started = false

	if c.remaining > 0 {
		c.seek(start)
	}
}

// Next advances to the next candidate and reports whether there is one.
func (c *Cursor) Next() bool {
	if c.remaining == 0 {
		return false
	}

	if c.started {
		c.advance()
	}

	c.started = true
	c.remaining--

	return true
}

// Candidate returns the current candidate as a string. It allocates; the hot
// path uses Bytes and Digest instead.
func (c *Cursor) Candidate() string {
	return string(c.buf)
}

// Bytes returns the current candidate. The slice is overwritten by Next.
func (c *Cursor) Bytes() []byte {
	return c.buf
}

// Digest returns the scrambled value of the current candidate.
func (c *Cursor) Digest() scramble.Digest {
	return scramble.SumLowerASCII(c.seed, c.buf[len(c.space.Prefix):])
}

// Length returns the length of the current candidate.
func (c *Cursor) Length() int {
	return len(c.buf)
}

// Index returns the flat index of the current candidate within the space.
func (c *Cursor) Index() uint64 {
	return c.index
}

// Remaining returns how many candidates are left after the current one.
func (c *Cursor) Remaining() uint64 {
	return c.remaining
}

// seek positions the buffer at flat index i, which must be below the total.
func (c *Cursor) seek(i uint64) {
	length := c.space.firstLength
	for ; length < c.space.MaxLength; length++ {
		count := c.space.CountForLength(length)
		if i < count {
			break
		}

		i -= count
	}

	c.setLength(length, i)
}

// setLength lays out the prefix and the little-endian base-26 digits of
// offset into a buffer of the given length.
func (c *Cursor) setLength(length int, offset uint64) {
	plen := len(c.space.Prefix)
	c.buf = c.buf[:length]
	copy(c.buf, c.space.Prefix)

	for j := plen; j < length; j++ {
		c.buf[j] = 'a' + byte(offset%AlphabetSize)
		offset /= AlphabetSize
	}
}

func (c *Cursor) advance() {
	c.index++

	for j := len(c.space.Prefix); j < len(c.buf); j++ {
		if c.buf[j] < 'z' {
			c.buf[j]++

			return
		}

		c.buf[j] = 'a'
	}

	// Every free position wrapped: move on to the first candidate of the next length.
	c.setLength(len(c.buf)+1, 0)
}
