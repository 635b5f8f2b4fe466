package keyspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclesp1d3r/swsfsearch/lib/searcherr"
)

func TestNewSearchSpace_Validation(t *testing.T) {
	tests := []struct {
		name   string
		min    int
		max    int
		prefix string
	}{
		{name: "max below min", min: 3, max: 2},
		{name: "negative min", min: -1, max: 2},
		{name: "negative max", min: 0, max: -1},
		{name: "prefix longer than max", min: 1, max: 2, prefix: "abc"},
		{name: "prefix with digit", min: 1, max: 4, prefix: "a1"},
		{name: "prefix with space", min: 1, max: 4, prefix: "a b"},
		{name: "non-ascii prefix", min: 1, max: 4, prefix: "é"},
		{name: "overflow", min: 1, max: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSearchSpace(tt.min, tt.max, tt.prefix)
			require.Error(t, err)
			assert.ErrorIs(t, err, searcherr.ErrConfiguration)
		})
	}
}

func TestSearchSpace_Total(t *testing.T) {
	tests := []struct {
		name     string
		min      int
		max      int
		prefix   string
		expected uint64
	}{
		{name: "single letters", min: 1, max: 1, expected: 26},
		{name: "one and two", min: 1, max: 2, expected: 26 + 676},
		{name: "prefix ab up to 3", min: 1, max: 3, prefix: "ab", expected: 27},
		{name: "prefix equals max", min: 0, max: 2, prefix: "ab", expected: 1},
		{name: "empty string only", min: 0, max: 0, expected: 1},
		{name: "game range", min: 1, max: 8, expected: 217180147158},
		{name: "uppercase prefix", min: 3, max: 3, prefix: "AB", expected: 26},
		{name: "thirteen letters fits", min: 13, max: 13, expected: 2481152873203736576},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			space, err := NewSearchSpace(tt.min, tt.max, tt.prefix)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, space.Total())
		})
	}
}

func TestSearchSpace_PrefixLowercased(t *testing.T) {
	space, err := NewSearchSpace(1, 3, "Ab")
	require.NoError(t, err)
	assert.Equal(t, "ab", space.Prefix)
}

func TestSearchSpace_ExceedsGameLimit(t *testing.T) {
	inside, err := NewSearchSpace(1, 8, "")
	require.NoError(t, err)
	assert.False(t, inside.ExceedsGameLimit())

	outside, err := NewSearchSpace(1, 9, "")
	require.NoError(t, err)
	assert.True(t, outside.ExceedsGameLimit())
}

func TestSearchSpace_Partition(t *testing.T) {
	space, err := NewSearchSpace(1, 3, "")
	require.NoError(t, err)

	for _, n := range []int{-1, 0, 1, 2, 3, 7, 16, 100000} {
		ranges := space.Partition(n)
		require.NotEmpty(t, ranges)
		assert.LessOrEqual(t, len(ranges), max(n, 1))

		var next uint64
		for _, r := range ranges {
			assert.Equal(t, next, r.Start, "ranges must be contiguous (n=%d)", n)
			assert.Positive(t, r.Len())
			next = r.End
		}

		assert.Equal(t, space.Total(), next, "ranges must cover the space (n=%d)", n)
	}
}

func TestSearchSpace_PartitionBalanced(t *testing.T) {
	space, err := NewSearchSpace(1, 1, "")
	require.NoError(t, err)

	ranges := space.Partition(4)
	require.Len(t, ranges, 4)
	assert.Equal(t, []uint64{7, 7, 6, 6}, []uint64{ranges[0].Len(), ranges[1].Len(), ranges[2].Len(), ranges[3].Len()})
}

func TestSearchSpace_String(t *testing.T) {
	space, err := NewSearchSpace(1, 8, "")
	require.NoError(t, err)
	assert.Equal(t, "lengths 1-8", space.String())

	space, err = NewSearchSpace(2, 4, "ab")
	require.NoError(t, err)
	assert.Equal(t, `lengths 2-4 starting with "ab"`, space.String())
}
