package wordlist

import (
	"unicode/utf8"

	"github.com/unclesp1d3r/swsfsearch/lib/searcherr"
)

// LengthFilter keeps lines whose length in characters is within [Min, Max].
// A Max of zero means no upper bound.
type LengthFilter struct {
	Min int
	Max int
}

// Validate rejects negative bounds and a Max below Min.
func (f LengthFilter) Validate() error {
	if f.Min < 0 || f.Max < 0 {
		return searcherr.Configf("length bounds must be greater than or equal to 0 (min %d, max %d)", f.Min, f.Max)
	}

	if f.Max != 0 && f.Max < f.Min {
		return searcherr.Configf("max length %d must be greater than or equal to min length %d", f.Max, f.Min)
	}

	return nil
}

// Accept reports whether line passes the filter.
func (f LengthFilter) Accept(line string) bool {
	n := utf8.RuneCountInString(line)

	return n >= f.Min && (f.Max == 0 || n <= f.Max)
}

// CountLines counts the lines of path that pass filter. It reads the whole
// file once and fails the same way a search over the file would.
func CountLines(path, encodingLabel string, filter LengthFilter) (uint64, error) {
	r, err := Open(path, encodingLabel)
	if err != nil {
		return 0, err
	}

	defer func() { _ = r.Close() }()

	var count uint64
	for r.Next() {
		if filter.Accept(r.Line()) {
			count++
		}
	}

	return count, r.Err()
}
