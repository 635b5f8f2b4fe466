package matcher

import (
	"strings"

	"github.com/duke-git/lancet/v2/slice"

	"github.com/unclesp1d3r/swsfsearch/lib/scramble"
	"github.com/unclesp1d3r/swsfsearch/lib/searcherr"
)

// TargetSet is the immutable set of digests a search looks for. It is built
// once per run and read concurrently by every worker without locking.
type TargetSet struct {
	digests []scramble.Digest
	lookup  map[scramble.Digest]struct{}
}

// NewTargetSet parses every value as a digest (hex, any case, optional 0x)
// and removes duplicates while keeping first-seen order.
func NewTargetSet(values []string) (*TargetSet, error) {
	if len(values) == 0 {
		return nil, searcherr.Configf("at least one target digest is required")
	}

	parsed := make([]scramble.Digest, 0, len(values))
	for _, v := range values {
		d, err := scramble.ParseDigest(v)
		if err != nil {
			return nil, searcherr.Config("parse target digest", err)
		}

		parsed = append(parsed, d)
	}

	digests := slice.Unique(parsed)
	lookup := make(map[scramble.Digest]struct{}, len(digests))

	for _, d := range digests {
		lookup[d] = struct{}{}
	}

	return &TargetSet{digests: digests, lookup: lookup}, nil
}

// Contains reports whether d is one of the targets.
func (t *TargetSet) Contains(d scramble.Digest) bool {
	_, ok := t.lookup[d]

	return ok
}

// Len returns the number of distinct targets.
func (t *TargetSet) Len() int {
	return len(t.digests)
}

// Digests returns a copy of the targets in first-seen order.
func (t *TargetSet) Digests() []scramble.Digest {
	return append([]scramble.Digest(nil), t.digests...)
}

// Strings returns the targets in canonical form.
func (t *TargetSet) Strings() []string {
	out := make([]string, len(t.digests))
	for i, d := range t.digests {
		out[i] = d.String()
	}

	return out
}

// String renders the targets as a bracketed, quoted list: ['0EB118BA', '2C821FFD'].
func (t *TargetSet) String() string {
	quoted := make([]string, len(t.digests))
	for i, d := range t.digests {
		quoted[i] = "'" + d.String() + "'"
	}

	return "[" + strings.Join(quoted, ", ") + "]"
}
