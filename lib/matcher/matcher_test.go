package matcher

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclesp1d3r/swsfsearch/lib/keyspace"
	"github.com/unclesp1d3r/swsfsearch/lib/scramble"
	"github.com/unclesp1d3r/swsfsearch/lib/searcherr"
)

// sliceSource feeds fixed candidates to a Matcher.
type sliceSource struct {
	items []string
	pos   int
	err   error
}

func (s *sliceSource) Next() bool {
	if s.pos >= len(s.items) {
		return false
	}

	s.pos++

	return true
}

func (s *sliceSource) Candidate() string        { return s.items[s.pos-1] }
func (s *sliceSource) Digest() scramble.Digest { return scramble.Sum(s.Candidate()) }
func (s *sliceSource) Err() error               { return s.err }

// countingReporter records every sample it receives.
type countingReporter struct {
	mu       sync.Mutex
	reports  []Progress
	finished []Progress
	onReport func(Progress)
}

func (r *countingReporter) Report(p Progress) {
	r.mu.Lock()
	r.reports = append(r.reports, p)
	r.mu.Unlock()

	if r.onReport != nil {
		r.onReport(p)
	}
}

func (r *countingReporter) Finish(p Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.finished = append(r.finished, p)
}

func mustTargets(t *testing.T, codes ...string) *TargetSet {
	t.Helper()

	values := make([]string, len(codes))
	for i, c := range codes {
		values[i] = scramble.Sum(c).String()
	}

	targets, err := NewTargetSet(values)
	require.NoError(t, err)

	return targets
}

func TestMatcher_RunSliceSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.txt")
	results, err := CreateResultsFile(path, "header")
	require.NoError(t, err)

	var seen []Match

	m := New(Config{
		Targets: mustTargets(t, "password"),
		Results: results,
		OnMatch: func(match Match) { seen = append(seen, match) },
	})

	src := &sliceSource{items: []string{"hello", "Password", "quentin", "password"}}
	require.NoError(t, m.Run(context.Background(), src))
	require.NoError(t, results.Close())

	expected := []Match{
		{Candidate: "Password", Digest: 0x2C821FFD},
		{Candidate: "password", Digest: 0x2C821FFD},
	}
	assert.Equal(t, expected, m.Matches())
	assert.Equal(t, expected, seen)
	assert.Equal(t, uint64(4), m.Tracker().Checked())
	assert.Equal(t, []string{"header", "Password (2C821FFD)", "password (2C821FFD)"}, readLines(t, path))
}

func TestMatcher_BruteForceCat(t *testing.T) {
	space, err := keyspace.NewSearchSpace(1, 3, "")
	require.NoError(t, err)

	m := New(Config{Targets: mustTargets(t, "cat"), Tracker: NewTracker(space.Total())})
	require.NoError(t, m.Run(context.Background(), keyspace.NewCursor(space, space.Full())))

	matches := m.Matches()
	require.Len(t, matches, 14)

	var candidates []string
	for _, match := range matches {
		assert.Equal(t, scramble.Sum("cat"), match.Digest)
		candidates = append(candidates, match.Candidate)
	}

	assert.Equal(t, []string{
		"cde", "bie", "ane", "ccj", "bhj", "amj", "cbo",
		"bgo", "alo", "cat", "bft", "akt", "bey", "ajy",
	}, candidates)
	assert.Equal(t, space.Total(), m.Tracker().Checked())
}

func TestMatcher_ReportsAtInterval(t *testing.T) {
	space, err := keyspace.NewSearchSpace(1, 2, "")
	require.NoError(t, err)

	reporter := &countingReporter{}
	m := New(Config{
		Targets:  mustTargets(t, "zz"),
		Tracker:  NewTracker(space.Total()),
		Reporter: reporter,
		Interval: 100,
	})

	require.NoError(t, m.Run(context.Background(), keyspace.NewCursor(space, space.Full())))

	final := m.Finish()

	require.Len(t, reporter.reports, 7, "702 candidates sampled every 100")
	assert.Equal(t, uint64(100), reporter.reports[0].Checked)
	assert.Equal(t, uint64(700), reporter.reports[6].Checked)
	require.Len(t, reporter.finished, 1)
	assert.Equal(t, uint64(702), final.Checked)
	assert.Equal(t, uint64(1), final.Matches)
}

func TestMatcher_CancelAtBoundary(t *testing.T) {
	space, err := keyspace.NewSearchSpace(1, 3, "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reporter := &countingReporter{onReport: func(Progress) { cancel() }}
	m := New(Config{Targets: mustTargets(t, "zzz"), Reporter: reporter, Interval: 1000})

	err = m.Run(ctx, keyspace.NewCursor(space, space.Full()))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(2000), m.Tracker().Checked(), "stops at the boundary after cancellation")
	assert.Empty(t, m.Matches())
}

func TestMatcher_AlreadyCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := New(Config{Targets: mustTargets(t, "cat")})
	err := m.Run(ctx, &sliceSource{items: []string{"cat"}})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, m.Matches())
}

func TestMatcher_SourceError(t *testing.T) {
	boom := errors.New("decode failed")
	m := New(Config{Targets: mustTargets(t, "cat")})

	err := m.Run(context.Background(), &sliceSource{items: []string{"cat"}, err: boom})
	require.ErrorIs(t, err, boom)
	assert.Len(t, m.Matches(), 1)
}

func TestMatcher_AppendFailureAborts(t *testing.T) {
	results, err := CreateResultsFile(filepath.Join(t.TempDir(), "matches.txt"), "header")
	require.NoError(t, err)
	require.NoError(t, results.Close())

	m := New(Config{Targets: mustTargets(t, "cat"), Results: results})

	err = m.Run(context.Background(), &sliceSource{items: []string{"dog", "cat", "cat"}})
	require.ErrorIs(t, err, searcherr.ErrIO)
	assert.Empty(t, m.Matches(), "a match that failed to persist is not recorded")
	assert.Equal(t, uint64(2), m.Tracker().Checked())
}

func TestMatcher_ConcurrentRuns(t *testing.T) {
	space, err := keyspace.NewSearchSpace(1, 3, "")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "matches.txt")
	results, err := CreateResultsFile(path, "header")
	require.NoError(t, err)

	m := New(Config{Targets: mustTargets(t, "cat", "zzz"), Results: results, Interval: 500})

	var wg sync.WaitGroup
	for _, rng := range space.Partition(6) {
		wg.Add(1)

		go func(rng keyspace.Range) {
			defer wg.Done()
			assert.NoError(t, m.Run(context.Background(), keyspace.NewCursor(space, rng)))
		}(rng)
	}

	wg.Wait()
	require.NoError(t, results.Close())

	assert.Len(t, m.Matches(), 15)
	assert.Equal(t, space.Total(), m.Tracker().Checked())
	assert.Len(t, readLines(t, path), 16)
}
