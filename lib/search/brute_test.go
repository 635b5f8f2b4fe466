package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclesp1d3r/swsfsearch/lib/matcher"
	"github.com/unclesp1d3r/swsfsearch/lib/scramble"
	"github.com/unclesp1d3r/swsfsearch/lib/searcherr"
	"github.com/unclesp1d3r/swsfsearch/lib/testhelpers"
)

var catPreimages = []string{
	"cde", "bie", "ane", "ccj", "bhj", "amj", "cbo",
	"bgo", "alo", "cat", "bft", "akt", "bey", "ajy",
}

func bruteOptions(t *testing.T, targets []string, minLength, maxLength int) BruteForceOptions {
	t.Helper()

	return BruteForceOptions{
		Common: Common{
			Targets:  targets,
			OutFile:  filepath.Join(t.TempDir(), "matches.txt"),
			Interval: 1000,
		},
		MinLength: minLength,
		MaxLength: maxLength,
		Workers:   1,
	}
}

func TestBruteForce_Cat(t *testing.T) {
	opts := bruteOptions(t, []string{testhelpers.CatDigest}, 1, 3)

	summary, err := BruteForce(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, catPreimages, testhelpers.Candidates(summary.Matches))
	assert.Contains(t, testhelpers.Candidates(summary.Matches), "cat")
	assert.Equal(t, uint64(18278), summary.Checked)
	assert.Equal(t, opts.OutFile, summary.OutFile)

	for _, m := range summary.Matches {
		assert.Equal(t, scramble.Sum("cat"), m.Digest)
	}

	testhelpers.AssertResultsFile(t, opts.OutFile,
		"---- Hash collisions for ['009670FE'] of length 1-3 ----", summary.Matches)
}

func TestBruteForce_ExactlyOneMatch(t *testing.T) {
	opts := bruteOptions(t, []string{"009673c0"}, 1, 3)

	summary, err := BruteForce(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, []matcher.Match{{Candidate: "zzz", Digest: scramble.Sum("zzz")}}, summary.Matches)
}

func TestBruteForce_WorkersFindSameSet(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 8, 64} {
		opts := bruteOptions(t, []string{testhelpers.CatDigest, testhelpers.ZzzDigest}, 1, 3)
		opts.Workers = workers

		summary, err := BruteForce(context.Background(), opts)
		require.NoError(t, err, "workers=%d", workers)

		assert.ElementsMatch(t, append(append([]string(nil), catPreimages...), "zzz"),
			testhelpers.Candidates(summary.Matches), "workers=%d", workers)
		assert.Equal(t, uint64(18278), summary.Checked, "workers=%d", workers)

		_, onDisk := testhelpers.ReadResultsFile(t, opts.OutFile)
		assert.ElementsMatch(t, summary.Matches, onDisk, "workers=%d", workers)
	}
}

func TestBruteForce_Prefix(t *testing.T) {
	opts := bruteOptions(t, testhelpers.Digests("cat"), 1, 3)
	opts.Prefix = "CA"

	summary, err := BruteForce(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"cat"}, testhelpers.Candidates(summary.Matches))
	assert.Equal(t, uint64(27), summary.Checked)
}

func TestBruteForce_ValidationLeavesResultsAlone(t *testing.T) {
	tests := []struct {
		name   string
		min    int
		max    int
		prefix string
		target string
	}{
		{name: "max below min", min: 3, max: 2, target: testhelpers.CatDigest},
		{name: "negative", min: -1, max: 2, target: testhelpers.CatDigest},
		{name: "prefix too long", min: 1, max: 2, prefix: "abc", target: testhelpers.CatDigest},
		{name: "bad target", min: 1, max: 2, target: "xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := bruteOptions(t, []string{tt.target}, tt.min, tt.max)
			opts.Prefix = tt.prefix
			require.NoError(t, os.WriteFile(opts.OutFile, []byte("previous results\n"), 0o600))

			summary, err := BruteForce(context.Background(), opts)
			require.Error(t, err)
			assert.Nil(t, summary)
			assert.ErrorIs(t, err, searcherr.ErrConfiguration)
			testhelpers.AssertExitCode(t, err, searcherr.ExitCodeConfiguration)

			data, readErr := os.ReadFile(opts.OutFile)
			require.NoError(t, readErr)
			assert.Equal(t, "previous results\n", string(data))
		})
	}
}

func TestBruteForce_UnwritableResults(t *testing.T) {
	opts := bruteOptions(t, []string{testhelpers.CatDigest}, 1, 2)
	opts.OutFile = filepath.Join(t.TempDir(), "missing", "matches.txt")

	_, err := BruteForce(context.Background(), opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, searcherr.ErrIO)
	testhelpers.AssertExitCode(t, err, searcherr.ExitCodeIO)
}

func TestBruteForce_PartialDurability(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := bruteOptions(t, []string{testhelpers.CatDigest}, 1, 4)
	opts.Interval = 5000
	opts.Workers = 1
	opts.Reporter = testhelpers.CancelOnReport(1, cancel)

	summary, err := BruteForce(ctx, opts)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	testhelpers.AssertExitCode(t, err, searcherr.ExitCodeInterrupted)

	assert.Equal(t, uint64(10000), summary.Checked, "stops at the second sampling boundary")
	assert.Equal(t, catPreimages[:6], testhelpers.Candidates(summary.Matches),
		"only the preimages enumerated before the stop are recorded")

	_, onDisk := testhelpers.ReadResultsFile(t, opts.OutFile)
	assert.Equal(t, summary.Matches, onDisk, "every recorded match is on disk and nothing else")
}

func TestBruteForce_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := bruteOptions(t, []string{testhelpers.CatDigest}, 1, 3)
	opts.Workers = 4

	summary, err := BruteForce(ctx, opts)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Empty(t, summary.Matches)

	header, matches := testhelpers.ReadResultsFile(t, opts.OutFile)
	assert.NotEmpty(t, header)
	assert.Empty(t, matches)
}

func TestBruteForce_NoOutFile(t *testing.T) {
	opts := bruteOptions(t, []string{testhelpers.ZzzDigest}, 3, 3)
	opts.OutFile = ""

	summary, err := BruteForce(context.Background(), opts)
	require.NoError(t, err)
	assert.Empty(t, summary.OutFile)
	assert.Len(t, summary.Matches, 1)
}

func TestBruteForce_ReportsProgress(t *testing.T) {
	reporter := &testhelpers.RecordingReporter{}

	opts := bruteOptions(t, []string{testhelpers.ZzzDigest}, 1, 3)
	opts.Reporter = reporter

	_, err := BruteForce(context.Background(), opts)
	require.NoError(t, err)

	reports := reporter.Reports()
	require.Len(t, reports, 18)
	assert.Equal(t, uint64(18278), reports[0].Total)

	finished := reporter.Finished()
	require.Len(t, finished, 1)
	assert.Equal(t, uint64(18278), finished[0].Checked)
	assert.Equal(t, uint64(1), finished[0].Matches)
}
