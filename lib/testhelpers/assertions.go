package testhelpers

import (
	"bufio"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclesp1d3r/swsfsearch/lib/matcher"
	"github.com/unclesp1d3r/swsfsearch/lib/scramble"
	"github.com/unclesp1d3r/swsfsearch/lib/searcherr"
)

// ReadResultsFile parses a results file. It fails the test unless the first
// line is a header and every other line is a complete match record whose
// digest is the digest of its candidate.
func ReadResultsFile(t *testing.T, path string) (string, []matcher.Match) {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan(), "results file %s is empty", path)

	header := scanner.Text()
	require.True(t, matcher.IsHeader(header), "first line %q is not a header", header)

	var matches []matcher.Match
	for scanner.Scan() {
		m, err := matcher.ParseResultLine(scanner.Text())
		require.NoError(t, err, "line %d", len(matches)+2)
		require.Equal(t, scramble.Sum(m.Candidate), m.Digest, "line %q records the wrong digest", scanner.Text())
		matches = append(matches, m)
	}
	require.NoError(t, scanner.Err())

	return header, matches
}

// AssertResultsFile checks a results file holds exactly header and expected, in order.
func AssertResultsFile(t *testing.T, path, header string, expected []matcher.Match) {
	t.Helper()

	gotHeader, got := ReadResultsFile(t, path)
	assert.Equal(t, header, gotHeader, "header mismatch")
	assert.Equal(t, expected, got, "matches mismatch")
}

// Candidates returns the candidates of matches in order.
func Candidates(matches []matcher.Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Candidate
	}
	return out
}

// AssertExitCode verifies the exit code an error maps to.
func AssertExitCode(t *testing.T, err error, expected int) {
	t.Helper()
	assert.Equal(t, expected, searcherr.ClassifyError(err).ExitCode, "exit code mismatch for %v", err)
}
