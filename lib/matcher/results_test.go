package matcher

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclesp1d3r/swsfsearch/lib/scramble"
	"github.com/unclesp1d3r/swsfsearch/lib/searcherr"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)

	defer func() { _ = f.Close() }()

	var lines []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	require.NoError(t, scanner.Err())

	return lines
}

func TestHeader(t *testing.T) {
	targets, err := NewTargetSet([]string{"009670FE", "2c821ffd"})
	require.NoError(t, err)

	assert.Equal(t, "---- Hash collisions for ['009670FE', '2C821FFD'] of length 1-8 ----", Header(targets, 1, 8))
	assert.True(t, IsHeader(Header(targets, 0, 3)))
	assert.False(t, IsHeader("cat (009670FE)"))
}

func TestMatch_String(t *testing.T) {
	assert.Equal(t, "cat (009670FE)", Match{Candidate: "cat", Digest: scramble.Sum("cat")}.String())
	assert.Equal(t, " (00013402)", Match{Digest: scramble.Sum("")}.String())
}

func TestParseResultLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		expected  Match
		expectErr bool
	}{
		{name: "simple", line: "cat (009670FE)", expected: Match{Candidate: "cat", Digest: 0x009670FE}},
		{name: "crlf", line: "cat (009670FE)\r\n", expected: Match{Candidate: "cat", Digest: 0x009670FE}},
		{name: "candidate with space", line: "a b (00966F75)", expected: Match{Candidate: "a b", Digest: 0x00966F75}},
		{name: "empty candidate", line: " (00013402)", expected: Match{Candidate: "", Digest: 0x00013402}},
		{name: "header", line: "---- Hash collisions for ['009670FE'] of length 1-3 ----", expectErr: true},
		{name: "truncated", line: "cat (009670", expectErr: true},
		{name: "short digest", line: "cat (9670FE)", expectErr: true},
		{name: "bad hex", line: "cat (0096ZZFE)", expectErr: true},
		{name: "empty", line: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseResultLine(tt.line)
			if tt.expectErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedLine)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, m)
		})
	}
}

func TestCreateResultsFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale line\nanother\n"), 0o600))

	rf, err := CreateResultsFile(path, "---- header ----")
	require.NoError(t, err)
	require.NoError(t, rf.Append(Match{Candidate: "cat", Digest: scramble.Sum("cat")}))
	require.NoError(t, rf.Close())
	require.NoError(t, rf.Close(), "second close is a no-op")

	assert.Equal(t, []string{"---- header ----", "cat (009670FE)"}, readLines(t, path))
	assert.Equal(t, 1, rf.Count())
	assert.Equal(t, path, rf.Path())
}

func TestCreateResultsFile_MissingDirectory(t *testing.T) {
	_, err := CreateResultsFile(filepath.Join(t.TempDir(), "missing", "matches.txt"), "h")
	require.Error(t, err)
	assert.ErrorIs(t, err, searcherr.ErrIO)
}

func TestResultsFile_AppendAfterClose(t *testing.T) {
	rf, err := CreateResultsFile(filepath.Join(t.TempDir(), "matches.txt"), "h")
	require.NoError(t, err)
	require.NoError(t, rf.Close())

	err = rf.Append(Match{Candidate: "cat"})
	require.Error(t, err)
	assert.ErrorIs(t, err, searcherr.ErrIO)
}

func TestResultsFile_ConcurrentAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.txt")
	rf, err := CreateResultsFile(path, "header")
	require.NoError(t, err)

	const writers, perWriter = 8, 25

	var wg sync.WaitGroup
	for w := range writers {
		wg.Add(1)

		go func(w int) {
			defer wg.Done()

			for i := range perWriter {
				candidate := fmt.Sprintf("w%di%d", w, i)
				assert.NoError(t, rf.Append(Match{Candidate: candidate, Digest: scramble.Sum(candidate)}))
			}
		}(w)
	}

	wg.Wait()
	require.NoError(t, rf.Close())

	lines := readLines(t, path)
	require.Len(t, lines, 1+writers*perWriter)

	for _, line := range lines[1:] {
		m, err := ParseResultLine(line)
		require.NoError(t, err, line)
		assert.Equal(t, scramble.Sum(m.Candidate), m.Digest, "line %q must not be interleaved", line)
		assert.True(t, strings.HasPrefix(m.Candidate, "w"))
	}
}
