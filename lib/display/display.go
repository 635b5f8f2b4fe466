// Package display provides output and logging functions for swsfsearch.
package display

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/dustin/go-humanize"

	"github.com/unclesp1d3r/swsfsearch/lib/keyspace"
	"github.com/unclesp1d3r/swsfsearch/lib/matcher"
	"github.com/unclesp1d3r/swsfsearch/lib/progress"
	"github.com/unclesp1d3r/swsfsearch/runstate"
)

// BenchmarkResult represents the outcome of a digest throughput benchmark.
type BenchmarkResult struct {
	Codes      int           // Codes is the number of distinct codes hashed per iteration.
	Iterations int           // Iterations is the number of passes over Codes.
	Elapsed    time.Duration // Elapsed is the total wall time.
}

// Hashes returns the total number of digests computed.
func (r BenchmarkResult) Hashes() int {
	return r.Codes * r.Iterations
}

// Rate returns digests per second.
func (r BenchmarkResult) Rate() float64 {
	if r.Elapsed <= 0 {
		return 0
	}

	return float64(r.Hashes()) / r.Elapsed.Seconds()
}

// SearchStarting logs the parameters of a brute force search.
func SearchStarting(space keyspace.SearchSpace, targets *matcher.TargetSet, workers int) {
	runstate.Logger.Info("Searching for codes", "targets", targets.String(), "space", space.String(),
		"candidates", humanize.Comma(int64(min(space.Total(), uint64(1<<63-1)))), "workers", workers) //nolint:gosec // clamped
}

// GameLimitExceeded warns that codes longer than the game accepts are being searched.
func GameLimitExceeded(space keyspace.SearchSpace) {
	runstate.Logger.Warn("Codes longer than the game accepts cannot be used in-game",
		"limit", keyspace.GameCodeLimit, "min_length", space.MinLength, "max_length", space.MaxLength)
}

// DictionaryStarting logs the parameters of a dictionary search.
func DictionaryStarting(path string, targets *matcher.TargetSet, minLength, maxLength int) {
	runstate.Logger.Info("Searching wordlist", "path", path, "targets", targets.String(),
		"min_length", minLength, "max_length", maxLength)
}

// LinesCounted logs the result of the dictionary pre-pass.
func LinesCounted(path string, lines uint64) {
	runstate.Logger.Debug("Counted wordlist lines", "path", path, "lines", humanize.Comma(int64(lines))) //nolint:gosec // line counts fit
}

// MatchFound logs a match at debug level. Matches are also written to the results file.
func MatchFound(m matcher.Match) {
	runstate.Logger.Debug("Match found", "candidate", m.Candidate, "digest", m.Digest.String())
}

// SearchFinished logs the final counters of a search.
func SearchFinished(p matcher.Progress, outFile string) {
	runstate.Logger.Info("Search finished", "checked", humanize.Comma(int64(p.Checked)), //nolint:gosec // counts fit
		"matches", p.Matches, "elapsed", progress.FormatElapsed(p.Elapsed),
		"rate", humanize.SI(p.Rate, "codes/s"), "results", outFile)
}

// SearchInterrupted logs that a search was cancelled, what it was doing and
// where partial results are.
func SearchInterrupted(p matcher.Progress, outFile string, during runstate.Activity) {
	runstate.Logger.Warn("Search interrupted", "during", during,
		"checked", humanize.Comma(int64(p.Checked)), //nolint:gosec // counts fit
		"matches", p.Matches, "results", outFile)
}

// Interrupted logs a cancellation that happened before any candidate was checked.
func Interrupted(during runstate.Activity) {
	runstate.Logger.Warn("Interrupted", "during", during)
}

// Downloading logs the start of a remote wordlist download.
func Downloading(url, dest string) {
	runstate.Logger.Info("Downloading wordlist", "url", url, "dest", dest)
}

// Benchmark logs a benchmark result.
func Benchmark(result BenchmarkResult) {
	runstate.Logger.Info("Benchmark result", "codes", result.Codes, "iterations", result.Iterations,
		"hashes", humanize.Comma(int64(result.Hashes())), "elapsed", progress.FormatElapsed(result.Elapsed),
		"rate", humanize.SI(result.Rate(), "H/s"))
}

// WatchedMatch logs a match read back from a results file.
func WatchedMatch(m matcher.Match) {
	runstate.Logger.Info("Match", "candidate", m.Candidate, "digest", m.Digest.String())
}

// WatchedLine logs a results file line that is not a match record after removing non-printable characters.
func WatchedLine(line string) {
	runstate.Logger.Debug("Results file", "line", strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}

		return -1
	}, line))
}

// StatusLine renders the single-line progress summary:
//
//	Progress: 12.34% (2 matches found, ~1,234s remaining)
//
// When the total is unknown the percentage is replaced by the count checked and the rate.
func StatusLine(p matcher.Progress) string {
	if !p.HasTotal() {
		return fmt.Sprintf("Progress: %s checked (%d matches found, %s)",
			humanize.Comma(int64(p.Checked)), p.Matches, humanize.SIWithDigits(p.Rate, 1, "codes/s")) //nolint:gosec // counts fit
	}

	return fmt.Sprintf("Progress: %s (%d matches found, ~%s remaining)",
		progress.CalculatePercentage(float64(p.Checked), float64(p.Total)), p.Matches, progress.FormatETA(p.ETA))
}
