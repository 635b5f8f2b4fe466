// Package search runs brute force and dictionary searches for cheat code
// preimages and reports what they found.
package search

import (
	"time"

	"github.com/unclesp1d3r/swsfsearch/lib/display"
	"github.com/unclesp1d3r/swsfsearch/lib/matcher"
	"github.com/unclesp1d3r/swsfsearch/lib/searcherr"
	"github.com/unclesp1d3r/swsfsearch/runstate"
)

// Summary describes a finished (or interrupted) search.
type Summary struct {
	Matches []matcher.Match // Matches in the order they were recorded.
	Checked uint64          // Checked is the number of candidates digested.
	Elapsed time.Duration   // Elapsed is the search's wall time.
	OutFile string          // OutFile is the results file, empty if none was written.
}

// Common holds the options shared by both search modes.
type Common struct {
	Targets  []string         // Targets are the digests to search for, hex in any case.
	OutFile  string           // OutFile is truncated at start and receives every match. Empty disables it.
	Interval uint64           // Interval overrides the progress sampling interval when non-zero.
	Verbose  bool             // Verbose logs every candidate checked at debug level.
	Reporter matcher.Reporter // Reporter receives progress samples. Nil discards them.
}

func (c Common) matcherConfig(targets *matcher.TargetSet, results *matcher.ResultsFile, tracker *matcher.Tracker) matcher.Config {
	return matcher.Config{
		Targets:  targets,
		Results:  results,
		Tracker:  tracker,
		Reporter: c.Reporter,
		Interval: c.Interval,
		Verbose:  c.Verbose,
		OnMatch:  display.MatchFound,
	}
}

// openResults creates the results file unless outFile is empty.
func openResults(outFile string, header string) (*matcher.ResultsFile, error) {
	if outFile == "" {
		return nil, nil //nolint:nilnil // no results file requested
	}

	return matcher.CreateResultsFile(outFile, header)
}

// finish closes the results file, reports the final sample and builds the
// summary. A close failure is only surfaced when the search itself succeeded.
func finish(m *matcher.Matcher, results *matcher.ResultsFile, runErr error) (*Summary, error) {
	if results != nil {
		if err := results.Close(); err != nil && runErr == nil {
			runErr = err
		}
	}

	p := m.Finish()

	summary := &Summary{
		Matches: m.Matches(),
		Checked: p.Checked,
		Elapsed: p.Elapsed,
	}

	if results != nil {
		summary.OutFile = results.Path()
	}

	switch {
	case runErr == nil:
		display.SearchFinished(p, summary.OutFile)
	case searcherr.IsInterrupted(runErr):
		display.SearchInterrupted(p, summary.OutFile, runstate.State.GetActivity())
		runstate.State.SetActivity(runstate.ActivityStopping)
	}

	return summary, runErr
}
