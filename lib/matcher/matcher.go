// Package matcher digests candidates from a Source, checks them against a
// TargetSet, persists every match before moving on and samples progress.
package matcher

import (
	"context"
	"sync"

	"github.com/unclesp1d3r/swsfsearch/lib/scramble"
	"github.com/unclesp1d3r/swsfsearch/runstate"
)

// DefaultInterval is the number of candidates between progress samples and cancellation checks.
const DefaultInterval = 100_000

// Source yields candidates one at a time. keyspace.Cursor and the dictionary
// reader both implement it.
type Source interface {
	Next() bool
	Digest() scramble.Digest
	Candidate() string
}

// Reporter receives progress samples. Report may be called from any worker,
// but never concurrently: the Matcher serializes calls.
type Reporter interface {
	Report(p Progress)
	Finish(p Progress)
}

// NopReporter discards progress.
type NopReporter struct{}

// Report does nothing.
func (NopReporter) Report(Progress) {}

// Finish does nothing.
func (NopReporter) Finish(Progress) {}

// Config wires a Matcher together.
type Config struct {
	Targets  *TargetSet    // Targets is the set of digests to look for. Required.
	Results  *ResultsFile  // Results receives every match before the search continues. Optional.
	Tracker  *Tracker      // Tracker accumulates counters. A fresh one is created when nil.
	Reporter Reporter      // Reporter receives progress samples. Optional.
	Interval uint64        // Interval overrides DefaultInterval when non-zero.
	Verbose  bool          // Verbose logs every candidate at debug level.
	OnMatch  func(m Match) // OnMatch is called after a match is persisted. Optional.
}

// Matcher is shared by every worker of a run.
type Matcher struct {
	targets  *TargetSet
	results  *ResultsFile
	tracker  *Tracker
	interval uint64
	verbose  bool
	onMatch  func(Match)

	reportMu sync.Mutex
	reporter Reporter

	matchMu sync.Mutex
	matches []Match
}

// New returns a Matcher for cfg.
func New(cfg Config) *Matcher {
	m := &Matcher{
		targets:  cfg.Targets,
		results:  cfg.Results,
		tracker:  cfg.Tracker,
		interval: cfg.Interval,
		verbose:  cfg.Verbose,
		onMatch:  cfg.OnMatch,
		reporter: cfg.Reporter,
	}

	if m.tracker == nil {
		m.tracker = NewTracker(0)
	}

	if m.interval == 0 {
		m.interval = DefaultInterval
	}

	if m.reporter == nil {
		m.reporter = NopReporter{}
	}

	return m
}

// Run drains src. At every sampling boundary it publishes its count, stops
// with ctx.Err() if ctx is done, and reports progress. A failed append aborts
// the run with an I/O error; matches appended before it stay on disk.
//
// Run may be called concurrently with different sources.
func (m *Matcher) Run(ctx context.Context, src Source) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var pending uint64

	for src.Next() {
		digest := src.Digest()
		pending++

		if m.verbose {
			runstate.Logger.Debug("Checking candidate", "candidate", src.Candidate(), "digest", digest)
		}

		if m.targets.Contains(digest) {
			if err := m.record(Match{Candidate: src.Candidate(), Digest: digest}); err != nil {
				m.tracker.Add(pending)

				return err
			}
		}

		if pending == m.interval {
			m.tracker.Add(pending)
			pending = 0

			if err := ctx.Err(); err != nil {
				return err
			}

			m.Report()
		}
	}

	m.tracker.Add(pending)

	if f, ok := src.(interface{ Err() error }); ok {
		return f.Err()
	}

	return nil
}

// Report sends a progress sample to the reporter.
func (m *Matcher) Report() {
	p := m.tracker.Snapshot()

	m.reportMu.Lock()
	defer m.reportMu.Unlock()

	m.reporter.Report(p)
}

// Finish sends the final sample to the reporter and returns it.
func (m *Matcher) Finish() Progress {
	p := m.tracker.Snapshot()

	m.reportMu.Lock()
	defer m.reportMu.Unlock()

	m.reporter.Finish(p)

	return p
}

// Matches returns a copy of the matches found so far.
func (m *Matcher) Matches() []Match {
	m.matchMu.Lock()
	defer m.matchMu.Unlock()

	return append([]Match(nil), m.matches...)
}

// Tracker returns the tracker counting this matcher's work.
func (m *Matcher) Tracker() *Tracker {
	return m.tracker
}

// record persists the match first so the in-memory list never holds a match
// that is missing from disk.
func (m *Matcher) record(match Match) error {
	if m.results != nil {
		if err := m.results.Append(match); err != nil {
			return err
		}
	}

	m.matchMu.Lock()
	m.matches = append(m.matches, match)
	m.matchMu.Unlock()

	m.tracker.AddMatch()

	if m.onMatch != nil {
		m.onMatch(match)
	}

	return nil
}
