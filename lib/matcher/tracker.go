package matcher

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/unclesp1d3r/swsfsearch/lib/progress"
)

// Progress is a point-in-time view of a running search.
type Progress struct {
	Checked   uint64        // Checked is the number of candidates digested so far.
	Total     uint64        // Total is the candidate count, or 0 when unknown.
	Matches   uint64        // Matches is the number of matches found so far.
	Elapsed   time.Duration // Elapsed is the wall time since the tracker started.
	Rate      float64       // Rate is candidates per second.
	Remaining uint64        // Remaining is Total - Checked, or 0 when Total is unknown.
	ETA       time.Duration // ETA is Remaining / Rate, or 0 when it cannot be estimated. It saturates at the longest Duration.
}

// Percent returns the completed fraction as a percentage in [0, 100].
func (p Progress) Percent() float64 {
	return progress.Fraction(p.Checked, p.Total) * 100 //nolint:mnd // percent
}

// HasTotal reports whether the total candidate count is known.
func (p Progress) HasTotal() bool {
	return p.Total > 0
}

// Tracker accumulates counters shared by every worker of a run.
type Tracker struct {
	total   atomic.Uint64
	checked atomic.Uint64
	matches atomic.Uint64
	start   time.Time
	now     func() time.Time
}

// NewTracker starts a tracker for a run of total candidates. Pass 0 when the
// total is not known up front.
func NewTracker(total uint64) *Tracker {
	t := &Tracker{now: time.Now}
	t.total.Store(total)
	t.start = t.now()

	return t
}

// Add records n more candidates checked.
func (t *Tracker) Add(n uint64) {
	t.checked.Add(n)
}

// AddMatch records one more match.
func (t *Tracker) AddMatch() {
	t.matches.Add(1)
}

// SetTotal replaces the total candidate count.
func (t *Tracker) SetTotal(total uint64) {
	t.total.Store(total)
}

// Checked returns the number of candidates checked so far.
func (t *Tracker) Checked() uint64 {
	return t.checked.Load()
}

// Snapshot computes throughput and ETA from the current counters.
func (t *Tracker) Snapshot() Progress {
	p := Progress{
		Checked: t.checked.Load(),
		Total:   t.total.Load(),
		Matches: t.matches.Load(),
		Elapsed: t.now().Sub(t.start),
	}

	if secs := p.Elapsed.Seconds(); secs > 0 {
		p.Rate = float64(p.Checked) / secs
	}

	if p.Total > p.Checked {
		p.Remaining = p.Total - p.Checked
	}

	if p.Rate > 0 && p.Remaining > 0 {
		p.ETA = etaFor(p.Remaining, p.Rate)
	}

	return p
}

// maxETASeconds is the longest ETA a time.Duration can hold, about 292 years.
const maxETASeconds = float64(math.MaxInt64) / float64(time.Second)

func etaFor(remaining uint64, rate float64) time.Duration {
	secs := float64(remaining) / rate
	if secs >= maxETASeconds {
		return time.Duration(math.MaxInt64)
	}

	return time.Duration(secs * float64(time.Second))
}
