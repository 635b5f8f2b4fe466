package testhelpers

import (
	"sync"

	"github.com/unclesp1d3r/swsfsearch/lib/matcher"
	"github.com/unclesp1d3r/swsfsearch/lib/scramble"
)

// Codes known to the game, with their digests, for use as search targets.
const (
	CatDigest      = "009670FE" // 14 preimages of length 1-3, cat among them
	ZzzDigest      = "009673C0" // unique over lengths 1-3
	PasswordDigest = "2C821FFD"
	QuentinDigest  = "6F4E45A6"
)

// Digests returns the canonical digests of codes, for building target lists.
func Digests(codes ...string) []string {
	out := make([]string, len(codes))
	for i, code := range codes {
		out[i] = scramble.Sum(code).String()
	}
	return out
}

// RecordingReporter is a matcher.Reporter that keeps every sample. OnReport,
// if set, runs after each sample is recorded.
type RecordingReporter struct {
	mu       sync.Mutex
	reports  []matcher.Progress
	finished []matcher.Progress

	OnReport func(p matcher.Progress)
}

// Report records p.
func (r *RecordingReporter) Report(p matcher.Progress) {
	r.mu.Lock()
	r.reports = append(r.reports, p)
	hook := r.OnReport
	r.mu.Unlock()

	if hook != nil {
		hook(p)
	}
}

// Finish records the final sample.
func (r *RecordingReporter) Finish(p matcher.Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = append(r.finished, p)
}

// Reports returns a copy of the samples received so far.
func (r *RecordingReporter) Reports() []matcher.Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]matcher.Progress(nil), r.reports...)
}

// Finished returns a copy of the final samples received so far.
func (r *RecordingReporter) Finished() []matcher.Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]matcher.Progress(nil), r.finished...)
}

// CancelOnReport returns a reporter that calls cancel once the nth sample arrives.
func CancelOnReport(n int, cancel func()) *RecordingReporter {
	r := &RecordingReporter{}
	var once sync.Once
	r.OnReport = func(matcher.Progress) {
		if len(r.Reports()) >= n {
			once.Do(cancel)
		}
	}
	return r
}
