package display

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/cheggaaa/pb/v3"

	"github.com/unclesp1d3r/swsfsearch/lib/matcher"
)

// Progress styles accepted by NewReporter.
const (
	StyleLine = "line"
	StyleBar  = "bar"
	StyleNone = "none"
)

// barTemplate is a pb template with a live match counter.
const barTemplate pb.ProgressBarTemplate = `{{counters . }} {{bar . }} {{percent . }} {{speed . "%s codes/s" }} ` +
	`{{string . "matches"}} {{rtime . "ETA %s"}}`

// NewReporter returns the reporter for style writing to w. Unknown styles fall back to the status line.
func NewReporter(style string, w io.Writer) matcher.Reporter {
	switch style {
	case StyleNone:
		return matcher.NopReporter{}
	case StyleBar:
		return NewBarReporter(w)
	default:
		return NewLineReporter(w)
	}
}

// ValidStyle reports whether style is one NewReporter understands.
func ValidStyle(style string) bool {
	switch style {
	case StyleLine, StyleBar, StyleNone:
		return true
	default:
		return false
	}
}

// LineReporter rewrites a single status line in place with a carriage return.
type LineReporter struct {
	w       io.Writer
	written bool
	width   int
}

// NewLineReporter returns a LineReporter writing to w.
func NewLineReporter(w io.Writer) *LineReporter {
	return &LineReporter{w: w}
}

// Report overwrites the status line.
func (r *LineReporter) Report(p matcher.Progress) {
	line := StatusLine(p)

	// Pad so a shorter line fully covers the previous one.
	pad := max(r.width-len(line), 0)
	r.width = len(line)
	r.written = true

	_, _ = fmt.Fprintf(r.w, "\r%s%*s", line, pad, "")
}

// Finish ends the status line so later output starts on a fresh line.
func (r *LineReporter) Finish(matcher.Progress) {
	if r.written {
		_, _ = fmt.Fprintln(r.w)
	}
}

// BarReporter draws a cheggaaa/pb progress bar. With an unknown total it is
// started lazily at the first sample so the total set by a counting pre-pass
// is picked up.
type BarReporter struct {
	mu  sync.Mutex
	w   io.Writer
	bar *pb.ProgressBar
}

// NewBarReporter returns a BarReporter writing to w.
func NewBarReporter(w io.Writer) *BarReporter {
	return &BarReporter{w: w}
}

// Report updates the bar.
func (r *BarReporter) Report(p matcher.Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.update(p)
}

// Finish updates the bar to the final state and stops it.
func (r *BarReporter) Finish(p matcher.Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bar == nil && p.Checked == 0 {
		return
	}

	r.update(p)
	r.bar.Finish()
}

func (r *BarReporter) update(p matcher.Progress) {
	if r.bar == nil {
		r.bar = pb.New64(clampInt64(p.Total))
		r.bar.SetTemplate(barTemplate)
		r.bar.SetWriter(r.w)
		r.bar.Start()
	}

	if p.Total > 0 {
		r.bar.SetTotal(clampInt64(p.Total))
	}

	r.bar.Set("matches", strconv.FormatUint(p.Matches, 10)+" matches")
	r.bar.SetCurrent(clampInt64(p.Checked))
}

func clampInt64(v uint64) int64 {
	const maxInt64 = 1<<63 - 1
	if v > maxInt64 {
		return maxInt64
	}

	return int64(v)
}
