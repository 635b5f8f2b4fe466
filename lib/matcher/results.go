package matcher

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/unclesp1d3r/swsfsearch/lib/scramble"
	"github.com/unclesp1d3r/swsfsearch/lib/searcherr"
)

const headerMarker = "----"

// ErrMalformedLine is returned by ParseResultLine for lines that are not match records.
var ErrMalformedLine = errors.New("malformed result line")

// Match is a candidate whose digest is in the target set.
type Match struct {
	Candidate string          // Candidate is the preimage as it was checked.
	Digest    scramble.Digest // Digest is the candidate's scrambled value.
}

// String renders the match the way it is stored: "<candidate> (<DIGEST>)".
func (m Match) String() string {
	return m.Candidate + " (" + m.Digest.String() + ")"
}

// Header returns the first line of a results file.
func Header(targets *TargetSet, minLength, maxLength int) string {
	return fmt.Sprintf("%s Hash collisions for %s of length %d-%d %s",
		headerMarker, targets.String(), minLength, maxLength, headerMarker)
}

// IsHeader reports whether line is a results file header.
func IsHeader(line string) bool {
	return strings.HasPrefix(line, headerMarker+" ")
}

// ParseResultLine parses a "<candidate> (<DIGEST>)" line. The candidate may
// contain spaces or be empty; the digest must be exactly 8 hex digits.
func ParseResultLine(line string) (Match, error) {
	line = strings.TrimRight(line, "\r\n")

	open := strings.LastIndex(line, " (")
	if open < 0 || !strings.HasSuffix(line, ")") {
		return Match{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}

	hex := line[open+2 : len(line)-1]
	if len(hex) != 8 { //nolint:mnd // canonical digest width
		return Match{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}

	d, err := scramble.ParseDigest(hex)
	if err != nil {
		return Match{}, fmt.Errorf("%w: %w", ErrMalformedLine, err)
	}

	return Match{Candidate: line[:open], Digest: d}, nil
}

// ResultsFile is the durable match log of a run. Appends are serialized and
// each one is synced to disk before it returns, so a line is either fully
// present or absent after a crash or interrupt.
type ResultsFile struct {
	mu    sync.Mutex
	path  string
	file  *os.File
	count int
}

// CreateResultsFile truncates (or creates) path and writes header as its first line.
func CreateResultsFile(path, header string) (*ResultsFile, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec // results are meant to be shared
	if err != nil {
		return nil, searcherr.IO("create results file", path, err)
	}

	rf := &ResultsFile{path: path, file: f}
	if err := rf.writeLine(header); err != nil {
		_ = f.Close()

		return nil, searcherr.IO("write results header", path, err)
	}

	return rf, nil
}

// Append writes m as one line and syncs it to disk.
func (r *ResultsFile) Append(m Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return searcherr.IO("append match", r.path, os.ErrClosed)
	}

	if err := r.writeLine(m.String()); err != nil {
		return searcherr.IO("append match", r.path, err)
	}

	r.count++

	return nil
}

// Count returns the number of matches appended so far.
func (r *ResultsFile) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.count
}

// Path returns the results file location.
func (r *ResultsFile) Path() string {
	return r.path
}

// Close closes the file. Closing twice is a no-op.
func (r *ResultsFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}

	err := r.file.Close()
	r.file = nil

	if err != nil {
		return searcherr.IO("close results file", r.path, err)
	}

	return nil
}

// writeLine issues a single write for the whole line then fsyncs.
func (r *ResultsFile) writeLine(line string) error {
	if _, err := r.file.WriteString(line + "\n"); err != nil {
		return err
	}

	return r.file.Sync()
}
