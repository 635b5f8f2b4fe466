// Package searcherr provides the error taxonomy shared by every search path
// and the mapping from errors to process exit codes.
package searcherr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/unclesp1d3r/swsfsearch/runstate"
)

// Error kinds. Every error surfaced by the search engine wraps exactly one of these.
var (
	// ErrConfiguration is returned for invalid length bounds, prefixes, digests or settings.
	ErrConfiguration = errors.New("configuration error")
	// ErrFileNotFound is returned when a wordlist path does not resolve to a readable file.
	ErrFileNotFound = errors.New("file not found")
	// ErrIO is returned when the results file cannot be created, appended or synced.
	ErrIO = errors.New("i/o error")
	// ErrEncoding is returned when wordlist bytes cannot be decoded as text.
	ErrEncoding = errors.New("encoding error")
)

// Error carries the kind of failure together with the operation and path involved.
type Error struct {
	Kind error  // Kind is one of the sentinel kinds above.
	Op   string // Op describes what was being attempted.
	Path string // Path is the file involved, if any.
	Err  error  // Err is the underlying cause, if any.
}

// Error renders "<kind>: <op> <path>: <cause>" omitting empty parts.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(e.Kind.Error())

	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(e.Op)
	}

	if e.Path != "" {
		fmt.Fprintf(&b, " %q", e.Path)
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// Configf returns a configuration error with a formatted message.
func Configf(format string, args ...any) error {
	return &Error{Kind: ErrConfiguration, Op: fmt.Sprintf(format, args...)}
}

// Config wraps err as a configuration error.
func Config(op string, err error) error {
	return &Error{Kind: ErrConfiguration, Op: op, Err: err}
}

// NotFound returns a file-not-found error for path.
func NotFound(path string, err error) error {
	return &Error{Kind: ErrFileNotFound, Op: "open", Path: path, Err: err}
}

// IO wraps err as an I/O error on path.
func IO(op, path string, err error) error {
	return &Error{Kind: ErrIO, Op: op, Path: path, Err: err}
}

// Encoding returns an encoding error for path.
func Encoding(op, path string, err error) error {
	return &Error{Kind: ErrEncoding, Op: op, Path: path, Err: err}
}

// LogAndReturn logs an error with its message and returns it unchanged for chaining.
func LogAndReturn(message string, err error) error {
	if err != nil {
		runstate.ErrorLogger.Error(message, "error", err)
	}

	return err
}
