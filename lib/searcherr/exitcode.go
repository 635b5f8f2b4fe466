package searcherr

import (
	"context"
	"errors"
)

// Process exit codes.
const (
	ExitCodeSuccess       = 0   // Search completed
	ExitCodeUnknown       = 1   // Unclassified failure
	ExitCodeConfiguration = 2   // Invalid arguments or configuration
	ExitCodeFileNotFound  = 3   // Wordlist missing
	ExitCodeIO            = 4   // Results file not writable
	ExitCodeEncoding      = 5   // Wordlist not decodable
	ExitCodeInterrupted   = 130 // Stopped by SIGINT/SIGTERM
)

// Category is the classification of a search error.
type Category int

const (
	// CategorySuccess is for a nil error.
	CategorySuccess Category = iota
	// CategoryUnknown is for errors that match no known kind.
	CategoryUnknown
	// CategoryConfiguration is for invalid parameters.
	CategoryConfiguration
	// CategoryFileAccess is for missing or unreadable wordlists.
	CategoryFileAccess
	// CategoryOutput is for results file failures.
	CategoryOutput
	// CategoryEncoding is for undecodable wordlist bytes.
	CategoryEncoding
	// CategoryInterrupted is for cooperative cancellation.
	CategoryInterrupted
)

// String returns the string representation of a Category.
func (c Category) String() string {
	switch c {
	case CategorySuccess:
		return "success"
	case CategoryUnknown:
		return "unknown"
	case CategoryConfiguration:
		return "configuration"
	case CategoryFileAccess:
		return "file_access"
	case CategoryOutput:
		return "output"
	case CategoryEncoding:
		return "encoding"
	case CategoryInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// ExitCodeInfo describes how an error terminates the process.
type ExitCodeInfo struct {
	Category Category
	ExitCode int
	Status   string
}

// ClassifyError classifies err and returns the exit code the process should use.
func ClassifyError(err error) ExitCodeInfo {
	switch {
	case err == nil:
		return ExitCodeInfo{Category: CategorySuccess, ExitCode: ExitCodeSuccess, Status: "completed"}
	case errors.Is(err, ErrConfiguration):
		return ExitCodeInfo{Category: CategoryConfiguration, ExitCode: ExitCodeConfiguration, Status: "invalid_configuration"}
	case errors.Is(err, ErrFileNotFound):
		return ExitCodeInfo{Category: CategoryFileAccess, ExitCode: ExitCodeFileNotFound, Status: "file_not_found"}
	case errors.Is(err, ErrIO):
		return ExitCodeInfo{Category: CategoryOutput, ExitCode: ExitCodeIO, Status: "io_error"}
	case errors.Is(err, ErrEncoding):
		return ExitCodeInfo{Category: CategoryEncoding, ExitCode: ExitCodeEncoding, Status: "encoding_error"}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitCodeInfo{Category: CategoryInterrupted, ExitCode: ExitCodeInterrupted, Status: "interrupted"}
	default:
		return ExitCodeInfo{Category: CategoryUnknown, ExitCode: ExitCodeUnknown, Status: "error"}
	}
}

// IsInterrupted reports whether err is the result of cooperative cancellation.
func IsInterrupted(err error) bool {
	return ClassifyError(err).Category == CategoryInterrupted
}
