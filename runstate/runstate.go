// Package runstate provides the configuration-derived state and shared loggers used across swsfsearch.
package runstate

import (
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// State holds settings resolved from flags, environment and the config file.
// It is populated once by config.SetupSharedState before any search starts and
// only read afterwards; search functions receive explicit options built from it.
var State = runState{} //nolint:gochecknoglobals // Global run state

// runState represents the resolved settings of a swsfsearch invocation.
type runState struct {
	DataPath          string // DataPath is the directory holding downloaded wordlists and other data.
	WordlistCachePath string // WordlistCachePath is where remote wordlists are downloaded to.
	OutFile           string // OutFile is the default results file path.
	Debug             bool   // Debug enables debug logging with caller reporting.
	ExtraDebugging    bool   // ExtraDebugging logs every candidate checked. Slow.
	Workers           int    // Workers is the number of brute force goroutines.
	ProgressInterval  uint64 // ProgressInterval is the number of candidates between progress samples.
	ProgressStyle     string // ProgressStyle selects the progress reporter: line, bar or none.
	Encoding          string // Encoding is the default wordlist encoding label.
	DictionaryCount   bool   // DictionaryCount enables the line-counting pre-pass for dictionary progress.
	MaxLength         int    // MaxLength is the default maximum code length.

	activityMu sync.RWMutex
	activity   Activity
}

// Activity represents what the process is currently doing.
type Activity string

// Activity constants.
const (
	// ActivityStarting indicates configuration is being resolved.
	ActivityStarting Activity = "starting"
	// ActivityDownloading indicates a remote wordlist is being fetched.
	ActivityDownloading Activity = "downloading"
	// ActivitySearching indicates a search is running.
	ActivitySearching Activity = "searching"
	// ActivityStopping indicates a search was interrupted and is winding down.
	ActivityStopping Activity = "stopping"
)

// GetActivity returns the current activity (thread-safe).
func (s *runState) GetActivity() Activity {
	s.activityMu.RLock()
	defer s.activityMu.RUnlock()

	return s.activity
}

// SetActivity sets the current activity (thread-safe).
func (s *runState) SetActivity(a Activity) {
	s.activityMu.Lock()
	defer s.activityMu.Unlock()
	s.activity = a
}

// Logger is a shared logging instance configured to output logs at InfoLevel with timestamps to os.Stdout.
var Logger = log.NewWithOptions(os.Stdout, log.Options{ //nolint:gochecknoglobals // Global logger instance
	Level:           log.InfoLevel,
	ReportTimestamp: true,
})

// ErrorLogger is a logger instance for logging critical errors with detailed error information.
var ErrorLogger = Logger.With() //nolint:gochecknoglobals // Global error logger instance
