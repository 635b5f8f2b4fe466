// Package testhelpers provides reusable test utilities and helpers for testing swsfsearch.
package testhelpers

import (
	"os"
	"path/filepath"

	"github.com/unclesp1d3r/swsfsearch/runstate"
)

const dirPerm os.FileMode = 0o755

func mustMkdirAll(path string) {
	if err := os.MkdirAll(path, dirPerm); err != nil {
		panic(err)
	}
}

// SetupTestState initializes runstate.State with test values.
// It creates temporary directories for the path fields and returns a cleanup
// function that removes them and resets state.
func SetupTestState() func() {
	testDataDir, err := os.MkdirTemp(os.TempDir(), "swsfsearch-test-*")
	if err != nil {
		panic(err)
	}

	runstate.State.DataPath = filepath.Join(testDataDir, "data")
	runstate.State.WordlistCachePath = filepath.Join(testDataDir, "wordlists")
	runstate.State.OutFile = filepath.Join(testDataDir, "matches.txt")
	runstate.State.Workers = 2
	runstate.State.ProgressInterval = 1000
	runstate.State.ProgressStyle = "none"
	runstate.State.Encoding = "utf-8"
	runstate.State.MaxLength = 8
	runstate.State.Debug = false
	runstate.State.ExtraDebugging = false
	runstate.State.DictionaryCount = false

	mustMkdirAll(runstate.State.DataPath)
	mustMkdirAll(runstate.State.WordlistCachePath)

	return func() {
		_ = os.RemoveAll(testDataDir)

		ResetTestState()
	}
}

// ResetTestState resets runstate.State to zero values without cleanup.
// Useful for tests that need to reset state between subtests.
func ResetTestState() {
	runstate.State.DataPath = ""
	runstate.State.WordlistCachePath = ""
	runstate.State.OutFile = ""
	runstate.State.Workers = 0
	runstate.State.ProgressInterval = 0
	runstate.State.ProgressStyle = ""
	runstate.State.Encoding = ""
	runstate.State.MaxLength = 0
	runstate.State.Debug = false
	runstate.State.ExtraDebugging = false
	runstate.State.DictionaryCount = false
	// Reset synchronized fields via setters
	runstate.State.SetActivity("")
}
