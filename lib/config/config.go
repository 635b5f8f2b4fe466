// Package config provides configuration management for swsfsearch.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	gap "github.com/muesli/go-app-paths"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/unclesp1d3r/swsfsearch/lib/display"
	"github.com/unclesp1d3r/swsfsearch/lib/keyspace"
	"github.com/unclesp1d3r/swsfsearch/lib/matcher"
	"github.com/unclesp1d3r/swsfsearch/lib/wordlist"
	"github.com/unclesp1d3r/swsfsearch/runstate"
)

const (
	// Default configuration values.
	DefaultOutFile          = "matches.txt"            // Default results file
	DefaultProgressInterval = matcher.DefaultInterval  // Default candidates between progress samples
	DefaultProgressStyle    = display.StyleLine        // Default progress reporter
	DefaultMaxLength        = keyspace.GameCodeLimit   // Default maximum code length
	DefaultEncoding         = wordlist.DefaultEncoding // Default wordlist encoding

	configName = "swsfsearch"
	configType = "yaml"
)

var (
	scope = gap.NewScope(gap.User, "swsfsearch") //nolint:gochecknoglobals // Configuration scope

	// ErrConfigExists is returned by WriteDefaultConfig when the file is already there.
	ErrConfigExists = errors.New("config file already exists")
)

// InitConfig initializes the configuration from various sources.
// A missing config file is not an error; defaults and flags apply.
func InitConfig(cfgFile string) {
	runstate.ErrorLogger.SetReportCaller(true)

	home, err := os.UserConfigDir()
	cobra.CheckErr(err)

	cwd, err := os.Getwd()
	cobra.CheckErr(err)
	viper.AddConfigPath(cwd)

	configDirs, err := scope.ConfigDirs()
	cobra.CheckErr(err)

	for _, dir := range configDirs {
		viper.AddConfigPath(dir)
	}

	viper.AddConfigPath(home)
	viper.SetConfigType(configType)
	viper.SetConfigName(configName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.SetEnvPrefix("SWSF")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		runstate.Logger.Debug("Using config file", "config_file", viper.ConfigFileUsed())
	} else {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			runstate.Logger.Warn("Error reading config file", "error", err)
		}
	}
}

// DefaultConfigPath returns where WriteDefaultConfig writes when no path is given.
func DefaultConfigPath() (string, error) {
	return scope.ConfigPath(configName + "." + configType)
}

// WriteDefaultConfig writes the current configuration to path, or to
// DefaultConfigPath when path is empty. An existing file is only replaced when
// force is set. The written path is returned.
func WriteDefaultConfig(path string, force bool) (string, error) {
	if path == "" {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return "", fmt.Errorf("resolve config path: %w", err)
		}
	}

	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("%s: %w", path, ErrConfigExists)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return path, fmt.Errorf("create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(path); err != nil {
		return path, fmt.Errorf("write config file: %w", err)
	}

	return path, nil
}

// SetupSharedState configures the shared state from configuration values.
// Invalid tuning values are clamped to their defaults. Length bounds are passed
// through unchanged so the search rejects them as configuration errors.
func SetupSharedState() {
	dataRoot := viper.GetString("data_path")
	runstate.State.DataPath = dataRoot
	runstate.State.WordlistCachePath = viper.GetString("wordlist_cache_path")
	runstate.State.OutFile = viper.GetString("outfile")
	runstate.State.Debug = viper.GetBool("debug")
	runstate.State.ExtraDebugging = viper.GetBool("extra_debugging")
	runstate.State.DictionaryCount = viper.GetBool("dictionary_count")
	runstate.State.Workers = viper.GetInt("workers")
	runstate.State.ProgressInterval = viper.GetUint64("progress_interval")
	runstate.State.ProgressStyle = viper.GetString("progress")
	runstate.State.Encoding = viper.GetString("encoding")
	runstate.State.MaxLength = viper.GetInt("max_length")

	if runstate.State.WordlistCachePath == "" {
		runstate.State.WordlistCachePath = filepath.Join(dataRoot, "wordlists")
	}

	if runstate.State.Workers < 1 {
		runstate.Logger.Warn("Invalid workers value, using default", "workers", runstate.State.Workers)
		runstate.State.Workers = DefaultWorkers()
	}

	if runstate.State.ProgressInterval == 0 {
		runstate.State.ProgressInterval = DefaultProgressInterval
	}

	if !display.ValidStyle(runstate.State.ProgressStyle) {
		runstate.Logger.Warn("Unknown progress style, using default",
			"progress", runstate.State.ProgressStyle, "default", DefaultProgressStyle)
		runstate.State.ProgressStyle = DefaultProgressStyle
	}

	if runstate.State.Encoding == "" {
		runstate.State.Encoding = DefaultEncoding
	}

}

// SetDefaultConfigValues sets default configuration values.
func SetDefaultConfigValues() {
	cwd, err := os.Getwd()
	cobra.CheckErr(err)

	viper.SetDefault("data_path", filepath.Join(cwd, "data"))
	viper.SetDefault("outfile", DefaultOutFile)
	viper.SetDefault("workers", DefaultWorkers())
	viper.SetDefault("progress_interval", DefaultProgressInterval)
	viper.SetDefault("progress", DefaultProgressStyle)
	viper.SetDefault("encoding", DefaultEncoding)
	viper.SetDefault("dictionary_count", false)
	viper.SetDefault("max_length", DefaultMaxLength)
	viper.SetDefault("debug", false)
	viper.SetDefault("extra_debugging", false)
}

// DefaultWorkers returns the number of logical CPUs, falling back to the Go
// runtime's count when the host cannot be queried.
func DefaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}

	return n
}
