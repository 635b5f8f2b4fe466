// Package cmd implements the swsfsearch command line.
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/unclesp1d3r/swsfsearch/lib/config"
	"github.com/unclesp1d3r/swsfsearch/lib/display"
	"github.com/unclesp1d3r/swsfsearch/lib/progress"
	"github.com/unclesp1d3r/swsfsearch/lib/search"
	"github.com/unclesp1d3r/swsfsearch/lib/searcherr"
	"github.com/unclesp1d3r/swsfsearch/runstate"
)

// Version is the swsfsearch version, set at build time.
var Version = "dev" //nolint:gochecknoglobals // set by -ldflags

// searchFlags holds the root command's per-run flags. Flags that have a config
// file equivalent are bound to viper instead.
type searchFlags struct {
	cfgFile   string
	minLength int
	prefix    string
	dict      string
	checksum  string
	verbose   bool
}

// viperFlags maps config keys to the root flags that override them.
var viperFlags = map[string]string{ //nolint:gochecknoglobals // flag binding table
	"max_length":       "max-length",
	"outfile":          "outfile",
	"workers":          "workers",
	"encoding":         "encoding",
	"progress":         "progress",
	"dictionary_count": "count",
}

// NewRootCommand builds the swsfsearch command tree.
func NewRootCommand() *cobra.Command {
	flags := &searchFlags{}

	rootCmd := &cobra.Command{
		Use:   "swsfsearch HASH [HASH...]",
		Short: "Recover cheat codes from their digests",
		Long: "swsfsearch finds plaintext cheat codes whose digest matches one of the given\n" +
			"8-digit hex digests, by brute force over a-z or by scanning a wordlist.",
		Version:      Version,
		Args:         requireTargets,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			config.InitConfig(flags.cfgFile)
			config.SetupSharedState()
			initLogger(flags.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, flags, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.cfgFile, "config", "", "config file (default is swsfsearch.yaml in the user config directory)")
	pf.Bool("debug", false, "Enable debug mode")
	cobra.CheckErr(viper.BindPFlag("debug", pf.Lookup("debug")))

	f := rootCmd.Flags()
	f.IntP("max-length", "l", config.DefaultMaxLength, "Maximum code length")
	f.IntVarP(&flags.minLength, "min-length", "m", 0, "Minimum code length (default 1 for brute force, 0 for a wordlist)")
	f.StringVarP(&flags.prefix, "prefix", "p", "", "Only try codes starting with this prefix")
	f.StringVarP(&flags.dict, "dict", "d", "", "Search a wordlist (path or http(s) URL) instead of brute forcing")
	f.StringVar(&flags.checksum, "checksum", "", "Expected MD5 of a remote wordlist")
	f.StringP("outfile", "o", config.DefaultOutFile, "File that receives matches as they are found")
	f.IntP("workers", "w", 0, "Number of brute force workers (default is the CPU count)")
	f.StringP("encoding", "e", config.DefaultEncoding, "Wordlist encoding label")
	f.String("progress", config.DefaultProgressStyle, "Progress output: line, bar or none")
	f.Bool("count", false, "Count wordlist lines first so progress can show a percentage")
	f.BoolVar(&flags.verbose, "verbose", false, "Log every candidate checked (slow)")

	for key, name := range viperFlags {
		cobra.CheckErr(viper.BindPFlag(key, f.Lookup(name)))
	}

	rootCmd.AddCommand(newHashCmd(), newBenchCmd(), newWatchCmd(), newInitCmd())

	return rootCmd
}

// Execute runs the command line and returns the process exit status.
func Execute(ctx context.Context) int {
	config.SetDefaultConfigValues()
	runstate.State.SetActivity(runstate.ActivityStarting)

	err := fang.Execute(ctx, NewRootCommand(), fang.WithVersion(Version))

	return searcherr.ClassifyError(err).ExitCode
}

func requireTargets(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return searcherr.Configf("at least one target digest is required")
	}

	return nil
}

// initLogger sets the log level from the resolved debug state.
func initLogger(verbose bool) {
	if runstate.State.Debug || runstate.State.ExtraDebugging || verbose {
		runstate.Logger.SetLevel(log.DebugLevel)
		runstate.Logger.SetReportCaller(runstate.State.Debug)
	} else {
		runstate.Logger.SetLevel(log.InfoLevel)
	}
}

// runSearch runs the search mode selected by the flags and prints the matches.
func runSearch(cmd *cobra.Command, flags *searchFlags, args []string) error {
	ctx := cmd.Context()

	common := search.Common{
		Targets:  args,
		OutFile:  runstate.State.OutFile,
		Interval: runstate.State.ProgressInterval,
		Verbose:  flags.verbose || runstate.State.ExtraDebugging,
		Reporter: display.NewReporter(runstate.State.ProgressStyle, cmd.ErrOrStderr()),
	}

	var (
		summary *search.Summary
		err     error
	)

	if flags.dict != "" {
		if flags.prefix != "" {
			return searcherr.Configf("--prefix only applies to brute force searches")
		}

		summary, err = search.Dictionary(ctx, search.DictionaryOptions{
			Common:    common,
			Wordlist:  flags.dict,
			Checksum:  flags.checksum,
			CacheDir:  runstate.State.WordlistCachePath,
			Encoding:  runstate.State.Encoding,
			MinLength: flags.minLength,
			MaxLength: runstate.State.MaxLength,
			Count:     runstate.State.DictionaryCount,
		})
	} else {
		minLength := flags.minLength
		if !cmd.Flags().Changed("min-length") {
			minLength = 1
		}

		summary, err = search.BruteForce(ctx, search.BruteForceOptions{
			Common:    common,
			MinLength: minLength,
			MaxLength: runstate.State.MaxLength,
			Prefix:    flags.prefix,
			Workers:   runstate.State.Workers,
		})
	}

	if summary != nil {
		printSummary(cmd.OutOrStdout(), summary)
	}

	if searcherr.IsInterrupted(err) {
		if summary == nil {
			display.Interrupted(runstate.State.GetActivity())
			runstate.State.SetActivity(runstate.ActivityStopping)
		}

		return err
	}

	return searcherr.LogAndReturn("Search failed", err)
}

// printSummary writes the completion line followed by one line per match.
func printSummary(w io.Writer, summary *search.Summary) {
	_, _ = fmt.Fprintf(w, "Found %d matches in %s.\n", len(summary.Matches), progress.FormatElapsed(summary.Elapsed))

	for _, m := range summary.Matches {
		_, _ = fmt.Fprintln(w, m.String())
	}
}
