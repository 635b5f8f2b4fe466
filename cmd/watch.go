package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nxadm/tail"
	"github.com/spf13/cobra"

	"github.com/unclesp1d3r/swsfsearch/lib/display"
	"github.com/unclesp1d3r/swsfsearch/lib/matcher"
	"github.com/unclesp1d3r/swsfsearch/lib/searcherr"
	"github.com/unclesp1d3r/swsfsearch/runstate"
)

func newWatchCmd() *cobra.Command {
	var noFollow bool

	watchCmd := &cobra.Command{
		Use:   "watch [RESULTS_FILE]",
		Short: "Print matches as a running search writes them",
		Long: "Follow a results file and print each match line as it is appended. The file\n" +
			"does not need to exist yet. RESULTS_FILE defaults to the configured outfile.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := runstate.State.OutFile
			if len(args) == 1 {
				path = args[0]
			}

			if path == "" {
				return searcherr.Configf("no results file given")
			}

			_, err := followResults(cmd.Context(), path, !noFollow, cmd.OutOrStdout())
			if searcherr.IsInterrupted(err) {
				return nil
			}

			return err
		},
	}

	watchCmd.Flags().BoolVar(&noFollow, "no-follow", false, "Print the matches already in the file and exit")

	return watchCmd
}

// followResults prints every match line of the results file at path to w and
// returns how many were printed. With follow set it keeps waiting for new lines
// until ctx is done. Header and malformed lines are skipped.
func followResults(ctx context.Context, path string, follow bool, w io.Writer) (int, error) {
	tailer, err := tail.TailFile(path, tail.Config{
		Follow:    follow,
		ReOpen:    follow,
		MustExist: !follow,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return 0, searcherr.NotFound(path, err)
	}

	defer tailer.Cleanup()

	printed := 0

	for {
		select {
		case <-ctx.Done():
			_ = tailer.Stop()

			return printed, ctx.Err()
		case line, ok := <-tailer.Lines:
			if !ok {
				return printed, tailerErr(tailer, path)
			}

			if line.Err != nil {
				return printed, searcherr.IO("read", path, line.Err)
			}

			if matcher.IsHeader(line.Text) || line.Text == "" {
				display.WatchedLine(line.Text)

				continue
			}

			m, err := matcher.ParseResultLine(line.Text)
			if err != nil {
				display.WatchedLine(line.Text)

				continue
			}

			display.WatchedMatch(m)

			if _, err := fmt.Fprintln(w, m.String()); err != nil {
				_ = tailer.Stop()

				return printed, err
			}

			printed++
		}
	}
}

// tailerErr reports why the tailer closed its line channel. Reaching the end of
// a file that is not being followed is not an error.
func tailerErr(tailer *tail.Tail, path string) error {
	err := tailer.Wait()
	if err == nil || errors.Is(err, tail.ErrStop) {
		return nil
	}

	return searcherr.IO("tail", path, err)
}
