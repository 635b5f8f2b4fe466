package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/unclesp1d3r/swsfsearch/lib/display"
	"github.com/unclesp1d3r/swsfsearch/lib/search"
	"github.com/unclesp1d3r/swsfsearch/lib/searcherr"
)

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench [ITERATIONS]",
		Short: "Measure digest throughput",
		Long: fmt.Sprintf("Hash each of %d known game codes ITERATIONS times (default %s) and report the rate.",
			len(search.BenchmarkCodes), humanize.Comma(search.DefaultBenchmarkIterations)),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			iterations := search.DefaultBenchmarkIterations
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return searcherr.Configf("iterations must be a positive integer, got %q", args[0])
				}

				iterations = n
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Benchmarking %d codes with %s hashes each...\n",
				len(search.BenchmarkCodes), humanize.Comma(int64(iterations)))

			result := search.Benchmark(search.BenchmarkCodes, iterations)
			display.Benchmark(result)

			perHash := time.Duration(0)
			if result.Hashes() > 0 {
				perHash = result.Elapsed / time.Duration(result.Hashes())
			}

			_, _ = fmt.Fprintf(w, "Total time: %.2fs\n", result.Elapsed.Seconds())
			_, _ = fmt.Fprintf(w, "Average time per code: %.2fs\n", result.Elapsed.Seconds()/float64(max(result.Codes, 1)))
			_, _ = fmt.Fprintf(w, "Average time per hash: %s\n", perHash)
			_, _ = fmt.Fprintf(w, "Rate: %s\n", humanize.SIWithDigits(result.Rate(), 2, "H/s"))

			return nil
		},
	}
}
