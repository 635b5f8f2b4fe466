package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unclesp1d3r/swsfsearch/lib/matcher"
	"github.com/unclesp1d3r/swsfsearch/lib/scramble"
	"github.com/unclesp1d3r/swsfsearch/lib/searcherr"
)

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash CODE [CODE...]",
		Short: "Print the digest of each code",
		Long:  "Print the digest of each code in the same \"code (DIGEST)\" form used by results files.",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return searcherr.Configf("at least one code is required")
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, code := range args {
				m := matcher.Match{Candidate: code, Digest: scramble.Sum(code)}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), m.String()); err != nil {
					return err
				}
			}

			return nil
		},
	}
}
