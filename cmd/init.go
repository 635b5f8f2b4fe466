package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unclesp1d3r/swsfsearch/lib/config"
	"github.com/unclesp1d3r/swsfsearch/lib/searcherr"
	"github.com/unclesp1d3r/swsfsearch/runstate"
)

func newInitCmd() *cobra.Command {
	var (
		path  string
		force bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: "Write the current configuration (defaults, plus any config file, environment and\n" +
			"flags already in effect) to a YAML file that later runs will pick up.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			written, err := config.WriteDefaultConfig(path, force)
			if errors.Is(err, config.ErrConfigExists) {
				return searcherr.Configf("%s already exists, use --force to replace it", written)
			}

			if err != nil {
				return searcherr.IO("write config", written, err)
			}

			runstate.Logger.Info("Wrote config file", "path", written)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), written)

			return nil
		},
	}

	initCmd.Flags().StringVar(&path, "path", "", "Where to write the config file (default is the user config directory)")
	initCmd.Flags().BoolVar(&force, "force", false, "Replace an existing config file")

	return initCmd
}
