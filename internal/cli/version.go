package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtool/internal/logging"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of mdtool.`,
		Run: func(cmd *cobra.Command, _ []string) {
			// Version info belongs on stdout, not the stderr default.
			logger := logging.New(cmd.OutOrStdout(), "info")
			logger.Info("mdtool",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
			)
		},
	}
}
