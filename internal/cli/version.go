package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomobiledoc/internal/logging"
	"github.com/yaklabco/gomobiledoc/pkg/mobiledoc"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print the gomobiledoc build and the mobiledoc wire format revision it writes.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			// Printed as a log line on stdout so it matches the rest of the CLI.
			logging.NewWithWriter(cmd.OutOrStdout(), "info").Info("gomobiledoc",
				logging.FieldVersion, info.Version,
				logging.FieldWireVersion, mobiledoc.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
			)
		},
	}
}
