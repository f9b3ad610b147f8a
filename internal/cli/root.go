// Package cli implements the gomobiledoc command line.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomobiledoc/internal/logging"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

const rootLong = `gomobiledoc converts Markdown files and YAML post descriptions into
mobiledoc 0.2.0 documents. A mobiledoc document stores each markup style,
card and embed once and refers to it by index from its sections.

Outputs are JSON or deterministic CBOR, optionally compressed with zstd,
lz4 or xz. An output whose bytes would not change is not rewritten.`

// NewRootCommand assembles the command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var (
		debug bool
		color string
	)

	root := &cobra.Command{
		Use:           "gomobiledoc",
		Short:         "Convert Markdown and post descriptions into mobiledoc documents",
		Long:          rootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&debug, "debug", false, "enable debug logging")
	flags.String("config", "", "path to config file")
	flags.StringVar(&color, "color", "auto", "colorize output: auto, always, never")

	root.AddCommand(
		newRenderCommand(),
		newInitCommand(),
		newConfigCommand(),
		newVersionCommand(info),
	)

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(root)
	return root
}
