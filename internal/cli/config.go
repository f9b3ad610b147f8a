package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomobiledoc/internal/configloader"
	"github.com/yaklabco/gomobiledoc/internal/ui/pretty"
	"github.com/yaklabco/gomobiledoc/pkg/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect gomobiledoc configuration",
		Long: `Inspect the layered gomobiledoc configuration.

Configuration is merged from, lowest precedence first: the system file,
the user file, the nearest .gomobiledoc.yml, the --config file,
GOMOBILEDOC_* environment variables and finally command-line flags.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigEnvCommand())
	cmd.AddCommand(newConfigValidateCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)

			loaded, _, err := loadConfig(ctx, cmd, nil)
			if err != nil {
				return err
			}

			header := "# Effective configuration"
			if len(loaded.Sources) == 0 {
				header += "\n# (defaults only)"
			}
			for _, src := range loaded.Sources {
				header += "\n# " + src.Layer
				if src.Path != "" {
					header += ": " + src.Path
				}
			}

			data, err := loaded.Config.ToYAMLWithHeader(header)
			if err != nil {
				return fmt.Errorf("serialize configuration: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List supported environment variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vars := configloader.ListEnvVars()

			names := make([]string, 0, len(vars))
			width := 0
			for name := range vars {
				names = append(names, name)
				width = max(width, len(name))
			}
			slices.Sort(names)

			var builder strings.Builder
			for _, name := range names {
				fmt.Fprintf(&builder, "%-*s  %s\n", width, name, vars[name])
			}

			_, err := io.WriteString(cmd.OutOrStdout(), builder.String())
			return err
		},
	}
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a configuration file",
		Long: `Validate a configuration file without running a conversion.
Defaults to ` + config.ProjectFileName + ` in the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ProjectFileName
			if len(args) == 1 {
				path = args[0]
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			cfg, err := config.FromYAML(data)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
			}

			out := cmd.OutOrStdout()
			styles := pretty.NewStyles(false)

			result := configloader.ValidateWithFile(cfg, path)
			for _, warning := range result.Warnings {
				fmt.Fprintf(out, "%s %s\n", styles.Warning.Render("warning:"), warning.Error())
			}
			if !result.Valid() {
				for _, verr := range result.Errors {
					fmt.Fprintf(out, "%s %s\n", styles.Error.Render("error:"), verr.Error())
				}
				return &result.Errors[0]
			}

			fmt.Fprintf(out, "%s is valid\n", path)
			return nil
		},
	}
}
