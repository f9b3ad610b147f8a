package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomobiledoc/internal/logging"
	"github.com/yaklabco/gomobiledoc/pkg/config"
	"github.com/yaklabco/gomobiledoc/pkg/fsutil"
)

func newInitCommand() *cobra.Command {
	var (
		force  bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented configuration file",
		Long: `Write a configuration file that lists every option with its default.

Examples:
  gomobiledoc init                     Create .gomobiledoc.yml
  gomobiledoc init --force             Replace an existing file
  gomobiledoc init --output site.yml   Write somewhere else`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeConfigTemplate(commandContext(cmd), output, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing file")
	cmd.Flags().StringVarP(&output, "output", "o", config.ProjectFileName, "file to write")

	return cmd
}

// writeConfigTemplate writes the default template to path. An existing file
// is an os.ErrExist error unless force is set.
func writeConfigTemplate(ctx context.Context, path string, force bool) error {
	logger := logging.FromContext(ctx)

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	switch _, err := os.Stat(target); {
	case err == nil && !force:
		return fmt.Errorf("%s already exists, pass --force to replace it: %w", path, os.ErrExist)
	case err == nil:
		logger.Warn("replacing existing file", logging.FieldPath, path)
	}

	if err := fsutil.WriteAtomic(ctx, target, config.GenerateTemplate(), fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	logger.Info("wrote configuration", logging.FieldPath, path)
	return nil
}
