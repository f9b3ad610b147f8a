// Command gomobiledoc converts Markdown and YAML post descriptions into
// mobiledoc documents.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/yaklabco/gomobiledoc/internal/cli"
	"github.com/yaklabco/gomobiledoc/internal/logging"
)

// Set with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date}).ExecuteContext(ctx)
	stop()

	// Failed conversions are already logged per file.
	if err != nil && !errors.Is(err, cli.ErrConversionFailed) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	os.Exit(cli.ExitCodeForError(err))
}
