// Package reporter writes machine-readable reports of conversion runs, for
// CI jobs and scripts that post-process a render.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomobiledoc/pkg/runner"
)

// Reporter writes one report for a finished run.
type Reporter interface {
	// Report returns the number of files that failed or were skipped.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New returns the Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	opts = opts.withDefaults()

	switch opts.Format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatJSONL:
		return NewJSONLReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", opts.Format)
	}
}
