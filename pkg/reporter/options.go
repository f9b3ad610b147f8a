package reporter

import (
	"io"
	"os"
)

// Options configures a Reporter. The zero value writes indented JSON to
// standard output with absolute paths.
type Options struct {
	Writer io.Writer
	Format Format

	// Compact emits the json format on a single line.
	Compact bool

	// WorkingDir, when set, makes reported input and output paths relative
	// to it. Paths outside it stay absolute.
	WorkingDir string
}

func (o Options) withDefaults() Options {
	if o.Writer == nil {
		o.Writer = os.Stdout
	}
	if o.Format == "" {
		o.Format = FormatJSON
	}
	return o
}
