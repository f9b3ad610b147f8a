package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type loggerKey struct{}

// WithLogger attaches logger to ctx. A nil ctx is treated as Background.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger attached to ctx, falling back to Default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// WithFields derives a logger carrying keyvals from the one in ctx and
// attaches it to the returned context. Every record logged through the new
// context repeats the fields, so per-file work only names its file once.
func WithFields(ctx context.Context, keyvals ...any) context.Context {
	if len(keyvals) == 0 {
		return ctx
	}
	return WithLogger(ctx, FromContext(ctx).With(keyvals...))
}
