// Package logging wraps charmbracelet/log with the level names, field keys
// and context plumbing used across gomobiledoc.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

var defaultLogger atomic.Pointer[log.Logger]

func init() {
	defaultLogger.Store(New("info"))
}

// New returns a stderr logger at the named level.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a logger writing to w at the named level. Stdout
// carries rendered documents and reports, so w is normally stderr.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: ParseLevel(level)})
}

// ParseLevel maps a level name to a log.Level. Unknown names map to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Default returns the process-wide logger.
func Default() *log.Logger { return defaultLogger.Load() }

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) { defaultLogger.Store(logger) }

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
