package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/gomobiledoc/internal/configloader"
)

// Exit codes for gomobiledoc.
const (
	// ExitSuccess indicates every input converted.
	ExitSuccess = 0

	// ExitConversionFailed indicates at least one input failed or was skipped.
	ExitConversionFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrConversionFailed is returned when one or more inputs did not convert.
	ErrConversionFailed = errors.New("conversion failed")

	// ErrInvalidUsage is returned for flag and argument combinations that
	// cannot be honored.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig wraps configuration loading failures.
	ErrConfig = errors.New("failed to load configuration")
)

// ExitCodeForError maps a command error to a process exit code.
func ExitCodeForError(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrConversionFailed):
		return ExitConversionFailed
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission), errors.Is(err, fs.ErrExist):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
