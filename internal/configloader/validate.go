package configloader

import (
	"fmt"

	"github.com/yaklabco/gomobiledoc/pkg/config"
	"github.com/yaklabco/gomobiledoc/pkg/runner"
	"github.com/yaklabco/gomobiledoc/pkg/wire"
)

// maxIndent bounds the JSON indent width.
const maxIndent = 8

// ValidationError is one finding about a configuration key.
type ValidationError struct {
	FilePath string // empty when the config did not come from a file
	Field    string
	Value    any
	Message  string
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.FilePath != "" {
		msg = e.FilePath + ": " + msg
	}
	return msg
}

// ValidationResult collects the findings of one validation. Errors stop a
// load; warnings are reported and ignored.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool { return len(r.Errors) == 0 }

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, message string) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: message})
}

// Validate checks a configuration for errors and warnings. Empty values are
// not errors: they mean "inherit".
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !IsValidFlavor(cfg.Flavor) {
		result.fail("flavor", cfg.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}

	format, formatErr := wire.ParseFormat(cfg.Format)
	if formatErr != nil {
		result.fail("format", cfg.Format, "%v", formatErr)
	}

	if _, err := wire.ParseCompression(cfg.Compression); err != nil {
		result.fail("compression", cfg.Compression, "%v", err)
	}

	if cfg.Indent < 0 || cfg.Indent > maxIndent {
		result.fail("indent", cfg.Indent, "indent must be between 0 and %d", maxIndent)
	} else if cfg.Indent > 0 && formatErr == nil && format == wire.FormatCBOR {
		result.warn("indent", cfg.Indent, "indent only applies to json output; it is ignored for cbor")
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, pattern := range cfg.Ignore {
		if _, err := runner.CompileGlob(pattern); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "%v", err)
		}
	}

	return result
}

// ValidateWithFile is Validate with every finding attributed to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for _, findings := range [][]ValidationError{result.Errors, result.Warnings} {
		for i := range findings {
			findings[i].FilePath = filePath
		}
	}
	return result
}

// IsValidFlavor reports whether f names a supported Markdown flavor.
func IsValidFlavor(f config.Flavor) bool {
	switch f {
	case config.FlavorCommonMark, config.FlavorGFM:
		return true
	}
	return false
}
