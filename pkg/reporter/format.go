package reporter

import (
	"fmt"
	"slices"
	"strings"
)

// Format selects the report encoding.
type Format string

const (
	// FormatJSON writes one object holding every file and the summary.
	FormatJSON Format = "json"

	// FormatJSONL writes one object per line: each file, then the summary.
	FormatJSONL Format = "jsonl"
)

// Formats lists the supported formats in help order.
func Formats() []Format {
	return []Format{FormatJSON, FormatJSONL}
}

// ParseFormat resolves a format name. The empty string selects json and
// "ndjson" is accepted as a synonym for jsonl.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "":
		return FormatJSON, nil
	case "ndjson":
		return FormatJSONL, nil
	}

	if format := Format(name); format.IsValid() {
		return format, nil
	}

	names := make([]string, 0, len(Formats()))
	for _, format := range Formats() {
		names = append(names, string(format))
	}
	return "", fmt.Errorf("unknown report format %q; valid formats: %s", name, strings.Join(names, ", "))
}

// IsValid reports whether f is a supported format.
func (f Format) IsValid() bool {
	return slices.Contains(Formats(), f)
}
