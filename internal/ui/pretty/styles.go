// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/gomobiledoc/pkg/runner"
)

// ANSI 256 palette indexes.
const (
	colorGrey   = "8"
	colorRed    = "9"
	colorGreen  = "10"
	colorYellow = "11"
	colorBlue   = "12"
	colorWhite  = "7"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// File line components
	FilePath lipgloss.Style
	Arrow    lipgloss.Style
	Message  lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader       lipgloss.Style
	TableWrittenRow   lipgloss.Style
	TableUnchangedRow lipgloss.Style
	TableDryRunRow    lipgloss.Style
	TableErrorRow     lipgloss.Style
	TableLegend       lipgloss.Style
	TableSeparator    lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles builds the style set. With color disabled every style renders
// text unchanged, including bold and italic.
func NewStyles(colorEnabled bool) *Styles {
	plain := lipgloss.NewStyle()
	fg := func(color string) lipgloss.Style {
		if !colorEnabled {
			return plain
		}
		return plain.Foreground(lipgloss.Color(color))
	}
	bold := func(style lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return style
		}
		return style.Bold(true)
	}

	legend := fg(colorGrey)
	if colorEnabled {
		legend = legend.Italic(true)
	}

	return &Styles{
		Error:   bold(fg(colorRed)),
		Warning: bold(fg(colorYellow)),
		Info:    bold(fg(colorBlue)),

		FilePath: bold(plain),
		Arrow:    fg(colorGrey),
		Message:  plain,

		SummaryTitle: bold(plain),
		SummaryValue: plain,
		Success:      bold(fg(colorGreen)),
		Failure:      bold(fg(colorRed)),

		TableHeader:       bold(fg(colorWhite)),
		TableWrittenRow:   fg(colorGreen),
		TableUnchangedRow: fg(colorGrey),
		TableDryRunRow:    fg(colorBlue),
		TableErrorRow:     fg(colorRed),
		TableLegend:       legend,
		TableSeparator:    fg(colorGrey),

		Dim:  fg(colorGrey),
		Bold: bold(plain),
	}
}

// Status returns the style for a status word from runner.FileOutcome.Status.
func (s *Styles) Status(status string) lipgloss.Style {
	switch status {
	case runner.StatusWritten:
		return s.Success
	case runner.StatusFailed:
		return s.Error
	case runner.StatusSkipped:
		return s.Warning
	case runner.StatusDryRun:
		return s.Info
	default:
		return s.Dim
	}
}

// Row returns the table row style for a status.
func (s *Styles) Row(status string) lipgloss.Style {
	switch status {
	case runner.StatusWritten:
		return s.TableWrittenRow
	case runner.StatusFailed, runner.StatusSkipped:
		return s.TableErrorRow
	case runner.StatusDryRun:
		return s.TableDryRunRow
	default:
		return s.TableUnchangedRow
	}
}

// IsColorEnabled resolves a --color mode ("auto", "always" or "never") for
// writer. Auto enables color only on a terminal, and never when NO_COLOR is
// set (https://no-color.org/). Unknown modes behave like auto.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
