package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gomobiledoc/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files converted (2 written, 1 unchanged), 1 failed, 12 sections".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No input files found") + "\n"
	}

	var parts []string

	var breakdown []string
	if stats.FilesWritten > 0 {
		breakdown = append(breakdown, s.Success.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}
	if stats.FilesUnchanged > 0 {
		breakdown = append(breakdown, s.Dim.Render(fmt.Sprintf("%d unchanged", stats.FilesUnchanged)))
	}
	if stats.FilesDryRun > 0 {
		breakdown = append(breakdown, s.Info.Render(fmt.Sprintf("%d dry-run", stats.FilesDryRun)))
	}

	converted := fmt.Sprintf("%s converted", plural(stats.FilesProcessed, wordFile, wordFiles))
	if len(breakdown) > 0 {
		converted += " (" + strings.Join(breakdown, ", ") + ")"
	}
	parts = append(parts, converted)

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}

	parts = append(parts, plural(stats.Documents.Sections, "section", "sections"))

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	docs := stats.Documents

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	// Files
	builder.WriteString("  Files converted:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesWritten > 0 {
		builder.WriteString("    Written:         " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}
	if stats.FilesUnchanged > 0 {
		builder.WriteString("    Unchanged:       " +
			s.SummaryValue.Render(strconv.Itoa(stats.FilesUnchanged)) + "\n")
	}
	if stats.FilesDryRun > 0 {
		builder.WriteString("    Dry run:         " +
			s.Info.Render(strconv.Itoa(stats.FilesDryRun)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:     " +
			s.Warning.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	}

	builder.WriteString("\n")

	// Document contents
	builder.WriteString("  Sections:          " +
		s.SummaryValue.Render(strconv.Itoa(docs.Sections)) + "\n")
	builder.WriteString("  Runs:              " +
		s.SummaryValue.Render(strconv.Itoa(docs.Runs())) + "\n")
	builder.WriteString("  Definitions:       " +
		s.SummaryValue.Render(fmt.Sprintf("%d styles, %d cards, %d embeds",
			docs.Styles, docs.Cards, docs.Embeds)) + "\n")
	if dedup := docs.Deduplicated(); dedup > 0 {
		builder.WriteString("  Shared references: " +
			s.SummaryValue.Render(strconv.Itoa(dedup)) + "\n")
	}

	builder.WriteString("\n")

	// Sizes
	builder.WriteString("  Input:             " +
		s.SummaryValue.Render(FormatBytes(stats.InputBytes)) + "\n")
	builder.WriteString("  Output:            " +
		s.SummaryValue.Render(FormatBytes(stats.OutputBytes)))
	if stats.OutputBytes != stats.RawBytes {
		builder.WriteString(s.Dim.Render(fmt.Sprintf(" (%.0f%% of %s)",
			stats.CompressionRatio()*100, FormatBytes(stats.RawBytes))))
	}
	builder.WriteString("\n\n")

	// Overall status
	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Conversion failed"))
	case stats.FilesSkipped > 0:
		builder.WriteString(s.Warning.Render("Conversion completed with skipped files"))
	default:
		builder.WriteString(s.Success.Render("Conversion succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
