package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gomobiledoc/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding      = 2
	tableColumnCount  = 6 // FILE, STATUS, SECTIONS, DEFS, SIZE, DIGEST
	digestColumnWidth = 12
	minFileWidth      = 20
	minStatusWidth    = 9
	minSectionsWidth  = 8
	minDefsWidth      = 4
	minSizeWidth      = 8
	heavySeparator    = "="
	defaultTermWidth  = 100
)

// TableRow represents a single row in the conversion table.
type TableRow struct {
	File     string
	Status   string
	Sections string
	Defs     string
	Size     string
	Digest   string
	Message  string
}

// TableFormatter formats conversion outcomes as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
	workDir      string
}

// NewTableFormatter creates a new table formatter. Paths are shown relative
// to workDir when possible.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int, workDir string) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
		workDir:      workDir,
	}
}

// FormatTable formats runner results as a styled table.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(result.Files))
	for _, outcome := range result.Files {
		rows = append(rows, t.OutcomeToTableRow(outcome))
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
		if row.Message != "" {
			builder.WriteString(t.styles.Dim.Render("   " + row.Message))
			builder.WriteString("\n")
		}
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

// OutcomeToTableRow converts a file outcome to a table row.
func (t *TableFormatter) OutcomeToTableRow(outcome runner.FileOutcome) TableRow {
	row := TableRow{
		File:   displayPath(outcome.Path, t.workDir),
		Status: outcome.Status(),
	}

	if outcome.Error != nil {
		row.Message = outcome.Error.Error()
		return row
	}
	if outcome.Result == nil {
		return row
	}

	res := outcome.Result
	docs := res.Document
	row.Sections = strconv.Itoa(docs.Sections)
	row.Defs = strconv.Itoa(docs.Styles + docs.Cards + docs.Embeds)
	row.Size = FormatBytes(int64(res.OutputBytes))
	row.Digest = truncateString(res.Digest, digestColumnWidth)
	return row
}

type columnWidths struct {
	file     int
	status   int
	sections int
	defs     int
	size     int
}

// calculateColumnWidths determines optimal column widths based on content.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		file:     minFileWidth,
		status:   minStatusWidth,
		sections: minSectionsWidth,
		defs:     minDefsWidth,
		size:     minSizeWidth,
	}

	for _, row := range rows {
		widths.file = max(widths.file, len(row.File))
		widths.status = max(widths.status, len(row.Status))
		widths.sections = max(widths.sections, len(row.Sections))
		widths.defs = max(widths.defs, len(row.Defs))
		widths.size = max(widths.size, len(row.Size))
	}

	// Only the file column shrinks to fit the terminal.
	if total := t.calculateTotalWidth(widths); total > t.termWidth {
		widths.file = max(minFileWidth, widths.file-(total-t.termWidth))
	}

	return widths
}

// calculateTotalWidth calculates the total table width from column widths.
func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.file + widths.status + widths.sections + widths.defs + widths.size +
		digestColumnWidth + (tablePadding * tableColumnCount)
}

// formatHeader formats the table header row.
func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %*s  %-*s ",
		widths.file, "FILE",
		widths.status, "STATUS",
		widths.sections, "SECTIONS",
		widths.defs, "DEFS",
		widths.size, "SIZE",
		digestColumnWidth, "DIGEST",
	)
	return t.styles.TableHeader.Render(header)
}

// formatSeparator formats a separator line.
func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.calculateTotalWidth(widths)))
}

// formatRow formats a single table row with status-based styling.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %*s  %-*s ",
		widths.file, truncateFilePath(row.File, widths.file),
		widths.status, row.Status,
		widths.sections, row.Sections,
		widths.defs, row.Defs,
		widths.size, row.Size,
		digestColumnWidth, row.Digest,
	)
	return t.styles.Row(row.Status).Render(content)
}

// formatLegend formats the legend explaining the table columns and colors.
func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" DEFS = styles + cards + embeds | DIGEST = BLAKE3 prefix")
	}

	written := t.styles.Row(runner.StatusWritten).Render(" written ")
	unchanged := t.styles.Row(runner.StatusUnchanged).Render(" unchanged ")
	dryRun := t.styles.Row(runner.StatusDryRun).Render(" dry-run ")
	failed := t.styles.Row(runner.StatusFailed).Render(" failed ")

	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s %s %s %s | DEFS = styles + cards + embeds", written, unchanged, dryRun, failed),
	)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
