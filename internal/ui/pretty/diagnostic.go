package pretty

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gomobiledoc/pkg/runner"
)

// FormatOutcome formats one file outcome as a single line:
//
//	docs/a.md -> docs/a.mobiledoc.json  written  (3 sections, 412 B)
//
// Paths are shown relative to workDir when possible.
func (s *Styles) FormatOutcome(outcome runner.FileOutcome, workDir string) string {
	status := outcome.Status()
	input := s.FilePath.Render(displayPath(outcome.Path, workDir))

	if outcome.Error != nil || outcome.Result == nil {
		msg := "no result"
		if outcome.Error != nil {
			msg = outcome.Error.Error()
		}
		return fmt.Sprintf("  %s  %s  %s\n", input, s.FormatStatus(status), s.Message.Render(msg))
	}

	res := outcome.Result
	return fmt.Sprintf("  %s %s %s  %s  %s\n",
		input,
		s.Arrow.Render("->"),
		displayPath(res.Output, workDir),
		s.FormatStatus(status),
		s.Dim.Render(fmt.Sprintf("(%s, %s)",
			plural(res.Document.Sections, "section", "sections"),
			FormatBytes(int64(res.OutputBytes)))),
	)
}

// FormatStatus returns a styled status word.
func (s *Styles) FormatStatus(status string) string {
	return s.Status(status).Render(status)
}

// displayPath returns path relative to workDir unless it escapes it.
func displayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// FormatBytes renders a byte count with a binary unit, e.g. "1.5 KiB".
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for q := n / unit; q >= unit; q /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
