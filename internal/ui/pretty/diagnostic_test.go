package pretty_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomobiledoc/internal/ui/pretty"
	"github.com/yaklabco/gomobiledoc/pkg/mobiledoc"
	"github.com/yaklabco/gomobiledoc/pkg/runner"
)

func writtenOutcome(workDir string) runner.FileOutcome {
	return runner.FileOutcome{
		Path: filepath.Join(workDir, "docs", "a.md"),
		Result: &runner.FileResult{
			Output:      filepath.Join(workDir, "docs", "a.mobiledoc.json"),
			Document:    mobiledoc.Stats{Sections: 3, Styles: 2, Cards: 1},
			OutputBytes: 412,
			Digest:      strings.Repeat("ab", 32),
			Written:     true,
		},
	}
}

func TestFormatOutcome_Written(t *testing.T) {
	styles := pretty.NewStyles(false)
	workDir := t.TempDir()

	line := styles.FormatOutcome(writtenOutcome(workDir), workDir)

	assert.Equal(t,
		"  "+filepath.Join("docs", "a.md")+" -> "+filepath.Join("docs", "a.mobiledoc.json")+
			"  written  (3 sections, 412 B)\n",
		line)
}

func TestFormatOutcome_Error(t *testing.T) {
	styles := pretty.NewStyles(false)

	line := styles.FormatOutcome(runner.FileOutcome{
		Path:  "/elsewhere/b.md",
		Error: errors.New("parse failed"),
	}, "/work")

	assert.Equal(t, "  /elsewhere/b.md  failed  parse failed\n", line)
}

func TestTableFormatter_FormatTable(t *testing.T) {
	styles := pretty.NewStyles(false)
	workDir := t.TempDir()

	result := &runner.Result{Files: []runner.FileOutcome{
		writtenOutcome(workDir),
		{Path: filepath.Join(workDir, "b.md"), Error: errors.New("parse failed")},
	}}

	table := pretty.NewTableFormatter(styles, false, 0, workDir).FormatTable(result)

	lines := strings.Split(strings.TrimRight(table, "\n"), "\n")
	assert.Len(t, lines, 7)
	assert.Contains(t, lines[0], "FILE")
	assert.Contains(t, lines[0], "DIGEST")
	assert.Contains(t, lines[2], filepath.Join("docs", "a.md"))
	assert.Contains(t, lines[2], "written")
	assert.Contains(t, lines[2], "412 B")
	assert.Contains(t, lines[2], "ababababa...")
	assert.Contains(t, lines[3], "failed")
	assert.Contains(t, lines[4], "parse failed")
	assert.Contains(t, lines[6], "DEFS = styles + cards + embeds")
}

func TestTableFormatter_Empty(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80, "")

	assert.Empty(t, formatter.FormatTable(nil))
	assert.Empty(t, formatter.FormatTable(&runner.Result{}))
}

func TestTableFormatter_OutcomeToTableRow(t *testing.T) {
	workDir := t.TempDir()
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80, workDir)

	row := formatter.OutcomeToTableRow(writtenOutcome(workDir))

	assert.Equal(t, pretty.TableRow{
		File:     filepath.Join("docs", "a.md"),
		Status:   runner.StatusWritten,
		Sections: "3",
		Defs:     "3",
		Size:     "412 B",
		Digest:   "ababababa...",
	}, row)
}
