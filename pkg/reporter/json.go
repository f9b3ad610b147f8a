package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gomobiledoc/pkg/mobiledoc"
	"github.com/yaklabco/gomobiledoc/pkg/runner"
)

// reportVersion is the revision of the report layout, independent of the
// mobiledoc wire version.
const reportVersion = "1.0.0"

// bufWriterSize is the output buffer size; reports are flushed once.
const bufWriterSize = 64 * 1024

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version     string           `json:"version"`
	WireVersion string           `json:"wireVersion"`
	Files       []JSONFileResult `json:"files"`
	Summary     JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path        string        `json:"path"`
	Status      string        `json:"status"`
	Output      string        `json:"output,omitempty"`
	Digest      string        `json:"digest,omitempty"`
	InputBytes  int64         `json:"inputBytes,omitempty"`
	RawBytes    int           `json:"rawBytes,omitempty"`
	OutputBytes int           `json:"outputBytes,omitempty"`
	Document    *JSONDocument `json:"document,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// JSONDocument describes the contents of one encoded document.
type JSONDocument struct {
	Sections     int `json:"sections"`
	Runs         int `json:"runs"`
	Styles       int `json:"styles"`
	Cards        int `json:"cards"`
	Embeds       int `json:"embeds"`
	Deduplicated int `json:"deduplicated"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered  int          `json:"filesDiscovered"`
	FilesProcessed   int          `json:"filesProcessed"`
	FilesWritten     int          `json:"filesWritten"`
	FilesUnchanged   int          `json:"filesUnchanged"`
	FilesDryRun      int          `json:"filesDryRun"`
	FilesSkipped     int          `json:"filesSkipped"`
	FilesErrored     int          `json:"filesErrored"`
	InputBytes       int64        `json:"inputBytes"`
	RawBytes         int64        `json:"rawBytes"`
	OutputBytes      int64        `json:"outputBytes"`
	CompressionRatio float64      `json:"compressionRatio"`
	Documents        JSONDocument `json:"documents"`
}

// JSONReporter formats results as a single JSON object.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	opts = opts.withDefaults()
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildOutput(result, r.opts.WorkingDir)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesErrored + output.Summary.FilesSkipped, nil
}

// JSONLReporter writes one JSON object per file followed by a summary
// object, one per line.
type JSONLReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONLReporter creates a new JSON Lines reporter.
func NewJSONLReporter(opts Options) *JSONLReporter {
	opts = opts.withDefaults()
	return &JSONLReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONLReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildOutput(result, r.opts.WorkingDir)
	encoder := json.NewEncoder(r.bw)

	for _, file := range output.Files {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if err := encoder.Encode(file); err != nil {
			return 0, fmt.Errorf("encode JSON line: %w", err)
		}
	}

	summary := struct {
		Summary JSONSummary `json:"summary"`
	}{output.Summary}
	if err := encoder.Encode(summary); err != nil {
		return 0, fmt.Errorf("encode JSON line: %w", err)
	}

	return output.Summary.FilesErrored + output.Summary.FilesSkipped, nil
}

func buildOutput(result *runner.Result, workDir string) *JSONOutput {
	output := &JSONOutput{
		Version:     reportVersion,
		WireVersion: mobiledoc.Version,
		Files:       make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:   relativePath(file.Path, workDir),
			Status: file.Status(),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		if res := file.Result; res != nil {
			fileResult.Output = relativePath(res.Output, workDir)
			fileResult.Digest = res.Digest
			fileResult.InputBytes = res.InputBytes
			fileResult.RawBytes = res.RawBytes
			fileResult.OutputBytes = res.OutputBytes
			doc := documentSummary(res.Document)
			fileResult.Document = &doc
		}

		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered:  stats.FilesDiscovered,
		FilesProcessed:   stats.FilesProcessed,
		FilesWritten:     stats.FilesWritten,
		FilesUnchanged:   stats.FilesUnchanged,
		FilesDryRun:      stats.FilesDryRun,
		FilesSkipped:     stats.FilesSkipped,
		FilesErrored:     stats.FilesErrored,
		InputBytes:       stats.InputBytes,
		RawBytes:         stats.RawBytes,
		OutputBytes:      stats.OutputBytes,
		CompressionRatio: stats.CompressionRatio(),
		Documents:        documentSummary(stats.Documents),
	}

	return output
}

func documentSummary(stats mobiledoc.Stats) JSONDocument {
	return JSONDocument{
		Sections:     stats.Sections,
		Runs:         stats.Runs(),
		Styles:       stats.Styles,
		Cards:        stats.Cards,
		Embeds:       stats.Embeds,
		Deduplicated: stats.Deduplicated(),
	}
}

// relativePath returns path relative to workDir, or path unchanged if it
// lies outside workDir.
func relativePath(path, workDir string) string {
	if workDir == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}
