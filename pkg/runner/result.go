package runner

import (
	"errors"

	"github.com/yaklabco/gomobiledoc/pkg/mobiledoc"
)

// FileOutcome pairs an input path with its conversion result.
type FileOutcome struct {
	// Path is the input file that was processed.
	Path string

	// Result is nil if the file could not be converted.
	Result *FileResult

	// Error is set if the file could not be converted.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of inputs found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of inputs converted without error.
	FilesProcessed int

	// FilesWritten is the number of documents whose bytes changed on disk.
	FilesWritten int

	// FilesUnchanged is the number of documents already up to date.
	FilesUnchanged int

	// FilesDryRun is the number of documents encoded but not written.
	FilesDryRun int

	// FilesSkipped is the number of inputs that changed mid-conversion.
	FilesSkipped int

	// FilesErrored is the number of inputs that failed for any other reason.
	FilesErrored int

	// Documents sums the per-document section and table counts.
	Documents mobiledoc.Stats

	// InputBytes, RawBytes and OutputBytes sum FileResult sizes.
	InputBytes  int64
	RawBytes    int64
	OutputBytes int64
}

// CompressionRatio returns OutputBytes / RawBytes, or 1 when nothing was
// encoded.
func (s Stats) CompressionRatio() float64 {
	if s.RawBytes == 0 {
		return 1
	}
	return float64(s.OutputBytes) / float64(s.RawBytes)
}

// File statuses reported by FileOutcome.Status.
const (
	StatusWritten   = "written"
	StatusUnchanged = "unchanged"
	StatusDryRun    = "dry-run"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// Status classifies the outcome.
func (o FileOutcome) Status() string {
	switch {
	case errors.Is(o.Error, ErrModifiedDuringConversion):
		return StatusSkipped
	case o.Error != nil, o.Result == nil:
		return StatusFailed
	case o.Result.DryRun:
		return StatusDryRun
	case o.Result.Written:
		return StatusWritten
	default:
		return StatusUnchanged
	}
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any input failed to convert.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || r.Stats.FilesSkipped > 0
}

// Err joins every per-file error, or returns nil.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}

	var errs []error
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			errs = append(errs, outcome.Error)
		}
	}
	return errors.Join(errs...)
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		if errors.Is(outcome.Error, ErrModifiedDuringConversion) {
			r.Stats.FilesSkipped++
		} else {
			r.Stats.FilesErrored++
		}
		return
	}

	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++
	switch {
	case outcome.Result.DryRun:
		r.Stats.FilesDryRun++
	case outcome.Result.Written:
		r.Stats.FilesWritten++
	default:
		r.Stats.FilesUnchanged++
	}

	r.Stats.Documents.Add(outcome.Result.Document)
	r.Stats.InputBytes += outcome.Result.InputBytes
	r.Stats.RawBytes += int64(outcome.Result.RawBytes)
	r.Stats.OutputBytes += int64(outcome.Result.OutputBytes)
}
