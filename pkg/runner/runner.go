package runner

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gomobiledoc/internal/logging"
)

// Runner converts a set of inputs with a shared Converter.
type Runner struct {
	Converter *Converter
}

// New returns a Runner using converter.
func New(converter *Converter) *Runner {
	return &Runner{Converter: converter}
}

// Run discovers the inputs named by opts and converts them on up to
// opts.Jobs goroutines. The Converter holds no per-document state, so each
// conversion builds its own document. Outcomes are in path order. When ctx
// is cancelled Run stops handing out inputs and returns the outcomes it has
// together with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debug("discovered inputs",
		logging.FieldFiles, len(files), logging.FieldWorkingDir, workDir)

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	outcomes := make([]*FileOutcome, len(files))
	collisions := r.outputCollisions(files, workDir)

	var group errgroup.Group
	group.SetLimit(workerCount(opts.Jobs, len(files)))
	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		if clashErr, clash := collisions[path]; clash {
			logging.FromContext(ctx).Warn("conversion failed", logging.FieldPath, path, logging.FieldError, clashErr)
			outcomes[i] = &FileOutcome{Path: path, Error: clashErr}
			continue
		}
		group.Go(func() error {
			if ctx.Err() == nil {
				outcomes[i] = r.convertOne(ctx, path, workDir)
			}
			return nil
		})
	}
	_ = group.Wait()

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

// outputCollisions maps every input whose output path is also the output
// of another input to an ErrOutputCollision error. None of those inputs is
// converted, so the result does not depend on scheduling.
func (r *Runner) outputCollisions(files []string, workDir string) map[string]error {
	byOutput := make(map[string][]string, len(files))
	for _, path := range files {
		out := r.Converter.OutputPath(path, workDir)
		byOutput[out] = append(byOutput[out], path)
	}

	collisions := make(map[string]error)
	for out, inputs := range byOutput {
		if len(inputs) < 2 {
			continue
		}
		for _, path := range inputs {
			others := slices.DeleteFunc(slices.Clone(inputs), func(other string) bool { return other == path })
			collisions[path] = fmt.Errorf("%w: %s is also the output of %s",
				ErrOutputCollision, out, strings.Join(others, ", "))
		}
	}
	return collisions
}

// workerCount resolves the jobs setting: 0 or less means one per CPU, and
// there are never more workers than files.
func workerCount(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return max(1, min(jobs, files))
}

// convertOne converts path with a logger that carries the path field.
func (r *Runner) convertOne(ctx context.Context, path, workDir string) *FileOutcome {
	ctx = logging.WithFields(ctx, logging.FieldPath, path)
	logger := logging.FromContext(ctx)

	fr, err := r.Converter.ConvertFile(ctx, path, workDir)
	if err != nil {
		logger.Warn("conversion failed", logging.FieldError, err)
		return &FileOutcome{Path: path, Error: err}
	}

	logger.Debug("converted",
		logging.FieldOutput, fr.Output,
		logging.FieldSections, fr.Document.Sections,
		logging.FieldBytes, fr.OutputBytes,
		logging.FieldDigest, fr.Digest,
	)
	return &FileOutcome{Path: path, Result: fr}
}
