package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gomobiledoc/internal/configloader"
	"github.com/yaklabco/gomobiledoc/internal/logging"
	"github.com/yaklabco/gomobiledoc/internal/ui/pretty"
	"github.com/yaklabco/gomobiledoc/pkg/config"
	"github.com/yaklabco/gomobiledoc/pkg/reporter"
	"github.com/yaklabco/gomobiledoc/pkg/runner"
	"github.com/yaklabco/gomobiledoc/pkg/wire"
)

// Report styles for the render command.
const (
	reportFiles   = "files"
	reportTable   = "table"
	reportSummary = "summary"
	reportNone    = "none"
	reportJSON    = "json"
	reportJSONL   = "jsonl"
)

// stdinPath is the argument that selects standard input.
const stdinPath = "-"

type renderFlags struct {
	format         string
	compression    string
	flavor         string
	outputDir      string
	indent         int
	jobs           int
	ignore         []string
	detectLanguage bool
	dryRun         bool
	stdout         bool
	followSymlinks bool
	report         string
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:     "render [paths...]",
		Aliases: []string{"convert"},
		Short:   "Render Markdown and post files to mobiledoc",
		Long:    renderLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	addRenderFlags(cmd, flags)

	return cmd
}

const renderLongDescription = `Render Markdown (.md, .markdown) and YAML post descriptions
(.post.yaml, .post.yml) into mobiledoc documents.

By default, renders every input under the current directory and writes
each document next to its source as <name>.mobiledoc.json. Use "-" to
read Markdown from standard input.

Examples:
  gomobiledoc render                          # Render current directory
  gomobiledoc render docs/ --output-dir dist  # Mirror docs/ under dist/
  gomobiledoc render post.md --stdout         # Print one document
  gomobiledoc render --format cbor --compression zstd
  cat post.md | gomobiledoc render - --stdout --indent 2`

func addRenderFlags(cmd *cobra.Command, flags *renderFlags) {
	cmd.Flags().StringVar(&flags.format, "format", config.DefaultFormat, "wire format: json, cbor")
	cmd.Flags().StringVar(&flags.compression, "compression", config.DefaultCompression,
		"compression: none, zstd, lz4, xz")
	cmd.Flags().IntVar(&flags.indent, "indent", 0, "indent JSON output by this many spaces")
	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorCommonMark), "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "write documents under this directory")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.detectLanguage, "detect-language", true,
		"guess the language of code blocks without an info string")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "render without writing documents")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "write a single document to standard output")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")
	cmd.Flags().StringVar(&flags.report, "report", reportFiles, "report style: files, table, summary, json, jsonl, none")
}

// cliConfig maps explicitly set flags onto a configuration layer.
func (f *renderFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = f.format
	}
	if changed("compression") {
		cfg.Compression = f.compression
	}
	if changed("indent") {
		cfg.Indent = f.indent
	}
	if changed("flavor") {
		cfg.Flavor = config.Flavor(f.flavor)
	}
	if changed("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if changed("detect-language") {
		detect := f.detectLanguage
		cfg.DetectLanguage = &detect
	}
	cfg.DryRun = f.dryRun

	return cfg
}

func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	switch flags.report {
	case reportFiles, reportTable, reportSummary, reportJSON, reportJSONL, reportNone:
	default:
		return fmt.Errorf("%w: unknown report style %q", ErrInvalidUsage, flags.report)
	}

	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	loaded, workDir, err := loadConfig(ctx, cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}
	cfg := loaded.Config

	logger.Debug("configuration loaded",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldFormat, cfg.Format,
		logging.FieldCompression, cfg.Compression,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	conv, err := runner.NewConverter(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	if flags.stdout || (len(args) == 1 && args[0] == stdinPath) {
		return renderToStdout(ctx, cmd, args, conv, workDir)
	}

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     runner.DefaultExtensions(),
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           cfg.Jobs,
		Config:         cfg,
	}

	logger.Debug("starting render run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(conv).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("render run failed: %w", err)
	}

	logger.Debug("render run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
	)

	if err := report(ctx, cmd, flags.report, result, workDir); err != nil {
		return err
	}

	if result.HasFailures() {
		return fmt.Errorf("%w: %w", ErrConversionFailed, result.Err())
	}

	return nil
}

// renderToStdout converts a single input, or standard input, and writes
// the encoded document to the command's output.
func renderToStdout(ctx context.Context, cmd *cobra.Command, args []string, conv *runner.Converter, workDir string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: --stdout needs exactly one input, got %d", ErrInvalidUsage, len(args))
	}

	out := cmd.OutOrStdout()
	enc := conv.Encoding()
	if wire.IsBinary(enc.Format, enc.Compression) && isTerminal(out) {
		return fmt.Errorf("%w: refusing to write %s/%s output to a terminal; redirect it or use --format json",
			ErrInvalidUsage, enc.Format, enc.Compression)
	}

	var (
		name    = args[0]
		content []byte
		err     error
	)
	if name == stdinPath {
		name = "stdin.md"
		content, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	} else {
		content, err = os.ReadFile(resolvePath(workDir, name))
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
	}

	p, err := conv.Parse(ctx, name, content)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}

	_, encoded, err := conv.Encode(p)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}

	logging.FromContext(ctx).Debug("rendered to stdout",
		logging.FieldPath, name,
		logging.FieldBytes, len(encoded.Bytes),
		logging.FieldDigest, encoded.Digest,
	)

	if _, err := out.Write(encoded.Bytes); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// report prints the run outcome in the selected style.
func report(ctx context.Context, cmd *cobra.Command, style string, result *runner.Result, workDir string) error {
	out := cmd.OutOrStdout()

	switch style {
	case reportNone:
		return nil
	case reportJSON, reportJSONL:
		format, err := reporter.ParseFormat(style)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		rep, err := reporter.New(reporter.Options{Writer: out, Format: format, WorkingDir: workDir})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		if _, err := rep.Report(ctx, result); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		return nil
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	colorEnabled := pretty.IsColorEnabled(colorMode, out)
	styles := pretty.NewStyles(colorEnabled)

	switch style {
	case reportTable:
		formatter := pretty.NewTableFormatter(styles, colorEnabled, terminalWidth(out), workDir)
		_, _ = io.WriteString(out, formatter.FormatTable(result))
		_, _ = io.WriteString(out, styles.FormatSummaryOneLine(result.Stats))
	case reportSummary:
		_, _ = io.WriteString(out, styles.FormatSummary(result.Stats))
	default:
		for _, outcome := range result.Files {
			_, _ = io.WriteString(out, styles.FormatOutcome(outcome, workDir))
		}
		_, _ = io.WriteString(out, styles.FormatSummaryOneLine(result.Stats))
	}
	return nil
}

// loadConfig resolves the layered configuration for a command.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*configloader.LoadResult, string, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	if files := loaded.Files(); len(files) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, files)
	}

	return loaded, workDir, nil
}

// commandContext returns the command context carrying the default logger.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

func resolvePath(workDir, path string) string {
	if workDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w if it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
