package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gomobiledoc/internal/logging"
	"github.com/yaklabco/gomobiledoc/pkg/config"
	"github.com/yaklabco/gomobiledoc/pkg/fsutil"
	"github.com/yaklabco/gomobiledoc/pkg/mobiledoc"
	"github.com/yaklabco/gomobiledoc/pkg/parser/goldmark"
	"github.com/yaklabco/gomobiledoc/pkg/post"
	"github.com/yaklabco/gomobiledoc/pkg/wire"
)

// ErrModifiedDuringConversion is reported when an input changed between
// being read and its document being written.
var ErrModifiedDuringConversion = errors.New("input modified during conversion")

// ErrOutputCollision is reported for every input of a run whose document
// path is shared with another input, such as a.md and a.post.yaml.
var ErrOutputCollision = errors.New("output path shared by several inputs")

// FileResult describes one converted file.
type FileResult struct {
	// Output is the path the document was (or in a dry run, would be) written to.
	Output string

	// Document holds the section and definition-table counts.
	Document mobiledoc.Stats

	// InputBytes is the size of the source file.
	InputBytes int64

	// RawBytes is the serialized size before compression.
	RawBytes int

	// OutputBytes is the size of the written document.
	OutputBytes int

	// Digest is the hex BLAKE3-256 of the written bytes.
	Digest string

	// Written is false when the output already held identical bytes or the
	// run is a dry run.
	Written bool

	// DryRun is set when the document was encoded but not written.
	DryRun bool
}

// Converter turns one input into one encoded document. It holds no
// per-document state, so a single Converter may be shared by all workers.
type Converter struct {
	markdown  *goldmark.Parser
	encoding  wire.Options
	outputDir string
	dryRun    bool
}

// NewConverter builds a Converter from a resolved configuration.
func NewConverter(cfg *config.Config) (*Converter, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	format, err := wire.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	compression, err := wire.ParseCompression(cfg.Compression)
	if err != nil {
		return nil, err
	}

	return &Converter{
		markdown: goldmark.New(string(cfg.Flavor),
			goldmark.WithLanguageDetection(cfg.LanguageDetection())),
		encoding: wire.Options{
			Format:      format,
			Compression: compression,
			Indent:      cfg.Indent,
		},
		outputDir: cfg.OutputDir,
		dryRun:    cfg.DryRun,
	}, nil
}

// Encoding returns the wire options the converter writes with.
func (c *Converter) Encoding() wire.Options {
	return c.encoding
}

// Parse builds a post from file content, choosing the importer by the
// file name: YAML post descriptions or Markdown.
func (c *Converter) Parse(ctx context.Context, path string, content []byte) (*post.Post, error) {
	switch matchedExtension(path, []string{ExtPostYAML, ExtPostYML}) {
	case ExtPostYAML, ExtPostYML:
		p, err := post.FromYAML(content)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return p, nil
	default:
		p, err := c.markdown.Parse(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		logging.FromContext(ctx).Debug("parsed markdown",
			logging.FieldFlavor, c.markdown.Flavor(), logging.FieldSections, len(p.Sections))
		return p, nil
	}
}

// Encode renders a post and serializes the document.
func (c *Converter) Encode(p *post.Post) (*mobiledoc.Document, *wire.Encoded, error) {
	doc, err := mobiledoc.Render(p)
	if err != nil {
		return nil, nil, fmt.Errorf("render: %w", err)
	}

	encoded, err := wire.Encode(doc, c.encoding)
	if err != nil {
		return nil, nil, err
	}

	return doc, encoded, nil
}

// OutputPath maps an input path to its document path: the input with its
// extension replaced, either beside the input or mirrored under the output
// directory relative to workDir.
func (c *Converter) OutputPath(input, workDir string) string {
	name := trimInputExtension(input) + wire.Extension(c.encoding.Format, c.encoding.Compression)
	if c.outputDir == "" {
		return name
	}

	outDir := c.outputDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}

	rel, err := filepath.Rel(workDir, name)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(name)
	}

	return filepath.Join(outDir, rel)
}

// ConvertFile reads, renders, encodes and writes one input.
func (c *Converter) ConvertFile(ctx context.Context, path, workDir string) (*FileResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	p, err := c.Parse(ctx, path, content)
	if err != nil {
		return nil, err
	}

	doc, encoded, err := c.Encode(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	result := &FileResult{
		Output:      c.OutputPath(path, workDir),
		Document:    doc.Stats(),
		InputBytes:  info.Size,
		RawBytes:    encoded.RawSize,
		OutputBytes: len(encoded.Bytes),
		Digest:      encoded.Digest,
	}

	if c.dryRun {
		result.DryRun = true
		return result, nil
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		return nil, err
	}
	if modified {
		return nil, fmt.Errorf("%w: %s", ErrModifiedDuringConversion, path)
	}

	result.Written, err = fsutil.WriteAtomicIfChanged(ctx, result.Output, encoded.Bytes, fsutil.DefaultFileMode)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", result.Output, err)
	}
	if !result.Written {
		logging.FromContext(ctx).Debug("output up to date", logging.FieldOutput, result.Output)
	}

	return result, nil
}

// trimInputExtension strips a known input suffix, or else the last
// extension, from path.
func trimInputExtension(path string) string {
	if ext := matchedExtension(path, DefaultExtensions()); ext != "" {
		return path[:len(path)-len(ext)]
	}
	return strings.TrimSuffix(path, filepath.Ext(path))
}
