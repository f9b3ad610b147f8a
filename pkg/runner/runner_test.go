package runner_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomobiledoc/internal/logging"
	"github.com/yaklabco/gomobiledoc/pkg/config"
	"github.com/yaklabco/gomobiledoc/pkg/runner"
	"github.com/yaklabco/gomobiledoc/pkg/wire"
)

const (
	helloMarkdown = "# Title\n\nHello *world*.\n"
	helloJSON     = `{"version":"0.2.0","embeds":[],"cards":[],"styles":[["em"]],"sections":[` +
		`[1,"h1",[[0,[],0,"Title"]]],` +
		`[1,"p",[[0,[],0,"Hello "],[0,[0],0,"world"],[0,[],1,"."]]]]}`

	helloPostYAML = `
sections:
  - type: markup
    tag: p
    runs:
      - value: hi
        styles:
          - tag: b
  - type: card
    name: image-card
    payload: {src: /cat.png}
`
	helloPostJSON = `{"version":"0.2.0","embeds":[],"cards":[["image-card",{"src":"/cat.png"}]],` +
		`"styles":[["b"]],"sections":[[1,"p",[[0,[0],0,"hi"]]],[10,0]]}`
)

func newRunner(t *testing.T, mutate func(cfg *config.Config)) *runner.Runner {
	t.Helper()

	cfg := config.NewConfig()
	if mutate != nil {
		mutate(cfg)
	}
	conv, err := runner.NewConverter(cfg)
	require.NoError(t, err)
	return runner.New(conv)
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNew(t *testing.T) {
	t.Parallel()

	conv, err := runner.NewConverter(nil)
	require.NoError(t, err)

	r := runner.New(conv)
	require.NotNil(t, r)
	assert.Same(t, conv, r.Converter)
	assert.Equal(t, wire.FormatJSON, conv.Encoding().Format)
	assert.Equal(t, wire.CompressionNone, conv.Encoding().Compression)
}

func TestNewConverter_InvalidEncoding(t *testing.T) {
	t.Parallel()

	_, err := runner.NewConverter(&config.Config{Format: "xml"})
	require.Error(t, err)

	_, err = runner.NewConverter(&config.Config{Compression: "brotli"})
	require.Error(t, err)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner(t, nil).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.False(t, result.HasFailures())
	assert.NoError(t, result.Err())
}

func TestRunner_Run_MarkdownAndYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"hello.md":       helloMarkdown,
		"card.post.yaml": helloPostYAML,
		"ignored.txt":    "plain",
	})

	result, err := newRunner(t, nil).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	assert.JSONEq(t, helloJSON, readFile(t, filepath.Join(dir, "hello.mobiledoc.json")))
	assert.JSONEq(t, helloPostJSON, readFile(t, filepath.Join(dir, "card.mobiledoc.json")))

	stats := result.Stats
	assert.Equal(t, 2, stats.FilesDiscovered)
	assert.Equal(t, 2, stats.FilesProcessed)
	assert.Equal(t, 2, stats.FilesWritten)
	assert.Zero(t, stats.FilesErrored)
	assert.Equal(t, 4, stats.Documents.Sections)
	assert.Equal(t, 2, stats.Documents.Styles)
	assert.Equal(t, 1, stats.Documents.Cards)
	assert.Positive(t, stats.OutputBytes)
	assert.Equal(t, stats.RawBytes, stats.OutputBytes)

	// Outcomes come back in path order.
	assert.Equal(t, filepath.Join(dir, "card.post.yaml"), result.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "hello.md"), result.Files[1].Path)
	for _, outcome := range result.Files {
		require.NoError(t, outcome.Error)
		assert.Len(t, outcome.Result.Digest, 64)
	}
}

func TestRunner_Run_OutputDirMirrorsLayout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"docs/guide/intro.md": helloMarkdown,
		"top.markdown":        "plain\n",
	})

	r := newRunner(t, func(cfg *config.Config) { cfg.OutputDir = "out" })
	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	require.False(t, result.HasFailures())

	assert.FileExists(t, filepath.Join(dir, "out", "docs", "guide", "intro.mobiledoc.json"))
	assert.FileExists(t, filepath.Join(dir, "out", "top.mobiledoc.json"))
	assert.NoFileExists(t, filepath.Join(dir, "docs", "guide", "intro.mobiledoc.json"))
}

func TestRunner_Run_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"hello.md": helloMarkdown})

	r := newRunner(t, func(cfg *config.Config) { cfg.DryRun = true })
	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	outcome := result.Files[0]
	require.NoError(t, outcome.Error)
	assert.True(t, outcome.Result.DryRun)
	assert.False(t, outcome.Result.Written)
	assert.Equal(t, filepath.Join(dir, "hello.mobiledoc.json"), outcome.Result.Output)
	assert.NoFileExists(t, outcome.Result.Output)

	assert.Equal(t, 1, result.Stats.FilesDryRun)
	assert.Zero(t, result.Stats.FilesWritten)
}

func TestRunner_Run_SecondRunIsUnchanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.md": helloMarkdown, "b.md": "text\n"})

	r := newRunner(t, nil)
	first, err := r.Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Stats.FilesWritten)

	second, err := r.Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Zero(t, second.Stats.FilesWritten)
	assert.Equal(t, 2, second.Stats.FilesUnchanged)

	for i := range first.Files {
		assert.Equal(t, first.Files[i].Result.Digest, second.Files[i].Result.Digest)
	}
}

func TestRunner_Run_BinaryCompressed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"hello.md": helloMarkdown})

	r := newRunner(t, func(cfg *config.Config) {
		cfg.Format = "cbor"
		cfg.Compression = "zstd"
	})
	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	require.False(t, result.HasFailures())

	out := filepath.Join(dir, "hello.mobiledoc.cbor.zst")
	require.FileExists(t, out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	value, err := wire.DecodeValue(data, wire.FormatCBOR, wire.CompressionZstd)
	require.NoError(t, err)

	doc, ok := value.(map[string]any)
	require.True(t, ok, "decoded value is %T", value)
	assert.Equal(t, "0.2.0", doc["version"])
	sections, ok := doc["sections"].([]any)
	require.True(t, ok)
	assert.Len(t, sections, 2)
}

func TestRunner_Run_ErrorsAreCounted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"good.md":       helloMarkdown,
		"bad.post.yaml": "sections:\n  - type: table\n",
	})

	result, err := newRunner(t, nil).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.True(t, result.HasFailures())
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesProcessed)

	runErr := result.Err()
	require.Error(t, runErr)
	assert.Contains(t, runErr.Error(), "bad.post.yaml")

	bad := result.Files[0]
	require.Error(t, bad.Error)
	assert.Nil(t, bad.Result)
}

func TestRunner_Run_OutputCollisions(t *testing.T) {
	t.Parallel()

	t.Run("markdown and post beside each other", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTree(t, dir, map[string]string{
			"a.md":        helloMarkdown,
			"a.post.yaml": helloPostYAML,
			"b.md":        helloMarkdown,
		})

		result, err := newRunner(t, nil).Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 4})
		require.NoError(t, err)

		require.Len(t, result.Files, 3)
		for _, outcome := range result.Files[:2] {
			require.ErrorIs(t, outcome.Error, runner.ErrOutputCollision, outcome.Path)
			assert.Equal(t, runner.StatusFailed, outcome.Status())
		}
		assert.Contains(t, result.Files[0].Error.Error(), filepath.Join(dir, "a.post.yaml"))
		assert.NoError(t, result.Files[2].Error)

		assert.True(t, result.HasFailures())
		assert.Equal(t, 2, result.Stats.FilesErrored)
		assert.Equal(t, 1, result.Stats.FilesWritten)
		assert.NoFileExists(t, filepath.Join(dir, "a.mobiledoc.json"))
		assert.FileExists(t, filepath.Join(dir, "b.mobiledoc.json"))
	})

	t.Run("same base name outside the working directory", func(t *testing.T) {
		t.Parallel()

		work := t.TempDir()
		x, y := t.TempDir(), t.TempDir()
		writeTree(t, x, map[string]string{"a.md": helloMarkdown})
		writeTree(t, y, map[string]string{"a.md": "# Other\n"})

		r := newRunner(t, func(cfg *config.Config) { cfg.OutputDir = "out" })
		result, err := r.Run(context.Background(), runner.Options{
			Paths:      []string{filepath.Join(x, "a.md"), filepath.Join(y, "a.md")},
			WorkingDir: work,
			Jobs:       1,
		})
		require.NoError(t, err)

		require.Len(t, result.Files, 2)
		for _, outcome := range result.Files {
			assert.ErrorIs(t, outcome.Error, runner.ErrOutputCollision)
		}
		assert.NoDirExists(t, filepath.Join(work, "out"))
	})
}

func TestConverter_Parse_LogsFlavor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&buf, "debug"))

	conv, err := runner.NewConverter(&config.Config{Flavor: config.FlavorGFM})
	require.NoError(t, err)

	p, err := conv.Parse(ctx, "post.md", []byte(helloMarkdown))
	require.NoError(t, err)
	assert.Len(t, p.Sections, 2)
	assert.Contains(t, buf.String(), "flavor=gfm")
	assert.Contains(t, buf.String(), "sections=2")
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := make(map[string]string)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files["docs/"+name+".md"] = "# " + strings.ToUpper(name) + "\n\nBody *" + name + "*.\n"
	}
	writeTree(t, dir, files)

	run := func(jobs int) *runner.Result {
		r := newRunner(t, func(cfg *config.Config) { cfg.DryRun = true })
		result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: jobs})
		require.NoError(t, err)
		return result
	}

	serial := run(1)
	parallel := run(4)

	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.Equal(t, serial.Files[i].Result.Digest, parallel.Files[i].Result.Digest)
	}
	assert.Equal(t, serial.Stats, parallel.Stats)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.md": helloMarkdown})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(t, nil).Run(ctx, runner.Options{WorkingDir: dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConverter_OutputPath(t *testing.T) {
	t.Parallel()

	work := filepath.FromSlash("/work")

	tests := []struct {
		name   string
		cfg    config.Config
		input  string
		output string
	}{
		{"markdown beside input", config.Config{}, "/work/a/b.md", "/work/a/b.mobiledoc.json"},
		{"compound suffix", config.Config{}, "/work/x.post.yaml", "/work/x.mobiledoc.json"},
		{"upper case suffix", config.Config{}, "/work/README.MD", "/work/README.mobiledoc.json"},
		{"binary compressed", config.Config{Format: "cbor", Compression: "xz"}, "/work/a.md", "/work/a.mobiledoc.cbor.xz"},
		{"relative output dir", config.Config{OutputDir: "dist"}, "/work/a/b.md", "/work/dist/a/b.mobiledoc.json"},
		{"absolute output dir", config.Config{OutputDir: "/out"}, "/work/a/b.md", "/out/a/b.mobiledoc.json"},
		{"input outside workdir", config.Config{OutputDir: "/out"}, "/elsewhere/c.md", "/out/c.mobiledoc.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := tt.cfg
			conv, err := runner.NewConverter(&cfg)
			require.NoError(t, err)
			assert.Equal(t,
				filepath.FromSlash(tt.output),
				conv.OutputPath(filepath.FromSlash(tt.input), work))
		})
	}
}

func TestFileOutcome_Status(t *testing.T) {
	modified := fmt.Errorf("%w: x.md", runner.ErrModifiedDuringConversion)

	tests := []struct {
		name    string
		outcome runner.FileOutcome
		want    string
	}{
		{"written", runner.FileOutcome{Result: &runner.FileResult{Written: true}}, runner.StatusWritten},
		{"unchanged", runner.FileOutcome{Result: &runner.FileResult{}}, runner.StatusUnchanged},
		{"dry run", runner.FileOutcome{Result: &runner.FileResult{DryRun: true}}, runner.StatusDryRun},
		{"failed", runner.FileOutcome{Error: errors.New("boom")}, runner.StatusFailed},
		{"modified", runner.FileOutcome{Error: modified}, runner.StatusSkipped},
		{"no result", runner.FileOutcome{}, runner.StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outcome.Status())
		})
	}
}
