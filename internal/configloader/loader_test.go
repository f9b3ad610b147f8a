package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomobiledoc/pkg/config"
)

func isolated(workDir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         workDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.Sources)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, config.ProjectFileName), "flavor: gfm\ncompression: zstd\njobs: 2\n")

	// Discovered by searching upward from a nested directory.
	nested := filepath.Join(root, "posts", "2024")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolated(nested))
	require.NoError(t, err)

	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.Equal(t, "zstd", result.Config.Compression)
	assert.Equal(t, 2, result.Config.Jobs)
	assert.Equal(t, "json", result.Config.Format, "unset keys keep defaults")
	assert.Equal(t, []Source{{Layer: LayerProject, Path: filepath.Join(root, config.ProjectFileName)}}, result.Sources)
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, config.ProjectFileName), "flavor: gfm\n")

	repo := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	result, err := Load(context.Background(), isolated(repo))
	require.NoError(t, err)
	assert.Equal(t, config.FlavorCommonMark, result.Config.Flavor)
	assert.Empty(t, result.Files())
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeFile(t, filepath.Join(dir, config.ProjectFileName), "format: cbor\ncompression: lz4\n")
	explicit := filepath.Join(dir, "custom.yml")
	writeFile(t, explicit, "compression: xz\ndetect_language: false\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "cbor", result.Config.Format)
	assert.Equal(t, "xz", result.Config.Compression)
	assert.False(t, result.Config.LanguageDetection())
	assert.Equal(t, []string{filepath.Join(dir, config.ProjectFileName), explicit}, result.Files())
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeFile(t, filepath.Join(dir, config.ProjectFileName), "format: cbor\nignore: [\"a/**\"]\n")

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{
		Format: "json",
		Indent: 2,
		Ignore: []string{"b/**"},
		DryRun: true,
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "json", result.Config.Format)
	assert.Equal(t, 2, result.Config.Indent)
	assert.Equal(t, []string{"b/**"}, result.Config.Ignore)
	assert.True(t, result.Config.DryRun)

	applied := "GOMOBILEDOC_FORMAT,GOMOBILEDOC_COMPRESSION,GOMOBILEDOC_DETECT_LANGUAGE," +
		"GOMOBILEDOC_IGNORE,GOMOBILEDOC_JOBS,GOMOBILEDOC_DRY_RUN"
	require.Len(t, result.Sources, 2)
	assert.Equal(t, Source{Layer: LayerEnv, Path: applied}, result.Sources[0])
	assert.Equal(t, LayerFlags, result.Sources[1].Layer)
	assert.Empty(t, result.Files())
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"flavor", "flavor: rst\n", "flavor"},
		{"format", "format: xml\n", "format"},
		{"compression", "compression: gzip\n", "compression"},
		{"indent", "indent: 99\n", "indent"},
		{"jobs", "jobs: -1\n", "jobs"},
		{"ignore", "ignore: [\"[\"]\n", "ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
			path := filepath.Join(dir, config.ProjectFileName)
			writeFile(t, path, tt.content)

			_, err := Load(context.Background(), isolated(dir))

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "got %v", err)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Equal(t, path, validationErr.FilePath)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeFile(t, filepath.Join(dir, config.ProjectFileName), "flavor: [oops\n")

	_, err := Load(context.Background(), isolated(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load project config")
}

func TestLoad_IndentWithCBORWarns(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir())
	opts.CLIConfig = &config.Config{Format: "cbor", Indent: 2}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "ignored for cbor")
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("GOMOBILEDOC_FORMAT", "cbor")
	t.Setenv("GOMOBILEDOC_COMPRESSION", "zstd")
	t.Setenv("GOMOBILEDOC_DETECT_LANGUAGE", "false")
	t.Setenv("GOMOBILEDOC_IGNORE", " drafts/** , ,tmp/*")
	t.Setenv("GOMOBILEDOC_JOBS", "3")
	t.Setenv("GOMOBILEDOC_DRY_RUN", "1")

	opts := isolated(t.TempDir())
	opts.IgnoreEnv = false
	opts.CLIConfig = &config.Config{Compression: "xz"}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "cbor", result.Config.Format)
	assert.Equal(t, "xz", result.Config.Compression, "CLI wins over env")
	assert.False(t, result.Config.LanguageDetection())
	assert.Equal(t, []string{"drafts/**", "tmp/*"}, result.Config.Ignore)
	assert.Equal(t, 3, result.Config.Jobs)
	assert.True(t, result.Config.DryRun)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	t.Setenv("GOMOBILEDOC_JOBS", "many")

	_, err := LoadFromEnv(config.NewConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOMOBILEDOC_JOBS")
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Len(t, vars, len(envMappings))
	assert.Contains(t, vars, "GOMOBILEDOC_COMPRESSION")
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	off := false
	merged := MergeAll(
		config.NewConfig(),
		&config.Config{Format: "cbor", Jobs: 4},
		&config.Config{DetectLanguage: &off, Jobs: 2},
	)

	assert.Equal(t, "cbor", merged.Format)
	assert.Equal(t, 2, merged.Jobs)
	assert.False(t, merged.LanguageDetection())
	assert.Equal(t, config.FlavorCommonMark, merged.Flavor)
	assert.Nil(t, MergeAll())
}

func TestMerge_DoesNotAliasBase(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	merged := merge(base, &config.Config{Jobs: 8})
	*merged.DetectLanguage = false

	assert.True(t, base.LanguageDetection())
	assert.Zero(t, base.Jobs)
}
