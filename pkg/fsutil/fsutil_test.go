package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"

	"github.com/yaklabco/gomobiledoc/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "post.md")
		require.NoError(t, os.WriteFile(path, []byte("# hi\n"), 0o600))

		content, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "# hi\n", string(content))
		assert.Equal(t, path, info.Path)
		assert.Equal(t, int64(5), info.Size)
		assert.Equal(t, os.FileMode(0o600), info.Mode.Perm())
		assert.Equal(t, blake3.Sum256(content), info.Hash)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(ctx, filepath.Join(t.TempDir(), "missing.md"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(ctx, t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, _, err := fsutil.ReadFile(cancelled, "whatever.md")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	read := func(t *testing.T, content string) (string, *fsutil.FileInfo) {
		t.Helper()

		path := filepath.Join(t.TempDir(), "post.md")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		return path, info
	}

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		_, info := read(t, "same")
		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.False(t, modified)
	})

	t.Run("content changed with same size and time", func(t *testing.T) {
		t.Parallel()

		path, info := read(t, "aaaa")
		require.NoError(t, os.WriteFile(path, []byte("bbbb"), 0o644))
		require.NoError(t, os.Chtimes(path, info.ModTime, info.ModTime))

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("mod time changed", func(t *testing.T) {
		t.Parallel()

		path, info := read(t, "same")
		later := info.ModTime.Add(time.Hour)
		require.NoError(t, os.Chtimes(path, later, later))

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path, info := read(t, "gone")
		require.NoError(t, os.Remove(path))

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.CheckModified(ctx, nil)
		require.ErrorIs(t, err, fsutil.ErrNilFileInfo)
	})
}
