package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Permissions for outputs and the directories created to hold them.
const (
	DefaultFileMode os.FileMode = 0o644
	DefaultDirMode  os.FileMode = 0o755
)

// WriteAtomic replaces path with content. The bytes go to a temp file beside
// path which is synced and renamed over it, so a reader sees the old file or
// the new one and never a mix. Parent directories are created as needed and
// a zero mode means DefaultFileMode.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DefaultDirMode); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmpPath, err := writeTemp(dir, filepath.Base(path), content, cmpMode(mode))
	if err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// writeTemp stores content in a new synced file in dir and returns its path.
// Nothing is left behind on failure.
func writeTemp(dir, base string, content []byte, mode os.FileMode) (path string, err error) {
	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return "", fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Chmod(mode); err != nil {
		return "", fmt.Errorf("chmod temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return tmp.Name(), nil
}

func cmpMode(mode os.FileMode) os.FileMode {
	if mode == 0 {
		return DefaultFileMode
	}
	return mode
}

// WriteAtomicIfChanged is WriteAtomic that skips the write when path already
// holds exactly content. It reports whether it wrote.
func WriteAtomicIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("write atomic: %w", err)
	}

	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, content):
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("read existing: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}
