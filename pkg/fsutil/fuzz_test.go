package fsutil_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/gomobiledoc/pkg/fsutil"
)

// FuzzWriteThenRead checks that written bytes read back intact and that a
// second identical write is skipped.
func FuzzWriteThenRead(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte(`{"version":"0.2.0"}`))
	f.Add([]byte("\x00\x01\x02\x03"))
	f.Add(make([]byte, 1024))

	f.Fuzz(func(t *testing.T, content []byte) {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "out")

		if err := fsutil.WriteAtomic(ctx, path, content, 0); err != nil {
			t.Fatalf("WriteAtomic failed: %v", err)
		}

		got, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Fatalf("content mismatch: got %d bytes, want %d", len(got), len(content))
		}

		changed, err := fsutil.WriteAtomicIfChanged(ctx, path, content, 0)
		if err != nil || changed {
			t.Fatalf("WriteAtomicIfChanged = %v, %v; want false, nil", changed, err)
		}

		modified, err := fsutil.CheckModified(ctx, info)
		if err != nil || modified {
			t.Fatalf("CheckModified = %v, %v; want false, nil", modified, err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("stat: %v", err)
		}
	})
}
