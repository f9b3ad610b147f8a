package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Discover finds the inputs named by opts.Paths. Directories are walked
// recursively; hidden entries and excluded paths are skipped. The result is
// a sorted list of unique absolute paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	exclude, err := newExcludeMatcher(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	f := &finder{
		workDir:        workDir,
		extensions:     opts.effectiveExtensions(),
		exclude:        exclude,
		followSymlinks: opts.FollowSymlinks,
		seen:           make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}
		if err := f.add(ctx, input); err != nil {
			return nil, err
		}
	}

	slices.Sort(f.files)
	return f.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

// finder accumulates discovered inputs for one Discover call.
type finder struct {
	workDir        string
	extensions     []string
	exclude        excludeMatcher
	followSymlinks bool

	seen  map[string]struct{}
	files []string
}

// add handles one command-line path. An explicitly named file is taken if it
// has an input extension and is not excluded, even when it is hidden.
func (f *finder) add(ctx context.Context, input string) error {
	path := input
	if !filepath.IsAbs(path) {
		path = filepath.Join(f.workDir, path)
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}
	if info.IsDir() {
		return f.walk(ctx, path)
	}
	f.consider(path)
	return nil
}

// walk adds every input below root. Directory symlinks are walked through
// their target when followSymlinks is set, which keeps WalkDir from
// recursing into the link itself.
func (f *finder) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch {
		case walkErr != nil && os.IsPermission(walkErr):
			return nil
		case walkErr != nil:
			return walkErr
		}

		hidden := strings.HasPrefix(entry.Name(), ".")
		if entry.IsDir() {
			if (hidden && path != root) || f.exclude.Match(f.rel(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, ok := resolveSymlink(path)
			if !ok {
				return nil
			}
			if target.isDir {
				if !f.followSymlinks {
					return nil
				}
				return f.walk(ctx, target.path)
			}
		}

		if !hidden {
			f.consider(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

type symlinkTarget struct {
	path  string
	isDir bool
}

// resolveSymlink follows a link. Broken links and unreadable targets report
// false and are skipped.
func resolveSymlink(path string) (symlinkTarget, bool) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return symlinkTarget{}, false
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return symlinkTarget{}, false
	}
	return symlinkTarget{path: resolved, isDir: info.IsDir()}, true
}

// consider records path if it is an input that is not excluded.
func (f *finder) consider(path string) {
	if matchedExtension(path, f.extensions) == "" || f.exclude.Match(f.rel(path)) {
		return
	}
	if _, dup := f.seen[path]; dup {
		return
	}
	f.seen[path] = struct{}{}
	f.files = append(f.files, path)
}

// rel returns path relative to the working directory for glob matching.
func (f *finder) rel(path string) string {
	if rel, err := filepath.Rel(f.workDir, path); err == nil {
		return rel
	}
	return path
}

// matchedExtension returns the longest extension that path ends with, or "".
func matchedExtension(path string, extensions []string) string {
	lower := strings.ToLower(filepath.Base(path))
	best := ""
	for _, e := range extensions {
		e = strings.ToLower(e)
		if strings.HasSuffix(lower, e) && len(lower) > len(e) && len(e) > len(best) {
			best = e
		}
	}
	return best
}

// excludeMatcher matches relative paths against the compiled exclude
// patterns. Matching is done on slash-separated paths.
type excludeMatcher []glob.Glob

// CompileGlob compiles an exclude pattern. "*" stays within one path
// segment and "**" crosses segments.
func CompileGlob(pattern string) (glob.Glob, error) {
	g, err := glob.Compile(filepath.ToSlash(pattern), '/')
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return g, nil
}

func newExcludeMatcher(patterns []string) (excludeMatcher, error) {
	matcher := make(excludeMatcher, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := CompileGlob(pattern)
		if err != nil {
			return nil, err
		}
		matcher = append(matcher, g)
	}
	return matcher, nil
}

// Match reports whether relPath is excluded. Besides the path itself it
// tries the bare file name, so "draft.md" excludes it in any directory, and
// the path with a leading or trailing slash, so "**/vendor" and "vendor/**"
// both exclude the vendor directory itself.
func (m excludeMatcher) Match(relPath string) bool {
	if len(m) == 0 {
		return false
	}

	path := filepath.ToSlash(relPath)
	candidates := [...]string{path, "/" + path, path + "/", filepath.Base(relPath)}
	for _, g := range m {
		for _, candidate := range candidates {
			if g.Match(candidate) {
				return true
			}
		}
	}
	return false
}
