// Package runner finds post files and converts them to mobiledoc documents
// in parallel.
package runner

import "github.com/yaklabco/gomobiledoc/pkg/config"

// Options describes one run.
type Options struct {
	// Paths lists files and directories to convert; "." when empty.
	Paths []string

	// WorkingDir resolves relative Paths and is the root mirrored under an
	// output directory. Empty means the process working directory.
	WorkingDir string

	// Extensions are the lowercase input suffixes, DefaultExtensions() when
	// empty. Compound suffixes such as ".post.yaml" are allowed.
	Extensions []string

	// ExcludeGlobs skip matching files and directories. See CompileGlob.
	ExcludeGlobs []string

	FollowSymlinks bool

	// Jobs caps concurrent conversions; 0 or less means one per CPU.
	Jobs int

	Config *config.Config
}

// Input suffixes understood by the converter.
const (
	ExtMarkdown     = ".md"
	ExtMarkdownLong = ".markdown"
	ExtPostYAML     = ".post.yaml"
	ExtPostYML      = ".post.yml"
)

// DefaultExtensions returns every input suffix the converter reads.
func DefaultExtensions() []string {
	return []string{ExtMarkdown, ExtMarkdownLong, ExtPostYAML, ExtPostYML}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) > 0 {
		return o.Extensions
	}
	return DefaultExtensions()
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) > 0 {
		return o.Paths
	}
	return []string{"."}
}
