package configloader

import (
	"slices"

	"github.com/yaklabco/gomobiledoc/pkg/config"
)

// merge returns a copy of base with the set fields of override applied.
// A field is set when it is non-zero, a non-nil pointer or a non-nil slice.
// DryRun is sticky: a later layer can turn it on but not off.
func merge(base, override *config.Config) *config.Config {
	switch {
	case base == nil:
		return override
	case override == nil:
		return base
	}

	out := base.Clone()
	setIf(&out.Flavor, override.Flavor)
	setIf(&out.Format, override.Format)
	setIf(&out.Compression, override.Compression)
	setIf(&out.Indent, override.Indent)
	setIf(&out.OutputDir, override.OutputDir)
	setIf(&out.Jobs, override.Jobs)

	if override.DetectLanguage != nil {
		out.DetectLanguage = new(bool)
		*out.DetectLanguage = *override.DetectLanguage
	}
	if override.Ignore != nil {
		out.Ignore = slices.Clone(override.Ignore)
	}
	out.DryRun = out.DryRun || override.DryRun

	return out
}

func setIf[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

// MergeAll folds configs left to right, later entries winning. It returns
// nil when called with no configs.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}
	out := configs[0]
	for _, next := range configs[1:] {
		out = merge(out, next)
	}
	return out
}
