package config

// ProjectFileName is the configuration file written by `gomobiledoc init`
// and searched for upward from the working directory.
const ProjectFileName = ".gomobiledoc.yml"

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gomobiledoc configuration
# See: https://github.com/yaklabco/gomobiledoc`
}

// GenerateTemplate returns a commented project configuration listing every
// key with its default value.
func GenerateTemplate() []byte {
	return []byte(DefaultTemplateHeader() + `

# Markdown flavor: commonmark or gfm
flavor: commonmark

# Wire serialization: json or cbor
format: json

# Compression after serialization: none, zstd, lz4, or xz
compression: none

# Pretty-print JSON with this many spaces (0 = compact)
indent: 0

# Guess the language of code blocks without an info string
detect_language: true

# Write documents here instead of next to their inputs
# output_dir: dist/mobiledoc

# Number of parallel workers (0 = auto)
jobs: 0

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`)
}
