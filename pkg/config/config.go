// Package config defines the configuration types for gomobiledoc.
// These types are pure data structures; discovery, merging and validation
// live in internal/configloader.
package config

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Default encoding settings.
const (
	DefaultFormat      = "json"
	DefaultCompression = "none"
)

// Config is the root configuration structure.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	// Format is the wire serialization: "json" or "cbor".
	Format string `yaml:"format"`

	// Compression is applied after serialization: "none", "zstd", "lz4" or "xz".
	Compression string `yaml:"compression"`

	// Indent pretty-prints JSON output with this many spaces (0 = compact).
	Indent int `yaml:"indent"`

	// DetectLanguage sniffs the language of code blocks that have no info
	// string. Nil means the default (enabled).
	DetectLanguage *bool `yaml:"detect_language,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	// OutputDir writes documents under this directory instead of next to
	// their inputs.
	OutputDir string `yaml:"output_dir"`

	// Jobs specifies the number of parallel workers (0 = GOMAXPROCS).
	Jobs int `yaml:"jobs"`

	// CLI-level options (not persisted to config files).

	// DryRun renders and encodes without writing outputs.
	DryRun bool `yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	detect := true
	return &Config{
		Flavor:         FlavorCommonMark,
		Format:         DefaultFormat,
		Compression:    DefaultCompression,
		DetectLanguage: &detect,
	}
}

// LanguageDetection reports whether code language sniffing is enabled.
func (c *Config) LanguageDetection() bool {
	if c == nil || c.DetectLanguage == nil {
		return true
	}
	return *c.DetectLanguage
}
