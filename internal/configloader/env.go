package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gomobiledoc/pkg/config"
)

// envVarPrefix is the prefix for all gomobiledoc environment variables.
const envVarPrefix = "GOMOBILEDOC_"

// envMapping binds one environment variable (without prefix) to a config
// field through a typed setter.
type envMapping struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string) error
}

// envMappings lists the supported variables in a stable order.
var envMappings = []envMapping{
	{"FLAVOR", "Markdown flavor: commonmark or gfm", func(cfg *config.Config, v string) error {
		cfg.Flavor = config.Flavor(v)
		return nil
	}},
	{"FORMAT", "Wire format: json or cbor", func(cfg *config.Config, v string) error {
		cfg.Format = v
		return nil
	}},
	{"COMPRESSION", "Compression: none, zstd, lz4, or xz", func(cfg *config.Config, v string) error {
		cfg.Compression = v
		return nil
	}},
	{"INDENT", "JSON indent width (0 = compact)", intSetter(func(cfg *config.Config, i int) { cfg.Indent = i })},
	{"DETECT_LANGUAGE", "Guess code block languages: true or false", boolSetter(func(cfg *config.Config, b bool) {
		cfg.DetectLanguage = &b
	})},
	{"IGNORE", "Comma-separated list of ignore patterns", func(cfg *config.Config, v string) error {
		cfg.Ignore = parseSliceValue(v)
		return nil
	}},
	{"OUTPUT_DIR", "Directory for rendered documents", func(cfg *config.Config, v string) error {
		cfg.OutputDir = v
		return nil
	}},
	{"JOBS", "Number of parallel workers (0 = auto)", intSetter(func(cfg *config.Config, i int) { cfg.Jobs = i })},
	{"DRY_RUN", "Render without writing: true or false", boolSetter(func(cfg *config.Config, b bool) {
		cfg.DryRun = b
	})},
}

// LoadFromEnv applies GOMOBILEDOC_* variables to cfg and returns the names
// of the variables that were set. Empty variables are ignored.
func LoadFromEnv(cfg *config.Config) ([]string, error) {
	if cfg == nil {
		return nil, nil
	}

	var applied []string
	for _, mapping := range envMappings {
		name := envVarPrefix + mapping.suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := mapping.apply(cfg, value); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		applied = append(applied, name)
	}
	return applied, nil
}

func intSetter(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		set(cfg, i)
		return nil
	}
}

func boolSetter(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for _, mapping := range envMappings {
		vars[envVarPrefix+mapping.suffix] = mapping.description
	}
	return vars
}
