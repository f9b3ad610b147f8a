package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlIndent is the indentation of generated YAML.
const yamlIndent = 2

// ToYAML serializes the configuration. A nil config yields nil.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(yamlIndent)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration below a comment block.
// Header lines not already starting with "#" are commented out.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || header == "" {
		return body, err
	}

	var buf bytes.Buffer
	for line := range strings.Lines(header) {
		line = strings.TrimRight(line, "\n")
		if !strings.HasPrefix(line, "#") {
			buf.WriteString("# ")
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(body)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration file. Keys missing from data stay at their
// zero value, which merging treats as "inherit". Unknown keys are rejected so
// a misspelled option does not silently fall back to its default. An empty
// document is an empty configuration.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	if c.DetectLanguage != nil {
		detect := *c.DetectLanguage
		clone.DetectLanguage = &detect
	}
	clone.Ignore = slices.Clone(c.Ignore)

	return &clone
}
