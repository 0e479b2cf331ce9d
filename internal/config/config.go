// Package config loads settings for the shapecells command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shapestone/shape-cells/pkg/cells"
)

// Output formats understood by the rows command.
const (
	FormatJSON = "json"
	FormatTSV  = "tsv"
	FormatAST  = "ast"
)

// Config holds command settings.
type Config struct {
	// BufferSize is the initial tokenizer buffer capacity in bytes.
	BufferSize int `yaml:"buffer_size"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// TrimSpace trims white space around cells before typed conversion.
	TrimSpace bool `yaml:"trim_space"`
	// Format is the output format of the rows command.
	Format string `yaml:"format"`
	// NullValues are cell texts read as absent values.
	NullValues []string `yaml:"null_values,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BufferSize: cells.DefaultBufferSize,
		LogLevel:   "info",
		Format:     FormatJSON,
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.merge(data); err != nil {
			return nil, err
		}
	}

	if err := LoadFromEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		if path != "" {
			var verr *ValidationError
			if errors.As(err, &verr) {
				verr.FilePath = path
			}
		}
		return nil, err
	}

	return cfg, nil
}

// FromYAML parses a configuration from YAML bytes on top of the defaults.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.merge(data); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(data []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}
