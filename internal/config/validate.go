package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the YAML name of the invalid field.
	Field string
	// Value is the invalid value.
	Value any
	// Message describes the validation error.
	Message string
	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, fmt.Sprintf("%s (got %v)", e.Message, e.Value))
	return strings.Join(parts, ": ")
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.BufferSize < 1 {
		return &ValidationError{Field: "buffer_size", Value: c.BufferSize, Message: "must be at least 1"}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Field: "log_level", Value: c.LogLevel, Message: "must be debug, info, warn or error"}
	}

	switch c.Format {
	case FormatJSON, FormatTSV, FormatAST:
	default:
		return &ValidationError{Field: "format", Value: c.Format, Message: "must be json, tsv or ast"}
	}

	return nil
}
