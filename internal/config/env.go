package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// envVarPrefix is the prefix for all shapecells environment variables.
const envVarPrefix = "SHAPECELLS_"

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with SHAPECELLS_ (e.g., SHAPECELLS_BUFFER_SIZE).
func LoadFromEnv(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	if value := os.Getenv(envVarPrefix + "BUFFER_SIZE"); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %sBUFFER_SIZE: %q", envVarPrefix, value)
		}
		cfg.BufferSize = n
	}

	if value := os.Getenv(envVarPrefix + "LOG_LEVEL"); value != "" {
		cfg.LogLevel = value
	}

	if value := os.Getenv(envVarPrefix + "TRIM_SPACE"); value != "" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %sTRIM_SPACE: %q (expected true/false/1/0)", envVarPrefix, value)
		}
		cfg.TrimSpace = b
	}

	if value := os.Getenv(envVarPrefix + "FORMAT"); value != "" {
		cfg.Format = strings.ToLower(value)
	}

	return nil
}
