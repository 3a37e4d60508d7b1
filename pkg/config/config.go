// Package config provides YAML-based configuration loading with environment variable expansion.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Validator is an interface for configuration validation.
type Validator interface {
	Validate() error
}

// Load loads configuration from a YAML file with environment variable expansion.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	expandedData := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expandedData), target); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	if validator, ok := any(target).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}

	return nil
}

// LoadOrDefault loads configuration from filename, falling back to the
// value produced by defaults when the file does not exist. The fallback
// is validated the same way a loaded file would be.
func LoadOrDefault[T any](filename string, defaults func() *T) (*T, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		cfg := defaults()
		if validator, ok := any(cfg).(Validator); ok {
			if err := validator.Validate(); err != nil {
				return nil, fmt.Errorf("config validation failed: %w", err)
			}
		}
		return cfg, nil
	}
	cfg := defaults()
	if err := Load(filename, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
