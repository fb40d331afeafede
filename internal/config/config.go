// Package config loads garden configuration from an optional YAML file and
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// SavePath is where the garden is saved and loaded.
	SavePath string `yaml:"save_path"`

	// Seed drives the mutation RNG. Runs with the same seed replay the same
	// mutations.
	Seed uint64 `yaml:"seed"`

	// GridSize is the planting grid side length.
	GridSize int `yaml:"grid_size"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		SavePath: "garden_save.json",
		Seed:     1,
		GridSize: 8,
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if it
// exists), then environment overrides. An empty path skips the file step.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if v := os.Getenv("QUANTUM_GARDEN_SAVE"); v != "" {
		cfg.SavePath = v
	}
	if v := os.Getenv("QUANTUM_GARDEN_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("QUANTUM_GARDEN_SEED: %w", err)
		}
		cfg.Seed = seed
	}

	if cfg.GridSize <= 0 {
		return nil, fmt.Errorf("grid_size must be positive, got %d", cfg.GridSize)
	}
	return cfg, nil
}
