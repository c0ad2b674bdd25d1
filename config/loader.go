package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Load reads and parses the sweep configuration file.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.Sweep.ArchiveRoot == "" {
		cfg.Sweep.ArchiveRoot = "results"
	}
	if cfg.Policy.OnFailure == "" {
		cfg.Policy.OnFailure = "continue"
	}
	if cfg.Policy.MaxAttempts == 0 {
		cfg.Policy.MaxAttempts = 1
	}
	if cfg.Policy.BackoffBase == "" {
		cfg.Policy.BackoffBase = "1s"
	}
}
