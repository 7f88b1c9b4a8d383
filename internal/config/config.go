// Package config loads the marquee YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vpckso/marquee/internal/logging"
)

// SelectionConfig tunes the drag-select gesture.
type SelectionConfig struct {
	// Disabled turns press handling off.
	Disabled bool `yaml:"disabled,omitempty"`

	// MinArea is the box area a drag must exceed to count as deliberate.
	// Zero means the built-in default.
	MinArea int `yaml:"min_area,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	Selection SelectionConfig `yaml:"selection,omitempty"`
	Logging   logging.Config  `yaml:"logging,omitempty"`
}

// DefaultPath returns the standard config location under the user config
// dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "marquee", "config.yml"), nil
}

// Load reads and parses a YAML config file. A missing file yields the zero
// config rather than an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	if cfg.Selection.MinArea < 0 {
		return nil, fmt.Errorf("config %q: min_area must not be negative", path)
	}
	return &cfg, nil
}
