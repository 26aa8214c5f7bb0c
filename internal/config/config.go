package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dashtable/internal/datasource"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the optional file that seeds the initial table view. It is
// read as TOML when the path ends in .toml and as YAML otherwise.
type Config struct {
	View ViewConfig `yaml:"view" toml:"view"`
}

// ViewConfig describes the table state the dashboard opens with.
type ViewConfig struct {
	Sort    string   `yaml:"sort" toml:"sort"`
	Desc    bool     `yaml:"desc" toml:"desc"`
	Parity  string   `yaml:"parity" toml:"parity"`
	Filters []string `yaml:"filters" toml:"filters"`
	Hidden  []string `yaml:"hidden" toml:"hidden"`
	Active  string   `yaml:"active" toml:"active"`
}

// LoadConfig reads and validates the config file at path.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	v := c.View
	if v.Sort != "" {
		if _, err := datasource.ParseColumn(v.Sort); err != nil {
			return fmt.Errorf("view.sort: %w", err)
		}
	}
	if v.Active != "" {
		if _, err := datasource.ParseColumn(v.Active); err != nil {
			return fmt.Errorf("view.active: %w", err)
		}
	}
	for _, h := range v.Hidden {
		if _, err := datasource.ParseColumn(h); err != nil {
			return fmt.Errorf("view.hidden: %w", err)
		}
	}
	if _, err := datasource.ParseRowParity(v.Parity); err != nil {
		return fmt.Errorf("view.parity: %w", err)
	}
	return nil
}
