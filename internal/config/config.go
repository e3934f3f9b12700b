// Package config loads the dfamin command configuration from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultFile is read when no -config flag is given; it may be absent.
	DefaultFile = "dfamin.yaml"

	DefaultInput  = "nodes.txt"
	DefaultOutput = "results.txt"

	NamingSequential = "sequential"
	NamingMembers    = "members"
)

var logLevels = []string{"error", "warn", "info", "debug"}

// Config models dfamin.yaml.
type Config struct {
	Input           string `yaml:"input"`
	Output          string `yaml:"output"`
	DotOutput       string `yaml:"dot_output,omitempty"`
	Naming          string `yaml:"naming"`
	TrimUnreachable bool   `yaml:"trim_unreachable"`
	LogLevel        string `yaml:"log_level"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		Input:    DefaultInput,
		Output:   DefaultOutput,
		Naming:   NamingSequential,
		LogLevel: "info",
	}
}

// Load reads path on top of Default. A missing file is not an error when
// optional is set; the defaults are returned as-is.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Input = strings.TrimSpace(c.Input)
	c.Output = strings.TrimSpace(c.Output)
	c.DotOutput = strings.TrimSpace(c.DotOutput)
	c.Naming = strings.ToLower(strings.TrimSpace(c.Naming))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.Input == "" {
		c.Input = DefaultInput
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Naming == "" {
		c.Naming = NamingSequential
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate rejects unknown naming schemes and log levels.
func (c Config) Validate() error {
	switch c.Naming {
	case NamingSequential, NamingMembers:
	default:
		return fmt.Errorf("unknown naming %q (want %s or %s)", c.Naming, NamingSequential, NamingMembers)
	}
	for _, level := range logLevels {
		if c.LogLevel == level {
			return nil
		}
	}
	return fmt.Errorf("unknown log_level %q (want one of %s)", c.LogLevel, strings.Join(logLevels, ", "))
}
