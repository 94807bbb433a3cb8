// Package config provides configuration loading and validation for krouter.
// Supports YAML files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/krouter-io/krouter/internal/route"
)

// Config holds all configuration for a routing instance.
type Config struct {
	Proxy         ProxyConfig         `yaml:"proxy"`
	Routing       route.TreeSpec      `yaml:"routing"`
	Observability ObservabilityConfig `yaml:"observability"`

	// Source is the raw YAML text the config was parsed from, "" when the
	// config was built from defaults. Path is the file it was loaded from,
	// "" when none. Both feed the admin "config" and "config_file" commands.
	Source string `yaml:"-"`
	Path   string `yaml:"-"`
}

type ProxyConfig struct {
	// AdminAddr is where the operator-facing HTTP surface (metrics + admin
	// debug endpoint) listens.
	AdminAddr string `yaml:"adminAddr" env:"KROUTER_ADMIN_ADDR"`

	// MaxBackgroundTasks bounds concurrently running recording walks.
	MaxBackgroundTasks int64 `yaml:"maxBackgroundTasks" env:"KROUTER_MAX_BACKGROUND_TASKS"`
}

type ObservabilityConfig struct {
	LogLevel  string `yaml:"logLevel" env:"KROUTER_LOG_LEVEL"`
	LogFormat string `yaml:"logFormat" env:"KROUTER_LOG_FORMAT"`
}

// Default returns a Config with sensible defaults and no routing tree.
func Default() *Config {
	return &Config{
		Proxy: ProxyConfig{
			AdminAddr:          ":5555",
			MaxBackgroundTasks: 64,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}
}

// Load builds the configuration from defaults and environment overrides.
func Load() (*Config, error) {
	cfg := Default()
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads the configuration from a YAML file, applies environment
// overrides, and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// Parse parses YAML configuration text, applies environment overrides, and
// validates the result. The raw text is retained in Source.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", route.ErrInvalidConfiguration, err)
	}
	cfg.Source = string(data)
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the structural invariants the daemon depends on. The deep
// routing-tree validation (node references, cycles, key syntax) happens in
// route.BuildTree so that no partial tree is ever published.
func (c *Config) Validate() error {
	if c.Proxy.AdminAddr == "" {
		return fmt.Errorf("%w: proxy: empty admin address", route.ErrInvalidConfiguration)
	}
	if c.Proxy.MaxBackgroundTasks < 1 {
		return fmt.Errorf("%w: proxy: maxBackgroundTasks must be positive", route.ErrInvalidConfiguration)
	}
	if len(c.Routing.Nodes) > 0 && c.Routing.Root == "" {
		return fmt.Errorf("%w: routing: nodes defined but no root named", route.ErrInvalidConfiguration)
	}
	return nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("KROUTER_ADMIN_ADDR"); v != "" {
		c.Proxy.AdminAddr = v
	}
	if v := os.Getenv("KROUTER_MAX_BACKGROUND_TASKS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Proxy.MaxBackgroundTasks = n
		}
	}
	if v := os.Getenv("KROUTER_LOG_LEVEL"); v != "" {
		c.Observability.LogLevel = v
	}
	if v := os.Getenv("KROUTER_LOG_FORMAT"); v != "" {
		c.Observability.LogFormat = v
	}
}
