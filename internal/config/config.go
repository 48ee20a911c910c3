// Package config loads and persists gdq configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// OutputFormat selects how analysis results are printed.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// Config holds all configuration for go-dominance-query
type Config struct {
	// Verify enables differential validation of every analysis: the fast
	// solver is cross-checked against the classical solver and the process
	// aborts on mismatch. Off by default.
	Verify bool `yaml:"verify" env:"GDQ_VERIFY"`

	// Output is the default output format (text or json)
	Output OutputFormat `yaml:"output" env:"GDQ_OUTPUT"`

	// CacheDir is where analysis results are persisted; empty disables the cache
	CacheDir string `yaml:"cache_dir" env:"GDQ_CACHE_DIR"`

	// CacheMaxEntries bounds the in-memory result cache
	CacheMaxEntries int `yaml:"cache_max_entries" env:"GDQ_CACHE_MAX_ENTRIES"`

	// Logging
	Verbose  bool `yaml:"verbose" env:"GDQ_VERBOSE"`
	JSONLogs bool `yaml:"json_logs" env:"GDQ_JSON_LOGS"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	cacheDir := ".gdq/cache"
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".gdq", "cache")
	}
	return &Config{
		Verify:          false,
		Output:          OutputText,
		CacheDir:        cacheDir,
		CacheMaxEntries: 256,
		Verbose:         false,
		JSONLogs:        false,
	}
}

// globalConfigFilePath returns the global config file path (~/.gdq/config.yaml)
func globalConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gdq/config.yaml"
	}
	return filepath.Join(home, ".gdq", "config.yaml")
}

// projectConfigFilePath returns the project-level config file path (./.gdq/config.yaml)
func projectConfigFilePath() string {
	return ".gdq/config.yaml"
}

// GlobalPath returns where `gdq init` writes its configuration.
func GlobalPath() string { return globalConfigFilePath() }

// Load reads configuration with the following priority (highest to lowest):
// 1. Environment variables
// 2. Project-level config (./.gdq/config.yaml)
// 3. Global config (~/.gdq/config.yaml)
// 4. Defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	globalConfigPath := globalConfigFilePath()
	if data, err := os.ReadFile(globalConfigPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", globalConfigPath, err)
		}
	}

	projectConfigPath := projectConfigFilePath()
	if data, err := os.ReadFile(projectConfigPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", projectConfigPath, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile reads configuration from a specific YAML file path
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if data, err := os.ReadFile(path); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified YAML file path.
// It creates parent directories if they don't exist.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

// Validate checks the configuration for inconsistent values.
func (c *Config) Validate() error {
	if c.Output != OutputText && c.Output != OutputJSON {
		return fmt.Errorf("invalid output format %q (use %q or %q)", c.Output, OutputText, OutputJSON)
	}
	if c.CacheMaxEntries <= 0 {
		return fmt.Errorf("cache_max_entries must be positive, got %d", c.CacheMaxEntries)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GDQ_VERIFY"); v != "" {
		cfg.Verify = parseBool(v)
	}
	if v := os.Getenv("GDQ_OUTPUT"); v != "" {
		cfg.Output = OutputFormat(v)
	}
	if v := os.Getenv("GDQ_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("GDQ_CACHE_MAX_ENTRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheMaxEntries = n
		}
	}
	if v := os.Getenv("GDQ_VERBOSE"); v != "" {
		cfg.Verbose = parseBool(v)
	}
	if v := os.Getenv("GDQ_JSON_LOGS"); v != "" {
		cfg.JSONLogs = parseBool(v)
	}
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
