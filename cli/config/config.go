// Package config handles CLI configuration loading and management.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultKeyRef is the keystore entry used when api_key_ref is not set.
const DefaultKeyRef = "wopr"

// Config represents the CLI configuration.
type Config struct {
	BaseURL      string        `yaml:"base_url,omitempty"`
	APIKeyRef    string        `yaml:"api_key_ref,omitempty"`
	DefaultModel string        `yaml:"default_model,omitempty"`
	Timeout      time.Duration `yaml:"timeout,omitempty"`
}

// KeyRef returns the keystore entry holding the API key.
func (c *Config) KeyRef() string {
	if c == nil || c.APIKeyRef == "" {
		return DefaultKeyRef
	}
	return c.APIKeyRef
}

// Dir returns the per-user WOPR directory.
// - macOS/Linux: ~/.wopr
// - Windows: %USERPROFILE%\.wopr
func Dir() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		return ""
	}

	return filepath.Join(homeDir, ".wopr")
}

// DefaultConfigPath returns the default configuration file path for the current platform.
func DefaultConfigPath() string {
	dir := Dir()
	if dir == "" {
		// Fallback to current directory
		return "config.yaml"
	}
	return filepath.Join(dir, "config.yaml")
}

// LoadConfig loads configuration from the specified path.
// If the file doesn't exist, returns an empty config without error.
// Returns an error only if the file exists but cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Missing config file is not an error
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
