package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("USERPROFILE", "/home/tester")

	path := DefaultConfigPath()

	if filepath.Base(path) != "config.yaml" {
		t.Errorf("DefaultConfigPath() = %q, should end with config.yaml", path)
	}
	if filepath.Base(filepath.Dir(path)) != ".wopr" {
		t.Errorf("DefaultConfigPath() = %q, should be in .wopr directory", path)
	}
}

func TestDefaultConfigPathNoHome(t *testing.T) {
	t.Setenv("HOME", "")
	t.Setenv("USERPROFILE", "")

	if got := DefaultConfigPath(); got != "config.yaml" {
		t.Errorf("DefaultConfigPath() = %q, want config.yaml", got)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")

	if err != nil {
		t.Errorf("LoadConfig() error = %v, want nil for missing file", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfig() returned nil config")
	}
	if cfg.BaseURL != "" || cfg.DefaultModel != "" {
		t.Errorf("LoadConfig() = %+v, want empty config", cfg)
	}
	if cfg.KeyRef() != DefaultKeyRef {
		t.Errorf("KeyRef() = %q, want %q", cfg.KeyRef(), DefaultKeyRef)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `base_url: https://staging.wopr.bot/v1
api_key_ref: staging
default_model: gpt-4o-mini
timeout: 45s
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.BaseURL != "https://staging.wopr.bot/v1" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.KeyRef() != "staging" {
		t.Errorf("KeyRef() = %q, want staging", cfg.KeyRef())
	}
	if cfg.DefaultModel != "gpt-4o-mini" {
		t.Errorf("DefaultModel = %q", cfg.DefaultModel)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", cfg.Timeout)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("base_url: [unclosed"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should fail on invalid YAML")
	}
}

func TestKeyRefNilConfig(t *testing.T) {
	var cfg *Config
	if cfg.KeyRef() != DefaultKeyRef {
		t.Errorf("nil KeyRef() = %q, want %q", cfg.KeyRef(), DefaultKeyRef)
	}
}
