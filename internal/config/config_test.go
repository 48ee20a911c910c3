package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Verify", cfg.Verify, false},
		{"Output", cfg.Output, OutputText},
		{"CacheMaxEntries", cfg.CacheMaxEntries, 256},
		{"Verbose", cfg.Verbose, false},
		{"JSONLogs", cfg.JSONLogs, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("DefaultConfig().%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	if cfg.CacheDir == "" {
		t.Error("DefaultConfig().CacheDir should not be empty")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{
			name:    "valid defaults",
			cfg:     DefaultConfig(),
			wantErr: false,
		},
		{
			name: "valid json output",
			cfg: &Config{
				Output:          OutputJSON,
				CacheMaxEntries: 10,
			},
			wantErr: false,
		},
		{
			name: "invalid output format",
			cfg: &Config{
				Output:          OutputFormat("xml"),
				CacheMaxEntries: 10,
			},
			wantErr: true,
		},
		{
			name: "non-positive cache size",
			cfg: &Config{
				Output:          OutputText,
				CacheMaxEntries: 0,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gdq", "config.yaml")

	cfg := DefaultConfig()
	cfg.Verify = true
	cfg.Output = OutputJSON
	cfg.CacheMaxEntries = 32

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if !loaded.Verify {
		t.Error("Verify not restored")
	}
	if loaded.Output != OutputJSON {
		t.Errorf("Output = %q, want %q", loaded.Output, OutputJSON)
	}
	if loaded.CacheMaxEntries != 32 {
		t.Errorf("CacheMaxEntries = %d, want 32", loaded.CacheMaxEntries)
	}
}

func TestConfigLoadMissingFile(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFromFile() on missing file: expected error")
	}
}

func TestConfigEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	t.Setenv("GDQ_VERIFY", "true")
	t.Setenv("GDQ_OUTPUT", "json")
	t.Setenv("GDQ_CACHE_MAX_ENTRIES", "7")
	t.Setenv("GDQ_VERBOSE", "1")

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if !loaded.Verify {
		t.Error("GDQ_VERIFY override not applied")
	}
	if loaded.Output != OutputJSON {
		t.Errorf("Output = %q, want %q", loaded.Output, OutputJSON)
	}
	if loaded.CacheMaxEntries != 7 {
		t.Errorf("CacheMaxEntries = %d, want 7", loaded.CacheMaxEntries)
	}
	if !loaded.Verbose {
		t.Error("GDQ_VERBOSE override not applied")
	}
}

func TestConfigInvalidEnvIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	t.Setenv("GDQ_CACHE_MAX_ENTRIES", "not-a-number")

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if loaded.CacheMaxEntries != cfg.CacheMaxEntries {
		t.Errorf("CacheMaxEntries = %d, want %d", loaded.CacheMaxEntries, cfg.CacheMaxEntries)
	}

	if got := os.Getenv("GDQ_CACHE_MAX_ENTRIES"); got != "not-a-number" {
		t.Fatalf("test env not set: %q", got)
	}
}
