package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/harrison/rfopener/internal/fileutil"
)

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Depth != fileutil.DefaultDepth {
		t.Errorf("Depth = %d, want %d", cfg.Depth, fileutil.DefaultDepth)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.NoCap {
		t.Errorf("NoCap = %v, want false", cfg.NoCap)
	}
	if !cfg.CheckCaps() {
		t.Errorf("CheckCaps() = false, want true")
	}
	if !cfg.History.Enabled {
		t.Errorf("History.Enabled = false, want true")
	}
	if cfg.History.Keep != 1000 {
		t.Errorf("History.Keep = %d, want 1000", cfg.History.Keep)
	}
}

// TestLoadConfigValidFile tests loading a valid YAML config file
func TestLoadConfigValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `root: /media/music
depth: 0
exclude:
  - /media/music/podcasts
extensions: [mp3, flac]
no_cap: true
playlist: true
log_level: debug
history:
  enabled: false
  keep: 50
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Root != "/media/music" {
		t.Errorf("Root = %q, want %q", cfg.Root, "/media/music")
	}
	if cfg.Depth != 0 {
		t.Errorf("Depth = %d, want 0 (explicit zero must survive)", cfg.Depth)
	}
	if !reflect.DeepEqual(cfg.Exclude, []string{"/media/music/podcasts"}) {
		t.Errorf("Exclude = %v", cfg.Exclude)
	}
	if !reflect.DeepEqual(cfg.Extensions, []string{"mp3", "flac"}) {
		t.Errorf("Extensions = %v", cfg.Extensions)
	}
	if !cfg.NoCap || !cfg.Playlist {
		t.Errorf("NoCap = %v, Playlist = %v, want both true", cfg.NoCap, cfg.Playlist)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.History.Enabled {
		t.Errorf("History.Enabled = true, want false")
	}
	if cfg.History.Keep != 50 {
		t.Errorf("History.Keep = %d, want 50", cfg.History.Keep)
	}
}

// TestLoadConfigFileNotExists tests fallback to defaults when file doesn't exist
func TestLoadConfigFileNotExists(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig() should not error on missing file, got: %v", err)
	}

	if cfg.Depth != fileutil.DefaultDepth {
		t.Errorf("Depth = %d, want %d (default)", cfg.Depth, fileutil.DefaultDepth)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q (default)", cfg.LogLevel, "info")
	}
}

// TestLoadConfigInvalidYAML tests error handling for malformed YAML
func TestLoadConfigInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	invalidYAML := `
depth: 5
extensions: [this is not valid
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("LoadConfig() expected error for invalid YAML, got nil")
	}
}

// TestLoadConfigPartialValues tests that partial config merges with defaults
func TestLoadConfigPartialValues(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `depth: 2
history:
  keep: 10
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Depth != 2 {
		t.Errorf("Depth = %d, want 2", cfg.Depth)
	}
	if cfg.History.Keep != 10 {
		t.Errorf("History.Keep = %d, want 10", cfg.History.Keep)
	}
	if !cfg.History.Enabled {
		t.Errorf("History.Enabled = false, want true (default)")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q (default)", cfg.LogLevel, "info")
	}
}

// TestMergeWithFlags tests CLI flag precedence over config values
func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Root = "/from/config"
	cfg.Extensions = []string{"mkv"}

	root := "/from/flag"
	depth := 7
	exclude := "/a;/b"
	extensions := "mp3;flac;"
	noCap := true
	playlist := true
	noHistory := true

	cfg.MergeWithFlags(FlagOverrides{
		Root:       &root,
		Depth:      &depth,
		Exclude:    &exclude,
		Extensions: &extensions,
		NoCap:      &noCap,
		Playlist:   &playlist,
		NoHistory:  &noHistory,
	})

	if cfg.Root != "/from/flag" {
		t.Errorf("Root = %q, want %q", cfg.Root, "/from/flag")
	}
	if cfg.Depth != 7 {
		t.Errorf("Depth = %d, want 7", cfg.Depth)
	}
	if !reflect.DeepEqual(cfg.Exclude, []string{"/a", "/b"}) {
		t.Errorf("Exclude = %v, want [/a /b]", cfg.Exclude)
	}
	if !reflect.DeepEqual(cfg.Extensions, []string{"mp3", "flac"}) {
		t.Errorf("Extensions = %v, want [mp3 flac]", cfg.Extensions)
	}
	if cfg.CheckCaps() {
		t.Errorf("CheckCaps() = true, want false")
	}
	if !cfg.Playlist {
		t.Errorf("Playlist = false, want true")
	}
	if cfg.History.Enabled {
		t.Errorf("History.Enabled = true, want false")
	}
}

// TestMergeWithFlagsNil tests that nil flags don't override config
func TestMergeWithFlagsNil(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Root = "/from/config"
	cfg.Extensions = []string{"mkv"}

	cfg.MergeWithFlags(FlagOverrides{})

	if cfg.Root != "/from/config" {
		t.Errorf("Root = %q, want %q (original)", cfg.Root, "/from/config")
	}
	if !reflect.DeepEqual(cfg.Extensions, []string{"mkv"}) {
		t.Errorf("Extensions = %v, want [mkv] (original)", cfg.Extensions)
	}
	if !cfg.History.Enabled {
		t.Errorf("History.Enabled = false, want true (original)")
	}
}

// TestValidate tests configuration validation
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "upper-case level accepted", mutate: func(c *Config) { c.LogLevel = "WARN" }},
		{name: "unknown level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "invalid log_level"},
		{name: "negative keep", mutate: func(c *Config) { c.History.Keep = -1 }, wantErr: "history.keep"},
		{name: "negative depth is left to AdjustDepth", mutate: func(c *Config) { c.Depth = -3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

// TestMarshalRoundTrip checks that a marshaled config loads back unchanged
func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Depth = 3
	cfg.Extensions = []string{"jpg"}

	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.Depth != 3 || !reflect.DeepEqual(loaded.Extensions, []string{"jpg"}) {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}
