package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/harrison/rfopener/internal/fileutil"
	"gopkg.in/yaml.v3"
)

// HistoryConfig represents launch history configuration
type HistoryConfig struct {
	// Enabled records every launch in the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database (empty = $RFOPENER_HOME/history.db)
	DBPath string `yaml:"db_path"`

	// Keep is the number of launches retained (0 = unlimited)
	Keep int `yaml:"keep"`
}

// Config represents rfopener configuration options
type Config struct {
	// Root is the directory to scan (empty = current working directory)
	Root string `yaml:"root"`

	// Depth is the requested scan depth, adjusted by fileutil.AdjustDepth
	Depth int `yaml:"depth"`

	// Exclude lists directories that are never descended into
	Exclude []string `yaml:"exclude"`

	// Extensions is the extension whitelist (empty = all files)
	Extensions []string `yaml:"extensions"`

	// NoCap disables the soft caps on path count and depth
	NoCap bool `yaml:"no_cap"`

	// Playlist selects playlist mode instead of random mode
	Playlist bool `yaml:"playlist"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir enables a per-run log file in this directory when set
	LogDir string `yaml:"log_dir"`

	// History contains launch history configuration
	History HistoryConfig `yaml:"history"`
}

// FlagOverrides carries CLI flag values. Nil fields were not given on the
// command line and leave the configuration untouched.
type FlagOverrides struct {
	Root       *string
	Depth      *int
	Exclude    *string // delimited list
	Extensions *string // delimited list
	NoCap      *bool
	Playlist   *bool
	LogLevel   *string
	NoHistory  *bool
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Root:     "",
		Depth:    fileutil.DefaultDepth,
		NoCap:    false,
		Playlist: false,
		LogLevel: "info",
		LogDir:   "",
		History: HistoryConfig{
			Enabled: true,
			DBPath:  "",
			Keep:    1000,
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointer fields tell "absent" apart from explicit zero values such as
	// depth: 0 or history.enabled: false
	type yamlHistory struct {
		Enabled *bool   `yaml:"enabled"`
		DBPath  *string `yaml:"db_path"`
		Keep    *int    `yaml:"keep"`
	}
	type yamlConfig struct {
		Root       *string      `yaml:"root"`
		Depth      *int         `yaml:"depth"`
		Exclude    []string     `yaml:"exclude"`
		Extensions []string     `yaml:"extensions"`
		NoCap      *bool        `yaml:"no_cap"`
		Playlist   *bool        `yaml:"playlist"`
		LogLevel   *string      `yaml:"log_level"`
		LogDir     *string      `yaml:"log_dir"`
		History    *yamlHistory `yaml:"history"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.Root != nil {
		cfg.Root = *yamlCfg.Root
	}
	if yamlCfg.Depth != nil {
		cfg.Depth = *yamlCfg.Depth
	}
	if yamlCfg.Exclude != nil {
		cfg.Exclude = yamlCfg.Exclude
	}
	if yamlCfg.Extensions != nil {
		cfg.Extensions = yamlCfg.Extensions
	}
	if yamlCfg.NoCap != nil {
		cfg.NoCap = *yamlCfg.NoCap
	}
	if yamlCfg.Playlist != nil {
		cfg.Playlist = *yamlCfg.Playlist
	}
	if yamlCfg.LogLevel != nil {
		cfg.LogLevel = *yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != nil {
		cfg.LogDir = *yamlCfg.LogDir
	}
	if h := yamlCfg.History; h != nil {
		if h.Enabled != nil {
			cfg.History.Enabled = *h.Enabled
		}
		if h.DBPath != nil {
			cfg.History.DBPath = *h.DBPath
		}
		if h.Keep != nil {
			cfg.History.Keep = *h.Keep
		}
	}

	return cfg, nil
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(flags FlagOverrides) {
	if flags.Root != nil {
		c.Root = *flags.Root
	}
	if flags.Depth != nil {
		c.Depth = *flags.Depth
	}
	if flags.Exclude != nil {
		c.Exclude = fileutil.SplitList(*flags.Exclude)
	}
	if flags.Extensions != nil {
		c.Extensions = fileutil.SplitList(*flags.Extensions)
	}
	if flags.NoCap != nil {
		c.NoCap = *flags.NoCap
	}
	if flags.Playlist != nil {
		c.Playlist = *flags.Playlist
	}
	if flags.LogLevel != nil {
		c.LogLevel = *flags.LogLevel
	}
	if flags.NoHistory != nil && *flags.NoHistory {
		c.History.Enabled = false
	}
}

// CheckCaps reports whether soft caps apply.
func (c *Config) CheckCaps() bool {
	return !c.NoCap
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.History.Keep < 0 {
		return fmt.Errorf("history.keep must be >= 0, got %d", c.History.Keep)
	}

	return nil
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
