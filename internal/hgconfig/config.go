// Package hgconfig reads and writes hgrep configuration.
//
// Supports both global (~/.config/hgrep/config.yaml) and local
// (.hgrep.yaml) configuration files, merged under whatever the CLI flags
// explicitly set (flags always win). Reading prefers local over global.
package hgconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidValue is returned when a config value is out of range.
var ErrInvalidValue = errors.New("invalid config value")

// Config holds the defaults hgrep falls back to when a flag isn't given
// explicitly on the command line.
type Config struct {
	Theme       string `yaml:"theme,omitempty"`
	Printer     string `yaml:"printer,omitempty"` // "syntect" or "bat"
	TabWidth    *int   `yaml:"tab_width,omitempty"`
	Grid        *bool  `yaml:"grid,omitempty"`
	Wrap        string `yaml:"wrap,omitempty"` // "char" or "never"
	AsciiLines  *bool  `yaml:"ascii_lines,omitempty"`
	Background  *bool  `yaml:"background,omitempty"`
	MinContext  *int   `yaml:"min_context,omitempty"`
	MaxContext  *int   `yaml:"max_context,omitempty"`
	TermWidth   *int   `yaml:"term_width,omitempty"`
	CustomTheme string `yaml:"custom_theme_dir,omitempty"`

	path string
}

// Defaults applied when neither a flag nor the config file sets a value.
const (
	DefaultTabWidth   = 4
	DefaultMinContext = 3
	DefaultMaxContext = 6
	DefaultWrap       = "char"
)

// Validate checks that configured values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.TabWidth != nil && (*c.TabWidth < 0 || *c.TabWidth > 32) {
		return fmt.Errorf("%w: tab_width must be between 0 and 32, got %d", ErrInvalidValue, *c.TabWidth)
	}
	if c.MinContext != nil && *c.MinContext < 0 {
		return fmt.Errorf("%w: min_context must be >= 0, got %d", ErrInvalidValue, *c.MinContext)
	}
	if c.MaxContext != nil && c.MinContext != nil && *c.MaxContext < *c.MinContext {
		return fmt.Errorf("%w: max_context (%d) must be >= min_context (%d)", ErrInvalidValue, *c.MaxContext, *c.MinContext)
	}
	if c.TermWidth != nil && *c.TermWidth < 10 {
		return fmt.Errorf("%w: term_width must be >= 10, got %d", ErrInvalidValue, *c.TermWidth)
	}
	if c.Wrap != "" && c.Wrap != "char" && c.Wrap != "never" {
		return fmt.Errorf("%w: wrap must be 'char' or 'never', got %q", ErrInvalidValue, c.Wrap)
	}
	if c.Printer != "" && c.Printer != "syntect" && c.Printer != "bat" {
		return fmt.Errorf("%w: printer must be 'syntect' or 'bat', got %q", ErrInvalidValue, c.Printer)
	}
	return nil
}

// TabWidthOr returns the configured tab width or the given fallback.
func (c *Config) TabWidthOr(fallback int) int {
	if c.TabWidth == nil {
		return fallback
	}
	return *c.TabWidth
}

// GridOr returns the configured grid setting or the given fallback.
func (c *Config) GridOr(fallback bool) bool {
	if c.Grid == nil {
		return fallback
	}
	return *c.Grid
}

// AsciiLinesOr returns the configured ascii-lines setting or the given fallback.
func (c *Config) AsciiLinesOr(fallback bool) bool {
	if c.AsciiLines == nil {
		return fallback
	}
	return *c.AsciiLines
}

// BackgroundOr returns the configured background setting or the given fallback.
func (c *Config) BackgroundOr(fallback bool) bool {
	if c.Background == nil {
		return fallback
	}
	return *c.Background
}

// LocalPath returns the path to the local (directory) config file.
func LocalPath() string {
	return ".hgrep.yaml"
}

// GlobalPath returns ~/.config/hgrep/config.yaml (or $XDG_CONFIG_HOME equivalent).
func GlobalPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "hgrep", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "hgrep", "config.yaml")
}

// Load reads configuration: uses the local file if it exists, otherwise
// falls back to the global file. Returns a zero-value Config (not an
// error) when neither file exists.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return loadPath(LocalPath())
	}
	return loadPath(GlobalPath())
}

func loadPath(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w", path, err)
	}
	cfg.path = path
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the configuration back to the path it was loaded from,
// creating parent directories as needed. If it wasn't loaded from a path
// (the zero value), it saves to GlobalPath().
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		path = GlobalPath()
	}
	if path == "" {
		return errors.New("cannot determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
