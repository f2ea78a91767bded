package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mechmind-dwv/mcalc/internal/calculator"
)

const (
	DefaultVersion = 1
	DefaultFormat  = FormatText

	// EnvPath overrides the default config location.
	EnvPath = "MCALC_CONFIG"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config defines user configuration stored in config.json.
type Config struct {
	Version int             `json:"version"`
	Mode    calculator.Mode `json:"mode,omitempty"`
	Format  string          `json:"format,omitempty"`

	// Checked reports integer overflow as an error (default false).
	Checked *bool `json:"checked,omitempty"`

	// Color enables styled terminal output (default true).
	Color *bool `json:"color,omitempty"`
}

// IsChecked returns whether overflow checking is enabled (default false).
func (c Config) IsChecked() bool {
	if c.Checked == nil {
		return false
	}
	return *c.Checked
}

// UseColor returns whether styled output is enabled (default true).
func (c Config) UseColor() bool {
	if c.Color == nil {
		return true
	}
	return *c.Color
}

// Default returns the default config.
func Default() Config {
	return Config{
		Version: DefaultVersion,
		Mode:    calculator.ModeAuto,
		Format:  DefaultFormat,
	}
}

// DefaultPath returns the config location: $MCALC_CONFIG if set, otherwise
// mcalc/config.json under the user config directory.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "mcalc", "config.json"), nil
}

// Load reads config from disk and applies defaults for zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config not found: %w", err)
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return parse(data)
}

// LoadOrDefault reads config from disk, returning defaults if file doesn't exist.
func LoadOrDefault(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = DefaultVersion
	}
	if c.Mode == "" {
		c.Mode = calculator.ModeAuto
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
}

// Save writes a config to disk, creating the parent directory if needed.
func Save(path string, cfg Config) error {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// Validate ensures config values are within supported ranges.
func (c Config) Validate() error {
	if c.Version != DefaultVersion {
		return fmt.Errorf("unsupported config version: %d", c.Version)
	}
	switch c.Mode {
	case calculator.ModeAuto, calculator.ModeInt, calculator.ModeFloat:
	default:
		return fmt.Errorf("mode must be one of %v, got %q", calculator.Modes, c.Mode)
	}
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("format must be %q or %q, got %q", FormatText, FormatJSON, c.Format)
	}
	return nil
}
