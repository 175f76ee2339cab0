// Package config loads and saves the fundcagr TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/fundcagr/internal/amfi"
	"github.com/theirongolddev/fundcagr/internal/mfapi"
)

// Environment variables that take precedence over the config file.
const (
	EnvMFAPIURL = "FUNDCAGR_MFAPI_URL"
	EnvScheme   = "FUNDCAGR_SCHEME"
	EnvAddr     = "FUNDCAGR_ADDR"
)

// DefaultAddr is the web calculator's listen address.
const DefaultAddr = "127.0.0.1:5000"

// Config holds all fundcagr configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	MFAPI      MFAPIConfig      `toml:"mfapi"`
	AMFI       AMFIConfig       `toml:"amfi"`
	Server     ServerConfig     `toml:"server"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultScheme string `toml:"default_scheme,omitempty"`
}

// MFAPIConfig holds mfapi.in settings.
type MFAPIConfig struct {
	BaseURL    string `toml:"base_url"`
	TimeoutSec int    `toml:"timeout_sec"`
}

// AMFIConfig holds the NAV dump location.
type AMFIConfig struct {
	NAVAllURL string `toml:"navall_url"`
}

// ServerConfig holds web calculator settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MFAPI: MFAPIConfig{
			BaseURL:    mfapi.DefaultBaseURL,
			TimeoutSec: int(mfapi.DefaultTimeout.Seconds()),
		},
		AMFI: AMFIConfig{
			NAVAllURL: amfi.DefaultURL,
		},
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fundcagr")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fundcagr")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// MFAPIBaseURL returns the mfapi endpoint from env var or config, in that order.
func MFAPIBaseURL(cfg Config) string {
	if v := strings.TrimSpace(os.Getenv(EnvMFAPIURL)); v != "" {
		return v
	}
	return cfg.MFAPI.BaseURL
}

// DefaultScheme returns the scheme code used when none is given.
func DefaultScheme(cfg Config) string {
	if v := strings.TrimSpace(os.Getenv(EnvScheme)); v != "" {
		return v
	}
	return cfg.General.DefaultScheme
}

// ServerAddr returns the listen address from env var or config.
func ServerAddr(cfg Config) string {
	if v := strings.TrimSpace(os.Getenv(EnvAddr)); v != "" {
		return v
	}
	if cfg.Server.Addr == "" {
		return DefaultAddr
	}
	return cfg.Server.Addr
}
