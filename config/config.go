// Package config loads the rentab settings: a TOML file for the preferences,
// the environment (optionally a .env file) for the API keys.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables holding secrets.
const (
	EnvEODHDKey        = "EODHD_API_KEY"
	EnvAlphaVantageKey = "ALPHAVANTAGE_API_KEY"
	EnvGeminiKey       = "GEMINI_API_KEY"
)

// Price providers.
const (
	ProviderAlphaVantage = "alphavantage"
	ProviderEODHD        = "eodhd"
)

// DefaultPath is the configuration file read when none is given.
const DefaultPath = "rentab.toml"

// Config holds the rentab settings.
type Config struct {
	Ledger   string `toml:"ledger"`
	Currency string `toml:"currency"`
	Locale   string `toml:"locale"`
	Figures  string `toml:"figures"`

	Prices struct {
		Provider string `toml:"provider"`
		// Cache is the SQLite price store, empty to disable it.
		Cache  string `toml:"cache"`
		Suffix string `toml:"suffix"`
	} `toml:"prices"`

	// Secrets, from the environment only.
	EODHDKey        string `toml:"-"`
	AlphaVantageKey string `toml:"-"`
	GeminiKey       string `toml:"-"`
}

// Load reads the configuration file at path. A missing file yields the defaults.
// API keys are read from the environment, after loading a .env file if present.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Prices.Cache = defaultCache
	md, err := toml.DecodeFile(path, cfg)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not read config %q: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in config %q: %v", path, undecoded)
	}
	applyDefaults(cfg)
	if err := loadEnv(cfg); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

const defaultCache = ".rentab/prices.db"

func applyDefaults(cfg *Config) {
	if cfg.Ledger == "" {
		cfg.Ledger = "portfolio.csv"
	}
	if cfg.Currency == "" {
		cfg.Currency = "BRL"
	}
	if cfg.Locale == "" {
		cfg.Locale = "pt"
	}
	if cfg.Figures == "" {
		cfg.Figures = "Figures"
	}
	if cfg.Prices.Provider == "" {
		cfg.Prices.Provider = ProviderAlphaVantage
	}
}

// loadEnv reads the secrets. A .env file in the working directory, if any,
// completes the environment without overriding it.
func loadEnv(cfg *Config) error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("could not read .env: %w", err)
		}
	}
	cfg.EODHDKey = os.Getenv(EnvEODHDKey)
	cfg.AlphaVantageKey = os.Getenv(EnvAlphaVantageKey)
	cfg.GeminiKey = os.Getenv(EnvGeminiKey)
	return nil
}

func validate(cfg *Config) error {
	cfg.Currency = strings.ToUpper(strings.TrimSpace(cfg.Currency))
	cfg.Prices.Provider = strings.ToLower(strings.TrimSpace(cfg.Prices.Provider))
	switch cfg.Prices.Provider {
	case ProviderAlphaVantage, ProviderEODHD:
	default:
		return fmt.Errorf("prices.provider %q want %q or %q", cfg.Prices.Provider, ProviderAlphaVantage, ProviderEODHD)
	}
	if len(cfg.Currency) != 3 {
		return fmt.Errorf("currency %q is not an ISO 4217 code", cfg.Currency)
	}
	return nil
}

// APIKey returns the key of the configured price provider.
func (c *Config) APIKey() string {
	if c.Prices.Provider == ProviderEODHD {
		return c.EODHDKey
	}
	return c.AlphaVantageKey
}
