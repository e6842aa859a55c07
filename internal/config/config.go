// Package config provides configuration management for the gaceta pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingBaseURL           = errors.New("gaceta.base_url is required")
	ErrInvalidPages             = errors.New("gaceta.pages must be at least 1")
	ErrInvalidWorkers           = errors.New("gaceta.workers must be at least 1")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrMissingDataDir           = errors.New("dirs.data is required")
	ErrInvalidExportFormat      = errors.New("export.format must be 'json', 'csv' or 'both'")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config is the complete pipeline configuration.
type Config struct {
	Gaceta  GacetaConfig  `yaml:"gaceta"`
	Retry   RetryPolicy   `yaml:"retry"`
	Dirs    DirsConfig    `yaml:"dirs"`
	Export  ExportConfig  `yaml:"export"`
	Store   StoreConfig   `yaml:"store"`
	Browser BrowserConfig `yaml:"browser"`
	Logging LoggingConfig `yaml:"logging"`
}

// GacetaConfig describes the gazette site and crawl bounds.
type GacetaConfig struct {
	BaseURL        string `yaml:"base_url"`
	ListingPath    string `yaml:"listing_path"`
	Pages          int    `yaml:"pages"`
	Limit          int    `yaml:"limit"`
	Workers        int    `yaml:"workers"`
	RequestDelayMs int    `yaml:"request_delay_ms"`
	UserAgent      string `yaml:"user_agent"`
	DownloadPDFs   bool   `yaml:"download_pdfs"`
}

// ListingURL joins the base URL and listing path.
func (g *GacetaConfig) ListingURL() string {
	if g.ListingPath == "" {
		return g.BaseURL
	}

	return g.BaseURL + g.ListingPath
}

// RetryPolicy defines retry behavior for HTTP requests.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// DirsConfig defines where downloaded and derived files live.
type DirsConfig struct {
	Data    string `yaml:"data"`
	PDFs    string `yaml:"pdfs"`
	Text    string `yaml:"text"`
	Exports string `yaml:"exports"`
}

// ExportConfig defines export behavior.
type ExportConfig struct {
	Format      string `yaml:"format"`
	PrettyPrint bool   `yaml:"pretty_print"`
	IncludeText bool   `yaml:"include_text"`
}

// StoreConfig defines the SQLite document store.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// BrowserConfig defines the optional headless-browser fetch mode.
type BrowserConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Headless   bool   `yaml:"headless"`
	ControlURL string `yaml:"control_url"`
	WaitMs     int    `yaml:"wait_ms"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration with sensible defaults, used when no
// config file is given.
func Default() *Config {
	cfg := &Config{
		Gaceta: GacetaConfig{
			BaseURL:      "https://www.gacetaoficialdebolivia.gob.bo",
			ListingPath:  "/normas/buscar",
			DownloadPDFs: true,
		},
	}
	cfg.applyDefaults()

	return cfg
}

func (c *Config) applyDefaults() {
	if c.Gaceta.Pages == 0 {
		c.Gaceta.Pages = 1
	}

	if c.Gaceta.Workers == 0 {
		c.Gaceta.Workers = 4
	}

	if c.Gaceta.RequestDelayMs == 0 {
		c.Gaceta.RequestDelayMs = 1000
	}

	if c.Gaceta.UserAgent == "" {
		c.Gaceta.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}

	if c.Retry.MaxAttempts == 0 {
		c.Retry = RetryPolicy{
			MaxAttempts:       3,
			InitialDelayMs:    500,
			MaxDelayMs:        30000,
			BackoffMultiplier: 2.0,
			TimeoutSec:        30,
		}
	}

	if c.Dirs.Data == "" {
		c.Dirs.Data = "data"
	}

	if c.Dirs.PDFs == "" {
		c.Dirs.PDFs = filepath.Join(c.Dirs.Data, "pdfs")
	}

	if c.Dirs.Text == "" {
		c.Dirs.Text = filepath.Join(c.Dirs.Data, "text")
	}

	if c.Dirs.Exports == "" {
		c.Dirs.Exports = "exports"
	}

	if c.Export.Format == "" {
		c.Export.Format = "both"
	}

	if c.Store.Path == "" {
		c.Store.Path = filepath.Join(c.Dirs.Data, "gacetabo.db")
	}

	if c.Browser.WaitMs == 0 {
		c.Browser.WaitMs = 2000
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Gaceta.BaseURL == "" {
		return ErrMissingBaseURL
	}

	if c.Gaceta.Pages < 1 {
		return ErrInvalidPages
	}

	if c.Gaceta.Workers < 1 {
		return ErrInvalidWorkers
	}

	if c.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Dirs.Data == "" {
		return ErrMissingDataDir
	}

	switch c.Export.Format {
	case "json", "csv", "both":
	default:
		return ErrInvalidExportFormat
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the per-request timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// RequestDelay returns the pause between listing requests.
func (g *GacetaConfig) RequestDelay() time.Duration {
	return time.Duration(g.RequestDelayMs) * time.Millisecond
}

// String returns a short description of the config.
func (c *Config) String() string {
	return fmt.Sprintf("Config{BaseURL: %s, Pages: %d, Workers: %d, MaxAttempts: %d}",
		c.Gaceta.BaseURL, c.Gaceta.Pages, c.Gaceta.Workers, c.Retry.MaxAttempts)
}
