// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Environment variables read by FromEnv.
const (
	EnvAPIURL      = "FREELANCE_API_URL"
	EnvDatabaseURL = "DATABASE_URL"
	EnvCurrency    = "FREELANCE_CURRENCY"
	EnvOutputDir   = "FREELANCE_OUTPUT_DIR"
	EnvLayoutsDir  = "FREELANCE_LAYOUTS_DIR"
	EnvTimeout     = "FREELANCE_TIMEOUT_SECONDS"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Remote store
	APIBaseURL     string `json:"api_base_url,omitempty"`                                // Deployment URL of the remote API
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" validate:"omitempty,gte=0"` // Per-request timeout

	// Documents
	DefaultCurrency   string `json:"default_currency,omitempty" validate:"omitempty,len=3,alpha"` // Used when settings carry none
	OutputDir         string `json:"output_dir,omitempty"`                                        // Where render writes files
	LayoutsDir        string `json:"layouts_dir,omitempty"`                                       // Replaces the embedded layouts
	PDFTimeoutSeconds int    `json:"pdf_timeout_seconds,omitempty" validate:"omitempty,gte=0"`    // Headless print timeout

	// Archive and preview
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	ServeAddr   string `json:"serve_addr,omitempty"`   // Preview server listen address

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		TimeoutSeconds:    30,
		DefaultCurrency:   "IDR",
		OutputDir:         ".",
		PDFTimeoutSeconds: 30,
		ServeAddr:         "127.0.0.1:8080",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads configuration from environment variables. Unset variables
// leave fields empty.
func FromEnv() Config {
	cfg := Config{
		APIBaseURL:      strings.TrimSpace(os.Getenv(EnvAPIURL)),
		DatabaseURL:     strings.TrimSpace(os.Getenv(EnvDatabaseURL)),
		DefaultCurrency: strings.ToUpper(strings.TrimSpace(os.Getenv(EnvCurrency))),
		OutputDir:       strings.TrimSpace(os.Getenv(EnvOutputDir)),
		LayoutsDir:      strings.TrimSpace(os.Getenv(EnvLayoutsDir)),
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = n
		}
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by the commands that need them.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.APIBaseURL != "" {
		u, err := url.Parse(c.APIBaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config error: 'api_base_url' must be an http(s) URL: %s", c.APIBaseURL)
		}
	}

	if c.LayoutsDir != "" {
		if _, err := os.Stat(c.LayoutsDir); os.IsNotExist(err) {
			return fmt.Errorf("config error: layouts directory not found: %s", c.LayoutsDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer flags over state, environment and file values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIBaseURL == "" {
		result.APIBaseURL = defaults.APIBaseURL
	}
	if result.DefaultCurrency == "" {
		result.DefaultCurrency = defaults.DefaultCurrency
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.LayoutsDir == "" {
		result.LayoutsDir = defaults.LayoutsDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ServeAddr == "" {
		result.ServeAddr = defaults.ServeAddr
	}

	// Int fields: use default if zero
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.PDFTimeoutSeconds == 0 {
		result.PDFTimeoutSeconds = defaults.PDFTimeoutSeconds
	}

	// Bool fields: true in any layer wins
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// Resolve layers configurations, highest precedence first.
func Resolve(layers ...Config) Config {
	var result Config
	for _, layer := range layers {
		result = result.MergeWithDefaults(layer)
	}
	return result
}

// Timeout returns the request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PDFTimeout returns the headless print timeout.
func (c *Config) PDFTimeout() time.Duration {
	return time.Duration(c.PDFTimeoutSeconds) * time.Second
}
