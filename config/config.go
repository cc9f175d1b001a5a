// Package config holds catalog-sync configuration and the loaders for
// the alias table and exemption list.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds catalog sync configuration.
type Config struct {
	SourceURL string
	TargetURL string

	AliasFile     string
	ExemptionFile string

	PageSize      int           // offset-pagination step
	MaxPages      int           // safety ceiling per traversal
	PageDelay     time.Duration // fixed inter-page delay
	NavTimeout    time.Duration
	SettleTimeout time.Duration
	Timeout       time.Duration // per-request HTTP timeout

	OutputFile   string
	OutputFormat string // csv, json, or dual
	UserAgent    string
	MetricsAddr  string
	Verbose      bool
}

// DefaultConfig returns conservative defaults for both listings.
func DefaultConfig() *Config {
	return &Config{
		PageSize:      24,
		MaxPages:      50,
		PageDelay:     2 * time.Second,
		NavTimeout:    10 * time.Second,
		SettleTimeout: 5 * time.Second,
		Timeout:       10 * time.Second,
		OutputFile:    "output/diff.csv",
		OutputFormat:  "csv",
		UserAgent:     "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36",
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if err := validateListingURL("source URL", c.SourceURL); err != nil {
		return err
	}
	if err := validateListingURL("target URL", c.TargetURL); err != nil {
		return err
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive")
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("max pages must be positive")
	}
	if c.PageDelay < 0 {
		return fmt.Errorf("page delay cannot be negative")
	}
	if c.NavTimeout <= 0 {
		return fmt.Errorf("navigation timeout must be positive")
	}
	if c.SettleTimeout <= 0 {
		return fmt.Errorf("settle timeout must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if c.OutputFormat != "csv" && c.OutputFormat != "json" && c.OutputFormat != "dual" {
		return fmt.Errorf("output format must be csv, json, or dual")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	return nil
}

func validateListingURL(name, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host", name)
	}
	return nil
}

// EnvString returns the named environment variable and whether it is set.
func EnvString(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// EnvInt parses the named environment variable as an integer.
func EnvInt(key string) (int, bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, true, nil
}
