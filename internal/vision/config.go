package vision

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds Vision API connection and retry parameters.
type Config struct {
	APIKey            string `toml:"api_key"`
	Endpoint          string `toml:"endpoint"`
	MaxResults        int    `toml:"max_results"`
	MaxRetries        int    `toml:"max_retries"`
	BaseDelay         string `toml:"base_delay"`
	PerAttemptTimeout string `toml:"per_attempt_timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	APIKey            string
	Endpoint          string
	MaxResults        string
	MaxRetries        string
	BaseDelay         string
	PerAttemptTimeout string
}

// BaseDelayDuration returns BaseDelay as a time.Duration.
func (c *Config) BaseDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.BaseDelay)
	return d
}

// PerAttemptTimeoutDuration returns PerAttemptTimeout as a time.Duration.
func (c *Config) PerAttemptTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.PerAttemptTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.MaxResults != 0 {
		c.MaxResults = overlay.MaxResults
	}
	if overlay.MaxRetries != 0 {
		c.MaxRetries = overlay.MaxRetries
	}
	if overlay.BaseDelay != "" {
		c.BaseDelay = overlay.BaseDelay
	}
	if overlay.PerAttemptTimeout != "" {
		c.PerAttemptTimeout = overlay.PerAttemptTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.MaxResults == 0 {
		c.MaxResults = 10
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.BaseDelay == "" {
		c.BaseDelay = "1s"
	}
	if c.PerAttemptTimeout == "" {
		c.PerAttemptTimeout = "20s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.APIKey != "" {
		if v := os.Getenv(env.APIKey); v != "" {
			c.APIKey = v
		}
	}
	if env.Endpoint != "" {
		if v := os.Getenv(env.Endpoint); v != "" {
			c.Endpoint = v
		}
	}
	if env.MaxResults != "" {
		if v := os.Getenv(env.MaxResults); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxResults = n
			}
		}
	}
	if env.MaxRetries != "" {
		if v := os.Getenv(env.MaxRetries); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxRetries = n
			}
		}
	}
	if env.BaseDelay != "" {
		if v := os.Getenv(env.BaseDelay); v != "" {
			c.BaseDelay = v
		}
	}
	if env.PerAttemptTimeout != "" {
		if v := os.Getenv(env.PerAttemptTimeout); v != "" {
			c.PerAttemptTimeout = v
		}
	}
}

func (c *Config) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key required")
	}
	if _, err := time.ParseDuration(c.BaseDelay); err != nil {
		return fmt.Errorf("invalid base_delay: %w", err)
	}
	if _, err := time.ParseDuration(c.PerAttemptTimeout); err != nil {
		return fmt.Errorf("invalid per_attempt_timeout: %w", err)
	}
	return nil
}
