package cache

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds Redis connection parameters. When disabled, the service runs
// without a cache and lookups always hit the upstream.
type Config struct {
	Enabled     bool   `toml:"enabled"`
	URL         string `toml:"url"`
	Password    string `toml:"password"`
	PingTimeout string `toml:"ping_timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Enabled     string
	URL         string
	Password    string
	PingTimeout string
}

// PingTimeoutDuration returns PingTimeout as a time.Duration.
func (c *Config) PingTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.PingTimeout)
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

// Merge overwrites non-zero fields from overlay. Enabled always applies.
func (c *Config) Merge(overlay *Config) {
	c.Enabled = overlay.Enabled

	if overlay.URL != "" {
		c.URL = overlay.URL
	}
	if overlay.Password != "" {
		c.Password = overlay.Password
	}
	if overlay.PingTimeout != "" {
		c.PingTimeout = overlay.PingTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.URL == "" {
		c.URL = "redis://localhost:6379/0"
	}
	if c.PingTimeout == "" {
		c.PingTimeout = "5s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Enabled != "" {
		if v := os.Getenv(env.Enabled); v != "" {
			if enabled, err := strconv.ParseBool(v); err == nil {
				c.Enabled = enabled
			}
		}
	}
	if env.URL != "" {
		if v := os.Getenv(env.URL); v != "" {
			c.URL = v
		}
	}
	if env.Password != "" {
		if v := os.Getenv(env.Password); v != "" {
			c.Password = v
		}
	}
	if env.PingTimeout != "" {
		if v := os.Getenv(env.PingTimeout); v != "" {
			c.PingTimeout = v
		}
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.PingTimeout); err != nil {
		return fmt.Errorf("invalid ping_timeout: %w", err)
	}
	return nil
}
