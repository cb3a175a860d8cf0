package facilities

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds Places API search parameters and cache policy.
type Config struct {
	APIKey       string `toml:"api_key"`
	RadiusMeters int    `toml:"radius_meters"`
	MaxResults   int    `toml:"max_results"`
	CacheTTL     string `toml:"cache_ttl"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	APIKey       string
	RadiusMeters string
	MaxResults   string
	CacheTTL     string
}

// CacheTTLDuration returns CacheTTL as a time.Duration.
func (c *Config) CacheTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.CacheTTL)
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
	if overlay.RadiusMeters != 0 {
		c.RadiusMeters = overlay.RadiusMeters
	}
	if overlay.MaxResults != 0 {
		c.MaxResults = overlay.MaxResults
	}
	if overlay.CacheTTL != "" {
		c.CacheTTL = overlay.CacheTTL
	}
}

func (c *Config) loadDefaults() {
	if c.RadiusMeters == 0 {
		c.RadiusMeters = 5000
	}
	if c.MaxResults == 0 {
		c.MaxResults = 3
	}
	if c.CacheTTL == "" {
		c.CacheTTL = "10m"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.APIKey != "" {
		if v := os.Getenv(env.APIKey); v != "" {
			c.APIKey = v
		}
	}
	if env.RadiusMeters != "" {
		if v := os.Getenv(env.RadiusMeters); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.RadiusMeters = n
			}
		}
	}
	if env.MaxResults != "" {
		if v := os.Getenv(env.MaxResults); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxResults = n
			}
		}
	}
	if env.CacheTTL != "" {
		if v := os.Getenv(env.CacheTTL); v != "" {
			c.CacheTTL = v
		}
	}
}

func (c *Config) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key required")
	}
	if _, err := time.ParseDuration(c.CacheTTL); err != nil {
		return fmt.Errorf("invalid cache_ttl: %w", err)
	}
	return nil
}
