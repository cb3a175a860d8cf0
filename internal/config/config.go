package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/Tanmay1202/EnviRon/internal/facilities"
	"github.com/Tanmay1202/EnviRon/internal/vision"
	"github.com/Tanmay1202/EnviRon/pkg/cache"
	"github.com/Tanmay1202/EnviRon/pkg/database"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvEnvironEnv             = "ENVIRON_ENV"
	EnvEnvironShutdownTimeout = "ENVIRON_SHUTDOWN_TIMEOUT"
	EnvEnvironVersion         = "ENVIRON_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "ENVIRON_DB_HOST",
	Port:            "ENVIRON_DB_PORT",
	Name:            "ENVIRON_DB_NAME",
	User:            "ENVIRON_DB_USER",
	Password:        "ENVIRON_DB_PASSWORD",
	SSLMode:         "ENVIRON_DB_SSL_MODE",
	MaxOpenConns:    "ENVIRON_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "ENVIRON_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "ENVIRON_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "ENVIRON_DB_CONN_TIMEOUT",
}

var cacheEnv = &cache.Env{
	Enabled:     "ENVIRON_CACHE_ENABLED",
	URL:         "ENVIRON_CACHE_URL",
	Password:    "ENVIRON_CACHE_PASSWORD",
	PingTimeout: "ENVIRON_CACHE_PING_TIMEOUT",
}

var visionEnv = &vision.Env{
	APIKey:            "ENVIRON_VISION_API_KEY",
	Endpoint:          "ENVIRON_VISION_ENDPOINT",
	MaxResults:        "ENVIRON_VISION_MAX_RESULTS",
	MaxRetries:        "ENVIRON_VISION_MAX_RETRIES",
	BaseDelay:         "ENVIRON_VISION_BASE_DELAY",
	PerAttemptTimeout: "ENVIRON_VISION_PER_ATTEMPT_TIMEOUT",
}

var placesEnv = &facilities.Env{
	APIKey:       "ENVIRON_PLACES_API_KEY",
	RadiusMeters: "ENVIRON_PLACES_RADIUS_METERS",
	MaxResults:   "ENVIRON_PLACES_MAX_RESULTS",
	CacheTTL:     "ENVIRON_PLACES_CACHE_TTL",
}

// Config is the root configuration for the EnviRon service.
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Database        database.Config   `toml:"database"`
	Cache           cache.Config      `toml:"cache"`
	Vision          vision.Config     `toml:"vision"`
	Places          facilities.Config `toml:"places"`
	API             APIConfig         `toml:"api"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
	Version         string            `toml:"version"`
}

// Env returns the ENVIRON_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvEnvironEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Cache.Merge(&overlay.Cache)
	c.Vision.Merge(&overlay.Vision)
	c.Places.Merge(&overlay.Places)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Cache.Finalize(cacheEnv); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.Vision.Finalize(visionEnv); err != nil {
		return fmt.Errorf("vision: %w", err)
	}
	if err := c.Places.Finalize(placesEnv); err != nil {
		return fmt.Errorf("places: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvEnvironShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvEnvironVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvEnvironEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
