// Package cache provides Redis connection management with lifecycle coordination.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Tanmay1202/EnviRon/pkg/lifecycle"
)

// System manages the Redis connection and lifecycle coordination.
// A nil-client system is valid and reports Enabled() == false.
type System interface {
	// Enabled reports whether a Redis connection is configured.
	Enabled() bool
	// Client returns the underlying Redis client, or nil when disabled.
	Client() *redis.Client
	// Start registers startup and shutdown hooks with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
}

type cache struct {
	rdb         *redis.Client
	logger      *slog.Logger
	pingTimeout time.Duration
}

// New creates a cache system with the given configuration. Parses the
// connection URL but does not dial until Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	scoped := logger.With("system", "cache")

	if !cfg.Enabled {
		return &cache{logger: scoped}, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	return &cache{
		rdb:         redis.NewClient(opts),
		logger:      scoped,
		pingTimeout: cfg.PingTimeoutDuration(),
	}, nil
}

func (c *cache) Enabled() bool {
	return c.rdb != nil
}

func (c *cache) Client() *redis.Client {
	return c.rdb
}

func (c *cache) Start(lc *lifecycle.Coordinator) error {
	if c.rdb == nil {
		c.logger.Info("cache disabled")
		return nil
	}

	c.logger.Info("starting cache connection")

	lc.OnStartup(func() {
		pingCtx, cancel := context.WithTimeout(lc.Context(), c.pingTimeout)
		defer cancel()

		if err := c.rdb.Ping(pingCtx).Err(); err != nil {
			c.logger.Error("cache ping failed", "error", err)
			return
		}

		c.logger.Info("cache connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()

		if err := c.rdb.Close(); err != nil {
			c.logger.Error("cache close failed", "error", err)
			return
		}

		c.logger.Info("cache connection closed")
	})

	return nil
}
