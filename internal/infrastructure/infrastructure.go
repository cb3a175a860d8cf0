// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, cache, and the external
// vision and places capabilities) that domain systems require.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"github.com/Tanmay1202/EnviRon/internal/config"
	"github.com/Tanmay1202/EnviRon/internal/facilities"
	"github.com/Tanmay1202/EnviRon/internal/vision"
	"github.com/Tanmay1202/EnviRon/pkg/cache"
	"github.com/Tanmay1202/EnviRon/pkg/database"
	"github.com/Tanmay1202/EnviRon/pkg/lifecycle"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, database access, caching, and the external capabilities.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Cache     cache.System
	Detector  vision.Detector
	Locator   facilities.Locator
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(ctx context.Context, cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		TimeFormat: time.Kitchen,
	}))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	rdb, err := cache.New(&cfg.Cache, logger)
	if err != nil {
		return nil, fmt.Errorf("cache init failed: %w", err)
	}

	detector, err := vision.NewGoogleDetector(ctx, &cfg.Vision, logger)
	if err != nil {
		return nil, fmt.Errorf("vision init failed: %w", err)
	}

	locator, err := facilities.NewPlacesLocator(&cfg.Places, logger)
	if err != nil {
		return nil, fmt.Errorf("places init failed: %w", err)
	}

	if rdb.Enabled() {
		locator = facilities.WithCache(locator, rdb.Client(), cfg.Places.CacheTTLDuration(), logger)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Cache:     rdb,
		Detector:  detector,
		Locator:   locator,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// Database and cache hooks are registered for startup and shutdown coordination.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Cache.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("cache start failed: %w", err)
	}
	return nil
}

// Probe verifies the external dependencies concurrently: the database pool,
// the vision capability, and the cache when enabled. Used by the readiness
// endpoint; any failure reports the service not ready.
func (i *Infrastructure) Probe(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := i.Database.Connection().PingContext(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := i.Detector.Probe(ctx); err != nil {
			return fmt.Errorf("vision: %w", err)
		}
		return nil
	})

	if i.Cache.Enabled() {
		g.Go(func() error {
			if err := i.Cache.Client().Ping(ctx).Err(); err != nil {
				return fmt.Errorf("cache: %w", err)
			}
			return nil
		})
	}

	return g.Wait()
}
