package api

import (
	"github.com/Tanmay1202/EnviRon/internal/config"
	"github.com/Tanmay1202/EnviRon/internal/infrastructure"
	"github.com/Tanmay1202/EnviRon/pkg/pagination"
	"github.com/Tanmay1202/EnviRon/pkg/retry"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Retry      retry.Options
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger and the retry
// policy applied to vision capability calls.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Cache:     infra.Cache,
			Detector:  infra.Detector,
			Locator:   infra.Locator,
		},
		Retry: retry.Options{
			MaxRetries:        cfg.Vision.MaxRetries,
			BaseDelay:         cfg.Vision.BaseDelayDuration(),
			PerAttemptTimeout: cfg.Vision.PerAttemptTimeoutDuration(),
		},
		Pagination: cfg.API.Pagination,
	}
}
