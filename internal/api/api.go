// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Tanmay1202/EnviRon/internal/config"
	"github.com/Tanmay1202/EnviRon/internal/infrastructure"
	"github.com/Tanmay1202/EnviRon/pkg/middleware"
	"github.com/Tanmay1202/EnviRon/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(ctx context.Context, cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(maxUpload(cfg.API.MaxUploadSizeBytes()))

	if cfg.API.Auth.Enabled {
		verifier, err := middleware.NewOIDCVerifier(ctx, &cfg.API.Auth)
		if err != nil {
			return nil, fmt.Errorf("oidc verifier: %w", err)
		}
		m.Use(middleware.Auth(verifier, runtime.Logger))
	}

	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}

// maxUpload caps request body size so an oversized image fails the JSON
// decode instead of buffering unbounded input. The limit applies to the
// decoded image; the wire cap doubles it to cover base64 and JSON framing.
func maxUpload(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit*2)
			next.ServeHTTP(w, r)
		})
	}
}
