package api

import (
	"net/http"

	"github.com/Tanmay1202/EnviRon/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Classify.Handler().Routes(),
		domain.Progress.Handler().Routes(),
	)
}
