package progress

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Tanmay1202/EnviRon/pkg/handlers"
	"github.com/Tanmay1202/EnviRon/pkg/pagination"
	"github.com/Tanmay1202/EnviRon/pkg/routes"
)

// Handler provides HTTP endpoints for progress operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "progress"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for progress endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/progress",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/classifications", Handler: h.Record},
			{Method: "GET", Pattern: "/{userId}", Handler: h.Find},
			{Method: "GET", Pattern: "/{userId}/history", Handler: h.History},
		},
	}
}

// Record appends a classification event decoded from a RecordCommand JSON body.
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var cmd RecordCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if cmd.UserID == "" || cmd.Category == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			fmt.Errorf("userId and category are required"))
		return
	}

	result, err := h.sys.Record(r.Context(), cmd.UserID, cmd.Category)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a user's cumulative progress by the userId path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	p, err := h.sys.Find(r.Context(), userID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

// History returns a paginated list of the user's classification events.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.History(r.Context(), userID, page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
