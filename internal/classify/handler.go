package classify

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Tanmay1202/EnviRon/internal/facilities"
	"github.com/Tanmay1202/EnviRon/pkg/handlers"
	"github.com/Tanmay1202/EnviRon/pkg/routes"
)

// Handler provides the HTTP endpoint for waste classification.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// ClassifyRequest is the wire format for a classification call.
type ClassifyRequest struct {
	ImageBase64  string             `json:"imageBase64"`
	UserID       string             `json:"userId"`
	UserLocation *facilities.LatLng `json:"userLocation,omitempty"`
}

// ClassifyResponse is the wire format for a classification result.
type ClassifyResponse struct {
	Labels       []string              `json:"labels"`
	WasteType    string                `json:"wasteType"`
	Locations    []facilities.Facility `json:"locations"`
	Instructions string                `json:"instructions"`
	Tip          string                `json:"tip"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "classify"),
	}
}

// Routes returns the route group definition for classification endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/classify-waste",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Classify},
		},
	}
}

// Classify decodes a ClassifyRequest, runs the pipeline, and responds with
// the composed result.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if req.ImageBase64 == "" || req.UserID == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			fmt.Errorf("imageBase64 and userId are required"))
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidImage)
		return
	}

	result, err := h.sys.Classify(r.Context(), Request{
		Image:    image,
		UserID:   req.UserID,
		Location: req.UserLocation,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ClassifyResponse{
		Labels:       result.Labels,
		WasteType:    string(result.Category),
		Locations:    result.Facilities,
		Instructions: result.Instructions,
		Tip:          result.Tip,
	})
}
