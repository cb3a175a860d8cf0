package classify

import (
	"errors"
	"net/http"
)

// Domain errors for classification operations.
var (
	ErrInvalidImage      = errors.New("image is missing or not a decodable image")
	ErrMissingUser       = errors.New("user id is required")
	ErrVisionUnavailable = errors.New("image analysis is currently unavailable")
)

// MapHTTPStatus maps classification domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidImage) || errors.Is(err, ErrMissingUser) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
