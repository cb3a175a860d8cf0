package progress

import (
	"errors"
	"net/http"
)

// Domain errors for progress operations.
var (
	ErrUserNotFound = errors.New("user progress not found")
	ErrPersistence  = errors.New("progress update could not be committed")
)

// MapHTTPStatus maps progress domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUserNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
