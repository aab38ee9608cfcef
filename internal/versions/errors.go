package versions

import (
	"errors"
	"net/http"
)

// Domain errors for version operations.
var (
	ErrNotFound          = errors.New("version not found")
	ErrDuplicate         = errors.New("version number already exists for document")
	ErrDifferentDocument = errors.New("target version belongs to a different document")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrDifferentDocument) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
