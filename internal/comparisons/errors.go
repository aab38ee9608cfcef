package comparisons

import (
	"errors"
	"net/http"

	"github.com/kestrelworks/redline/internal/versions"
)

// Domain errors for comparison operations.
var (
	ErrNotFound  = errors.New("comparison not found")
	ErrDuplicate = errors.New("comparison already exists for version pair")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
// Missing versions surface through here since comparisons load both sides.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, versions.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
