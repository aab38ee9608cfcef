package versions_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/kestrelworks/redline/internal/versions"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", versions.ErrNotFound, http.StatusNotFound},
		{"duplicate", versions.ErrDuplicate, http.StatusConflict},
		{"different document", versions.ErrDifferentDocument, http.StatusUnprocessableEntity},
		{"wrapped not found", fmt.Errorf("lookup: %w", versions.ErrNotFound), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := versions.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
