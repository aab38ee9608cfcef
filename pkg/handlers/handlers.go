// Package handlers provides the request and response plumbing shared by the
// HTTP handlers: JSON body decoding and the service's response envelopes.
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// errorEnvelope is the error body shape every endpoint returns.
type errorEnvelope struct {
	Error string `json:"error"`
}

// DecodeJSON decodes a JSON request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// RespondJSON writes data as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs the error and writes it in the error envelope.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logger.Error("handler error", "error", err, "status", status)
	RespondJSON(w, status, errorEnvelope{Error: err.Error()})
}
