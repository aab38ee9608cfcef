package retention

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kestrelworks/redline/pkg/handlers"
	"github.com/kestrelworks/redline/pkg/routes"
)

// CleanupRequest sets the retention window for an on-demand cleanup.
type CleanupRequest struct {
	RetentionDays int `json:"retention_days"`
}

// Handler provides the HTTP endpoint for on-demand retention cleanup.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler creates a retention handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("handler", "retention"),
	}
}

// Routes returns the maintenance endpoint route group.
func (h *Handler) Routes() []routes.Group {
	return []routes.Group{
		{
			Prefix:      "/maintenance",
			Description: "Retention maintenance",
			Routes: []routes.Route{
				{Method: "POST", Pattern: "/cleanup", Handler: h.Cleanup},
			},
		},
	}
}

func (h *Handler) Cleanup(w http.ResponseWriter, r *http.Request) {
	var req CleanupRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if req.RetentionDays < 1 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			errors.New("retention_days must be positive"))
		return
	}

	result, err := h.service.Cleanup(r.Context(), req.RetentionDays)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
