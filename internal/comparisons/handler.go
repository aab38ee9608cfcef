package comparisons

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/kestrelworks/redline/pkg/handlers"
	"github.com/kestrelworks/redline/pkg/routes"
)

// CompareRequest names the ordered version pair to compare.
type CompareRequest struct {
	OriginalVersionID uuid.UUID `json:"original_version_id"`
	ComparedVersionID uuid.UUID `json:"compared_version_id"`
}

// Handler provides the HTTP endpoint for version comparison.
type Handler struct {
	comparer Comparer
	logger   *slog.Logger
}

// NewHandler creates a comparison handler.
func NewHandler(comparer Comparer, logger *slog.Logger) *Handler {
	return &Handler{
		comparer: comparer,
		logger:   logger.With("handler", "comparisons"),
	}
}

// Routes returns the comparison endpoint route group.
func (h *Handler) Routes() []routes.Group {
	return []routes.Group{
		{
			Prefix:      "/versions",
			Description: "Version comparison",
			Routes: []routes.Route{
				{Method: "POST", Pattern: "/compare", Handler: h.Compare},
			},
		},
	}
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if req.OriginalVersionID == uuid.Nil || req.ComparedVersionID == uuid.Nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			errors.New("original_version_id and compared_version_id required"))
		return
	}

	cmp, err := h.comparer.Compare(r.Context(), req.OriginalVersionID, req.ComparedVersionID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, cmp)
}
