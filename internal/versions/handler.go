package versions

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/kestrelworks/redline/internal/metrics"
	"github.com/kestrelworks/redline/pkg/handlers"
	"github.com/kestrelworks/redline/pkg/routes"
)

// CreateRequest is the payload for creating a version. Extracted text and
// metadata arrive from the extraction service; analysis is optional and
// opaque beyond its risk score.
type CreateRequest struct {
	Filename        string     `json:"filename"`
	Metadata        Metadata   `json:"metadata"`
	Analysis        *Analysis  `json:"analysis,omitempty"`
	ParentVersionID *uuid.UUID `json:"parent_version_id,omitempty"`
}

// RollbackRequest is the payload for rolling a document back to an earlier version.
type RollbackRequest struct {
	TargetVersionID uuid.UUID `json:"target_version_id"`
	Filename        string    `json:"filename"`
}

// Handler provides HTTP endpoints for version operations.
type Handler struct {
	sys     System
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewHandler creates a version handler.
func NewHandler(sys System, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		sys:     sys,
		logger:  logger.With("handler", "versions"),
		metrics: m,
	}
}

// Routes returns the version endpoint route groups.
func (h *Handler) Routes() []routes.Group {
	return []routes.Group{
		{
			Prefix:      "/documents",
			Description: "Document version lineage",
			Routes: []routes.Route{
				{Method: "POST", Pattern: "/{documentId}/versions", Handler: h.Create},
				{Method: "GET", Pattern: "/{documentId}/versions/latest", Handler: h.Latest},
				{Method: "POST", Pattern: "/{documentId}/rollback", Handler: h.Rollback},
			},
		},
		{
			Prefix:      "/versions",
			Description: "Version lookup",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			},
		},
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	documentID, err := uuid.Parse(r.PathValue("documentId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var req CreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if req.Filename == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("filename required"))
		return
	}

	ver, err := h.sys.Create(r.Context(), CreateCommand{
		DocumentID:      documentID,
		Filename:        req.Filename,
		Metadata:        req.Metadata,
		Analysis:        req.Analysis,
		ParentVersionID: req.ParentVersionID,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.metrics.VersionsCreated.Inc()
	handlers.RespondJSON(w, http.StatusCreated, ver)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	ver, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ver)
}

func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	documentID, err := uuid.Parse(r.PathValue("documentId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	ver, err := h.sys.Latest(r.Context(), documentID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ver)
}

func (h *Handler) Rollback(w http.ResponseWriter, r *http.Request) {
	documentID, err := uuid.Parse(r.PathValue("documentId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var req RollbackRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if req.Filename == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("filename required"))
		return
	}

	ver, err := h.sys.Rollback(r.Context(), documentID, req.TargetVersionID, req.Filename)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.metrics.VersionsCreated.Inc()
	handlers.RespondJSON(w, http.StatusCreated, ver)
}
