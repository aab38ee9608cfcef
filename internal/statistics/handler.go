package statistics

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/kestrelworks/redline/pkg/handlers"
	"github.com/kestrelworks/redline/pkg/pagination"
	"github.com/kestrelworks/redline/pkg/routes"
)

// Handler provides HTTP endpoints for document history and statistics.
type Handler struct {
	agg        *Aggregator
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a statistics handler.
func NewHandler(agg *Aggregator, logger *slog.Logger, cfg pagination.Config) *Handler {
	return &Handler{
		agg:        agg,
		logger:     logger.With("handler", "statistics"),
		pagination: cfg,
	}
}

// Routes returns the statistics endpoint route group.
func (h *Handler) Routes() []routes.Group {
	return []routes.Group{
		{
			Prefix:      "/documents",
			Description: "Document history and statistics",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "/{documentId}/versions", Handler: h.History},
				{Method: "GET", Pattern: "/{documentId}/differences", Handler: h.Differences},
				{Method: "GET", Pattern: "/{documentId}/statistics", Handler: h.Statistics},
			},
		},
	}
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	documentID, err := uuid.Parse(r.PathValue("documentId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	includeAnalysis, _ := strconv.ParseBool(r.URL.Query().Get("include_analysis"))
	opts := HistoryOptions{
		Page:            pagination.PageRequestFromQuery(r.URL.Query(), h.pagination),
		IncludeAnalysis: includeAnalysis,
	}

	history, err := h.agg.VersionHistory(r.Context(), documentID, opts)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, history)
}

func (h *Handler) Differences(w http.ResponseWriter, r *http.Request) {
	documentID, err := uuid.Parse(r.PathValue("documentId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	diffs, err := h.agg.VersionDifferences(r.Context(), documentID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, diffs)
}

func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	documentID, err := uuid.Parse(r.PathValue("documentId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	stats, err := h.agg.VersionStatistics(r.Context(), documentID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}
