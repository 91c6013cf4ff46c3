package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pagemark/internal/contextutil"
	"pagemark/internal/highlight"
	"pagemark/internal/service"
)

// HighlightsHandler serves the management view.
type HighlightsHandler struct {
	highlights service.HighlightService
}

// NewHighlightsHandler creates a new HighlightsHandler.
func NewHighlightsHandler(highlights service.HighlightService) *HighlightsHandler {
	return &HighlightsHandler{highlights: highlights}
}

// DeleteResponse reports whether a record was removed.
type DeleteResponse struct {
	Removed bool `json:"removed"`
}

// ClearResponse reports how many records were removed.
type ClearResponse struct {
	Cleared int `json:"cleared"`
}

// SimilarResponse lists semantic search hits.
type SimilarResponse struct {
	Matches []highlight.Match `json:"matches"`
}

// APIKeyRequest carries the definition credential.
type APIKeyRequest struct {
	APIKey string `json:"apiKey"`
}

// List handles GET /api/highlights?q=.
func (h *HighlightsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	res, err := h.highlights.List(ctx, r.URL.Query().Get("q"))
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to load highlights")
		return
	}
	writeJSON(ctx, w, http.StatusOK, res)
}

// Delete handles DELETE /api/highlights/{id}.
func (h *HighlightsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	removed, err := h.highlights.Delete(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to delete highlight")
		return
	}
	writeJSON(ctx, w, http.StatusOK, DeleteResponse{Removed: removed})
}

// Clear handles DELETE /api/highlights.
func (h *HighlightsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	n, err := h.highlights.ClearAll(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to clear highlights")
		return
	}
	writeJSON(ctx, w, http.StatusOK, ClearResponse{Cleared: n})
}

// Export handles GET /api/highlights/export as a file download.
func (h *HighlightsHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	res, err := h.highlights.Export(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to export highlights")
		return
	}

	body, err := res.Document.MarshalIndent()
	if err != nil {
		logger.ErrorContext(ctx, "failed to encode export", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to encode export")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logger.WarnContext(ctx, "failed to write export", "error", err)
	}
}

// Similar handles GET /api/highlights/similar?q=&k=.
func (h *HighlightsHandler) Similar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	k := 0
	if raw := r.URL.Query().Get("k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid k")
			return
		}
		k = n
	}

	matches, err := h.highlights.Similar(ctx, r.URL.Query().Get("q"), k)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to search highlights")
		return
	}
	if matches == nil {
		matches = []highlight.Match{}
	}
	writeJSON(ctx, w, http.StatusOK, SimilarResponse{Matches: matches})
}

// SetAPIKey handles PUT /api/settings/api-key.
func (h *HighlightsHandler) SetAPIKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req APIKeyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.highlights.SetAPIKey(ctx, req.APIKey); err != nil {
		handleServiceError(ctx, w, err, "Failed to store API key")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
