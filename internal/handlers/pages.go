package handlers

import (
	"net/http"

	"pagemark/internal/contextutil"
	"pagemark/internal/highlight"
	"pagemark/internal/service"
)

// PagesHandler runs the anchor engine over submitted pages.
type PagesHandler struct {
	pages service.PageService
}

// NewPagesHandler creates a new PagesHandler.
func NewPagesHandler(pages service.PageService) *PagesHandler {
	return &PagesHandler{pages: pages}
}

// PageRequest represents a submitted page. Quote is read by capture, ID by
// remove.
type PageRequest struct {
	URL     string `json:"url"`
	Content string `json:"content"`
	Format  string `json:"format,omitempty"`
	Quote   string `json:"quote,omitempty"`
	ID      string `json:"id,omitempty"`
}

// PageResponse carries the annotated document.
type PageResponse struct {
	Content  string            `json:"content"`
	Restored []string          `json:"restored"`
	Skipped  []string          `json:"skipped"`
	Record   *highlight.Record `json:"record,omitempty"`
	Removed  bool              `json:"removed,omitempty"`
}

// Restore handles POST /api/pages/restore.
func (h *PagesHandler) Restore(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	res, err := h.pages.Restore(r.Context(), req.page())
	h.respond(w, r, res, err)
}

// Capture handles POST /api/pages/capture.
func (h *PagesHandler) Capture(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	res, err := h.pages.Capture(r.Context(), service.CaptureRequest{PageRequest: req.page(), Quote: req.Quote})
	h.respond(w, r, res, err)
}

// Remove handles POST /api/pages/remove.
func (h *PagesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	res, err := h.pages.Remove(r.Context(), service.RemoveRequest{PageRequest: req.page(), ID: req.ID})
	h.respond(w, r, res, err)
}

func (h *PagesHandler) decode(w http.ResponseWriter, r *http.Request) (PageRequest, bool) {
	ctx := r.Context()
	var req PageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return req, false
	}
	return req, true
}

func (h *PagesHandler) respond(w http.ResponseWriter, r *http.Request, res service.PageResult, err error) {
	ctx := r.Context()
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to process page")
		return
	}

	resp := PageResponse{
		Content:  res.Content,
		Restored: res.Report.Restored,
		Skipped:  res.Report.Skipped,
		Record:   res.Record,
		Removed:  res.Removed,
	}
	if resp.Restored == nil {
		resp.Restored = []string{}
	}
	if resp.Skipped == nil {
		resp.Skipped = []string{}
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

func (req PageRequest) page() service.PageRequest {
	return service.PageRequest{URL: req.URL, Content: req.Content, Format: req.Format}
}
