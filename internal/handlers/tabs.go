package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"pagemark/internal/contextutil"
	"pagemark/internal/messaging"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_tab_relay.go -package=mocks pagemark/internal/handlers TabRelay

// TabRelay reaches connected page runtimes.
type TabRelay interface {
	Tabs() []messaging.TabInfo
	ShowDefinition(ctx context.Context, text string) error
}

// TabsHandler exposes the connected tabs.
type TabsHandler struct {
	relay TabRelay
}

// NewTabsHandler creates a new TabsHandler.
func NewTabsHandler(relay TabRelay) *TabsHandler {
	return &TabsHandler{relay: relay}
}

// TabsResponse lists the connected tabs.
type TabsResponse struct {
	Tabs []messaging.TabInfo `json:"tabs"`
}

// List handles GET /api/tabs.
func (h *TabsHandler) List(w http.ResponseWriter, r *http.Request) {
	tabs := h.relay.Tabs()
	if tabs == nil {
		tabs = []messaging.TabInfo{}
	}
	writeJSON(r.Context(), w, http.StatusOK, TabsResponse{Tabs: tabs})
}

// ShowDefinition handles POST /api/tabs/active/definition. It asks the
// active tab to display the definition of text and returns before the
// definition arrives.
func (h *TabsHandler) ShowDefinition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req DefineRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeError(w, http.StatusBadRequest, "Validation error: text is required")
		return
	}

	if err := h.relay.ShowDefinition(ctx, text); err != nil {
		if errors.Is(err, messaging.ErrNoActiveTab) {
			writeError(w, http.StatusConflict, "No active tab")
			return
		}
		logger.ErrorContext(ctx, "failed to relay definition request", "error", err)
		writeError(w, http.StatusBadGateway, "Failed to reach the active tab")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
