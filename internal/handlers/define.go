package handlers

import (
	"net/http"

	"pagemark/internal/contextutil"
	"pagemark/internal/service"
)

// DefineHandler handles HTTP requests for definitions.
type DefineHandler struct {
	definitions service.DefinitionService
}

// NewDefineHandler creates a new DefineHandler.
func NewDefineHandler(definitions service.DefinitionService) *DefineHandler {
	return &DefineHandler{definitions: definitions}
}

// DefineRequest represents the HTTP request payload for a definition.
type DefineRequest struct {
	Text string `json:"text"`
}

// DefineResponse represents the HTTP response payload for a definition.
type DefineResponse struct {
	Definition string `json:"definition"`
}

// ServeHTTP handles HTTP requests for definitions.
//
// swagger:route POST /api/define define
//
// # Define selected text
//
// Returns a short plain-text definition. Nothing is cached across requests.
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Definition
//	'400':
//	  description: Empty text
//	'412':
//	  description: No API key configured
//	'502':
//	  description: Definition request failed
func (h *DefineHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req DefineRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	def, err := h.definitions.Define(ctx, nil, req.Text)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to get definition")
		return
	}

	writeJSON(ctx, w, http.StatusOK, DefineResponse{Definition: def})
}
