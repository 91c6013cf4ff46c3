package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"pagemark/internal/contextutil"
	"pagemark/internal/service"
)

// maxBodyBytes bounds request bodies; submitted pages are the largest.
const maxBodyBytes = 8 << 20

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// writeJSON writes v with the given status.
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

// handleServiceError maps service errors to HTTP status codes and responses.
func handleServiceError(ctx context.Context, w http.ResponseWriter, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "service error", "error", err)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}

	if errors.Is(err, service.ErrDomStructure) {
		writeError(w, http.StatusUnprocessableEntity, "Selection cannot be highlighted")
		return
	}

	var configErr *service.ConfigError
	if errors.As(err, &configErr) {
		writeError(w, http.StatusPreconditionFailed, configErr.Message)
		return
	}

	var networkErr *service.NetworkError
	if errors.As(err, &networkErr) {
		writeError(w, http.StatusBadGateway, networkErr.Error())
		return
	}

	if errors.Is(err, service.ErrExternalService) {
		writeError(w, http.StatusBadGateway, "External service error")
		return
	}

	var storageErr *service.StorageError
	if errors.As(err, &storageErr) {
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable, try again")
		return
	}

	if errors.Is(err, service.ErrUnavailable) {
		writeError(w, http.StatusNotImplemented, service.ErrUnavailable.Error())
		return
	}

	writeError(w, http.StatusInternalServerError, defaultMsg)
}
