package service

import (
	"errors"
	"fmt"

	"pagemark/internal/highlight"
)

var (
	// ErrExternalService is returned when an external service call fails.
	ErrExternalService = errors.New("external service error")
	// ErrUnavailable is returned when an optional capability is not configured.
	ErrUnavailable = errors.New("semantic search is not configured")
	// ErrDomStructure is returned when a page operation cannot reshape the
	// document.
	ErrDomStructure = highlight.ErrDomStructure
)

// The highlight error taxonomy, re-exported for callers of the service layer.
type (
	ValidationError = highlight.ValidationError
	StorageError    = highlight.StorageError
	ConfigError     = highlight.ConfigError
	NetworkError    = highlight.NetworkError
)

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
