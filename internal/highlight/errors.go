package highlight

import (
	"errors"
	"fmt"
)

// ErrDomStructure is returned when a selection cannot be wrapped in a
// marker, structurally or through the single-text-node fallback.
var ErrDomStructure = errors.New("selection cannot be wrapped")

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// StorageError reports a backend read or write failure.
type StorageError struct {
	Op  string // "read" or "write"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s of %q failed: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ConfigError reports a missing or unusable operator setting.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// NetworkError reports a failed remote request.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to get definition: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
