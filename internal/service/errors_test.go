package service

import (
	"errors"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *ValidationError
		want    string
	}{
		{
			name: "field and message",
			err: &ValidationError{
				Field:   "message",
				Message: "cannot be empty",
			},
			want: "validation error on field message: cannot be empty",
		},
		{
			name: "empty field",
			err: &ValidationError{
				Field:   "",
				Message: "invalid",
			},
			want: "validation error on field : invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ValidationError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		msg     string
		wantNil bool
		wantMsg string
	}{
		{
			name:    "nil error",
			err:     nil,
			msg:     "context",
			wantNil: true,
		},
		{
			name:    "wrapped error",
			err:     errors.New("original error"),
			msg:     "context",
			wantNil: false,
			wantMsg: "context: original error",
		},
		{
			name:    "empty message",
			err:     errors.New("original error"),
			msg:     "",
			wantNil: false,
			wantMsg: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapError(tt.err, tt.msg)
			if tt.wantNil {
				if got != nil {
					t.Errorf("WrapError() = %v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Errorf("WrapError() = nil, want error")
				return
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("WrapError() = %v, want %v", got.Error(), tt.wantMsg)
			}
			// Verify error wrapping
			if !errors.Is(got, tt.err) {
				t.Errorf("WrapError() should wrap original error")
			}
		})
	}
}

func TestErrorConstants(t *testing.T) {
	if ErrExternalService == nil {
		t.Error("ErrExternalService should not be nil")
	}
	if ErrUnavailable == nil {
		t.Error("ErrUnavailable should not be nil")
	}

	// Test error matching
	if !errors.Is(ErrExternalService, ErrExternalService) {
		t.Error("ErrExternalService should match itself")
	}
}


func TestTaxonomyErrors(t *testing.T) {
	cause := errors.New("connection refused")

	networkErr := error(&NetworkError{Err: cause})
	if networkErr.Error() != "failed to get definition: connection refused" {
		t.Errorf("NetworkError.Error() = %v", networkErr.Error())
	}
	if !errors.Is(networkErr, cause) {
		t.Error("NetworkError should wrap its cause")
	}

	storageErr := error(&StorageError{Op: "write", Key: "highlights", Err: cause})
	if !errors.Is(WrapError(storageErr, "failed to save"), cause) {
		t.Error("wrapped StorageError should still match its cause")
	}
	var target *StorageError
	if !errors.As(WrapError(storageErr, "failed to save"), &target) || target.Op != "write" {
		t.Errorf("errors.As() did not find the StorageError")
	}

	configErr := &ConfigError{Message: "API key not configured"}
	if configErr.Error() != "API key not configured" {
		t.Errorf("ConfigError.Error() = %v", configErr.Error())
	}
}
