package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		build      func(string, error) *AppError
		wantStatus int
		wantCode   ErrorCode
	}{
		{"invalid argument", InvalidArgument, http.StatusBadRequest, ErrValidation},
		{"unauthorized", Unauthorized, http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", Forbidden, http.StatusForbidden, ErrForbidden},
		{"not found", NotFound, http.StatusNotFound, ErrNotFound},
		{"conflict", Conflict, http.StatusConflict, ErrConflict},
		{"internal", Internal, http.StatusInternalServerError, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := tt.build("boom", nil)
			if appErr.StatusCode() != tt.wantStatus {
				t.Errorf("StatusCode() = %d, want %d", appErr.StatusCode(), tt.wantStatus)
			}
			if appErr.Code() != tt.wantCode {
				t.Errorf("Code() = %q, want %q", appErr.Code(), tt.wantCode)
			}
			if appErr.Message() != "boom" {
				t.Errorf("Message() = %q, want boom", appErr.Message())
			}
		})
	}
}

func TestErrorAndUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	appErr := NotFound("content not found", cause)

	if appErr.Error() != "content not found: underlying" {
		t.Errorf("Error() = %q", appErr.Error())
	}
	if !errors.Is(appErr, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}
}

func TestIs(t *testing.T) {
	appErr := Conflict("duplicate rating", nil)
	wrapped := fmt.Errorf("request failed: %w", appErr)

	if !Is(wrapped, ErrConflict) {
		t.Error("Is() should match code through wrapping")
	}
	if Is(wrapped, ErrNotFound) {
		t.Error("Is() matched the wrong code")
	}
	if Is(errors.New("plain"), ErrConflict) {
		t.Error("Is() matched a non-AppError")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "noop", http.StatusInternalServerError, ErrInternal) != nil {
		t.Error("Wrap(nil) should be nil")
	}

	original := Forbidden("nope", nil)
	rewrapped := Wrap(fmt.Errorf("outer: %w", original), "other", http.StatusTeapot, ErrInternal)
	if rewrapped.Code() != ErrForbidden {
		t.Errorf("Wrap() should keep the existing AppError, got code %q", rewrapped.Code())
	}

	converted := Wrap(errors.New("db down"), "storage failure", http.StatusInternalServerError, ErrInternal)
	if converted.StatusCode() != http.StatusInternalServerError || converted.Message() != "storage failure" {
		t.Errorf("Wrap() conversion mismatch: %+v", converted)
	}
}
