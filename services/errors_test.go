package services

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	t.Parallel()
	err := NewValidationError("email", "password")
	if err.Code != CodeValidation {
		t.Fatalf("Code = %q, want %q", err.Code, CodeValidation)
	}
	if err.Message != "missing required fields: email, password" {
		t.Errorf("Message = %q", err.Message)
	}
	if len(err.MissingFields) != 2 {
		t.Errorf("MissingFields = %v, want 2 entries", err.MissingFields)
	}

	empty := NewValidationError()
	if empty.Message != "validation failed" || len(empty.MissingFields) != 0 {
		t.Errorf("empty validation error = %+v", empty)
	}
}

func TestAsErrorPassesThroughTaxonomy(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want ErrorCode
	}{
		{NotFoundf("member not found"), CodeNotFound},
		{Conflictf("email already registered"), CodeConflict},
		{InvalidStatef("entry is not in progress"), CodeInvalidState},
		{Unauthorizedf("invalid credentials"), CodeUnauthorized},
		{Validationf("invalid ID"), CodeValidation},
	}
	for _, tt := range tests {
		if got := AsError(tt.err); got.Code != tt.want {
			t.Errorf("AsError(%v).Code = %q, want %q", tt.err, got.Code, tt.want)
		}
	}
}

func TestAsErrorUnwrapsWrappedErrors(t *testing.T) {
	t.Parallel()
	wrapped := fmt.Errorf("loading entry: %w", NotFoundf("time entry not found"))
	if got := AsError(wrapped); got.Code != CodeNotFound {
		t.Errorf("AsError(wrapped).Code = %q, want %q", got.Code, CodeNotFound)
	}
}

func TestInternalPreservesCause(t *testing.T) {
	t.Parallel()
	cause := errors.New("write conflict on timeentries")
	err := Internal(cause)

	if err.Message != "internal server error" {
		t.Errorf("Message = %q, cause must not leak to clients", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Error("cause is not reachable through errors.Is for server-side logging")
	}
}

func TestAsErrorClassifiesUnknownAsInternal(t *testing.T) {
	t.Parallel()
	cause := errors.New("connection reset by peer")
	got := AsError(cause)
	if got.Code != CodeInternal {
		t.Fatalf("Code = %q, want %q", got.Code, CodeInternal)
	}
	if got.Message != "internal server error" {
		t.Errorf("Message = %q, cause must not leak to clients", got.Message)
	}
}
