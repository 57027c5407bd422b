package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestWrapKeepsSentinelIdentity(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrPersistence, cause)

	if !stderrors.Is(err, ErrPersistence) {
		t.Error("wrapped error should match its sentinel")
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should unwrap to its cause")
	}
	if stderrors.Is(err, ErrRender) {
		t.Error("wrapped error should not match an unrelated sentinel")
	}
}

func TestDetails(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{"render failure exposes cause", Wrap(ErrRender, fmt.Errorf("chrome crashed")), "chrome crashed"},
		{"persistence failure hides cause", Wrap(ErrPersistence, fmt.Errorf("password auth failed")), ""},
		{"sentinel without cause", ErrRender, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Details(); got != tt.want {
				t.Errorf("Details() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrValidation, "HTML content is required")

	if err.Message != "HTML content is required" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.StatusCode != ErrValidation.StatusCode || err.Code != ErrValidation.Code {
		t.Error("WithMessage should keep code and status")
	}
}
