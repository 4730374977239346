package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsAndGetCode(t *testing.T) {
	base := New(ErrCodeOutputNotEmpty, "output %s is not empty", "docs")
	wrapped := fmt.Errorf("generate: %w", base)

	if !Is(wrapped, ErrCodeOutputNotEmpty) {
		t.Error("Is() = false through fmt wrapping, want true")
	}
	if Is(wrapped, ErrCodeInternal) {
		t.Error("Is() matched the wrong code")
	}
	if got := GetCode(wrapped); got != ErrCodeOutputNotEmpty {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeOutputNotEmpty)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestWrapUnwrap(t *testing.T) {
	sentinel := errors.New("duplicate entity")
	err := Wrap(ErrCodeDuplicateEntity, sentinel, "read model")

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is() did not reach the cause")
	}
	if got, want := err.Error(), "DUPLICATE_ENTITY: read model: duplicate entity"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"plain", errors.New("boom"), "boom"},
		{"coded", New(ErrCodeInvalidConfig, "workers must be positive"), "workers must be positive"},
		{"with cause", Wrap(ErrCodeFileNotFound, errors.New("open model.yaml: no such file"), "read model"), "read model: open model.yaml: no such file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("boom"), 1},
		{"invalid input", New(ErrCodeInvalidInput, "bad flag"), 2},
		{"invalid config", New(ErrCodeInvalidConfig, "unknown key"), 2},
		{"duplicate entity", New(ErrCodeDuplicateEntity, "A.B twice"), 3},
		{"wrapped model error", fmt.Errorf("generate: %w", New(ErrCodeInvalidModel, "reserved path")), 3},
		{"output not empty", New(ErrCodeOutputNotEmpty, "uml"), 4},
		{"internal", New(ErrCodeInternal, "oops"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
