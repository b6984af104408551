package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := map[string]struct {
		err  *Error
		want string
	}{
		"plain":   {err: New(ErrCodeInvalidLayout, "node %q missing", "a"), want: `INVALID_LAYOUT: node "a" missing`},
		"wrapped": {err: Wrap(ErrCodeInvalidConfig, fmt.Errorf("bad key"), "parse %s", "x.toml"), want: "INVALID_CONFIG: parse x.toml: bad key"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsThroughWrapping(t *testing.T) {
	base := New(ErrCodeCycle, "cycle at %s", "a")
	wrapped := fmt.Errorf("load: %w", base)

	if !Is(wrapped, ErrCodeCycle) {
		t.Error("Expected Is to find the code through fmt wrapping")
	}
	if Is(wrapped, ErrCodeInvalidLayout) {
		t.Error("Expected Is to reject a different code")
	}
	if GetCode(wrapped) != ErrCodeCycle {
		t.Errorf("GetCode() = %q, want %q", GetCode(wrapped), ErrCodeCycle)
	}
	if GetCode(errors.New("plain")) != "" {
		t.Error("Expected empty code for a plain error")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeScript, "boom")); got != "boom" {
		t.Errorf("UserMessage() = %q, want %q", got, "boom")
	}
	if got := UserMessage(Wrap(ErrCodeScript, errors.New("line 3"), "replay failed")); got != "replay failed: line 3" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain")
	}
}

func TestJoinKeepsCodes(t *testing.T) {
	err := Join(nil, New(ErrCodeOutOfBounds, "a"), New(ErrCodeNodeNotFound, "b"))
	if !Is(err, ErrCodeOutOfBounds) {
		t.Error("Expected joined error to match the first code")
	}
	if Join(nil, nil) != nil {
		t.Error("Expected Join of nils to be nil")
	}
}
