package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  *Error
		kind Kind
	}{
		{"document", DocumentError("cannot open", cause), KindDocument},
		{"page", PageError("no pages", nil), KindPage},
		{"config", ConfigError("missing key", nil), KindConfig},
		{"io", IOError("write failed", cause), KindIO},
		{"api", APIError("status 500", nil), KindAPI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", tt.err.Kind, tt.kind)
			}
			if !IsKind(tt.err, tt.kind) {
				t.Errorf("IsKind(%v, %q) = false, want true", tt.err, tt.kind)
			}
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	withCause := DocumentError("cannot open", errors.New("permission denied"))
	want := "[document] cannot open: permission denied"
	if withCause.Error() != want {
		t.Errorf("Error() = %q, want %q", withCause.Error(), want)
	}

	withoutCause := PageError("PDF has no pages", nil)
	want = "[page] PDF has no pages"
	if withoutCause.Error() != want {
		t.Errorf("Error() = %q, want %q", withoutCause.Error(), want)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := DocumentError("open failed", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause through Unwrap")
	}
}

func TestIsKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("extract: %w", PageError("PDF has no pages", nil))

	if !IsKind(err, KindPage) {
		t.Error("IsKind should see through fmt.Errorf wrapping")
	}
	if IsKind(err, KindDocument) {
		t.Error("IsKind matched the wrong kind")
	}
	if IsKind(errors.New("plain"), KindPage) {
		t.Error("IsKind matched a non-domain error")
	}
}
