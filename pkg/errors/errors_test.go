package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodePointNotFound, "point %q not in sequence", "cat"),
			want: `POINT_NOT_FOUND: point "cat" not in sequence`,
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeInternal, fmt.Errorf("disk full"), "failed to save run"),
			want: "INTERNAL_ERROR: failed to save run: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeNonPlanarLink, "link crosses existing link")
	if !Is(err, ErrCodeNonPlanarLink) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is should not match a plain error")
	}

	// Wrapped chains resolve to the outermost code.
	wrapped := Wrap(ErrCodeInternal, err, "commit failed")
	if !Is(wrapped, ErrCodeInternal) {
		t.Error("Is should match the outermost code of a wrapped chain")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(ErrCodeInternal, cause, "wrapper")
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeRunNotFound, "no such run")); got != ErrCodeRunNotFound {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeRunNotFound)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidLayout, "duplicate point: cat")
	if got := UserMessage(err); got != "duplicate point: cat" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}

func TestValidatePointID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"Simple", "cat", false},
		{"WithDots", "v1.2.3", false},
		{"Unicode", "köln", false},
		{"Empty", "", true},
		{"Traversal", "../etc/passwd", true},
		{"Slash", "a/b", true},
		{"Backslash", `a\b`, true},
		{"Control", "a\x01b", true},
		{"TooLong", string(make([]byte, 300)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePointID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePointID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateConnectorType(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		wantErr bool
	}{
		{"Simple", "S", false},
		{"Lowercase", "subject", false},
		{"Empty", "", true},
		{"Space", "a b", true},
		{"Control", "a\tb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConnectorType(tt.typ)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConnectorType(%q) error = %v, wantErr %v", tt.typ, err, tt.wantErr)
			}
		})
	}
}
