package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/matzehuels/doctower/pkg/doctree"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeInvalidConfig, "missing output dir"),
			want: "INVALID_CONFIG: missing output dir",
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeRenderFailed, stderrors.New("boom"), "render graph %s", "api"),
			want: "RENDER_FAILED: render graph api: boom",
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

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := Wrap(ErrCodeInternal, cause, "wrapped")
	if !stderrors.Is(err, cause) {
		t.Errorf("errors.Is should find the cause through Unwrap")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeNameNotFound, "no such page")
	if !Is(err, ErrCodeNameNotFound) {
		t.Errorf("Is(err, NAME_NOT_FOUND) = false, want true")
	}
	if Is(err, ErrCodeInternal) {
		t.Errorf("Is(err, INTERNAL_ERROR) = true, want false")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Errorf("Is(plain error) = true, want false")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"Structured", New(ErrCodeInvalidFormat, "bad format"), ErrCodeInvalidFormat},
		{"WrappedStructured", fmt.Errorf("outer: %w", New(ErrCodeNotFound, "gone")), ErrCodeNotFound},
		{"TreeInvalidChild", fmt.Errorf("append: %w", doctree.ErrInvalidChild), ErrCodeInvalidChild},
		{"TreeNameNotFound", doctree.ErrNameNotFound, ErrCodeNameNotFound},
		{"TreeNotFound", doctree.ErrNotFound, ErrCodeNotFound},
		{"TreeIndex", doctree.ErrIndexOutOfRange, ErrCodeIndexOutOfRange},
		{"Plain", stderrors.New("plain"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidName, "bad name")); got != "bad name" {
		t.Errorf("UserMessage = %q, want %q", got, "bad name")
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage = %q, want %q", got, "plain")
	}
}

func TestValidatePageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Simple", "index", false},
		{"Nested", "api/tree", false},
		{"Empty", "", true},
		{"Traversal", "../etc/passwd", true},
		{"DoubleSlash", "a//b", true},
		{"Absolute", "/etc/passwd", true},
		{"Backslash", `a\b`, true},
		{"Control", "bad\x01name", true},
		{"TooLong", string(make([]byte, 300)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePageName(%q) = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("validation error has code %q, want INVALID_NAME", GetCode(err))
			}
		})
	}
}
