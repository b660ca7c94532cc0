package errors

import (
	"strings"
	"unicode"
)

// ValidatePageName validates a page or graph name that will become part
// of an output file path. It rejects names that could be used for path
// traversal or that would produce unportable file names.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, backslash)
//   - No absolute paths
//   - Maximum length of 256 characters
func ValidatePageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "page name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidName, "page name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "page name contains invalid control characters")
		}
	}

	if strings.HasPrefix(name, "/") {
		return New(ErrCodeInvalidName, "page name must be relative")
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "page name contains invalid sequence: %q", pattern)
		}
	}

	return nil
}
