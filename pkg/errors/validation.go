package errors

import (
	"strings"
	"unicode"
)

// ValidatePointID validates a point identifier for safety and correctness.
// Point IDs appear in layouts, dictionaries, cache keys, and file names, so
// the rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidatePointID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "point ID cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "point ID too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "point ID contains control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "point ID contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateConnectorType validates a connector type name from a dictionary.
// Connector types follow the same character rules as point IDs but are
// limited to 64 characters.
func ValidateConnectorType(typ string) error {
	if typ == "" {
		return New(ErrCodeInvalidConnector, "connector type cannot be empty")
	}
	if len(typ) > 64 {
		return New(ErrCodeInvalidConnector, "connector type too long (max 64 characters)")
	}
	for _, r := range typ {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidConnector, "connector type contains whitespace or control characters")
		}
	}
	return nil
}
