package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeID validates a node identifier supplied by a user or an
// API client for safety and correctness.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - No whitespace
//   - Maximum length of 128 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node ID cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidNodeID, "node ID too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNodeID, "node ID contains invalid control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidNodeID, "node ID cannot contain whitespace")
		}
	}

	return nil
}

// ValidateDocumentPath validates a document file path supplied on the
// command line. It prevents path traversal and ensures a reasonable
// length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateDocumentPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateSelection validates a comma-separated node ID selection
// string, returning the cleaned-up ID list.
//
// Empty entries (doubled commas, trailing commas) are dropped; each
// remaining entry must pass [ValidateNodeID].
func ValidateSelection(selection string) ([]string, error) {
	var ids []string
	for _, part := range strings.Split(selection, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		if err := ValidateNodeID(id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, New(ErrCodeInvalidSelection, "selection cannot be empty")
	}
	return ids, nil
}
