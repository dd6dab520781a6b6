package util

import (
	"fmt"
	"regexp"
)

// Tag keys are dotted lowercase paths, e.g. "home.header.title".
var tagKeyRegex = regexp.MustCompile(`^[a-z0-9_-]+(\.[a-z0-9_-]+)*$`)

const (
	// TagKeyMaxLength is the maximum length of a tag key
	TagKeyMaxLength = 255
)

// ValidateTagKey validates that a string is a well-formed tag key.
// Rules:
// - Must contain only lowercase alphanumeric characters, '_', '-' or '.'
// - Segments between dots must be non-empty
// - Maximum length is 255 characters
func ValidateTagKey(value string) error {
	if value == "" {
		return fmt.Errorf("tag key cannot be empty")
	}

	if len(value) > TagKeyMaxLength {
		return fmt.Errorf("tag key must be no more than %d characters", TagKeyMaxLength)
	}

	if !tagKeyRegex.MatchString(value) {
		return fmt.Errorf("tag key must be dotted lowercase segments (alphanumeric, '_' or '-')")
	}

	return nil
}

// IsValidTagKey checks if a string is a valid tag key without returning an error.
func IsValidTagKey(value string) bool {
	return ValidateTagKey(value) == nil
}
