package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// splitNameRegex matches datatype split names usable as a single directory name.
var splitNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateSplitName validates a datatype split name (e.g. "train", "valid").
// Split names become directory names under the output directory, so they
// must be a single path element:
//   - No empty names
//   - No path separators or traversal sequences
//   - No control characters
//   - Maximum length of 128 characters
func ValidateSplitName(name string) error {
	if name == "" {
		return New(ErrCodeConfiguration, "split name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeConfiguration, "split name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeConfiguration, "split name contains invalid control characters")
		}
	}

	if strings.Contains(name, "..") || strings.ContainsAny(name, "/\\") {
		return New(ErrCodeConfiguration, "split name %q must be a single directory name", name)
	}

	if !splitNameRegex.MatchString(name) {
		return New(ErrCodeConfiguration, "invalid split name: %q", name)
	}

	return nil
}

// ValidateOutputDir validates the dataset output directory.
//
// Validation rules:
//   - Path cannot be empty or blank
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
func ValidateOutputDir(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeConfiguration, "output directory cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeConfiguration, "output directory too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeConfiguration, "output directory contains invalid characters")
		}
	}

	return nil
}
