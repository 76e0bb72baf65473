package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// MaxZoom bounds the zoom factor accepted from scene files and flags.
const MaxZoom = 16.0

// ValidateID validates a stack or piece identifier.
// Identifiers end up in SVG element ids and URL paths, so the allowed
// alphabet is narrow: letters, digits, dash, underscore, dot and colon.
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidScene, "identifier cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidScene, "identifier too long (max 128 characters)")
	}
	if !idRegex.MatchString(id) {
		return New(ErrCodeInvalidScene, "invalid identifier %q", id)
	}
	return nil
}

var idRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)

// ValidateZoom rejects zoom factors that are not finite or fall outside
// (0, MaxZoom].
func ValidateZoom(zoom float64) error {
	if math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		return New(ErrCodeInvalidZoom, "zoom must be a finite number")
	}
	if zoom <= 0 {
		return New(ErrCodeInvalidZoom, "zoom must be positive, got %g", zoom)
	}
	if zoom > MaxZoom {
		return New(ErrCodeInvalidZoom, "zoom %g exceeds maximum %g", zoom, MaxZoom)
	}
	return nil
}

// ValidateColor checks a "#rrggbb" or "#rgb" color literal.
func ValidateColor(color string) error {
	if !colorRegex.MatchString(color) {
		return New(ErrCodeInvalidInput, "invalid color %q (want #rrggbb or #rgb)", color)
	}
	return nil
}

var colorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// ValidatePath validates a user-supplied file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
