package errors

import "unicode"

// MaxGridResolution bounds the surface grid: a 256×256 grid is already
// far past what interactive rendering consumes, and the reconstruction
// cost grows quadratically with resolution.
const MaxGridResolution = 256

// MaxDepthLimit bounds the number of lineage generations a caller may
// request in one layout.
const MaxDepthLimit = 10000

// ValidateRecordID validates a record or point identifier.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateRecordID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "record ID cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "record ID too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "record ID contains invalid control characters")
		}
	}

	return nil
}

// ValidateGridResolution validates the surface grid resolution.
func ValidateGridResolution(resolution int) error {
	if resolution < 1 {
		return New(ErrCodeInvalidGrid, "grid resolution must be at least 1, got %d", resolution)
	}
	if resolution > MaxGridResolution {
		return New(ErrCodeInvalidGrid, "grid resolution too large (max %d), got %d", MaxGridResolution, resolution)
	}
	return nil
}

// ValidateMaxDepth validates the generation depth bound for layout.
func ValidateMaxDepth(maxDepth int) error {
	if maxDepth < 0 {
		return New(ErrCodeInvalidDepth, "max depth must not be negative, got %d", maxDepth)
	}
	if maxDepth > MaxDepthLimit {
		return New(ErrCodeInvalidDepth, "max depth too large (max %d), got %d", MaxDepthLimit, maxDepth)
	}
	return nil
}

// ValidateCanvas validates layout canvas dimensions.
func ValidateCanvas(width, height float64) error {
	if width <= 0 {
		return New(ErrCodeInvalidCanvas, "canvas width must be positive, got %g", width)
	}
	if height <= 0 {
		return New(ErrCodeInvalidCanvas, "canvas height must be positive, got %g", height)
	}
	return nil
}

// ValidateOutputPath validates a user-supplied output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
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
