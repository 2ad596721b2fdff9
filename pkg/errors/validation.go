package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// maxViewport bounds both viewport dimensions.
const maxViewport = 16384

// maxRasterPixels bounds the pixel count of a scaled raster (256 MiB as RGBA).
const maxRasterPixels = 8192 * 8192

// ValidateViewport checks that a requested render size is usable.
//
// The layout engine itself tolerates zero and negative sizes through its
// fallback constants; this check is for user-facing entry points (flags,
// config, HTTP parameters) where such values are a mistake.
func ValidateViewport(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidViewport, "viewport must be finite, got %vx%v", width, height)
		}
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidViewport, "viewport must be positive, got %vx%v", width, height)
	}
	if width > maxViewport || height > maxViewport {
		return New(ErrCodeInvalidViewport, "viewport too large (max %d), got %vx%v", maxViewport, width, height)
	}
	return nil
}

// hexColorRegex matches #rgb and #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateRaster checks that a viewport rendered at scale fits in memory.
func ValidateRaster(width, height, scale float64) error {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return New(ErrCodeInvalidViewport, "scale must be positive and finite, got %v", scale)
	}
	w, h := math.Ceil(width*scale), math.Ceil(height*scale)
	if w > maxViewport || h > maxViewport || w*h > maxRasterPixels {
		return New(ErrCodeInvalidViewport, "raster too large: %vx%v at scale %v is %vx%v px (max %d px)",
			width, height, scale, w, h, maxRasterPixels)
	}
	return nil
}

// ValidateColor checks that s is a hex color usable by every sink.
func ValidateColor(s string) error {
	if !hexColorRegex.MatchString(s) {
		return New(ErrCodeInvalidColor, "invalid color %q (want #rgb or #rrggbb)", s)
	}
	return nil
}

// ValidatePalette checks that a palette is non-empty and every entry is a valid color.
func ValidatePalette(palette []string) error {
	if len(palette) == 0 {
		return New(ErrCodeInvalidColor, "palette cannot be empty")
	}
	for _, c := range palette {
		if err := ValidateColor(c); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePath validates a relative output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
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

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
