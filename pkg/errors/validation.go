package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ValidateName validates a level, axis or column name.
// Names end up in tooltips and SVG attributes, so the rules are conservative:
//   - No empty names
//   - No control characters
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name %q contains invalid control characters", name)
		}
	}

	return nil
}

// ValidateCanvas validates the drawing surface dimensions.
//
// Validation rules:
//   - Width and height must be finite and positive
//   - The bar width must be finite and non-negative
//   - All bars must fit horizontally (barWidth * bars <= width)
func ValidateCanvas(width, height, barWidth float64, bars int) error {
	if !finitePositive(width) || !finitePositive(height) {
		return New(ErrCodeInvalidCanvas, "canvas must have a positive size, got %gx%g", width, height)
	}
	if math.IsNaN(barWidth) || math.IsInf(barWidth, 0) || barWidth < 0 {
		return New(ErrCodeInvalidCanvas, "bar width must be non-negative, got %g", barWidth)
	}
	if bars > 0 && barWidth*float64(bars) > width {
		return New(ErrCodeInvalidCanvas, "%d bars of width %g do not fit in width %g", bars, barWidth, width)
	}
	return nil
}

func finitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// colorRegex matches the color forms accepted for rows: #rgb, #rrggbb,
// #rrggbbaa and bare CSS color keywords.
var colorRegex = regexp.MustCompile(`^(#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6}|#[0-9a-fA-F]{8}|[a-zA-Z]{3,20})$`)

// ValidateColor validates a row color before it is written into a style
// attribute. An empty color is allowed and means "use the style default".
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if !colorRegex.MatchString(color) {
		return New(ErrCodeInvalidInput, "invalid color: %q", color)
	}
	return nil
}
