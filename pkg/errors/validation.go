package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// hexColorRegex matches #rgb, #rgba, #rrggbb and #rrggbbaa colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// namedColorRegex matches CSS color keywords and functional notations such as rgb(0,128,0).
var namedColorRegex = regexp.MustCompile(`^([a-zA-Z]+|(rgb|rgba|hsl|hsla)\([0-9.,%\s]+\))$`)

// ValidateColor validates a color value written into SVG attributes.
// An empty color is accepted and means "use the default".
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if hexColorRegex.MatchString(color) || namedColorRegex.MatchString(color) {
		return nil
	}
	return New(ErrCodeInvalidOptions, "invalid color: %q", color)
}

// fontSizeRegex matches CSS font sizes with an optional pt, px or em unit.
var fontSizeRegex = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?(pt|px|em)?$`)

// ValidateFontSize validates a font size such as "12pt", "16px" or "14".
func ValidateFontSize(size string) error {
	if size == "" {
		return New(ErrCodeInvalidOptions, "font size cannot be empty")
	}
	if !fontSizeRegex.MatchString(strings.TrimSpace(size)) {
		return New(ErrCodeInvalidOptions, "invalid font size: %q (want e.g. 12pt, 16px)", size)
	}
	return nil
}

// ValidateLabel validates an event label.
// Labels are free text but must not contain control characters other than tab.
func ValidateLabel(label string) error {
	const maxLabelLength = 1024
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (max %d characters)", maxLabelLength)
	}
	for _, r := range label {
		if r != '\t' && unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "label contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates an output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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

	return nil
}
