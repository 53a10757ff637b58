package validation

import (
	"regexp"
	"strings"
)

// Font values accepted by the timer customization fields.
var (
	validFontFamilies = map[string]bool{
		"mono":  true,
		"sans":  true,
		"serif": true,
	}
	validFontSizes = map[string]bool{
		"text-lg":  true,
		"text-xl":  true,
		"text-2xl": true,
		"text-3xl": true,
		"text-4xl": true,
	}
)

// Validator provides common validation utilities
type Validator struct {
	hexColorRegex *regexp.Regexp
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		hexColorRegex: regexp.MustCompile(`^#[0-9a-fA-F]{6}$`),
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidHexColor checks if a string is a six-digit hex color
func (v *Validator) IsValidHexColor(s string) bool {
	return v.hexColorRegex.MatchString(s)
}

// IsValidFontFamily checks if a font family is one of the supported values
func (v *Validator) IsValidFontFamily(s string) bool {
	return validFontFamilies[s]
}

// IsValidFontSize checks if a font size is one of the supported values
func (v *Validator) IsValidFontSize(s string) bool {
	return validFontSizes[s]
}

// IsValidDurationComponent checks a minutes/seconds component is within [0,59]
func (v *Validator) IsValidDurationComponent(n int) bool {
	return n >= 0 && n <= 59
}

// IsValidHours checks an hours component is non-negative
func (v *Validator) IsValidHours(n int) bool {
	return n >= 0
}

// IsValidTimerID checks if a timer ID is usable
func (v *Validator) IsValidTimerID(id string) bool {
	return strings.TrimSpace(id) != ""
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}
