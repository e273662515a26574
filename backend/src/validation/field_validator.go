// backend/src/validation/field_validator.go
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/meridian-capital/appraisal/backend/src/models"
)

var ErrValidationFailed = fmt.Errorf("validation failed")

const (
	DefaultMaxStringLength = 255
	MaxProductNameLength   = 255
	MaxDescriptionLength   = 1024
)

// --- String Validators ---

// ValidateStringNotEmpty checks if a string is not empty after trimming.
func ValidateStringNotEmpty(s, fieldName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrValidationFailed, fieldName)
	}
	return nil
}

// ValidateStringMaxLength checks if a string's UTF-8 character count is within max bounds.
func ValidateStringMaxLength(s string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(s) > maxLength {
		return fmt.Errorf("%w: %s exceeds maximum length of %d characters", ErrValidationFailed, fieldName, maxLength)
	}
	return nil
}

// ValidateStringRegex checks if a string matches a given regex pattern.
func ValidateStringRegex(s string, pattern *regexp.Regexp, fieldName, formatDescription string) error {
	if !pattern.MatchString(s) {
		return fmt.Errorf("%w: %s ('%s') is not in the expected format (%s)", ErrValidationFailed, fieldName, s, formatDescription)
	}
	return nil
}

// freeTextPattern is the shape allowed for a caller-entered label:
// letters, digits, spaces, and the punctuation ordinary project/cost
// names use.
var freeTextPattern = regexp.MustCompile(`^[\p{L}\p{N} .,'&()/-]+$`)

// ValidateRequiredLabel validates a mandatory free-text field such as a
// project, product, or financing name.
func ValidateRequiredLabel(s, fieldName string, maxLength int) error {
	if err := ValidateStringNotEmpty(s, fieldName); err != nil {
		return err
	}
	if err := ValidateStringMaxLength(s, maxLength, fieldName); err != nil {
		return err
	}
	return ValidateStringRegex(s, freeTextPattern, fieldName, "letters, numbers, spaces and .,'&()/- only")
}

// ValidateOptionalText validates a free-text field that may be left
// empty, such as an operating cost description.
func ValidateOptionalText(s, fieldName string, maxLength int) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if err := ValidateStringMaxLength(s, maxLength, fieldName); err != nil {
		return err
	}
	return ValidateStringRegex(s, freeTextPattern, fieldName, "letters, numbers, spaces and .,'&()/- only")
}

// ValidateProjectFields runs the structural checks over every free-text
// label in a project model: names must be present, bounded, and made
// only of ordinary label characters; descriptions are optional but
// still bounded. This runs ahead of the engine's numeric/enum
// validation, so a caller gets a field-level 400 instead of the
// engine's aggregated INVALID_MODEL error for these fields.
func ValidateProjectFields(m models.ProjectModel) error {
	if err := ValidateRequiredLabel(m.Name, "name", DefaultMaxStringLength); err != nil {
		return err
	}
	for i, prod := range m.Products {
		if err := ValidateRequiredLabel(prod.Name, fmt.Sprintf("products[%d].name", i), MaxProductNameLength); err != nil {
			return err
		}
	}
	for i, f := range m.Financings {
		if err := ValidateRequiredLabel(f.Name, fmt.Sprintf("financings[%d].name", i), DefaultMaxStringLength); err != nil {
			return err
		}
	}
	for i, c := range m.OperatingCosts {
		if err := ValidateOptionalText(c.Description, fmt.Sprintf("operatingCosts[%d].description", i), MaxDescriptionLength); err != nil {
			return err
		}
	}
	return nil
}
