package dto

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError translates a binding/validation error into a
// structured error detail with field-level messages.
func HandleValidationError(err error) *ErrorDetail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
	}

	fieldErrors := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fieldErrors[fieldName(fe.Field())] = formatValidationError(fe)
	}

	detail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed")
	detail = detail.WithDetails(fieldErrors)

	// Single-field failures also carry the field directly
	if len(validationErrors) == 1 {
		detail = detail.WithField(fieldName(validationErrors[0].Field()))
	}

	return detail
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	field := fieldName(e.Field())
	switch e.Tag() {
	case "required":
		return "The " + field + " field is required"
	case "min":
		return "The " + field + " must be at least " + e.Param() + " characters"
	case "max":
		return "The " + field + " may not be greater than " + e.Param() + " characters"
	case "email":
		return "The " + field + " must be a valid email address"
	case "eqfield":
		return "The " + field + " confirmation does not match"
	default:
		return "The " + field + " field is invalid"
	}
}

// fieldName converts a struct field name to its wire form
// (e.g. PasswordConfirmation -> password_confirmation).
func fieldName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
