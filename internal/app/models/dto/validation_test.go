package dto

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBindingValidator() *validator.Validate {
	v := validator.New()
	// gin binds with the "binding" tag
	v.SetTagName("binding")
	return v
}

func TestHandleValidationErrorSingleField(t *testing.T) {
	v := newBindingValidator()

	req := RegisterRequest{
		Name:                 "Jane Doe",
		Email:                "not-an-email",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
		Role:                 2,
	}

	err := v.Struct(req)
	require.Error(t, err)

	detail := HandleValidationError(err)
	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	assert.Equal(t, "email", detail.Field)

	fields, ok := detail.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, fields["email"], "valid email address")
}

func TestHandleValidationErrorMultipleFields(t *testing.T) {
	v := newBindingValidator()

	req := RegisterRequest{
		Email:                "jane@school.test",
		Password:             "secret123",
		PasswordConfirmation: "different",
		Role:                 1,
	}

	err := v.Struct(req)
	require.Error(t, err)

	detail := HandleValidationError(err)
	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	// More than one failing field, so no single field is singled out
	assert.Empty(t, detail.Field)

	fields, ok := detail.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "password_confirmation")
	assert.Contains(t, fields["password_confirmation"], "confirmation does not match")
}

func TestHandleValidationErrorMissingRole(t *testing.T) {
	v := newBindingValidator()

	req := RegisterRequest{
		Name:                 "Jane Doe",
		Email:                "jane@school.test",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
	}

	err := v.Struct(req)
	require.Error(t, err)

	detail := HandleValidationError(err)
	assert.Equal(t, "role", detail.Field)
}

func TestHandleValidationErrorNonValidatorError(t *testing.T) {
	detail := HandleValidationError(errors.New("unexpected EOF"))
	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	assert.Equal(t, "Invalid request format", detail.Message)
}

func TestFieldName(t *testing.T) {
	assert.Equal(t, "password_confirmation", fieldName("PasswordConfirmation"))
	assert.Equal(t, "email", fieldName("Email"))
	assert.Equal(t, "name", fieldName("name"))
}
