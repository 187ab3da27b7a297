package validation

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ValidationErrorType classifies why a field was rejected.
type ValidationErrorType string

const (
	ErrorTypeRequired      ValidationErrorType = "required"
	ErrorTypeInvalidFormat ValidationErrorType = "invalid_format"
	ErrorTypeInvalidLength ValidationErrorType = "invalid_length"
	ErrorTypeInvalidValue  ValidationErrorType = "invalid_value"
	ErrorTypeInvalidRange  ValidationErrorType = "invalid_range"
)

// FieldError is one rejected field.
type FieldError struct {
	Field   string
	Type    ValidationErrorType
	Message string
	Value   any
}

func (fe *FieldError) Error() string {
	return "validation error for field '" + fe.Field + "': " + fe.Message
}

// ValidationError collects every field rejected by one validation pass.
type ValidationError struct {
	Errors []FieldError
}

func NewValidationError() *ValidationError {
	return &ValidationError{}
}

func (ve *ValidationError) Error() string {
	return ve.join("validation error", "multiple validation errors: ", "; ", (*FieldError).Error)
}

// GetUserFriendlyMessage renders the field messages for display, one per line
// when there are several.
func (ve *ValidationError) GetUserFriendlyMessage() string {
	return ve.join("Input validation failed", "Multiple validation errors occurred:\n- ", "\n- ",
		func(fe *FieldError) string { return fe.Message })
}

func (ve *ValidationError) join(empty, many, sep string, render func(*FieldError) string) string {
	switch len(ve.Errors) {
	case 0:
		return empty
	case 1:
		return render(&ve.Errors[0])
	}
	var b strings.Builder
	b.WriteString(many)
	for i := range ve.Errors {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(render(&ve.Errors[i]))
	}
	return b.String()
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}

func (ve *ValidationError) HasErrors() bool { return len(ve.Errors) != 0 }

// OrNil returns ve as an error only when it holds field errors.
func (ve *ValidationError) OrNil() error {
	if !ve.HasErrors() {
		return nil
	}
	return ve
}

func (ve *ValidationError) add(field string, t ValidationErrorType, value any, format string, args ...any) {
	ve.Errors = append(ve.Errors, FieldError{
		Field:   field,
		Type:    t,
		Message: field + " " + fmt.Sprintf(format, args...),
		Value:   value,
	})
}

func (ve *ValidationError) AddRequiredError(field string) {
	ve.add(field, ErrorTypeRequired, nil, "is required")
}

func (ve *ValidationError) AddInvalidFormatError(field string, value any, expected string) {
	ve.add(field, ErrorTypeInvalidFormat, value, "has invalid format, expected: %s", expected)
}

func (ve *ValidationError) AddMaxLengthError(field string, value any, max int) {
	ve.add(field, ErrorTypeInvalidLength, value, "must be at most %d characters long", max)
}

func (ve *ValidationError) AddInvalidValueError(field string, value any, reason string) {
	ve.add(field, ErrorTypeInvalidValue, value, "has invalid value: %s", reason)
}

func (ve *ValidationError) AddInvalidRangeError(field string, value any, min, max int) {
	ve.add(field, ErrorTypeInvalidRange, value, "must be between %d and %d", min, max)
}

// GetFieldErrors returns the errors recorded against field.
func (ve *ValidationError) GetFieldErrors(field string) []FieldError {
	var out []FieldError
	for _, fe := range ve.Errors {
		if fe.Field == field {
			out = append(out, fe)
		}
	}
	return out
}
