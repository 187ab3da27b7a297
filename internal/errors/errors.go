package errors

import (
	"errors"
	"fmt"
)

// storageMessage is shown for every storage failure; memory stays authoritative.
const storageMessage = "Your data could not be saved. Changes are kept in memory until the next save."

// newError builds an AppError; kv is a flat list of context key/value pairs.
func newError(t ErrorType, code, message string, cause error, kv ...any) *AppError {
	e := &AppError{Type: t, Code: code, Message: message, Cause: cause, Context: map[string]any{}}
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			e.Context[key] = kv[i+1]
		}
	}
	return e
}

// NewValidationError wraps rejected user input; cause is usually a
// validation.ValidationError carrying the field errors.
func NewValidationError(message string, cause error) *AppError {
	return newError(ErrorTypeValidation, "VALIDATION_FAILED", message, cause)
}

// NewNotFoundError reports a missing resource such as a task or record key.
func NewNotFoundError(resource string, identifier string) *AppError {
	return newError(ErrorTypeNotFound, "NOT_FOUND",
		fmt.Sprintf("%s not found: %s", resource, identifier), nil,
		"resource", resource, "identifier", identifier)
}

// NewStorageError creates an error for a failed read or write of the record store
func NewStorageError(operation string, cause error) *AppError {
	return newError(ErrorTypeStorage, "STORAGE_ERROR",
		fmt.Sprintf("storage operation failed: %s", operation), cause,
		"operation", operation)
}

// NewInvalidInputError reports a malformed argument such as a month or status filter.
func NewInvalidInputError(field string, value any, reason string) *AppError {
	return newError(ErrorTypeInvalidInput, "INVALID_INPUT",
		fmt.Sprintf("invalid input for %s: %s", field, reason), nil,
		"field", field, "value", value, "reason", reason)
}

// NewUnavailableError reports an environment capability (sound, terminal) that could not be used
func NewUnavailableError(capability string, cause error) *AppError {
	return newError(ErrorTypeUnavailable, "UNAVAILABLE",
		fmt.Sprintf("%s unavailable", capability), cause,
		"capability", capability)
}

// WrapError wraps err with a type; the code is the type name.
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return newError(errorType, errorType.String(), message, err)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsType(errorType)
}

// IsNotFound reports whether err is a not-found AppError
func IsNotFound(err error) bool {
	return IsErrorType(err, ErrorTypeNotFound)
}

// GetUserMessage returns the text a front end should show for err.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	switch {
	case !ok:
		return err.Error()
	case appErr.Type == ErrorTypeStorage:
		return storageMessage
	case appErr.Type.userError(), appErr.Type == ErrorTypeUnavailable:
		return appErr.Message
	default:
		return "An unexpected error occurred. Please try again."
	}
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError reports whether err is worth logging; user mistakes are not.
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	return !ok || !appErr.Type.userError()
}
