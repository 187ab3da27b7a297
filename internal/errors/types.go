package errors

import (
	"fmt"
	"log/slog"
	"sort"
)

// ErrorType classifies an AppError for callers and front ends.
type ErrorType int

const (
	// ErrorTypeValidation rejects user input before any state changes.
	ErrorTypeValidation ErrorType = iota
	// ErrorTypeNotFound reports an absent task or record.
	ErrorTypeNotFound
	// ErrorTypeStorage reports a failed read or write of the record store.
	ErrorTypeStorage
	// ErrorTypeInvalidInput reports a malformed argument outside field validation.
	ErrorTypeInvalidInput
	// ErrorTypeUnavailable reports an environment capability that could not be used.
	ErrorTypeUnavailable
)

var typeNames = map[ErrorType]string{
	ErrorTypeValidation:   "validation",
	ErrorTypeNotFound:     "not_found",
	ErrorTypeStorage:      "storage",
	ErrorTypeInvalidInput: "invalid_input",
	ErrorTypeUnavailable:  "unavailable",
}

func (et ErrorType) String() string {
	if name, ok := typeNames[et]; ok {
		return name
	}
	return "unknown"
}

// userError reports whether errors of this type are caused by the user
// rather than the environment.
func (et ErrorType) userError() bool {
	switch et {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
		return true
	}
	return false
}

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]any
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError with the same type and code.
func (e *AppError) Is(target error) bool {
	other, ok := target.(*AppError)
	return ok && e.Type == other.Type && e.Code == other.Code
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext attaches a key/value pair and returns e.
func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = map[string]any{}
	}
	e.Context[key] = value
	return e
}

// GetContext retrieves context information from the error
func (e *AppError) GetContext(key string) (any, bool) {
	value, ok := e.Context[key]
	return value, ok
}

// LogValue renders the error as a group so slog handlers keep its context.
func (e *AppError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("type", e.Type.String()),
		slog.String("code", e.Code),
		slog.String("message", e.Message),
	}
	if e.Cause != nil {
		attrs = append(attrs, slog.String("cause", e.Cause.Error()))
	}
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, e.Context[k]))
	}
	return slog.GroupValue(attrs...)
}
