package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		expected  string
	}{
		{"Validation", ErrorTypeValidation, "validation"},
		{"NotFound", ErrorTypeNotFound, "not_found"},
		{"Storage", ErrorTypeStorage, "storage"},
		{"InvalidInput", ErrorTypeInvalidInput, "invalid_input"},
		{"Unavailable", ErrorTypeUnavailable, "unavailable"},
		{"Unknown", ErrorType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errorType.String())
		})
	}
}

func TestAppError_Error(t *testing.T) {
	plain := &AppError{Type: ErrorTypeValidation, Message: "invalid input"}
	assert.Equal(t, "validation: invalid input", plain.Error())

	wrapped := &AppError{Type: ErrorTypeStorage, Message: "write failed", Cause: errors.New("disk full")}
	assert.Equal(t, "storage: write failed (caused by: disk full)", wrapped.Error())
}

func TestAppError_UnwrapAndIs(t *testing.T) {
	cause := errors.New("original error")
	err := NewStorageError("put record", cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, errors.Is(err, &AppError{Type: ErrorTypeStorage, Code: "STORAGE_ERROR"}))
	assert.False(t, errors.Is(err, &AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND"}))
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("record", "timeRichesTasks")

	assert.Equal(t, ErrorTypeNotFound, err.Type)
	assert.Equal(t, "record not found: timeRichesTasks", err.Message)
	assert.Equal(t, "NOT_FOUND", err.Code)

	resource, ok := err.GetContext("resource")
	assert.True(t, ok)
	assert.Equal(t, "record", resource)
}

func TestWithContext(t *testing.T) {
	err := (&AppError{Type: ErrorTypeInvalidInput}).WithContext("field", "title")

	value, ok := err.GetContext("field")
	assert.True(t, ok)
	assert.Equal(t, "title", value)

	_, ok = err.GetContext("missing")
	assert.False(t, ok)
}

func TestIsErrorType_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("load: %w", NewNotFoundError("record", "settings"))

	assert.True(t, IsAppError(err))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsErrorType(err, ErrorTypeStorage))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"validation", NewValidationError("title is required", nil), "title is required"},
		{"not found", NewNotFoundError("task", "abc"), "task not found: abc"},
		{"storage", NewStorageError("save", errors.New("locked")), "Your data could not be saved. Changes are kept in memory until the next save."},
		{"unavailable", NewUnavailableError("notification sound", nil), "notification sound unavailable"},
		{"plain", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetUserMessage(tt.err))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, "INVALID_INPUT", GetErrorCode(NewInvalidInputError("month", "13", "out of range")))
	assert.Equal(t, "storage", GetErrorCode(WrapError(errors.New("x"), ErrorTypeStorage, "wrapped")))
	assert.Equal(t, "UNKNOWN_ERROR", GetErrorCode(errors.New("plain")))
}

func TestShouldLogError(t *testing.T) {
	assert.False(t, ShouldLogError(NewValidationError("bad", nil)))
	assert.False(t, ShouldLogError(NewNotFoundError("task", "1")))
	assert.True(t, ShouldLogError(NewStorageError("save", nil)))
	assert.True(t, ShouldLogError(NewUnavailableError("bell", nil)))
	assert.True(t, ShouldLogError(errors.New("plain")))
}

func TestAppError_LogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logger.Error("save failed", slog.Any("error", NewStorageError("put record", errors.New("disk full"))))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	group, ok := line["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "storage", group["type"])
	assert.Equal(t, "STORAGE_ERROR", group["code"])
	assert.Equal(t, "disk full", group["cause"])
	assert.Equal(t, "put record", group["operation"])
}
