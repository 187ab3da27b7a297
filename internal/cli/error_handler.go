package cli

import (
	stderrors "errors"
	"fmt"
	"log/slog"

	"time-riches/internal/errors"
	"time-riches/internal/logging"
	"time-riches/internal/validation"
)

// ErrorHandler turns API failures into the one-line messages commands print.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler returns a handler that logs unexpected failures to the
// default logger.
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{logger: slog.Default()}
}

// Handle prefixes err with the failed operation. Known errors are reduced to
// their user message; anything else stays wrapped.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.ShouldLogError(err) {
		eh.logger.Debug("command failed", logging.Operation(operation), logging.Error(err))
	}

	var ve *validation.ValidationError
	switch {
	case errors.IsAppError(err):
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	case stderrors.As(err, &ve):
		return fmt.Errorf("failed to %s: %s", operation, ve.GetUserFriendlyMessage())
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// IsValidationError reports rejected input in either error form.
func (eh *ErrorHandler) IsValidationError(err error) bool {
	return validation.IsValidationError(err) || errors.IsErrorType(err, errors.ErrorTypeValidation)
}

func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsNotFound(err)
}

func (eh *ErrorHandler) IsStorageError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeStorage)
}

// GetErrorCode is the AppError code, or UNKNOWN_ERROR.
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
