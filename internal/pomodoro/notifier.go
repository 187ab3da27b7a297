package pomodoro

import (
	"context"
	"io"

	"time-riches/internal/domain"
	"time-riches/internal/errors"
)

// Notifier signals the end of a phase. Failures are logged by the timer
// and never interrupt phase completion.
type Notifier interface {
	Notify(ctx context.Context, finished domain.Phase) error
}

// NoopNotifier discards notifications.
type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, domain.Phase) error { return nil }

// BellNotifier rings the terminal bell.
type BellNotifier struct {
	W io.Writer
}

func (b BellNotifier) Notify(_ context.Context, _ domain.Phase) error {
	if b.W == nil {
		return errors.NewUnavailableError("terminal bell", nil)
	}
	if _, err := io.WriteString(b.W, "\a"); err != nil {
		return errors.NewUnavailableError("terminal bell", err)
	}
	return nil
}
