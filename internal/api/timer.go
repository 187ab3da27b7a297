package api

import (
	"context"

	"time-riches/internal/domain"
	"time-riches/internal/pomodoro"
)

// StartTimer starts or resumes the focus timer.
func (a *API) StartTimer() pomodoro.Status {
	a.timer.Start()
	return a.timer.Status()
}

// PauseTimer pauses a running timer.
func (a *API) PauseTimer() pomodoro.Status {
	a.timer.Pause()
	return a.timer.Status()
}

// ResumeTimer resumes a paused timer.
func (a *API) ResumeTimer() pomodoro.Status {
	a.timer.Resume()
	return a.timer.Status()
}

// ResetTimer reloads the current phase and stops counting.
func (a *API) ResetTimer() pomodoro.Status {
	a.timer.Reset()
	return a.timer.Status()
}

// ToggleTimer pauses a running timer and starts it otherwise.
func (a *API) ToggleTimer() pomodoro.Status {
	if a.timer.Status().State == pomodoro.StateRunning {
		return a.PauseTimer()
	}
	return a.StartTimer()
}

// SetTimerCategory sets the category for subsequently recorded sessions.
func (a *API) SetTimerCategory(categoryID string) pomodoro.Status {
	if categoryID == "" {
		categoryID = domain.DefaultCategoryID
	}
	a.timer.SetCategory(categoryID)
	return a.timer.Status()
}

// FocusLost forwards a loss of focus to the timer.
func (a *API) FocusLost() {
	a.timer.FocusLost()
}

// OnTimerChange registers fn to receive every timer transition and tick.
// A nil fn removes the listener.
func (a *API) OnTimerChange(fn func(pomodoro.Status)) {
	a.timer.OnChange(fn)
}

// TimerStatus returns the timer's current status.
func (a *API) TimerStatus() pomodoro.Status {
	return a.timer.Status()
}

// Settings returns the current settings.
func (a *API) Settings() domain.Settings {
	return a.state.Settings()
}

// ToggleTheme switches between light and dark.
func (a *API) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	return a.state.ToggleTheme(ctx)
}

// UpdateSettings validates and applies patch. An idle timer picks up new
// phase lengths immediately.
func (a *API) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	if err := a.validator.ValidateSettingsPatch(patch); err != nil {
		return a.state.Settings(), rejected(err)
	}
	settings, err := a.state.UpdateSettings(ctx, patch)
	a.timer.SettingsChanged()
	return settings, err
}
