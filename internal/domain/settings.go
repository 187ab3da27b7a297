package domain

import "time"

// Theme is the display theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Settings holds user preferences. Durations are whole minutes.
type Settings struct {
	Theme            Theme `json:"theme"`
	WorkMinutes      int   `json:"workMinutes"`
	BreakMinutes     int   `json:"breakMinutes"`
	LongBreakMinutes int   `json:"longBreakMinutes"`
}

// SettingsPatch carries a partial settings update; nil fields are left unchanged.
type SettingsPatch struct {
	Theme            *Theme
	WorkMinutes      *int
	BreakMinutes     *int
	LongBreakMinutes *int
}

// DefaultSettings returns {light, 25, 5, 15}.
func DefaultSettings() Settings {
	return Settings{
		Theme:            ThemeLight,
		WorkMinutes:      25,
		BreakMinutes:     5,
		LongBreakMinutes: 15,
	}
}

// Apply returns a copy of s with the patch merged in.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.WorkMinutes != nil {
		s.WorkMinutes = *p.WorkMinutes
	}
	if p.BreakMinutes != nil {
		s.BreakMinutes = *p.BreakMinutes
	}
	if p.LongBreakMinutes != nil {
		s.LongBreakMinutes = *p.LongBreakMinutes
	}
	return s
}

// PhaseSeconds returns the configured length of phase in seconds. Unknown phases get
// the stock 25 minutes.
func (s Settings) PhaseSeconds(phase Phase) int {
	switch phase {
	case PhaseWork:
		return s.WorkMinutes * 60
	case PhaseBreak:
		return s.BreakMinutes * 60
	case PhaseLongBreak:
		return s.LongBreakMinutes * 60
	default:
		return 25 * 60
	}
}

// PhaseDuration is PhaseSeconds as a time.Duration.
func (s Settings) PhaseDuration(phase Phase) time.Duration {
	return time.Duration(s.PhaseSeconds(phase)) * time.Second
}
