package validation

import "time-riches/internal/domain"

// ValidateSettingsPatch checks theme and phase lengths of a settings update.
func (v *Validator) ValidateSettingsPatch(patch domain.SettingsPatch) error {
	ve := NewValidationError()
	if patch.Theme != nil && *patch.Theme != domain.ThemeLight && *patch.Theme != domain.ThemeDark {
		ve.AddInvalidValueError("theme", *patch.Theme, "must be light or dark")
	}
	v.checkMinutes(ve, "workMinutes", patch.WorkMinutes)
	v.checkMinutes(ve, "breakMinutes", patch.BreakMinutes)
	v.checkMinutes(ve, "longBreakMinutes", patch.LongBreakMinutes)
	return ve.OrNil()
}

func (v *Validator) checkMinutes(ve *ValidationError, field string, minutes *int) {
	if minutes != nil && !v.IsValidMinutes(*minutes) {
		ve.AddInvalidRangeError(field, *minutes, 1, v.limits.MaxPhaseMinutes)
	}
}
