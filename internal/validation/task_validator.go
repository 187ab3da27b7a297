package validation

import (
	"time-riches/internal/domain"
)

// TaskValidator validates task input before it reaches the domain model.
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator(v *Validator) *TaskValidator {
	if v == nil {
		v = NewValidator()
	}
	return &TaskValidator{validator: v}
}

// ValidateTaskFields validates a new task. Empty priority and status are
// allowed; the caller fills in defaults.
func (tv *TaskValidator) ValidateTaskFields(fields domain.TaskFields) error {
	ve := NewValidationError()
	tv.checkTitle(ve, fields.Title)
	tv.checkDescription(ve, fields.Description)
	if fields.Priority != "" {
		checkPriority(ve, fields.Priority)
	}
	if fields.Status != "" {
		checkStatus(ve, fields.Status)
	}
	return ve.OrNil()
}

// ValidateTaskPatch validates the fields a patch would change.
func (tv *TaskValidator) ValidateTaskPatch(patch domain.TaskPatch) error {
	ve := NewValidationError()
	if patch.IsEmpty() {
		ve.AddInvalidValueError("update", nil, "no fields to change")
		return ve
	}
	if patch.Title != nil {
		tv.checkTitle(ve, *patch.Title)
	}
	if patch.Description != nil {
		tv.checkDescription(ve, *patch.Description)
	}
	if patch.Priority != nil {
		checkPriority(ve, *patch.Priority)
	}
	if patch.Status != nil {
		checkStatus(ve, *patch.Status)
	}
	return ve.OrNil()
}

func (tv *TaskValidator) checkTitle(ve *ValidationError, title string) {
	if !tv.validator.IsNonEmptyString(title) {
		ve.AddRequiredError("title")
		return
	}
	if max := tv.validator.limits.TitleMaxLength; !tv.validator.IsWithinLength(title, max) {
		ve.AddMaxLengthError("title", title, max)
	}
}

func (tv *TaskValidator) checkDescription(ve *ValidationError, description string) {
	if max := tv.validator.limits.DescriptionMaxLength; !tv.validator.IsWithinLength(description, max) {
		ve.AddMaxLengthError("description", description, max)
	}
}

func checkPriority(ve *ValidationError, p domain.Priority) {
	if !p.Valid() {
		ve.AddInvalidValueError("priority", p, "must be one of low, medium, high")
	}
}

func checkStatus(ve *ValidationError, s domain.Status) {
	if !s.Valid() {
		ve.AddInvalidValueError("status", s, "must be one of todo, in_progress, completed")
	}
}
