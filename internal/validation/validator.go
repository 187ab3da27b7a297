package validation

import (
	"strings"
	"unicode/utf8"
)

// Limits bounds user input. Zero fields fall back to the defaults below.
type Limits struct {
	TitleMaxLength       int
	DescriptionMaxLength int
	MaxPhaseMinutes      int
}

const (
	DefaultTitleMaxLength       = 200
	DefaultDescriptionMaxLength = 2000
	DefaultMaxPhaseMinutes      = 240
)

// Validator provides common validation utilities
type Validator struct {
	limits Limits
}

// NewValidator creates a validator with default limits
func NewValidator() *Validator {
	return NewValidatorWithLimits(Limits{})
}

// NewValidatorWithLimits creates a validator with the given limits
func NewValidatorWithLimits(limits Limits) *Validator {
	if limits.TitleMaxLength <= 0 {
		limits.TitleMaxLength = DefaultTitleMaxLength
	}
	if limits.DescriptionMaxLength <= 0 {
		limits.DescriptionMaxLength = DefaultDescriptionMaxLength
	}
	if limits.MaxPhaseMinutes <= 0 {
		limits.MaxPhaseMinutes = DefaultMaxPhaseMinutes
	}
	return &Validator{limits: limits}
}

// Limits returns the effective limits.
func (v *Validator) Limits() Limits {
	return v.limits
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsWithinLength reports whether s has at most max characters after trimming.
func (v *Validator) IsWithinLength(s string, max int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) <= max
}

// IsValidMinutes reports whether n is an acceptable phase length.
func (v *Validator) IsValidMinutes(n int) bool {
	return n >= 1 && n <= v.limits.MaxPhaseMinutes
}
