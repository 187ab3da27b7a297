package state

import (
	"context"

	"time-riches/internal/domain"
)

// Categories returns the category list.
func (s *State) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Category{}, s.categories...)
}

// Category resolves id, falling back to the "Uncategorized" placeholder.
func (s *State) Category(id string) domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, _ := domain.LookupCategory(s.categories, id)
	return c
}

// Settings returns the current settings.
func (s *State) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *State) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.Theme = s.settings.Theme.Toggle()
	return s.settings.Theme, s.persistLocked(ctx)
}

// UpdateSettings merges patch into the settings and returns the result.
func (s *State) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = patch.Apply(s.settings)
	return s.settings, s.persistLocked(ctx)
}
