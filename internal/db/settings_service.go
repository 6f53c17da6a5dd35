package db

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/balkashynov/jobtrack/internal/models"
	"github.com/balkashynov/jobtrack/internal/progress"
)

// darkModeSystem marks "follow the terminal" since the store cannot delete keys
const darkModeSystem = "system"

// WeightedMode reports whether progress is weighted by phase
func (s *Store) WeightedMode() (bool, error) {
	data, err := s.Data()
	if err != nil {
		return false, err
	}
	return data.WeightedMode, nil
}

// SetWeightedMode switches between flat and phase-weighted progress
func (s *Store) SetWeightedMode(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	data.WeightedMode = on
	return s.save(data)
}

// ProgressMode bundles the current progress settings
func (s *Store) ProgressMode() (progress.Mode, error) {
	data, err := s.Data()
	if err != nil {
		return progress.Mode{}, err
	}
	return progress.Mode{Weighted: data.WeightedMode, Weights: data.PhaseWeights}, nil
}

// DarkMode returns the saved theme preference, or nil to follow the terminal
func (s *Store) DarkMode() (*bool, error) {
	raw, ok, err := s.kv.Get(DarkModeKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", DarkModeKey, err)
	}
	if !ok {
		return nil, nil
	}
	switch raw {
	case "true":
		on := true
		return &on, nil
	case "false":
		off := false
		return &off, nil
	}
	return nil, nil
}

// SetDarkMode saves the theme preference; nil means follow the terminal
func (s *Store) SetDarkMode(on *bool) error {
	value := darkModeSystem
	if on != nil {
		value = fmt.Sprint(*on)
	}
	return s.kv.Set(DarkModeKey, value)
}

// Filters returns the saved list filters merged over the defaults
func (s *Store) Filters() (models.JobFilters, error) {
	f := models.DefaultFilters()
	raw, ok, err := s.kv.Get(FiltersKey)
	if err != nil {
		return f, fmt.Errorf("failed to read %s: %w", FiltersKey, err)
	}
	if !ok || raw == "" {
		return f, nil
	}
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		s.log.Warn("saved filters are unreadable, using defaults", zap.Error(err))
		return models.DefaultFilters(), nil
	}

	def := models.DefaultFilters()
	if f.Sort == "" {
		f.Sort = def.Sort
	}
	if f.Status == "" {
		f.Status = def.Status
	}
	if f.Due == "" {
		f.Due = def.Due
	}
	if f.Progress == "" {
		f.Progress = def.Progress
	}
	return f, nil
}

// SaveFilters persists the list filters
func (s *Store) SaveFilters(f models.JobFilters) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return s.kv.Set(FiltersKey, string(raw))
}
