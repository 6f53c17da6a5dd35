package db

import (
	"slices"

	"go.uber.org/zap"

	"github.com/balkashynov/jobtrack/internal/models"
	"github.com/balkashynov/jobtrack/internal/template"
)

// Template returns the shared milestone template
func (s *Store) Template() ([]models.TemplateMilestone, error) {
	data, err := s.Data()
	if err != nil {
		return nil, err
	}
	return data.Template, nil
}

// PhaseWeights returns the configured phase weights
func (s *Store) PhaseWeights() ([]models.PhaseWeight, error) {
	data, err := s.Data()
	if err != nil {
		return nil, err
	}
	return data.PhaseWeights, nil
}

// SaveTemplate replaces the template and the phase weights together.
// Existing jobs keep their milestones until the template is applied to them.
func (s *Store) SaveTemplate(tmpl []models.TemplateMilestone, weights []models.PhaseWeight) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	data.Template = nonNil(slices.Clone(tmpl))
	data.PhaseWeights = nonNil(slices.Clone(weights))
	if err := s.save(data); err != nil {
		return err
	}
	s.log.Info("template saved", zap.Int("milestones", len(tmpl)), zap.Int("phases", len(weights)))
	return nil
}

// SavePhaseWeights replaces only the phase weights
func (s *Store) SavePhaseWeights(weights []models.PhaseWeight) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	data.PhaseWeights = nonNil(slices.Clone(weights))
	return s.save(data)
}

// Editor opens a template editor on a copy of the stored template.
// Changes stay in the editor until passed to SaveEditor.
func (s *Store) Editor() (*template.Editor, error) {
	data, err := s.Data()
	if err != nil {
		return nil, err
	}
	return template.NewEditor(data.Template, data.PhaseWeights, s.newTemplateID), nil
}

// SaveEditor persists an editor's template and weights
func (s *Store) SaveEditor(e *template.Editor) error {
	return s.SaveTemplate(e.Template(), e.Weights())
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
