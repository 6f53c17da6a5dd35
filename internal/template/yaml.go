package template

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/balkashynov/jobtrack/internal/models"
)

// Document is the hand-editable YAML form of a template:
//
//	phases:
//	  - name: Kickoff
//	    weight: 10
//	    milestones:
//	      - Payment received
//	      - Job opened / PO created
type Document struct {
	Phases []PhaseDocument `yaml:"phases"`
}

// PhaseDocument is one phase of a Document
type PhaseDocument struct {
	Name       string   `yaml:"name"`
	Weight     float64  `yaml:"weight"`
	Milestones []string `yaml:"milestones"`
}

// ExportYAML renders the editor's template grouped by phase
func (e *Editor) ExportYAML() ([]byte, error) {
	var doc Document
	for _, phase := range e.Phases() {
		w, _ := e.Weight(phase)
		pd := PhaseDocument{Name: phase, Weight: w, Milestones: []string{}}
		for _, t := range e.Milestones(phase) {
			pd.Milestones = append(pd.Milestones, t.Title)
		}
		doc.Phases = append(doc.Phases, pd)
	}
	return yaml.Marshal(doc)
}

// ImportYAML replaces the editor's contents with a YAML document. Milestones
// are numbered in document order. On error the editor is left unchanged.
func (e *Editor) ImportYAML(data []byte) error {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse template: %w", err)
	}
	if len(doc.Phases) == 0 {
		return errors.New("template has no phases")
	}

	var (
		tmpl    []models.TemplateMilestone
		weights []models.PhaseWeight
		seen    = make(map[string]bool)
	)
	for _, pd := range doc.Phases {
		name := strings.TrimSpace(pd.Name)
		if name == "" {
			return fmt.Errorf("phase: %w", ErrEmptyName)
		}
		if seen[name] {
			return fmt.Errorf("%w: %s", ErrPhaseExists, name)
		}
		seen[name] = true
		if pd.Weight < 0 {
			return fmt.Errorf("phase %s: %w", name, ErrNegativeWeight)
		}
		weights = append(weights, models.PhaseWeight{Phase: name, Weight: pd.Weight})

		for _, title := range pd.Milestones {
			title = strings.TrimSpace(title)
			if title == "" {
				return fmt.Errorf("phase %s: milestone %w", name, ErrEmptyName)
			}
			tmpl = append(tmpl, models.TemplateMilestone{
				ID:    e.newID(),
				Title: title,
				Phase: name,
				Order: len(tmpl),
			})
		}
	}

	e.template = tmpl
	e.weights = weights
	return nil
}
