// Package template edits the shared milestone template and its phase weights.
package template

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/balkashynov/jobtrack/internal/models"
)

var (
	ErrEmptyName      = errors.New("name must not be empty")
	ErrPhaseExists    = errors.New("phase already exists")
	ErrUnknownPhase   = errors.New("unknown phase")
	ErrNegativeWeight = errors.New("weight must not be negative")
)

// Direction is the way Move shifts a milestone
type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// Editor holds a working copy of the template and phase weights. Nothing it
// does is persisted; callers save Template() and Weights() explicitly.
type Editor struct {
	template []models.TemplateMilestone
	weights  []models.PhaseWeight
	newID    func() string
}

// NewEditor copies tmpl and weights into a new editor. newID mints ids for
// added milestones.
func NewEditor(tmpl []models.TemplateMilestone, weights []models.PhaseWeight, newID func() string) *Editor {
	return &Editor{
		template: slices.Clone(tmpl),
		weights:  slices.Clone(weights),
		newID:    newID,
	}
}

// Template returns a copy of the edited template
func (e *Editor) Template() []models.TemplateMilestone {
	return slices.Clone(e.template)
}

// Weights returns a copy of the edited phase weights
func (e *Editor) Weights() []models.PhaseWeight {
	return slices.Clone(e.weights)
}

// Sorted returns the template ordered by Order, ties kept in stored order
func (e *Editor) Sorted() []models.TemplateMilestone {
	return sortByOrder(e.template)
}

// Phases lists phase names: first the phases that own milestones, in the
// order of their first milestone, then phases that so far only have a weight.
func (e *Editor) Phases() []string {
	var phases []string
	seen := make(map[string]bool)
	for _, t := range e.Sorted() {
		if !seen[t.Phase] {
			seen[t.Phase] = true
			phases = append(phases, t.Phase)
		}
	}
	for _, w := range e.weights {
		if !seen[w.Phase] {
			seen[w.Phase] = true
			phases = append(phases, w.Phase)
		}
	}
	return phases
}

// Milestones returns the order-sorted entries of one phase
func (e *Editor) Milestones(phase string) []models.TemplateMilestone {
	var out []models.TemplateMilestone
	for _, t := range e.Sorted() {
		if t.Phase == phase {
			out = append(out, t)
		}
	}
	return out
}

// Weight looks up a phase's weight
func (e *Editor) Weight(phase string) (float64, bool) {
	for _, w := range e.weights {
		if w.Phase == phase {
			return w.Weight, true
		}
	}
	return 0, false
}

// TotalWeight sums every registered weight
func (e *Editor) TotalWeight() float64 {
	var total float64
	for _, w := range e.weights {
		total += w.Weight
	}
	return total
}

// AddPhase registers a new, empty phase with the default weight
func (e *Editor) AddPhase(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if slices.Contains(e.Phases(), name) {
		return fmt.Errorf("%w: %s", ErrPhaseExists, name)
	}
	e.weights = append(e.weights, models.PhaseWeight{Phase: name, Weight: models.DefaultPhaseWeight})
	return nil
}

// RemovePhase drops a phase, its weight and every milestone in it.
// It reports whether anything was removed.
func (e *Editor) RemovePhase(name string) bool {
	before := len(e.template) + len(e.weights)
	e.template = slices.DeleteFunc(e.template, func(t models.TemplateMilestone) bool {
		return t.Phase == name
	})
	e.weights = slices.DeleteFunc(e.weights, func(w models.PhaseWeight) bool {
		return w.Phase == name
	})
	return len(e.template)+len(e.weights) != before
}

// AddMilestone appends a milestone to phase. It always sorts last overall:
// its order is one past the highest order in the whole template.
func (e *Editor) AddMilestone(phase, title string) (models.TemplateMilestone, error) {
	phase = strings.TrimSpace(phase)
	title = strings.TrimSpace(title)
	if phase == "" || title == "" {
		return models.TemplateMilestone{}, ErrEmptyName
	}

	maxOrder := 0
	for _, t := range e.template {
		maxOrder = max(maxOrder, t.Order)
	}
	entry := models.TemplateMilestone{
		ID:    e.newID(),
		Title: title,
		Phase: phase,
		Order: maxOrder + 1,
	}
	e.template = append(e.template, entry)
	return entry, nil
}

// RemoveMilestone deletes a template entry by id
func (e *Editor) RemoveMilestone(id string) bool {
	before := len(e.template)
	e.template = slices.DeleteFunc(e.template, func(t models.TemplateMilestone) bool {
		return t.ID == id
	})
	return len(e.template) != before
}

// Move swaps the order of milestone id with its neighbour in sorted order.
// Other orders are left alone. Moving past either end is a no-op.
func (e *Editor) Move(id string, dir Direction) bool {
	sorted := sortByOrder(e.template)
	i := slices.IndexFunc(sorted, func(t models.TemplateMilestone) bool { return t.ID == id })
	if i < 0 {
		return false
	}
	j := i + int(dir)
	if j < 0 || j >= len(sorted) {
		return false
	}

	sorted[i].Order, sorted[j].Order = sorted[j].Order, sorted[i].Order
	sorted[i], sorted[j] = sorted[j], sorted[i]
	e.template = sorted
	return true
}

// SetWeight sets a phase's weight, registering the phase if it has none yet
func (e *Editor) SetWeight(phase string, weight float64) error {
	if weight < 0 {
		return ErrNegativeWeight
	}
	for i := range e.weights {
		if e.weights[i].Phase == phase {
			e.weights[i].Weight = weight
			return nil
		}
	}
	if !slices.Contains(e.Phases(), phase) {
		return fmt.Errorf("%w: %s", ErrUnknownPhase, phase)
	}
	e.weights = append(e.weights, models.PhaseWeight{Phase: phase, Weight: weight})
	return nil
}

// Reset replaces everything with the built-in defaults. Existing jobs are
// not touched.
func (e *Editor) Reset() {
	e.template = models.DefaultTemplate()
	e.weights = models.DefaultPhaseWeights()
}

func sortByOrder(tmpl []models.TemplateMilestone) []models.TemplateMilestone {
	sorted := slices.Clone(tmpl)
	slices.SortStableFunc(sorted, func(a, b models.TemplateMilestone) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return sorted
}
