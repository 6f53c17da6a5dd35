// Package reconcile re-derives a job's checklist from an edited template
// while carrying over completion history for milestones that survive.
//
// Identity is decided by a Matcher. The default one, Key, matches on the
// (phase, title) pair, so renaming a milestone or moving it to another
// phase loses its history. Template entry ids are not stored on job
// milestones, so nothing sturdier is available today.
package reconcile

import (
	"github.com/balkashynov/jobtrack/internal/models"
)

// Matcher maps a milestone to the identity used to pair it with a template entry
type Matcher func(phase, title string) string

// Key is the default Matcher: the phase and title pair
func Key(phase, title string) string {
	return phase + "\x00" + title
}

// Apply rebuilds milestones from template using Key. See ApplyWith.
func Apply(milestones []models.Milestone, template []models.TemplateMilestone, newID func() string) []models.Milestone {
	return ApplyWith(Key, milestones, template, newID)
}

// ApplyWith returns a fresh milestone list with one entry per template
// entry, in template order. Every entry gets a new id from newID. When a
// currently complete milestone has the same identity, the new entry is
// complete with the old CompletedAt; otherwise it starts incomplete.
//
// Milestones with no counterpart in the template are dropped along with
// their history. If two complete milestones share an identity the later one
// in milestones wins.
func ApplyWith(match Matcher, milestones []models.Milestone, template []models.TemplateMilestone, newID func() string) []models.Milestone {
	completed := make(map[string]*models.Milestone)
	for i := range milestones {
		m := &milestones[i]
		if m.IsComplete {
			completed[match(m.Phase, m.Title)] = m
		}
	}

	out := make([]models.Milestone, 0, len(template))
	for _, t := range template {
		m := models.Milestone{
			ID:    newID(),
			Title: t.Title,
			Phase: t.Phase,
			Order: t.Order,
		}
		if prev, ok := completed[match(t.Phase, t.Title)]; ok {
			m.IsComplete = true
			if prev.CompletedAt != nil {
				at := *prev.CompletedAt
				m.CompletedAt = &at
			}
		}
		out = append(out, m)
	}
	return out
}

// Instantiate builds the checklist of a brand-new job: a by-value copy of
// the template with every milestone incomplete.
func Instantiate(template []models.TemplateMilestone, newID func() string) []models.Milestone {
	return ApplyWith(Key, nil, template, newID)
}
