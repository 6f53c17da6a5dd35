package models

import (
	"cmp"
	"slices"
	"time"
)

// Job represents one tracked unit of work (e.g. a fabrication order).
// Its milestones are a private copy of the template taken at creation time.
type Job struct {
	ID           string    `json:"id"`
	JobName      string    `json:"jobName"`
	CustomerName string    `json:"customerName"`
	DueDate      *Date     `json:"dueDate"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt,omitzero"` // missing in documents written before edits were tracked

	Milestones []Milestone `json:"milestones"`
	Notes      string      `json:"notes"`
	Photos     []string    `json:"photos"` // data URLs
}

// Milestone is one checklist item belonging to a job
type Milestone struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Phase       string     `json:"phase"`
	Order       int        `json:"order"`
	IsComplete  bool       `json:"isComplete"`
	CompletedAt *time.Time `json:"completedAt"` // nil unless IsComplete
}

// SetComplete flips the completion state, keeping CompletedAt in step with it
func (m *Milestone) SetComplete(done bool, at time.Time) {
	m.IsComplete = done
	if done {
		m.CompletedAt = &at
	} else {
		m.CompletedAt = nil
	}
}

// LastTouched returns UpdatedAt, falling back to CreatedAt for jobs that
// were never edited.
func (j *Job) LastTouched() time.Time {
	if j.UpdatedAt.IsZero() {
		return j.CreatedAt
	}
	return j.UpdatedAt
}

// Milestone returns the milestone with the given id, or nil
func (j *Job) Milestone(id string) *Milestone {
	for i := range j.Milestones {
		if j.Milestones[i].ID == id {
			return &j.Milestones[i]
		}
	}
	return nil
}

// CompletedCount returns how many milestones are complete
func (j *Job) CompletedCount() int {
	done := 0
	for _, m := range j.Milestones {
		if m.IsComplete {
			done++
		}
	}
	return done
}

// SortedMilestones returns the milestones ordered by Order. Equal orders keep
// their stored sequence.
func (j *Job) SortedMilestones() []Milestone {
	sorted := slices.Clone(j.Milestones)
	slices.SortStableFunc(sorted, func(a, b Milestone) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return sorted
}

// NextMilestone returns the first incomplete milestone in order, or nil
// when everything is done.
func (j *Job) NextMilestone() *Milestone {
	for _, m := range j.SortedMilestones() {
		if !m.IsComplete {
			return &m
		}
	}
	return nil
}

// PhaseGroup is a run of milestones sharing a phase
type PhaseGroup struct {
	Phase      string
	Milestones []Milestone
}

// Done counts the completed milestones in the group
func (g PhaseGroup) Done() int {
	done := 0
	for _, m := range g.Milestones {
		if m.IsComplete {
			done++
		}
	}
	return done
}

// GroupByPhase groups milestones by phase. Phases appear in the order of
// their first milestone, and milestones are order-sorted inside each group.
func GroupByPhase(milestones []Milestone) []PhaseGroup {
	sorted := slices.Clone(milestones)
	slices.SortStableFunc(sorted, func(a, b Milestone) int {
		return cmp.Compare(a.Order, b.Order)
	})

	var groups []PhaseGroup
	index := make(map[string]int)
	for _, m := range sorted {
		i, ok := index[m.Phase]
		if !ok {
			i = len(groups)
			index[m.Phase] = i
			groups = append(groups, PhaseGroup{Phase: m.Phase})
		}
		groups[i].Milestones = append(groups[i].Milestones, m)
	}
	return groups
}

// Clone returns a deep copy of the job
func (j Job) Clone() Job {
	out := j
	if j.DueDate != nil {
		due := *j.DueDate
		out.DueDate = &due
	}
	out.Milestones = make([]Milestone, len(j.Milestones))
	for i, m := range j.Milestones {
		if m.CompletedAt != nil {
			at := *m.CompletedAt
			m.CompletedAt = &at
		}
		out.Milestones[i] = m
	}
	out.Photos = slices.Clone(j.Photos)
	return out
}
