// Package progress turns a job's milestone checklist into a completion
// percentage.
//
// Two policies exist. Flat mode counts every milestone equally. Weighted
// mode splits 100% across phases by their registered weight and credits each
// phase by the fraction of its milestones that are complete. Results are
// rounded half away from zero; inputs are never negative, so this matches
// the usual "round half up".
package progress

import (
	"math"

	"github.com/balkashynov/jobtrack/internal/models"
)

// Calc returns the completion percentage of job, always in [0, 100].
// Empty checklists and a zero total weight both yield 0.
func Calc(job models.Job, weighted bool, weights []models.PhaseWeight) int {
	total := len(job.Milestones)
	if total == 0 {
		return 0
	}
	if !weighted {
		return flat(job.CompletedCount(), total)
	}
	return byPhase(job.Milestones, weights)
}

// flat computes round(100*done/total) in integers so .5 is exact
func flat(done, total int) int {
	return (200*done + total) / (2 * total)
}

type phaseTally struct {
	total int
	done  int
}

func byPhase(milestones []models.Milestone, weights []models.PhaseWeight) int {
	// later entries win, like building a map from the list
	weightOf := make(map[string]float64, len(weights))
	for _, pw := range weights {
		w := pw.Weight
		if w < 0 || math.IsNaN(w) {
			w = 0
		}
		weightOf[pw.Phase] = w
	}

	var phases []string
	tally := make(map[string]*phaseTally)
	for _, m := range milestones {
		t, ok := tally[m.Phase]
		if !ok {
			t = &phaseTally{}
			tally[m.Phase] = t
			phases = append(phases, m.Phase)
		}
		t.total++
		if m.IsComplete {
			t.done++
		}
	}

	var totalWeight, earned float64
	for _, phase := range phases {
		t := tally[phase]
		w := weightOf[phase]
		totalWeight += w
		earned += w * (float64(t.done) / float64(t.total))
	}
	if totalWeight == 0 || math.IsInf(totalWeight, 0) {
		return 0
	}
	return clamp(int(math.Round(earned / totalWeight * 100)))
}

func clamp(pct int) int {
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

// Mode carries the process-wide progress settings into the engine
type Mode struct {
	Weighted bool
	Weights  []models.PhaseWeight
}

// Percent is Calc with the mode's settings
func (m Mode) Percent(job models.Job) int {
	return Calc(job, m.Weighted, m.Weights)
}

// ByJob computes the percentage of every job, keyed by job id
func (m Mode) ByJob(jobs []models.Job) map[string]int {
	out := make(map[string]int, len(jobs))
	for _, j := range jobs {
		out[j.ID] = m.Percent(j)
	}
	return out
}
