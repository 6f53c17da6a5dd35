// Package view derives the displayed job list from search text, filters and
// a sort key. Everything is recomputed from scratch on each call; job lists
// are human-sized.
package view

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/balkashynov/jobtrack/internal/models"
)

// Derive filters and orders jobs. progress holds each job's percentage keyed
// by id (missing entries count as 0). today anchors the due-date filters.
// The input slice is not modified.
func Derive(jobs []models.Job, search string, f models.JobFilters, progress map[string]int, today models.Date) []models.Job {
	query := strings.ToLower(strings.TrimSpace(search))

	out := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		pct := progress[j.ID]
		if !matchesSearch(j, query) ||
			!matchesStatus(f.Status, pct) ||
			!matchesDue(f.Due, j.DueDate, today) ||
			!matchesProgress(f.Progress, pct) {
			continue
		}
		out = append(out, j)
	}

	sortJobs(out, f.Sort, progress)
	return out
}

func matchesSearch(j models.Job, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(j.JobName), query) ||
		strings.Contains(strings.ToLower(j.CustomerName), query)
}

func matchesStatus(status string, pct int) bool {
	switch status {
	case models.StatusCompleted:
		return pct == 100
	case models.StatusActive:
		return pct < 100
	}
	return true
}

func matchesDue(due string, date *models.Date, today models.Date) bool {
	switch due {
	case models.DueOverdue:
		return date != nil && date.Before(today)
	case models.Due7Days:
		return date != nil && within(*date, today, 7)
	case models.Due30Days:
		return date != nil && within(*date, today, 30)
	case models.DueNone:
		return date == nil
	}
	return true
}

// within reports whether d falls in [today, today+days]
func within(d, today models.Date, days int) bool {
	return !d.Before(today) && !d.After(today.AddDays(days))
}

func matchesProgress(filter string, pct int) bool {
	switch filter {
	case models.ProgressZero:
		return pct == 0
	case models.ProgressPartial:
		return pct >= 1 && pct <= 99
	case models.ProgressDone:
		return pct == 100
	}
	return true
}

// sortJobs orders by the primary key, then most recently touched first,
// then by name. For "recent" the primary key already is the first
// tie-break, so it falls straight through.
func sortJobs(jobs []models.Job, key string, progress map[string]int) {
	coll := collate.New(language.Und)

	slices.SortStableFunc(jobs, func(a, b models.Job) int {
		switch key {
		case models.SortDueSoonest:
			if c := compareDue(a.DueDate, b.DueDate, false); c != 0 {
				return c
			}
		case models.SortDueLatest:
			if c := compareDue(a.DueDate, b.DueDate, true); c != 0 {
				return c
			}
		case models.SortProgressHigh:
			if c := cmp.Compare(progress[b.ID], progress[a.ID]); c != 0 {
				return c
			}
		case models.SortProgressLow:
			if c := cmp.Compare(progress[a.ID], progress[b.ID]); c != 0 {
				return c
			}
		case models.SortNameAZ:
			if c := coll.CompareString(a.JobName, b.JobName); c != 0 {
				return c
			}
		}

		if c := b.LastTouched().Compare(a.LastTouched()); c != 0 {
			return c
		}
		return coll.CompareString(a.JobName, b.JobName)
	})
}

// compareDue puts jobs without a due date last whichever way dates run
func compareDue(a, b *models.Date, latestFirst bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case latestFirst:
		return b.Compare(*a)
	default:
		return a.Compare(*b)
	}
}
