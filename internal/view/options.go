package view

import (
	"fmt"
	"slices"

	"github.com/balkashynov/jobtrack/internal/models"
)

// Option is one selectable value of a filter or sort menu
type Option struct {
	Value string
	Label string
}

var (
	SortOptions = []Option{
		{models.SortRecent, "Recently Updated"},
		{models.SortDueSoonest, "Due Date: Soonest"},
		{models.SortDueLatest, "Due Date: Latest"},
		{models.SortProgressHigh, "Progress: Highest"},
		{models.SortProgressLow, "Progress: Lowest"},
		{models.SortNameAZ, "Name: A–Z"},
	}
	StatusOptions = []Option{
		{models.StatusAll, "All Statuses"},
		{models.StatusActive, "Active"},
		{models.StatusCompleted, "Completed"},
	}
	DueOptions = []Option{
		{models.DueAll, "All Due Dates"},
		{models.DueOverdue, "Overdue"},
		{models.Due7Days, "Due in 7 days"},
		{models.Due30Days, "Due in 30 days"},
		{models.DueNone, "No due date"},
	}
	ProgressOptions = []Option{
		{models.ProgressAll, "All Progress"},
		{models.ProgressZero, "0%"},
		{models.ProgressPartial, "1–99%"},
		{models.ProgressDone, "100%"},
	}
)

// Values lists the accepted values of an option set
func Values(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

// Label returns the display label of value, or value itself when unknown
func Label(opts []Option, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// Validate checks that every field of f is a known value
func Validate(f models.JobFilters) error {
	checks := []struct {
		name  string
		value string
		opts  []Option
	}{
		{"sort", f.Sort, SortOptions},
		{"status", f.Status, StatusOptions},
		{"due", f.Due, DueOptions},
		{"progress", f.Progress, ProgressOptions},
	}
	for _, c := range checks {
		if !slices.Contains(Values(c.opts), c.value) {
			return fmt.Errorf("invalid %s %q (want one of %v)", c.name, c.value, Values(c.opts))
		}
	}
	return nil
}

// ActiveFilterCount counts the filters (not the sort) set away from "all"
func ActiveFilterCount(f models.JobFilters) int {
	n := 0
	for _, v := range []string{f.Status, f.Due, f.Progress} {
		if v != "all" {
			n++
		}
	}
	return n
}

// IsDefault reports whether f matches the default list configuration
func IsDefault(f models.JobFilters) bool {
	return f.Sort == models.SortRecent && ActiveFilterCount(f) == 0
}

// Chip is a removable summary of one non-default setting
type Chip struct {
	Key   string
	Label string
}

// Chips summarises the non-default parts of f, sort first
func Chips(f models.JobFilters) []Chip {
	var chips []Chip
	if f.Sort != models.SortRecent {
		chips = append(chips, Chip{"sort", "Sort: " + Label(SortOptions, f.Sort)})
	}
	if f.Status != models.StatusAll {
		chips = append(chips, Chip{"status", "Status: " + Label(StatusOptions, f.Status)})
	}
	if f.Due != models.DueAll {
		chips = append(chips, Chip{"due", "Due: " + Label(DueOptions, f.Due)})
	}
	if f.Progress != models.ProgressAll {
		chips = append(chips, Chip{"progress", "Progress: " + Label(ProgressOptions, f.Progress)})
	}
	return chips
}
