package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/jobtrack/internal/models"
)

var today = models.Date{Year: 2024, Month: time.June, Day: 10}

func day(offset int) *models.Date {
	d := today.AddDays(offset)
	return &d
}

func at(hour int) time.Time {
	return time.Date(2024, 6, 1, hour, 0, 0, 0, time.UTC)
}

func names(jobs []models.Job) []string {
	var out []string
	for _, j := range jobs {
		out = append(out, j.JobName)
	}
	return out
}

func defaults(mut func(*models.JobFilters)) models.JobFilters {
	f := models.DefaultFilters()
	if mut != nil {
		mut(&f)
	}
	return f
}

func TestSearch(t *testing.T) {
	jobs := []models.Job{
		{ID: "1", JobName: "Tank 40", CustomerName: "Acme", CreatedAt: at(3)},
		{ID: "2", JobName: "Hood", CustomerName: "Tankworks", CreatedAt: at(2)},
		{ID: "3", JobName: "Rail", CustomerName: "Beta", CreatedAt: at(1)},
	}

	tests := []struct {
		search string
		want   []string
	}{
		{"", []string{"Tank 40", "Hood", "Rail"}},
		{"   ", []string{"Tank 40", "Hood", "Rail"}},
		{"TANK", []string{"Tank 40", "Hood"}},
		{"acme", []string{"Tank 40"}},
		{"  rail ", []string{"Rail"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Derive(jobs, tt.search, defaults(nil), nil, today)))
		})
	}
}

func TestStatusAndProgressFilters(t *testing.T) {
	jobs := []models.Job{
		{ID: "zero", JobName: "zero", CreatedAt: at(4)},
		{ID: "one", JobName: "one", CreatedAt: at(3)},
		{ID: "ninety-nine", JobName: "ninety-nine", CreatedAt: at(2)},
		{ID: "done", JobName: "done", CreatedAt: at(1)},
	}
	progress := map[string]int{"zero": 0, "one": 1, "ninety-nine": 99, "done": 100}

	tests := []struct {
		name string
		f    models.JobFilters
		want []string
	}{
		{"status active", defaults(func(f *models.JobFilters) { f.Status = models.StatusActive }), []string{"zero", "one", "ninety-nine"}},
		{"status completed", defaults(func(f *models.JobFilters) { f.Status = models.StatusCompleted }), []string{"done"}},
		{"progress 0", defaults(func(f *models.JobFilters) { f.Progress = models.ProgressZero }), []string{"zero"}},
		{"progress 1-99", defaults(func(f *models.JobFilters) { f.Progress = models.ProgressPartial }), []string{"one", "ninety-nine"}},
		{"progress 100", defaults(func(f *models.JobFilters) { f.Progress = models.ProgressDone }), []string{"done"}},
		{"unknown passes through", defaults(func(f *models.JobFilters) { f.Progress = "bogus" }), []string{"zero", "one", "ninety-nine", "done"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Derive(jobs, "", tt.f, progress, today)))
		})
	}
}

func TestDueFilter(t *testing.T) {
	jobs := []models.Job{
		{ID: "a", JobName: "yesterday", DueDate: day(-1), CreatedAt: at(9)},
		{ID: "b", JobName: "today", DueDate: day(0), CreatedAt: at(8)},
		{ID: "c", JobName: "plus7", DueDate: day(7), CreatedAt: at(7)},
		{ID: "d", JobName: "plus8", DueDate: day(8), CreatedAt: at(6)},
		{ID: "e", JobName: "plus30", DueDate: day(30), CreatedAt: at(5)},
		{ID: "f", JobName: "plus31", DueDate: day(31), CreatedAt: at(4)},
		{ID: "g", JobName: "none", CreatedAt: at(3)},
	}

	tests := []struct {
		due  string
		want []string
	}{
		{models.DueOverdue, []string{"yesterday"}},
		{models.Due7Days, []string{"today", "plus7"}},
		{models.Due30Days, []string{"today", "plus7", "plus8", "plus30"}},
		{models.DueNone, []string{"none"}},
		{models.DueAll, []string{"yesterday", "today", "plus7", "plus8", "plus30", "plus31", "none"}},
	}
	for _, tt := range tests {
		t.Run(tt.due, func(t *testing.T) {
			f := defaults(func(f *models.JobFilters) { f.Due = tt.due })
			assert.Equal(t, tt.want, names(Derive(jobs, "", f, nil, today)))
		})
	}
}

func TestSortDueSoonestPutsUndatedLast(t *testing.T) {
	jobs := []models.Job{
		{ID: "1", JobName: "undated new", CreatedAt: at(10)},
		{ID: "2", JobName: "far", DueDate: day(100), CreatedAt: at(1)},
		{ID: "3", JobName: "overdue", DueDate: day(-50), CreatedAt: at(2)},
		{ID: "4", JobName: "undated old", CreatedAt: at(0)},
	}

	soonest := Derive(jobs, "", defaults(func(f *models.JobFilters) { f.Sort = models.SortDueSoonest }), nil, today)
	assert.Equal(t, []string{"overdue", "far", "undated new", "undated old"}, names(soonest))

	latest := Derive(jobs, "", defaults(func(f *models.JobFilters) { f.Sort = models.SortDueLatest }), nil, today)
	assert.Equal(t, []string{"far", "overdue", "undated new", "undated old"}, names(latest))
}

func TestSortTieBreaks(t *testing.T) {
	jobs := []models.Job{
		{ID: "1", JobName: "Bravo", CreatedAt: at(1)},
		{ID: "2", JobName: "alpha", CreatedAt: at(1)},
		{ID: "3", JobName: "Charlie", CreatedAt: at(1), UpdatedAt: at(5)},
		{ID: "4", JobName: "Delta", CreatedAt: at(2)},
	}
	progress := map[string]int{"1": 50, "2": 50, "3": 50, "4": 10}

	high := Derive(jobs, "", defaults(func(f *models.JobFilters) { f.Sort = models.SortProgressHigh }), progress, today)
	// equal progress: most recently touched first, then name
	assert.Equal(t, []string{"Charlie", "alpha", "Bravo", "Delta"}, names(high))

	low := Derive(jobs, "", defaults(func(f *models.JobFilters) { f.Sort = models.SortProgressLow }), progress, today)
	assert.Equal(t, []string{"Delta", "Charlie", "alpha", "Bravo"}, names(low))

	recent := Derive(jobs, "", defaults(nil), progress, today)
	assert.Equal(t, []string{"Charlie", "Delta", "alpha", "Bravo"}, names(recent))
}

func TestSortNameAZ(t *testing.T) {
	jobs := []models.Job{
		{ID: "1", JobName: "beta", CreatedAt: at(1)},
		{ID: "2", JobName: "Alpha", CreatedAt: at(2)},
		{ID: "3", JobName: "Éclair", CreatedAt: at(3)},
		{ID: "4", JobName: "delta", CreatedAt: at(4)},
		{ID: "5", JobName: "beta", CreatedAt: at(5)},
	}

	got := Derive(jobs, "", defaults(func(f *models.JobFilters) { f.Sort = models.SortNameAZ }), nil, today)

	require.Len(t, got, 5)
	assert.Equal(t, []string{"Alpha", "beta", "beta", "delta", "Éclair"}, names(got))
	// duplicate names fall back to most recently touched
	assert.Equal(t, "5", got[1].ID)
	assert.Equal(t, "1", got[2].ID)
}

func TestUnknownSortActsLikeRecent(t *testing.T) {
	jobs := []models.Job{
		{ID: "1", JobName: "old", CreatedAt: at(1)},
		{ID: "2", JobName: "new", CreatedAt: at(2)},
	}
	got := Derive(jobs, "", defaults(func(f *models.JobFilters) { f.Sort = "newest" }), nil, today)
	assert.Equal(t, []string{"new", "old"}, names(got))
}

func TestDeriveDoesNotReorderInput(t *testing.T) {
	jobs := []models.Job{
		{ID: "1", JobName: "b", CreatedAt: at(1)},
		{ID: "2", JobName: "a", CreatedAt: at(2)},
	}
	Derive(jobs, "", defaults(func(f *models.JobFilters) { f.Sort = models.SortNameAZ }), nil, today)
	assert.Equal(t, "1", jobs[0].ID)
}

func TestProgressFilterFollowsToggle(t *testing.T) {
	at := time.Now()
	job := models.Job{ID: "j", JobName: "Tank", CreatedAt: at}
	for i := 0; i < 3; i++ {
		m := models.Milestone{ID: string(rune('a' + i)), Phase: "P", Order: i}
		m.SetComplete(true, at)
		job.Milestones = append(job.Milestones, m)
	}
	f := defaults(func(f *models.JobFilters) { f.Progress = models.ProgressDone })
	pct := func(j models.Job) map[string]int {
		return map[string]int{j.ID: 100 * j.CompletedCount() / len(j.Milestones)}
	}

	assert.Len(t, Derive([]models.Job{job}, "", f, pct(job), today), 1)

	job.Milestones[1].SetComplete(false, at)
	assert.Empty(t, Derive([]models.Job{job}, "", f, pct(job), today))
}
