package tui

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/jobtrack/internal/db"
	"github.com/balkashynov/jobtrack/internal/models"
	"github.com/balkashynov/jobtrack/internal/view"
)

type mapKV map[string]string

func (kv mapKV) Get(key string) (string, bool, error) {
	v, ok := kv[key]
	return v, ok, nil
}

func (kv mapKV) Set(key, value string) error {
	kv[key] = value
	return nil
}

func newTestStore(t *testing.T) *db.Store {
	t.Helper()
	n := 0
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return db.NewStore(mapKV{},
		db.WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}),
		db.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m tea.Model, s string) tea.Model {
	t.Helper()
	for _, r := range s {
		m, _ = m.Update(keyRunes(string(r)))
	}
	return m
}

func TestJobFormValues(t *testing.T) {
	v := JobFormValues{JobName: "  Tank ", CustomerName: "Acme", Due: "2024-07-01"}
	require.NoError(t, v.Validate())

	req := v.Request()
	assert.Equal(t, "Tank", req.JobName)
	assert.Equal(t, "Acme", req.CustomerName)
	require.NotNil(t, req.DueDate)
	assert.Equal(t, "2024-07-01", req.DueDate.String())

	upd := v.Update()
	assert.False(t, upd.ClearDueDate)

	v.Due = ""
	assert.True(t, v.Update().ClearDueDate)

	assert.Error(t, JobFormValues{CustomerName: "Acme"}.Validate())
	assert.Error(t, JobFormValues{JobName: "Tank"}.Validate())
	assert.Error(t, JobFormValues{JobName: "Tank", CustomerName: "Acme", Due: "someday"}.Validate())
}

func TestJobFormSubmit(t *testing.T) {
	var m tea.Model = NewJobFormModel("New job", JobFormValues{}, NewStyles(darkPalette))

	m = typeText(t, m, "Tank")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "Acme")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(t, m, "tomorrow")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	form := m.(JobFormModel)
	assert.True(t, form.Submitted())
	assert.NotNil(t, cmd)
	assert.Equal(t, JobFormValues{JobName: "Tank", CustomerName: "Acme", Due: "tomorrow"}, form.Values())
}

func TestJobFormValidationAndCancel(t *testing.T) {
	var m tea.Model = NewJobFormModel("New job", JobFormValues{JobName: "Tank"}, NewStyles(lightPalette))
	assert.Equal(t, fieldCustomer, m.(JobFormModel).focus)

	// Jump to the last field and submit with the customer still empty
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	form := m.(JobFormModel)
	assert.False(t, form.Submitted())
	assert.Contains(t, form.View(), "customer is required")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.(JobFormModel).Cancelled())
}

func TestCycle(t *testing.T) {
	assert.Equal(t, models.StatusActive, cycle(view.StatusOptions, models.StatusAll))
	assert.Equal(t, models.StatusAll, cycle(view.StatusOptions, models.StatusCompleted))
	assert.Equal(t, models.StatusAll, cycle(view.StatusOptions, "legacy"))
}

func newTestOverview(t *testing.T, store *db.Store) OverviewModel {
	t.Helper()
	m, err := NewOverviewModel(store, nil)
	require.NoError(t, err)
	m.today = func() models.Date { return models.Date{Year: 2024, Month: time.March, Day: 1} }
	m.shimmer.Enabled = false
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(OverviewModel)
}

func TestOverviewToggleMilestone(t *testing.T) {
	store := newTestStore(t)
	job, err := store.AddJob(db.CreateJobRequest{JobName: "Tank", CustomerName: "Acme"})
	require.NoError(t, err)

	var m tea.Model = newTestOverview(t, store)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, FocusMilestones, m.(OverviewModel).focus)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})

	saved, err := store.Job(job.ID)
	require.NoError(t, err)
	first := saved.SortedMilestones()[0]
	assert.True(t, first.IsComplete)
	assert.NotNil(t, first.CompletedAt)
	assert.Greater(t, m.(OverviewModel).progress[job.ID], 0)
	assert.Contains(t, m.(OverviewModel).status, first.Title)

	// The cursor starts on the next incomplete milestone when reopened
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, m.(OverviewModel).milestone)
}

func TestOverviewFiltersPersist(t *testing.T) {
	store := newTestStore(t)
	_, err := store.AddJob(db.CreateJobRequest{JobName: "Tank", CustomerName: "Acme"})
	require.NoError(t, err)

	var m tea.Model = newTestOverview(t, store)
	m, _ = m.Update(keyRunes("s"))
	m, _ = m.Update(keyRunes("s"))

	f, err := store.Filters()
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, f.Status)
	assert.Empty(t, m.(OverviewModel).visible)
	assert.Contains(t, m.View(), "No jobs match")

	m, _ = m.Update(keyRunes("r"))
	f, err = store.Filters()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultFilters(), f)
	assert.Len(t, m.(OverviewModel).visible, 1)
}

func TestOverviewSearch(t *testing.T) {
	store := newTestStore(t)
	for _, name := range []string{"Tank", "Hood", "Tank lid"} {
		_, err := store.AddJob(db.CreateJobRequest{JobName: name, CustomerName: "Acme"})
		require.NoError(t, err)
	}

	var m tea.Model = newTestOverview(t, store)
	m, _ = m.Update(keyRunes("/"))
	m = typeText(t, m, "TANK")
	assert.Len(t, m.(OverviewModel).visible, 2)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, FocusTable, m.(OverviewModel).focus)
	assert.Len(t, m.(OverviewModel).visible, 3)
}

func TestOverviewThemeCycle(t *testing.T) {
	store := newTestStore(t)
	var m tea.Model = newTestOverview(t, store)

	m, _ = m.Update(keyRunes("T"))
	dark, err := store.DarkMode()
	require.NoError(t, err)
	require.NotNil(t, dark)
	assert.True(t, *dark)

	m, _ = m.Update(keyRunes("T"))
	dark, _ = store.DarkMode()
	require.NotNil(t, dark)
	assert.False(t, *dark)

	_, _ = m.Update(keyRunes("T"))
	dark, _ = store.DarkMode()
	assert.Nil(t, dark)
}

func TestShimmer(t *testing.T) {
	s := NewShimmer(darkPalette, true)
	require.True(t, s.Enabled)

	ticks := 0
	for s.paused == 0 && ticks < 2*shimmerCycle {
		s.Advance(10)
		ticks++
	}
	assert.LessOrEqual(t, ticks, shimmerCycle)
	assert.Equal(t, shimmerPause, s.paused)

	for i := 0; i < shimmerPause; i++ {
		s.Advance(10)
	}
	assert.Less(t, s.center, 0.0)
	assert.NotEmpty(t, s.Render("Tank"))

	// Non-hex colors cannot be blended
	p := darkPalette
	p.SecondaryText = "245"
	assert.False(t, NewShimmer(p, true).Enabled)
	assert.Nil(t, NewShimmer(p, true).Tick())
}
