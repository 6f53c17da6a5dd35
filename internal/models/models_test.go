package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var job Job
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","dueDate":"2024-03-05"}`), &job))
	require.NotNil(t, job.DueDate)
	assert.Equal(t, Date{Year: 2024, Month: time.March, Day: 5}, *job.DueDate)

	out, err := json.Marshal(job.DueDate)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-05"`, string(out))

	job = Job{}
	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":null}`), &job))
	assert.Nil(t, job.DueDate)

	// Timestamps written by other tools keep their calendar day
	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":"2024-03-05T00:00:00.000Z"}`), &job))
	assert.Equal(t, "2024-03-05", job.DueDate.String())

	assert.Error(t, json.Unmarshal([]byte(`{"dueDate":"March 5"}`), &job))
}

func TestDateArithmetic(t *testing.T) {
	d := Date{Year: 2024, Month: time.February, Day: 28}
	assert.Equal(t, Date{Year: 2024, Month: time.March, Day: 1}, d.AddDays(2))
	assert.Equal(t, 2, d.DaysUntil(d.AddDays(2)))
	assert.Equal(t, -1, d.DaysUntil(d.AddDays(-1)))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.AddDays(1).After(d))
	assert.True(t, Date{}.IsZero())
}

func testJob() Job {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	due := Date{Year: 2024, Month: time.April, Day: 1}
	return Job{
		ID:      "job-1",
		DueDate: &due,
		Milestones: []Milestone{
			{ID: "m3", Title: "Tile started", Phase: "Tile", Order: 3},
			{ID: "m1", Title: "Drawings sent", Phase: "Engineering", Order: 1, IsComplete: true, CompletedAt: &at},
			{ID: "m2", Title: "Approval", Phase: "Engineering", Order: 2},
			{ID: "m0", Title: "Payment", Phase: "Kickoff", Order: 0, IsComplete: true, CompletedAt: &at},
		},
		Photos: []string{"data:image/png;base64,AA=="},
	}
}

func TestGroupByPhase(t *testing.T) {
	job := testJob()
	groups := GroupByPhase(job.Milestones)

	require.Len(t, groups, 3)
	assert.Equal(t, "Kickoff", groups[0].Phase)
	assert.Equal(t, "Engineering", groups[1].Phase)
	assert.Equal(t, "Tile", groups[2].Phase)
	assert.Equal(t, []string{"m1", "m2"}, []string{groups[1].Milestones[0].ID, groups[1].Milestones[1].ID})
	assert.Equal(t, 1, groups[1].Done())
	assert.Equal(t, 0, groups[2].Done())
}

func TestNextMilestone(t *testing.T) {
	job := testJob()
	next := job.NextMilestone()
	require.NotNil(t, next)
	assert.Equal(t, "m2", next.ID)
	assert.Equal(t, 2, job.CompletedCount())

	for i := range job.Milestones {
		job.Milestones[i].SetComplete(true, time.Now())
	}
	assert.Nil(t, job.NextMilestone())
}

func TestSetComplete(t *testing.T) {
	var m Milestone
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	m.SetComplete(true, at)
	assert.True(t, m.IsComplete)
	require.NotNil(t, m.CompletedAt)
	assert.Equal(t, at, *m.CompletedAt)

	m.SetComplete(false, at)
	assert.False(t, m.IsComplete)
	assert.Nil(t, m.CompletedAt)
}

func TestCloneIsDeep(t *testing.T) {
	job := testJob()
	c := job.Clone()

	c.DueDate.Day = 9
	c.Milestones[1].CompletedAt = nil
	c.Milestones[0].Title = "changed"
	c.Photos[0] = "changed"

	assert.Equal(t, 1, job.DueDate.Day)
	assert.NotNil(t, job.Milestones[1].CompletedAt)
	assert.Equal(t, "Tile started", job.Milestones[0].Title)
	assert.Equal(t, "data:image/png;base64,AA==", job.Photos[0])
}

func TestLastTouched(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	job := Job{CreatedAt: created}
	assert.Equal(t, created, job.LastTouched())

	job.UpdatedAt = created.Add(time.Hour)
	assert.Equal(t, created.Add(time.Hour), job.LastTouched())
}

func TestDefaultAppData(t *testing.T) {
	data := DefaultAppData()
	assert.Empty(t, data.Jobs)
	assert.NotNil(t, data.Jobs)
	assert.Len(t, data.Template, 18)
	assert.False(t, data.WeightedMode)

	total := 0.0
	for _, w := range data.PhaseWeights {
		total += w.Weight
	}
	assert.Equal(t, 100.0, total)

	// Every template phase has a weight
	weighted := make(map[string]bool)
	for _, w := range data.PhaseWeights {
		weighted[w.Phase] = true
	}
	for _, m := range data.Template {
		assert.True(t, weighted[m.Phase], m.Phase)
	}
}
