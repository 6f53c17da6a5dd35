package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/jobtrack/internal/models"
)

func TestExportImportRoundTrip(t *testing.T) {
	s, _, _ := newTestStore(t)
	job := addJob(t, s, "Tank")
	due := models.Date{Year: 2024, Month: time.August, Day: 1}
	_, err := s.UpdateJob(job.ID, JobUpdate{DueDate: &due})
	require.NoError(t, err)
	_, err = s.ToggleMilestone(job.ID, job.Milestones[0].ID)
	require.NoError(t, err)
	require.NoError(t, s.SetWeightedMode(true))

	exported, err := s.Export()
	require.NoError(t, err)
	assert.Contains(t, exported, "\n  \"jobs\": [")

	other, _, _ := newTestStore(t)
	require.NoError(t, other.Import([]byte(exported)))

	again, err := other.Export()
	require.NoError(t, err)
	assert.Equal(t, exported, again)

	original, err := s.Data()
	require.NoError(t, err)
	imported, err := other.Data()
	require.NoError(t, err)
	assert.Equal(t, original, imported)
}

func TestImportRejectsBadDocuments(t *testing.T) {
	s, kv, _ := newTestStore(t)
	addJob(t, s, "Tank")
	before, _, err := kv.Get(DataKey)
	require.NoError(t, err)

	for _, raw := range []string{
		`not json`,
		`{"template": []}`,
		`{"jobs": []}`,
		`{"jobs": null, "template": []}`,
		`{"jobs": "x", "template": []}`,
		`{"jobs": [{"id": 7}], "template": []}`,
	} {
		t.Run(raw, func(t *testing.T) {
			assert.ErrorIs(t, s.Import([]byte(raw)), ErrInvalidImport)
		})
	}

	after, _, err := kv.Get(DataKey)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestImportFillsMissingCollections(t *testing.T) {
	s, _, _ := newTestStore(t)
	doc := `{"jobs":[{"id":"j","jobName":"Tank","customerName":"Acme","dueDate":null,"createdAt":"2024-06-01T09:00:00Z"}],"template":[]}`
	require.NoError(t, s.Import([]byte(doc)))

	data, err := s.Data()
	require.NoError(t, err)
	require.Len(t, data.Jobs, 1)
	assert.Equal(t, []models.Milestone{}, data.Jobs[0].Milestones)
	assert.Equal(t, []string{}, data.Jobs[0].Photos)
	assert.Equal(t, []models.PhaseWeight{}, data.PhaseWeights)
	assert.True(t, data.Jobs[0].UpdatedAt.IsZero())
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "job-tracker-backup-2024-03-09.json",
		ExportFilename(time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)))
}
