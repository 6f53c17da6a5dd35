package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/jobtrack/internal/models"
)

func TestDarkMode(t *testing.T) {
	s, kv, _ := newTestStore(t)

	mode, err := s.DarkMode()
	require.NoError(t, err)
	assert.Nil(t, mode)

	on := true
	require.NoError(t, s.SetDarkMode(&on))
	raw, _, _ := kv.Get(DarkModeKey)
	assert.Equal(t, "true", raw)
	mode, err = s.DarkMode()
	require.NoError(t, err)
	require.NotNil(t, mode)
	assert.True(t, *mode)

	require.NoError(t, s.SetDarkMode(nil))
	mode, err = s.DarkMode()
	require.NoError(t, err)
	assert.Nil(t, mode)
}

func TestFiltersMergeOverDefaults(t *testing.T) {
	s, kv, _ := newTestStore(t)

	f, err := s.Filters()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultFilters(), f)

	require.NoError(t, kv.Set(FiltersKey, `{"due":"overdue"}`))
	f, err = s.Filters()
	require.NoError(t, err)
	want := models.DefaultFilters()
	want.Due = models.DueOverdue
	assert.Equal(t, want, f)

	require.NoError(t, kv.Set(FiltersKey, `garbage`))
	f, err = s.Filters()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultFilters(), f)

	want.Sort = models.SortNameAZ
	require.NoError(t, s.SaveFilters(want))
	f, err = s.Filters()
	require.NoError(t, err)
	assert.Equal(t, want, f)
}
