package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "jobtrack.db"), cfg.DataPath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, int64(3<<20), cfg.Photos.MaxBytes)
	assert.Equal(t, 4, cfg.Photos.Workers)
}

func TestLoadFileAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_path: /tmp/jobs.db
log:
  level: debug
photos:
  workers: 2
`), 0o644))
	t.Setenv("JOBTRACK_PHOTOS_MAX_BYTES", "1024")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/jobs.db", cfg.DataPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 2, cfg.Photos.Workers)
	assert.Equal(t, int64(1024), cfg.Photos.MaxBytes)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("JOBTRACK_PHOTOS_WORKERS", "0")
	_, err := Load("")
	assert.ErrorContains(t, err, "photos.workers")
}
