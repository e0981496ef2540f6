package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, Default().Validate())
}

func TestValidateAggregatesErrors(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Workers = 0
	cfg.MaxStackDepth = -1
	cfg.Foreground.Ticks = 0

	err := cfg.Validate()
	require.Error(t, err)
	require.ErrorContains(t, err, "workers must be positive")
	require.ErrorContains(t, err, "maxStackDepth must be positive")
	require.ErrorContains(t, err, "foreground.ticks must be positive")
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "taskgrid.yaml")
	data := []byte(`
workers: 4
foreground:
  ticks: 90000
  seconds: 10
ownerQueuedTaskLimit: 2
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Workers)
	require.Equal(t, 90000, cfg.Foreground.Ticks)
	require.Equal(t, 10*time.Second, cfg.Foreground.Duration())
	require.Equal(t, 2, cfg.OwnerQueuedTaskLimit)

	// Untouched fields keep their defaults.
	require.Equal(t, Default().Background, cfg.Background)
	require.Equal(t, Default().ConflictRetry, cfg.ConflictRetry)
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "taskgrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: -3\n"), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
	require.ErrorContains(t, err, "workers must be positive")
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
