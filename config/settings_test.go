package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/orbiter/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	assert.NoError(t, config.DefaultSettings().Validate())
}

func TestLoadSettingsOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("time_scale: 100\nmessage_ttl: 3s\n"), 0o644))

	settings, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 100.0, settings.TimeScale)
	assert.Equal(t, 3*time.Second, settings.MessageTTL)
	assert.Equal(t, config.DefaultSettings().Width, settings.Width)
	assert.Equal(t, "rocket", settings.Vessel)
}

func TestLoadSettingsErrors(t *testing.T) {
	_, err := config.LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read settings")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("substeps: 0\n"), 0o644))
	_, err = config.LoadSettings(path)
	assert.ErrorContains(t, err, "substeps 0 must be at least 1")
}
