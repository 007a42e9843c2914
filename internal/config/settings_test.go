package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse-pricing/internal/model"
)

func TestLoadSettings_AbsentFileUsesDefaults(t *testing.T) {
	s := LoadSettings(filepath.Join(t.TempDir(), "settings.yaml"))
	assert.Equal(t, model.DefaultSettings(), s)
}

func TestSaveAndLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "settings.yaml")

	s := model.DefaultSettings()
	s.Alpha = 0.55
	s.DefaultSteps = 60
	require.NoError(t, SaveSettings(path, s))

	got := LoadSettings(path)
	assert.Equal(t, s, got)
}

func TestLoadSettings_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("alpha: 0.9\n"), 0o644))

	s := LoadSettings(path)
	assert.Equal(t, 0.9, s.Alpha)
	assert.Equal(t, model.DefaultSettings().Beta, s.Beta)
	assert.Equal(t, model.DefaultSettings().DefaultSteps, s.DefaultSteps)
}

func TestLoadSettings_CorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))
	assert.Equal(t, model.DefaultSettings(), LoadSettings(path))
}

func TestLoadSettings_InvalidValuesFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("alpha: -1\n"), 0o644))
	assert.Equal(t, model.DefaultSettings(), LoadSettings(path))
}

func TestSaveSettings_RejectsInvalid(t *testing.T) {
	s := model.DefaultSettings()
	s.DefaultSteps = 0
	err := SaveSettings(filepath.Join(t.TempDir(), "settings.yaml"), s)
	assert.Error(t, err)
}
