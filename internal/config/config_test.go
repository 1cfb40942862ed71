package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gYonder/folio-shell/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Signal)
	assert.Equal(t, 1000, cfg.HistorySize)
	assert.Equal(t, config.DefaultOwnerEmail, cfg.OwnerEmail)
	assert.NotNil(t, cfg.Aliases)
}

func TestLoadFrom_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFrom_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("signal: gtk\nhistory_size: 50\naliases:\n  a: articles\n"), 0o600))

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "gtk", cfg.Signal)
	assert.Equal(t, 50, cfg.HistorySize)
	assert.Equal(t, "articles", cfg.Aliases["a"])
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFrom_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("signal: [unterminated"), 0o600))

	_, err := config.LoadFrom(path)
	assert.Error(t, err)
}

func TestLoad_EnvVar(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FOLIO_SIGNAL", "none")
	t.Setenv("FOLIO_MEDIA_DIR", "/srv/media")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "none", cfg.Signal)
	assert.Equal(t, "/srv/media", cfg.MediaDir)
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.Default()
	cfg.Aliases["x"] = "experience"
	cfg.MediaDir = "/tmp/media"

	require.NoError(t, config.SaveTo(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfigPath(t *testing.T) {
	path, err := config.ConfigPath()
	assert.NoError(t, err)
	assert.Contains(t, path, filepath.Join(".folio-shell", "config.yaml"))

	prefs, err := config.PreferencesPath()
	assert.NoError(t, err)
	assert.Equal(t, "preferences.yaml", filepath.Base(prefs))
}
