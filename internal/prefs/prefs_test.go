package prefs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gYonder/folio-shell/internal/prefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_MissingFile(t *testing.T) {
	s := prefs.NewFileStore(filepath.Join(t.TempDir(), "nested", "preferences.yaml"))

	v, ok, err := s.Get("theme")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestFileStore_SetGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preferences.yaml")
	s := prefs.NewFileStore(path)

	require.NoError(t, s.Set("theme", "dark"))
	require.NoError(t, s.Set("other", "value"))

	v, ok, err := s.Get("theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// A fresh store over the same file sees the persisted value.
	reopened := prefs.NewFileStore(path)
	v, ok, err = reopened.Get("other")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", v)
}

func TestFileStore_SeesExternalEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.yaml")
	s := prefs.NewFileStore(path)
	require.NoError(t, s.Set("theme", "dark"))

	require.NoError(t, os.WriteFile(path, []byte("theme: light\n"), 0600))

	v, _, err := s.Get("theme")
	require.NoError(t, err)
	assert.Equal(t, "light", v)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":::not yaml\n\t- ["), 0600))
	s := prefs.NewFileStore(path)

	_, _, err := s.Get("theme")
	assert.Error(t, err)

	// Writing recovers the file.
	require.NoError(t, s.Set("theme", "light"))
	v, ok, err := s.Get("theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)
}

func TestMemoryStore_Errors(t *testing.T) {
	m := prefs.NewMemoryStore()
	require.NoError(t, m.Set("theme", "dark"))
	assert.Equal(t, 1, m.Writes)

	boom := errors.New("unavailable")
	m.GetErr = boom
	_, ok, err := m.Get("theme")
	assert.ErrorIs(t, err, boom)
	assert.False(t, ok)

	m.SetErr = boom
	assert.ErrorIs(t, m.Set("theme", "light"), boom)
	assert.Equal(t, 1, m.Writes)
}
