package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsStoreDefaults(t *testing.T) {
	store := NewSettingsStore(filepath.Join(t.TempDir(), "settings.json"))

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultWindowSettings(), settings)
}

func TestSettingsStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	store := NewSettingsStore(path)

	require.NoError(t, store.Save(&WindowSettings{Decorated: false, Title: "  Now Playing  "}))

	settings, err := store.Load()
	require.NoError(t, err)
	assert.False(t, settings.Decorated)
	assert.Equal(t, "Now Playing", settings.Title)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSettingsStoreRejectsInvalid(t *testing.T) {
	store := NewSettingsStore(filepath.Join(t.TempDir(), "settings.json"))

	assert.Error(t, store.Save(nil))
	assert.Error(t, store.Save(&WindowSettings{Decorated: true, Title: "   "}))
}

func TestSettingsStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewSettingsStore(path).Load()
	assert.Error(t, err)
}

func TestSettingsStorePartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"decorated": false}`), 0644))

	settings, err := NewSettingsStore(path).Load()
	require.NoError(t, err)
	assert.False(t, settings.Decorated)
	assert.Equal(t, DefaultWindowTitle, settings.Title)
}
