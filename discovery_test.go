// FILE: lixenwraith/emuconfig/discovery_test.go
package emuconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverSettingsFile(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(second, "settings.json"), []byte("{}"), 0644))

	opts := FileDiscoveryOptions{
		Name:       "settings",
		Extensions: []string{".toml", ".json"},
		Paths:      []string{first, second},
	}
	assert.Equal(t, filepath.Join(second, "settings.json"), DiscoverSettingsFile(opts))

	t.Run("CustomPathsWin", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(first, "settings.toml"), nil, 0644))
		assert.Equal(t, filepath.Join(first, "settings.toml"), DiscoverSettingsFile(opts))
	})

	t.Run("DirectoriesAreSkipped", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "settings.toml"), 0755))
		assert.Empty(t, DiscoverSettingsFile(FileDiscoveryOptions{
			Name:       "settings",
			Extensions: []string{".toml"},
			Paths:      []string{dir},
		}))
	})

	t.Run("XDG", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", home)
		t.Setenv("XDG_CONFIG_DIRS", "")
		require.NoError(t, os.MkdirAll(filepath.Join(home, "azahar"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(home, "azahar", "settings.yaml"), nil, 0644))

		opts := DefaultDiscoveryOptions("azahar")
		opts.UseCurrentDir = false
		assert.Equal(t, filepath.Join(home, "azahar", "settings.yaml"), DiscoverSettingsFile(opts))
	})
}

func TestGetXDGConfigPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/home/u/.config")
	t.Setenv("XDG_CONFIG_DIRS", "/a"+string(os.PathListSeparator)+"/b")

	assert.Equal(t, []string{
		filepath.Join("/home/u/.config", "app"),
		filepath.Join("/a", "app"),
		filepath.Join("/b", "app"),
	}, getXDGConfigPaths("app"))
}

func TestBuilderWithFileDiscovery(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.toml"), []byte("resolution_factor = 6\n"), 0644))

	s, err := NewBuilder().
		WithFileDiscovery(FileDiscoveryOptions{Name: "settings", Extensions: []string{".toml"}, Paths: []string{dir}}).
		WithLogApplier(noLog).
		Build()
	require.NoError(t, err)
	assert.Equal(t, uint32(6), s.Values().ResolutionFactor.Value())
}
