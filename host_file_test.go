// FILE: lixenwraith/emuconfig/host_file_test.go
package emuconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHostFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		format  string
		content string
	}{
		{
			name: "TOML",
			file: "settings.toml",
			content: `
[Renderer]
resolution_factor = 3
render_3d = 4

[Audio]
volume = 40
output_device = "sdl2"
`,
		},
		{
			name: "JSON",
			file: "settings.json",
			content: `{
  "Renderer": {"resolution_factor": 3, "render_3d": 4},
  "Audio": {"volume": 40, "output_device": "sdl2"}
}`,
		},
		{
			name: "YAML",
			file: "settings.yaml",
			content: `
Renderer:
  resolution_factor: 3
  render_3d: 4
Audio:
  volume: 40
  output_device: sdl2
`,
		},
		{
			name:    "ExplicitFormat",
			file:    "settings.conf",
			format:  "json",
			content: `{"resolution_factor": 3, "render_3d": 4, "volume": 40, "output_device": "sdl2"}`,
		},
		{
			name:    "DetectedFromContent",
			file:    "settings.conf",
			content: "resolution_factor = 3\nrender_3d = 4\nvolume = 40\noutput_device = \"sdl2\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			host, err := NewFileHost(path, tt.format)
			require.NoError(t, err)
			assert.Equal(t, path, host.Path())

			s, _ := newTestSyncer(host, ZeroAsAbsent)
			s.Reload()
			v := s.Values()

			assert.Equal(t, uint32(3), v.ResolutionFactor.Value())
			assert.Equal(t, StereoInterlaced, v.Render3D.Value())
			assert.Equal(t, "horizontal (builtin)", v.PPShaderName.Value())
			assert.InDelta(t, 0.4, v.Volume.Value(), 1e-6)
			assert.Equal(t, "sdl2", v.OutputDevice.Value())
			assert.Zero(t, host.LiveRefs())
		})
	}
}

func TestFileHostErrors(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		_, err := NewFileHost(filepath.Join(t.TempDir(), "absent.toml"), "")
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.toml")
		require.NoError(t, os.WriteFile(path, []byte("a = 1"), 0644))
		_, err := NewFileHost(path, "ini")
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})

	t.Run("TooLarge", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.toml")
		content := "resolution_factor = 3\n# " + strings.Repeat("x", MaxSettingsFileSize) + "\nframe_limit = 42\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		_, err := NewFileHost(path, "toml")
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("AtLimit", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.toml")
		head := "resolution_factor = 3\n# "
		content := head + strings.Repeat("x", MaxSettingsFileSize-len(head)-1) + "\n"
		require.Len(t, content, MaxSettingsFileSize)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		host, err := NewFileHost(path, "toml")
		require.NoError(t, err)
		assert.Equal(t, int64(3), host.Values()["resolution_factor"])
	})

	t.Run("RefreshKeepsValuesOnError", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.toml")
		require.NoError(t, os.WriteFile(path, []byte("resolution_factor = 2"), 0644))

		host, err := NewFileHost(path, "toml")
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("resolution_factor = = ="), 0644))
		assert.Error(t, host.Refresh())
		assert.Equal(t, int64(2), host.Values()["resolution_factor"])

		require.NoError(t, os.WriteFile(path, []byte("resolution_factor = 5"), 0644))
		require.NoError(t, host.Refresh())
		assert.Equal(t, int64(5), host.Values()["resolution_factor"])
	})
}

func TestFlattenByKey(t *testing.T) {
	nested := map[string]any{
		"Renderer": map[string]any{
			"resolution_factor": 2,
			"Nested":            map[string]any{"bg_red": 0.5},
		},
		"top": "x",
	}
	assert.Equal(t, map[string]any{
		"resolution_factor": 2,
		"bg_red":            0.5,
		"top":               "x",
	}, flattenByKey(nested))
}
