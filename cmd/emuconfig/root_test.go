package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestLabelsCommand(t *testing.T) {
	out := run(t, "labels")
	assert.Contains(t, out, "use_vsync_new")
	assert.Contains(t, out, "log_filter")
}

func TestDumpCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("[Renderer]\nresolution_factor = 4\n"), 0644))

	t.Run("JSON", func(t *testing.T) {
		out := run(t, "dump", "--settings", path, "-o", "json")

		var snap map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &snap))
		assert.Equal(t, float64(4), snap["resolution_factor"])
	})

	t.Run("Defaulted", func(t *testing.T) {
		out := run(t, "dump", "--settings", path, "--defaulted")
		assert.Contains(t, out, "use_cpu_jit")
		assert.NotContains(t, out, "resolution_factor")
	})
}
