// FILE: lixenwraith/emuconfig/decode_test.go
package emuconfig

import (
	"bytes"
	"encoding/json"
	"net"
	"net/url"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func reloadedValues(t *testing.T, settings map[string]any) *Values {
	t.Helper()
	s, _ := newTestSyncer(NewMemoryHost(settings), ZeroAsAbsent)
	s.Reload()
	return s.Values()
}

func TestSnapshot(t *testing.T) {
	v := reloadedValues(t, map[string]any{"resolution_factor": 2, "camera_inner_flip": 1})
	snap := v.Snapshot()

	assert.Equal(t, uint32(2), snap["resolution_factor"])
	assert.Equal(t, "engine:gamepad,code:700", snap["input.buttons.0"])
	assert.Equal(t, "engine:gamepad,code:718", snap["input.analogs.1"])
	assert.Equal(t, uint16(26760), snap["input.udp_input_port"])
	assert.Equal(t, "_front", snap["camera.inner.config"])
	assert.Equal(t, 1, snap["camera.inner.flip"])
	assert.Equal(t, false, snap["lle_modules.FS"])

	for _, label := range v.Labels() {
		assert.Contains(t, snap, label)
	}
}

func TestDiff(t *testing.T) {
	before := map[string]any{"a": 1, "b": "x", "gone": true}
	after := map[string]any{"a": 1, "b": "y", "new": 2}

	assert.Equal(t, []string{"b", "gone", "new"}, Diff(before, after))
	assert.Empty(t, Diff(before, before))
}

func TestScan(t *testing.T) {
	type Input struct {
		Buttons         map[string]string `toml:"buttons"`
		UDPInputAddress net.IP            `toml:"udp_input_address"`
		UDPInputPort    int               `toml:"udp_input_port"`
	}
	type Camera struct {
		Name   string `toml:"name"`
		Config string `toml:"config"`
	}
	type Settings struct {
		ResolutionFactor int               `toml:"resolution_factor"`
		LayoutOption     LayoutOption      `toml:"layout_option"`
		Volume           float64           `toml:"volume"`
		WebAPIURL        url.URL           `toml:"web_api_url"`
		LogFilter        string            `toml:"log_filter"`
		Input            Input             `toml:"input"`
		Camera           map[string]Camera `toml:"camera"`
		LLEModules       map[string]bool   `toml:"lle_modules"`
	}

	v := reloadedValues(t, map[string]any{
		"resolution_factor": 4,
		"layout_option":     -1,
		"volume":            50,
	})

	var s Settings
	require.NoError(t, v.Scan(&s))

	assert.Equal(t, 4, s.ResolutionFactor)
	assert.Equal(t, LayoutLargeScreen, s.LayoutOption)
	assert.InDelta(t, 0.5, s.Volume, 1e-6)
	assert.Equal(t, "api.citra-emu.org", s.WebAPIURL.Host)
	assert.Equal(t, "*:Info", s.LogFilter)
	assert.Equal(t, "engine:gamepad,code:701", s.Input.Buttons["1"])
	assert.True(t, s.Input.UDPInputAddress.Equal(net.ParseIP("127.0.0.1")))
	assert.Equal(t, 26760, s.Input.UDPInputPort)
	assert.Equal(t, Camera{Name: "ndk", Config: "_back"}, s.Camera["outer_left"])
	assert.Contains(t, s.LLEModules, "GSP")

	t.Run("RejectsNonPointer", func(t *testing.T) {
		assert.Error(t, v.Scan(Settings{}))
		assert.Error(t, v.Scan(nil))
	})
}

func TestEncode(t *testing.T) {
	v := reloadedValues(t, map[string]any{"resolution_factor": 3})
	snap := v.Snapshot()

	t.Run("TOML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, snap, "toml"))

		var out map[string]any
		_, err := toml.Decode(buf.String(), &out)
		require.NoError(t, err)
		assert.Equal(t, int64(3), out["resolution_factor"])
		assert.Equal(t, "ndk", out["camera"].(map[string]any)["inner"].(map[string]any)["name"])
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, snap, "json"))

		var out map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		assert.Equal(t, float64(3), out["resolution_factor"])
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, snap, "yaml"))

		var out map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
		assert.Equal(t, 3, out["resolution_factor"])
	})

	t.Run("Unknown", func(t *testing.T) {
		assert.ErrorIs(t, Encode(&bytes.Buffer{}, snap, "ini"), ErrUnknownFormat)
	})
}
