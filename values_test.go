// FILE: lixenwraith/emuconfig/values_test.go
package emuconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetting(t *testing.T) {
	s := NewRanged[uint16]("frame_limit", 100, 0, 1000)
	assert.Equal(t, "frame_limit", s.Label())
	assert.Equal(t, uint16(100), s.Value())

	min, max, ok := s.Range()
	assert.True(t, ok)
	assert.Equal(t, uint16(0), min)
	assert.Equal(t, uint16(1000), max)

	// Range is not enforced
	s.Set(5000)
	assert.Equal(t, uint16(5000), s.Value())
	assert.Equal(t, "frame_limit=5000", s.String())

	s.Reset()
	assert.Equal(t, s.Default(), s.Value())

	_, _, ok = NewSetting("name", "x").Range()
	assert.False(t, ok)
}

func TestValuesRegistry(t *testing.T) {
	v := NewValues()

	t.Run("UniqueLabels", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, label := range v.Labels() {
			assert.False(t, seen[label], "duplicate label %s", label)
			seen[label] = true
		}
		assert.Len(t, v.All(), len(seen))
	})

	t.Run("Lookup", func(t *testing.T) {
		d, ok := v.Lookup("use_vsync_new")
		require.True(t, ok)
		assert.Same(t, v.UseVsync, d)

		_, ok = v.Lookup("use_vsync")
		assert.False(t, ok)
	})

	t.Run("Defaults", func(t *testing.T) {
		assert.Equal(t, "*:Info", v.LogFilter.Value())
		assert.Equal(t, int64(DefaultInitTime), v.InitTime.Value())
		assert.Equal(t, RegionAutoSelect, v.RegionValue.Value())
		assert.Equal(t, LayoutDefault, v.LayoutOption.Value())
		assert.Equal(t, float32(DefaultLargeScreenProportion), v.LargeScreenProportion.Value())
		assert.Equal(t, DefaultUsername, v.CitraUsername.Value())
		assert.Empty(t, v.LLEModules())
	})

	t.Run("DuplicateLabelPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			register(v, NewSetting("log_filter", ""))
		})
	})
}

func TestValuesComposite(t *testing.T) {
	v := NewValues()

	t.Run("LLEInsertIfAbsent", func(t *testing.T) {
		v.SetLLEModule("GSP", true)
		v.defaultLLEModules([]string{"GSP", "HID"})
		assert.Equal(t, map[string]bool{"GSP": true, "HID": false}, v.LLEModules())

		// Returned map is a copy
		v.LLEModules()["HID"] = true
		assert.False(t, v.LLEModules()["HID"])
	})

	t.Run("Camera", func(t *testing.T) {
		v.SetCamera(CameraOuterLeft, CameraConfig{Name: "blank", Flip: 2})
		assert.Equal(t, CameraConfig{Name: "blank", Flip: 2}, v.Camera(CameraOuterLeft))
	})

	t.Run("ResetAll", func(t *testing.T) {
		v.ResolutionFactor.Set(7)
		v.SetInput(DefaultInputProfile())

		v.ResetAll()

		assert.Equal(t, uint32(1), v.ResolutionFactor.Value())
		assert.Equal(t, InputProfile{}, v.Input())
		assert.Equal(t, defaultCamera(CameraOuterLeft), v.Camera(CameraOuterLeft))
		assert.Empty(t, v.LLEModules())
	})
}
