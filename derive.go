// FILE: lixenwraith/emuconfig/derive.go
package emuconfig

import (
	"fmt"
	"strconv"
	"strings"
)

// Built-in post-processing shaders.
const (
	ShaderNone       = "none (builtin)"
	ShaderAnaglyph   = "dubois (builtin)"
	ShaderInterlaced = "horizontal (builtin)"
)

// Defaults that are assigned rather than read.
const (
	DefaultLargeScreenProportion = 2.25
	DefaultInitTime              = 946681277
	DefaultInitTimeString        = "946681277"
	RegionAutoSelect             = -1
	DefaultWebAPIURL             = "https://api.citra-emu.org"
	DefaultUsername              = "AZAHAR"
)

// Camera defaults.
const (
	DefaultCameraName      = "ndk"
	BackCameraPlaceholder  = "_back"
	FrontCameraPlaceholder = "_front"
)

// StereoShader returns the built-in shader matching a stereo rendering mode.
func StereoShader(mode StereoRenderOption) string {
	switch mode {
	case StereoAnaglyph:
		return ShaderAnaglyph
	case StereoInterlaced:
		return ShaderInterlaced
	default:
		return ShaderNone
	}
}

// ClampLayout converts a stored layout value. Values outside the known options,
// which older settings files can hold, become LayoutLargeScreen.
func ClampLayout(raw int) LayoutOption {
	if raw < int(MinLayoutOption) || raw > int(MaxLayoutOption) {
		return LayoutLargeScreen
	}
	return LayoutOption(raw)
}

// ParseInitTime parses a clock value the way C's strtoll does for base 10:
// leading whitespace and an optional sign, then as many digits as present.
// Trailing text is ignored. It fails when no digit is found or on overflow.
func ParseInitTime(s string) (int64, error) {
	rest := strings.TrimLeft(s, " \t\n\v\f\r")
	end := 0
	if end < len(rest) && (rest[end] == '+' || rest[end] == '-') {
		end++
	}
	digits := end
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, fmt.Errorf("invalid init_time %q: no digits", s)
	}
	v, err := strconv.ParseInt(rest[:end], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid init_time %q: %w", s, err)
	}
	return v, nil
}

// cameraKeys holds the host keys of one camera slot.
type cameraKeys struct {
	name, config, flip string
}

func cameraKeysFor(slot CameraSlot) cameraKeys {
	prefix := "camera_" + slot.String()
	return cameraKeys{
		name:   prefix + "_name",
		config: prefix + "_config",
		flip:   prefix + "_flip",
	}
}

// defaultCamera returns the built-in configuration of a slot.
func defaultCamera(slot CameraSlot) CameraConfig {
	config := BackCameraPlaceholder
	if slot == CameraInner {
		config = FrontCameraPlaceholder
	}
	return CameraConfig{Name: DefaultCameraName, Config: config}
}

// ServiceCatalog lists the optional emulated service modules.
type ServiceCatalog interface {
	ModuleNames() []string
}

// StaticCatalog is a fixed ServiceCatalog.
type StaticCatalog []string

// ModuleNames returns the catalog entries.
func (c StaticCatalog) ModuleNames() []string {
	return c
}

// DefaultServiceCatalog holds the service modules of the emulated system.
var DefaultServiceCatalog = StaticCatalog{
	"FS", "PM", "LDR_RO", "PXI", "ERR", "AC", "ACT", "AM", "BOSS", "CAM",
	"CECD", "CFG", "DLP", "DSP", "FRD", "GSP", "HID", "HTTP", "IR", "MIC",
	"MVD", "NDM", "NEWS", "NFC", "NIM", "NS", "NWM", "PTM", "QTM", "CSND",
	"SOC", "SSL", "PS", "PLGLDR", "MCU",
}
