package emuconfig

// GraphicsAPI selects the rendering backend.
type GraphicsAPI int

const (
	GraphicsAPISoftware GraphicsAPI = iota
	GraphicsAPIOpenGL
	GraphicsAPIVulkan
)

// TextureFilter selects the texture upscaling filter.
type TextureFilter int

const (
	TextureFilterNone TextureFilter = iota
	TextureFilterAnime4K
	TextureFilterBicubic
	TextureFilterScaleForce
	TextureFilterXbrz
	TextureFilterMMPX
)

// TextureSampling overrides how the guest samples textures.
type TextureSampling int

const (
	TextureSamplingGameControlled TextureSampling = iota
	TextureSamplingNearestNeighbor
	TextureSamplingLinear
)

// StereoRenderOption selects the stereoscopic 3D rendering mode.
type StereoRenderOption int

const (
	StereoOff StereoRenderOption = iota
	StereoSideBySide
	StereoSideBySideFull
	StereoAnaglyph
	StereoInterlaced
	StereoReverseInterlaced
	StereoCardboardVR
)

func (o StereoRenderOption) String() string {
	switch o {
	case StereoOff:
		return "off"
	case StereoSideBySide:
		return "side_by_side"
	case StereoSideBySideFull:
		return "side_by_side_full"
	case StereoAnaglyph:
		return "anaglyph"
	case StereoInterlaced:
		return "interlaced"
	case StereoReverseInterlaced:
		return "reverse_interlaced"
	case StereoCardboardVR:
		return "cardboard_vr"
	default:
		return "unknown"
	}
}

// LayoutOption selects the landscape screen layout.
type LayoutOption int

const (
	LayoutDefault LayoutOption = iota
	LayoutSingleScreen
	LayoutLargeScreen
	LayoutSideScreen
	LayoutHybridScreen
	LayoutCustom
)

// Valid layout bounds. Older stored values may fall outside them.
const (
	MinLayoutOption = LayoutDefault
	MaxLayoutOption = LayoutCustom
)

// SmallScreenPosition places the small screen in the large-screen layout.
type SmallScreenPosition int

const (
	SmallScreenTopRight SmallScreenPosition = iota
	SmallScreenMiddleRight
	SmallScreenBottomRight
	SmallScreenTopLeft
	SmallScreenMiddleLeft
	SmallScreenBottomLeft
	SmallScreenAboveLarge
	SmallScreenBelowLarge
)

// PortraitLayoutOption selects the portrait screen layout.
type PortraitLayoutOption int

const (
	PortraitTopFullWidth PortraitLayoutOption = iota
	PortraitCustomLayout
	PortraitOriginal
)

// AudioEmulation selects the DSP emulation mode.
type AudioEmulation int

const (
	AudioEmulationHLE AudioEmulation = iota
	AudioEmulationLLE
	AudioEmulationLLEMultithreaded
)

// AudioOutputType selects the audio sink.
type AudioOutputType int

const (
	AudioOutputAuto AudioOutputType = iota
	AudioOutputNull
	AudioOutputCubeb
	AudioOutputOpenAL
	AudioOutputSDL2
)

// AudioInputType selects the microphone source.
type AudioInputType int

const (
	AudioInputAuto AudioInputType = iota
	AudioInputNull
	AudioInputStatic
	AudioInputCubeb
	AudioInputOpenAL
)

// InitClock selects how the guest clock is initialised.
type InitClock int

const (
	InitClockSystemTime InitClock = iota
	InitClockFixedTime
)

// InitTicks selects how the guest tick counter is initialised.
type InitTicks int

const (
	InitTicksRandom InitTicks = iota
	InitTicksFixed
)

// CameraSlot indexes the per-camera settings.
type CameraSlot int

const (
	CameraOuterRight CameraSlot = iota
	CameraInner
	CameraOuterLeft

	NumCameras = 3
)

func (c CameraSlot) String() string {
	switch c {
	case CameraOuterRight:
		return "outer_right"
	case CameraInner:
		return "inner"
	case CameraOuterLeft:
		return "outer_left"
	default:
		return "unknown"
	}
}
