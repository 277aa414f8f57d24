// FILE: lixenwraith/emuconfig/values.go
package emuconfig

import (
	"fmt"
	"maps"
	"sync"
)

// Values is the application settings registry. It is created once with compiled-in
// defaults and handed to every consumer; a Syncer mutates it in place on Reload.
type Values struct {
	// Controls
	UseArticBaseController *Setting[bool]

	// Core
	UseCPUJIT          *Setting[bool]
	CPUClockPercentage *Setting[int]

	// Renderer
	UseGLES                  *Setting[bool]
	ShadersAccurateMul       *Setting[bool]
	GraphicsAPI              *Setting[GraphicsAPI]
	AsyncPresentation        *Setting[bool]
	AsyncShaderCompilation   *Setting[bool]
	SPIRVShaderGen           *Setting[bool]
	UseHWShader              *Setting[bool]
	UseShaderJIT             *Setting[bool]
	ResolutionFactor         *Setting[uint32]
	UseDiskShaderCache       *Setting[bool]
	UseVsync                 *Setting[bool]
	TextureFilter            *Setting[TextureFilter]
	TextureSampling          *Setting[TextureSampling]
	FrameLimit               *Setting[uint16]
	Render3D                 *Setting[StereoRenderOption]
	Factor3D                 *Setting[uint32]
	PPShaderName             *Setting[string]
	FilterMode               *Setting[bool]
	BgRed                    *Setting[float32]
	BgGreen                  *Setting[float32]
	BgBlue                   *Setting[float32]
	DelayGameRenderThreadUs  *Setting[uint16]
	DisableRightEyeRender    *Setting[bool]

	// Layout
	LayoutOption               *Setting[LayoutOption]
	LargeScreenProportion      *Setting[float32]
	SmallScreenPosition        *Setting[SmallScreenPosition]
	CustomTopX                 *Setting[uint16]
	CustomTopY                 *Setting[uint16]
	CustomTopWidth             *Setting[uint16]
	CustomTopHeight            *Setting[uint16]
	CustomBottomX              *Setting[uint16]
	CustomBottomY              *Setting[uint16]
	CustomBottomWidth          *Setting[uint16]
	CustomBottomHeight         *Setting[uint16]
	CardboardScreenSize        *Setting[uint32]
	CardboardXShift            *Setting[int32]
	CardboardYShift            *Setting[int32]
	PortraitLayoutOption       *Setting[PortraitLayoutOption]
	CustomPortraitTopX         *Setting[uint16]
	CustomPortraitTopY         *Setting[uint16]
	CustomPortraitTopWidth     *Setting[uint16]
	CustomPortraitTopHeight    *Setting[uint16]
	CustomPortraitBottomX      *Setting[uint16]
	CustomPortraitBottomY      *Setting[uint16]
	CustomPortraitBottomWidth  *Setting[uint16]
	CustomPortraitBottomHeight *Setting[uint16]

	// Utility
	DumpTextures       *Setting[bool]
	CustomTextures     *Setting[bool]
	PreloadTextures    *Setting[bool]
	AsyncCustomLoading *Setting[bool]

	// Audio
	AudioEmulation        *Setting[AudioEmulation]
	EnableAudioStretching *Setting[bool]
	EnableRealtimeAudio   *Setting[bool]
	Volume                *Setting[float32]
	OutputType            *Setting[AudioOutputType]
	OutputDevice          *Setting[string]
	InputType             *Setting[AudioInputType]
	InputDevice           *Setting[string]

	// Data storage
	UseVirtualSD *Setting[bool]

	// System
	IsNew3DS            *Setting[bool]
	LLEApplets          *Setting[bool]
	RegionValue         *Setting[int]
	InitClock           *Setting[InitClock]
	InitTime            *Setting[int64]
	InitTicksType       *Setting[InitTicks]
	InitTicksOverride   *Setting[int64]
	PluginLoaderEnabled *Setting[bool]
	AllowPluginLoader   *Setting[bool]
	StepsPerHour        *Setting[uint16]

	// Miscellaneous
	LogFilter      *Setting[string]
	LogRegexFilter *Setting[string]

	// Debugging
	RecordFrameTimes *Setting[bool]
	RendererDebug    *Setting[bool]
	UseGdbstub       *Setting[bool]
	GdbstubPort      *Setting[uint16]
	InstantDebugLog  *Setting[bool]

	// Web service
	WebAPIURL     *Setting[string]
	CitraUsername *Setting[string]
	CitraToken    *Setting[string]

	descriptors []Descriptor
	byLabel     map[string]Descriptor

	// Composite, ordinal-indexed state
	compositeMu sync.RWMutex
	input       InputProfile
	cameras     [NumCameras]CameraConfig
	lleModules  map[string]bool
}

// InputProfile holds the controller bindings and auxiliary input devices.
type InputProfile struct {
	Buttons         [NumButtons]string
	Analogs         [NumAnalogs]string
	MotionDevice    string
	TouchDevice     string
	UDPInputAddress string
	UDPInputPort    uint16
}

// CameraConfig holds the settings of one camera slot.
type CameraConfig struct {
	Name   string
	Config string
	Flip   int
}

// NewValues creates a registry holding every setting at its default.
// It panics if two settings share a label, which is a programming error.
func NewValues() *Values {
	v := &Values{
		byLabel:    make(map[string]Descriptor),
		lleModules: make(map[string]bool),
	}

	// Controls
	v.UseArticBaseController = register(v, NewSetting("use_artic_base_controller", false))

	// Core
	v.UseCPUJIT = register(v, NewSetting("use_cpu_jit", true))
	v.CPUClockPercentage = register(v, NewRanged("cpu_clock_percentage", 100, 5, 400))

	// Renderer
	v.UseGLES = register(v, NewSetting("use_gles", true))
	v.ShadersAccurateMul = register(v, NewSetting("shaders_accurate_mul", false))
	v.GraphicsAPI = register(v, NewRanged("graphics_api", GraphicsAPIOpenGL, GraphicsAPISoftware, GraphicsAPIVulkan))
	v.AsyncPresentation = register(v, NewSetting("async_presentation", true))
	v.AsyncShaderCompilation = register(v, NewSetting("async_shader_compilation", false))
	v.SPIRVShaderGen = register(v, NewSetting("spirv_shader_gen", true))
	v.UseHWShader = register(v, NewSetting("use_hw_shader", true))
	v.UseShaderJIT = register(v, NewSetting("use_shader_jit", true))
	v.ResolutionFactor = register(v, NewRanged[uint32]("resolution_factor", 1, 0, 10))
	v.UseDiskShaderCache = register(v, NewSetting("use_disk_shader_cache", true))
	v.UseVsync = register(v, NewSetting("use_vsync_new", true))
	v.TextureFilter = register(v, NewSetting("texture_filter", TextureFilterNone))
	v.TextureSampling = register(v, NewSetting("texture_sampling", TextureSamplingGameControlled))
	v.FrameLimit = register(v, NewRanged[uint16]("frame_limit", 100, 0, 1000))
	v.Render3D = register(v, NewSetting("render_3d", StereoOff))
	v.Factor3D = register(v, NewRanged[uint32]("factor_3d", 0, 0, 255))
	v.PPShaderName = register(v, NewSetting("pp_shader_name", ShaderNone))
	v.FilterMode = register(v, NewSetting("filter_mode", true))
	v.BgRed = register(v, NewRanged[float32]("bg_red", 0, 0, 1))
	v.BgGreen = register(v, NewRanged[float32]("bg_green", 0, 0, 1))
	v.BgBlue = register(v, NewRanged[float32]("bg_blue", 0, 0, 1))
	v.DelayGameRenderThreadUs = register(v, NewRanged[uint16]("delay_game_render_thread_us", 0, 0, 16000))
	v.DisableRightEyeRender = register(v, NewSetting("disable_right_eye_render", false))

	// Layout
	v.LayoutOption = register(v, NewRanged("layout_option", LayoutDefault, MinLayoutOption, MaxLayoutOption))
	v.LargeScreenProportion = register(v, NewRanged[float32]("large_screen_proportion", DefaultLargeScreenProportion, 1, 16))
	v.SmallScreenPosition = register(v, NewSetting("small_screen_position", SmallScreenTopRight))
	v.CustomTopX = register(v, NewSetting[uint16]("custom_top_x", 0))
	v.CustomTopY = register(v, NewSetting[uint16]("custom_top_y", 0))
	v.CustomTopWidth = register(v, NewSetting[uint16]("custom_top_width", 800))
	v.CustomTopHeight = register(v, NewSetting[uint16]("custom_top_height", 480))
	v.CustomBottomX = register(v, NewSetting[uint16]("custom_bottom_x", 80))
	v.CustomBottomY = register(v, NewSetting[uint16]("custom_bottom_y", 500))
	v.CustomBottomWidth = register(v, NewSetting[uint16]("custom_bottom_width", 640))
	v.CustomBottomHeight = register(v, NewSetting[uint16]("custom_bottom_height", 480))
	v.CardboardScreenSize = register(v, NewRanged[uint32]("cardboard_screen_size", 85, 30, 100))
	v.CardboardXShift = register(v, NewRanged[int32]("cardboard_x_shift", 0, -100, 100))
	v.CardboardYShift = register(v, NewRanged[int32]("cardboard_y_shift", 0, -100, 100))
	v.PortraitLayoutOption = register(v, NewSetting("portrait_layout_option", PortraitTopFullWidth))
	v.CustomPortraitTopX = register(v, NewSetting[uint16]("custom_portrait_top_x", 0))
	v.CustomPortraitTopY = register(v, NewSetting[uint16]("custom_portrait_top_y", 0))
	v.CustomPortraitTopWidth = register(v, NewSetting[uint16]("custom_portrait_top_width", 800))
	v.CustomPortraitTopHeight = register(v, NewSetting[uint16]("custom_portrait_top_height", 480))
	v.CustomPortraitBottomX = register(v, NewSetting[uint16]("custom_portrait_bottom_x", 80))
	v.CustomPortraitBottomY = register(v, NewSetting[uint16]("custom_portrait_bottom_y", 500))
	v.CustomPortraitBottomWidth = register(v, NewSetting[uint16]("custom_portrait_bottom_width", 640))
	v.CustomPortraitBottomHeight = register(v, NewSetting[uint16]("custom_portrait_bottom_height", 480))

	// Utility
	v.DumpTextures = register(v, NewSetting("dump_textures", false))
	v.CustomTextures = register(v, NewSetting("custom_textures", false))
	v.PreloadTextures = register(v, NewSetting("preload_textures", false))
	v.AsyncCustomLoading = register(v, NewSetting("async_custom_loading", true))

	// Audio
	v.AudioEmulation = register(v, NewSetting("audio_emulation", AudioEmulationHLE))
	v.EnableAudioStretching = register(v, NewSetting("enable_audio_stretching", true))
	v.EnableRealtimeAudio = register(v, NewSetting("enable_realtime_audio", false))
	v.Volume = register(v, NewRanged[float32]("volume", 1, 0, 1))
	v.OutputType = register(v, NewSetting("output_type", AudioOutputAuto))
	v.OutputDevice = register(v, NewSetting("output_device", "auto"))
	v.InputType = register(v, NewSetting("input_type", AudioInputAuto))
	v.InputDevice = register(v, NewSetting("input_device", ""))

	// Data storage
	v.UseVirtualSD = register(v, NewSetting("use_virtual_sd", true))

	// System
	v.IsNew3DS = register(v, NewSetting("is_new_3ds", true))
	v.LLEApplets = register(v, NewSetting("lle_applets", false))
	v.RegionValue = register(v, NewRanged("region_value", RegionAutoSelect, RegionAutoSelect, 6))
	v.InitClock = register(v, NewSetting("init_clock", InitClockSystemTime))
	v.InitTime = register(v, NewSetting[int64]("init_time", DefaultInitTime))
	v.InitTicksType = register(v, NewSetting("init_ticks_type", InitTicksRandom))
	v.InitTicksOverride = register(v, NewSetting[int64]("init_ticks_override", 0))
	v.PluginLoaderEnabled = register(v, NewSetting("plugin_loader_enabled", false))
	v.AllowPluginLoader = register(v, NewSetting("allow_plugin_loader", true))
	v.StepsPerHour = register(v, NewSetting[uint16]("steps_per_hour", 0))

	// Miscellaneous
	v.LogFilter = register(v, NewSetting("log_filter", "*:Info"))
	v.LogRegexFilter = register(v, NewSetting("log_regex_filter", ""))

	// Debugging
	v.RecordFrameTimes = register(v, NewSetting("record_frame_times", false))
	v.RendererDebug = register(v, NewSetting("renderer_debug", false))
	v.UseGdbstub = register(v, NewSetting("use_gdbstub", false))
	v.GdbstubPort = register(v, NewSetting[uint16]("gdbstub_port", 24689))
	v.InstantDebugLog = register(v, NewSetting("instant_debug_log", false))

	// Web service
	v.WebAPIURL = register(v, NewSetting("web_api_url", DefaultWebAPIURL))
	v.CitraUsername = register(v, NewSetting("citra_username", DefaultUsername))
	v.CitraToken = register(v, NewSetting("citra_token", ""))

	v.resetComposite()
	return v
}

// register appends a descriptor to the registry, enforcing label uniqueness.
func register[T Value](v *Values, s *Setting[T]) *Setting[T] {
	if _, exists := v.byLabel[s.Label()]; exists {
		panic(fmt.Sprintf("emuconfig: duplicate setting label %q", s.Label()))
	}
	v.byLabel[s.Label()] = s
	v.descriptors = append(v.descriptors, s)
	return s
}

// All returns every labelled descriptor in declaration order.
func (v *Values) All() []Descriptor {
	out := make([]Descriptor, len(v.descriptors))
	copy(out, v.descriptors)
	return out
}

// Lookup returns the descriptor registered under label.
func (v *Values) Lookup(label string) (Descriptor, bool) {
	d, ok := v.byLabel[label]
	return d, ok
}

// Labels returns all registered labels in declaration order.
func (v *Values) Labels() []string {
	labels := make([]string, len(v.descriptors))
	for i, d := range v.descriptors {
		labels[i] = d.Label()
	}
	return labels
}

// ResetAll restores every setting, including composite state, to its default.
func (v *Values) ResetAll() {
	for _, d := range v.descriptors {
		d.Reset()
	}
	v.resetComposite()
}

func (v *Values) resetComposite() {
	v.compositeMu.Lock()
	defer v.compositeMu.Unlock()

	v.input = InputProfile{}
	for i := range v.cameras {
		v.cameras[i] = defaultCamera(CameraSlot(i))
	}
	v.lleModules = make(map[string]bool)
}

// Input returns a copy of the current input profile.
func (v *Values) Input() InputProfile {
	v.compositeMu.RLock()
	defer v.compositeMu.RUnlock()
	return v.input
}

// SetInput replaces the input profile.
func (v *Values) SetInput(p InputProfile) {
	v.compositeMu.Lock()
	v.input = p
	v.compositeMu.Unlock()
}

// Camera returns the configuration of a camera slot.
func (v *Values) Camera(slot CameraSlot) CameraConfig {
	v.compositeMu.RLock()
	defer v.compositeMu.RUnlock()
	return v.cameras[slot]
}

// SetCamera replaces the configuration of a camera slot.
func (v *Values) SetCamera(slot CameraSlot, c CameraConfig) {
	v.compositeMu.Lock()
	v.cameras[slot] = c
	v.compositeMu.Unlock()
}

// LLEModules returns a copy of the per-service low-level emulation flags.
func (v *Values) LLEModules() map[string]bool {
	v.compositeMu.RLock()
	defer v.compositeMu.RUnlock()
	return maps.Clone(v.lleModules)
}

// SetLLEModule sets the low-level emulation flag of a service module.
func (v *Values) SetLLEModule(name string, useLLE bool) {
	v.compositeMu.Lock()
	v.lleModules[name] = useLLE
	v.compositeMu.Unlock()
}

// defaultLLEModules inserts useLLE=false for every name not already present.
func (v *Values) defaultLLEModules(names []string) {
	v.compositeMu.Lock()
	defer v.compositeMu.Unlock()
	for _, name := range names {
		if _, exists := v.lleModules[name]; !exists {
			v.lleModules[name] = false
		}
	}
}
