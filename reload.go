// FILE: lixenwraith/emuconfig/reload.go
package emuconfig

import (
	"sync"
	"time"

	logging "github.com/ipfs/go-log/v2"

	"github.com/lixenwraith/emuconfig/logfilter"
)

var log = logging.Logger("emuconfig")

// LogApplier pushes a resolved log filter and message regex into the logging subsystem.
type LogApplier func(filter, regex string) error

// Report summarizes one reload pass.
type Report struct {
	Read      int      // Labelled settings resolved
	Defaulted []string // Labels left at their default
	LogErr    error    // Problems applying the log filter
	Duration  time.Duration
}

// Syncer populates a Values registry from the host settings provider.
type Syncer struct {
	mu sync.Mutex // Serializes reload passes

	values   *Values
	adapter  *Adapter
	catalog  ServiceCatalog
	applyLog LogApplier
	metrics  *Metrics
}

// NewSyncer creates a syncer with the default service catalog and the
// process-wide log filter as applier.
func NewSyncer(values *Values, adapter *Adapter) *Syncer {
	return &Syncer{
		values:   values,
		adapter:  adapter,
		catalog:  DefaultServiceCatalog,
		applyLog: logfilter.Apply,
	}
}

// Values returns the registry the syncer populates.
func (s *Syncer) Values() *Values {
	return s.values
}

// Reload re-reads every setting from the host. It always completes; every setting
// ends up holding either the host's value or its fallback.
func (s *Syncer) Reload() {
	s.ReloadWithReport()
}

// ReloadWithReport reloads and reports what was resolved.
func (s *Syncer) ReloadWithReport() Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	r := &Report{}
	s.readValues(r)
	r.Duration = time.Since(start)

	s.metrics.reload(r.Duration)
	log.Infow("settings reloaded", "read", r.Read, "defaulted", len(r.Defaulted), "duration", r.Duration)
	return *r
}

// readInto reads a labelled setting and records it in the report.
func readInto[T Value](r *Report, a *Adapter, st *Setting[T]) {
	ReadSetting(a, st)
	r.track(st)
}

func (r *Report) track(d Descriptor) {
	r.Read++
	if d.AnyValue() == d.AnyDefault() {
		r.Defaulted = append(r.Defaulted, d.Label())
	}
}

func (s *Syncer) readValues(r *Report) {
	a, v := s.adapter, s.values

	// Controls
	v.SetInput(DefaultInputProfile())
	readInto(r, a, v.UseArticBaseController)

	// Core
	readInto(r, a, v.UseCPUJIT)
	readInto(r, a, v.CPUClockPercentage)

	// Renderer
	v.UseGLES.Set(Read(a, v.UseGLES.Label(), true))
	r.track(v.UseGLES)
	v.ShadersAccurateMul.Set(Read(a, v.ShadersAccurateMul.Label(), false))
	r.track(v.ShadersAccurateMul)
	readInto(r, a, v.GraphicsAPI)
	readInto(r, a, v.AsyncPresentation)
	readInto(r, a, v.AsyncShaderCompilation)
	readInto(r, a, v.SPIRVShaderGen)
	readInto(r, a, v.UseHWShader)
	readInto(r, a, v.UseShaderJIT)
	readInto(r, a, v.ResolutionFactor)
	readInto(r, a, v.UseDiskShaderCache)
	readInto(r, a, v.UseVsync)
	readInto(r, a, v.TextureFilter)
	readInto(r, a, v.TextureSampling)

	// The host exposes the limiter as an on/off switch; off means unlimited.
	if Read(a, "use_frame_limit", true) {
		readInto(r, a, v.FrameLimit)
	} else {
		v.FrameLimit.Set(0)
		r.track(v.FrameLimit)
	}

	readInto(r, a, v.Render3D)
	readInto(r, a, v.Factor3D)
	v.PPShaderName.Set(StereoShader(v.Render3D.Value()))
	r.track(v.PPShaderName)
	readInto(r, a, v.FilterMode)
	readInto(r, a, v.BgRed)
	readInto(r, a, v.BgGreen)
	readInto(r, a, v.BgBlue)
	readInto(r, a, v.DelayGameRenderThreadUs)
	readInto(r, a, v.DisableRightEyeRender)

	// Layout
	v.LayoutOption.Set(ClampLayout(Read(a, v.LayoutOption.Label(), 0)))
	r.track(v.LayoutOption)
	v.LargeScreenProportion.Set(DefaultLargeScreenProportion)
	r.track(v.LargeScreenProportion)
	v.SmallScreenPosition.Set(Read(a, v.SmallScreenPosition.Label(), SmallScreenTopRight))
	r.track(v.SmallScreenPosition)
	for _, st := range []*Setting[uint16]{
		v.CustomTopX, v.CustomTopY, v.CustomTopWidth, v.CustomTopHeight,
		v.CustomBottomX, v.CustomBottomY, v.CustomBottomWidth, v.CustomBottomHeight,
	} {
		readInto(r, a, st)
	}
	readInto(r, a, v.CardboardScreenSize)
	readInto(r, a, v.CardboardXShift)
	readInto(r, a, v.CardboardYShift)
	v.PortraitLayoutOption.Set(Read(a, v.PortraitLayoutOption.Label(), PortraitTopFullWidth))
	r.track(v.PortraitLayoutOption)
	for _, st := range []*Setting[uint16]{
		v.CustomPortraitTopX, v.CustomPortraitTopY, v.CustomPortraitTopWidth, v.CustomPortraitTopHeight,
		v.CustomPortraitBottomX, v.CustomPortraitBottomY, v.CustomPortraitBottomWidth, v.CustomPortraitBottomHeight,
	} {
		readInto(r, a, st)
	}

	// Utility
	readInto(r, a, v.DumpTextures)
	readInto(r, a, v.CustomTextures)
	readInto(r, a, v.PreloadTextures)
	readInto(r, a, v.AsyncCustomLoading)

	// Audio
	readInto(r, a, v.AudioEmulation)
	readInto(r, a, v.EnableAudioStretching)
	readInto(r, a, v.EnableRealtimeAudio)
	readInto(r, a, v.Volume)
	readInto(r, a, v.OutputType)
	readInto(r, a, v.OutputDevice)
	readInto(r, a, v.InputType)
	readInto(r, a, v.InputDevice)

	// Data storage
	readInto(r, a, v.UseVirtualSD)

	// System
	readInto(r, a, v.IsNew3DS)
	readInto(r, a, v.LLEApplets)
	readInto(r, a, v.RegionValue)
	readInto(r, a, v.InitClock)
	if t, err := ParseInitTime(Read(a, v.InitTime.Label(), DefaultInitTimeString)); err == nil {
		v.InitTime.Set(t)
	} else {
		log.Debugw("keeping init_time", "value", v.InitTime.Value(), "error", err)
	}
	r.track(v.InitTime)
	readInto(r, a, v.InitTicksType)
	readInto(r, a, v.InitTicksOverride)
	readInto(r, a, v.PluginLoaderEnabled)
	readInto(r, a, v.AllowPluginLoader)
	readInto(r, a, v.StepsPerHour)

	// Camera
	for slot := CameraSlot(0); slot < NumCameras; slot++ {
		keys, def := cameraKeysFor(slot), defaultCamera(slot)
		v.SetCamera(slot, CameraConfig{
			Name:   Read(a, keys.name, def.Name),
			Config: Read(a, keys.config, def.Config),
			Flip:   Read(a, keys.flip, def.Flip),
		})
	}

	// Miscellaneous
	readInto(r, a, v.LogFilter)
	readInto(r, a, v.LogRegexFilter)

	// The logging subsystem starts before settings exist and never re-reads them.
	if s.applyLog != nil {
		if err := s.applyLog(v.LogFilter.Value(), v.LogRegexFilter.Value()); err != nil {
			r.LogErr = err
			log.Warnw("log filter applied with errors", "filter", v.LogFilter.Value(), "error", err)
		}
	}

	// Debugging
	v.RecordFrameTimes.Set(Read(a, v.RecordFrameTimes.Label(), false))
	r.track(v.RecordFrameTimes)
	readInto(r, a, v.RendererDebug)
	readInto(r, a, v.UseGdbstub)
	readInto(r, a, v.GdbstubPort)
	readInto(r, a, v.InstantDebugLog)

	if s.catalog != nil {
		v.defaultLLEModules(s.catalog.ModuleNames())
	}

	// Web service
	v.WebAPIURL.Set(Read(a, v.WebAPIURL.Label(), DefaultWebAPIURL))
	r.track(v.WebAPIURL)
	v.CitraUsername.Set(Read(a, v.CitraUsername.Label(), DefaultUsername))
	r.track(v.CitraUsername)
	v.CitraToken.Set(Read(a, v.CitraToken.Label(), ""))
	r.track(v.CitraToken)
}
