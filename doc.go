// File: lixenwraith/emuconfig/doc.go

// Package emuconfig keeps an emulator's typed settings registry in sync with the
// settings stored by the host platform, which is reachable only through a foreign
// call boundary.
//
// A reload pass reads every setting by its label, coerces the host's value to the
// setting's type, and falls back to the compiled-in default when the host has no
// value. It then applies the derivation rules: synthesized controller bindings,
// stereo shader selection, layout clamping, camera slots, clock parsing, log filter
// propagation and service module defaults. A reload always completes and never
// returns an error.
//
// Quick Start:
//
//	host, err := emuconfig.NewFileHost("settings.toml", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s, err := emuconfig.NewBuilder().
//	    WithHost(host).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	values := s.Values()
//	fmt.Println(values.LayoutOption.Value(), values.PPShaderName.Value())
//
//	s.Reload() // after the host's settings change
//
// Hosts:
//   - MemoryHost serves a map and can simulate an unreachable provider
//   - FileHost serves a TOML, JSON or YAML file
//   - ChannelHost forwards lookups over a native method channel
//
// Zero values:
// Platform getters answer false, 0 or 0.0 for keys they do not hold. Under the
// default ZeroAsAbsent policy such results are treated as "not set" and the
// default is kept. Hosts that report absence explicitly can use ZeroAsValue.
//
// Thread Safety:
// Each setting is individually synchronized. Reload passes are serialized, but a
// reader running alongside a reload may observe some settings updated and others not.
package emuconfig
