package emuconfig

import (
	"strconv"
)

// Slot counts of the controller profile.
const (
	NumButtons = 17
	NumAnalogs = 2
)

// Host input codes of the emulated console's buttons and sticks.
const (
	ButtonA        = 700
	ButtonB        = 701
	ButtonX        = 702
	ButtonY        = 703
	ButtonStart    = 704
	ButtonSelect   = 705
	ButtonHome     = 706
	ButtonZL       = 707
	ButtonZR       = 708
	DpadUp         = 709
	DpadDown       = 710
	DpadLeft       = 711
	DpadRight      = 712
	StickCirclePad = 713
	StickC         = 718
	TriggerL       = 773
	TriggerR       = 774
	ButtonDebug    = 781
	ButtonGPIO14   = 782
)

// Default auxiliary input devices.
const (
	DefaultMotionDevice = "engine:motion_emu,update_period:100,sensitivity:0.01,tilt_clamp:90.0"
	DefaultTouchDevice  = "engine:emu_window"
	DefaultUDPAddress   = "127.0.0.1"
	DefaultUDPPort      = 26760
)

// defaultButtons maps each button slot to its physical input code.
var defaultButtons = [NumButtons]int{
	ButtonA, ButtonB,
	ButtonX, ButtonY,
	DpadUp, DpadDown,
	DpadLeft, DpadRight,
	TriggerL, TriggerR,
	ButtonStart, ButtonSelect,
	ButtonDebug, ButtonGPIO14,
	ButtonZL, ButtonZR,
	ButtonHome,
}

var defaultAnalogs = [NumAnalogs]int{
	StickCirclePad,
	StickC,
}

// GenerateButtonParam returns the serialized gamepad binding for a button code.
func GenerateButtonParam(code int) string {
	return NewParamPackage("engine", "gamepad", "code", strconv.Itoa(code)).Serialize()
}

// GenerateAnalogParam returns the serialized gamepad binding for a stick code.
func GenerateAnalogParam(code int) string {
	return NewParamPackage("engine", "gamepad", "code", strconv.Itoa(code)).Serialize()
}

// DefaultInputProfile returns the synthesized controller profile. Bindings are
// never read from the host, so an empty stored binding cannot leave a slot unbound.
func DefaultInputProfile() InputProfile {
	var p InputProfile
	for i, code := range defaultButtons {
		p.Buttons[i] = GenerateButtonParam(code)
	}
	for i, code := range defaultAnalogs {
		p.Analogs[i] = GenerateAnalogParam(code)
	}
	p.MotionDevice = DefaultMotionDevice
	p.TouchDevice = DefaultTouchDevice
	p.UDPInputAddress = DefaultUDPAddress
	p.UDPInputPort = DefaultUDPPort
	return p
}
