// Package ladspa is the author-facing model of a LADSPA plugin: descriptors,
// ports, range hints and the typed port connections handed to Plugin.Run.
package ladspa

import "strings"

// Data is the sample and control value type used by LADSPA.
type Data = float32

// Property bits, matching LADSPA_PROPERTY_*.
const (
	PropertyRealtime      = 0x1
	PropertyInplaceBroken = 0x2
	PropertyHardRTCapable = 0x4
)

// Port descriptor bits, matching LADSPA_PORT_*.
const (
	PortInput   = 0x1
	PortOutput  = 0x2
	PortControl = 0x4
	PortAudio   = 0x8
)

// Range hint bits, matching LADSPA_HINT_*.
const (
	HintBoundedBelow = 0x1
	HintBoundedAbove = 0x2
	HintToggled      = 0x4
	HintSampleRate   = 0x8
	HintLogarithmic  = 0x10
	HintInteger      = 0x20

	HintDefaultMask = 0x3C0
)

// Properties is the plugin property bitset.
type Properties int32

const (
	PropNone                Properties = 0
	PropRealtime            Properties = PropertyRealtime
	PropInplaceBroken       Properties = PropertyInplaceBroken
	PropHardRealtimeCapable Properties = PropertyHardRTCapable
)

// Has reports whether all bits of p are set.
func (pr Properties) Has(p Properties) bool {
	return pr&p == p
}

func (pr Properties) String() string {
	if pr == PropNone {
		return "none"
	}
	var parts []string
	if pr.Has(PropRealtime) {
		parts = append(parts, "realtime")
	}
	if pr.Has(PropInplaceBroken) {
		parts = append(parts, "inplace-broken")
	}
	if pr.Has(PropHardRealtimeCapable) {
		parts = append(parts, "hard-rt-capable")
	}
	return strings.Join(parts, "|")
}

// PortKind identifies one of the four legal port descriptor combinations.
type PortKind int32

const (
	PortInvalid       PortKind = 0
	PortAudioInput    PortKind = PortAudio | PortInput
	PortAudioOutput   PortKind = PortAudio | PortOutput
	PortControlInput  PortKind = PortControl | PortInput
	PortControlOutput PortKind = PortControl | PortOutput
)

// Valid reports whether k is one of the four port kinds.
func (k PortKind) Valid() bool {
	switch k {
	case PortAudioInput, PortAudioOutput, PortControlInput, PortControlOutput:
		return true
	}
	return false
}

func (k PortKind) IsAudio() bool   { return k&PortAudio != 0 }
func (k PortKind) IsControl() bool { return k&PortControl != 0 }
func (k PortKind) IsInput() bool   { return k&PortInput != 0 }
func (k PortKind) IsOutput() bool  { return k&PortOutput != 0 }

func (k PortKind) String() string {
	switch k {
	case PortAudioInput:
		return "audio input"
	case PortAudioOutput:
		return "audio output"
	case PortControlInput:
		return "control input"
	case PortControlOutput:
		return "control output"
	default:
		return "invalid"
	}
}

// ControlHint suggests how a control port's value should be treated.
type ControlHint int32

const (
	HintNone ControlHint = 0
	// Toggled ports are on when > 0 and off otherwise.
	Toggled ControlHint = HintToggled
	// SampleRateScaled bounds are multiplied by the sample rate.
	SampleRateScaled ControlHint = HintSampleRate
	Logarithmic      ControlHint = HintLogarithmic
	IntegerValued    ControlHint = HintInteger
)

// DefaultValue is the symbolic default of a control port. The zero value
// means no default.
type DefaultValue int32

const (
	DefaultNone    DefaultValue = 0
	DefaultMinimum DefaultValue = 0x40
	DefaultLow     DefaultValue = 0x80
	DefaultMiddle  DefaultValue = 0xC0
	DefaultHigh    DefaultValue = 0x100
	DefaultMaximum DefaultValue = 0x140
	Default0       DefaultValue = 0x200
	Default1       DefaultValue = 0x240
	Default100     DefaultValue = 0x280
	Default440     DefaultValue = 0x2C0
)

// NeedsBounds reports whether resolving d requires a lower or upper bound.
func (d DefaultValue) NeedsBounds() (lower, upper bool) {
	switch d {
	case DefaultMinimum:
		return true, false
	case DefaultMaximum:
		return false, true
	case DefaultLow, DefaultMiddle, DefaultHigh:
		return true, true
	}
	return false, false
}

func (d DefaultValue) String() string {
	switch d {
	case DefaultNone:
		return "none"
	case DefaultMinimum:
		return "minimum"
	case DefaultLow:
		return "low"
	case DefaultMiddle:
		return "middle"
	case DefaultHigh:
		return "high"
	case DefaultMaximum:
		return "maximum"
	case Default0:
		return "0"
	case Default1:
		return "1"
	case Default100:
		return "100"
	case Default440:
		return "440"
	default:
		return "invalid"
	}
}
