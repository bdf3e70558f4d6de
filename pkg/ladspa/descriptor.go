package ladspa

import (
	"fmt"
	"math"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Port describes one connection point of a plugin. Its position in
// Descriptor.Ports is its port number.
type Port struct {
	Name    string
	Kind    PortKind
	Hint    ControlHint
	Default DefaultValue

	// Bounds are optional; nil means unbounded on that side.
	LowerBound *Data
	UpperBound *Data
}

// RangeHint is the flattened form of a port's hints, as found in
// LADSPA_PortRangeHint.
type RangeHint struct {
	Descriptor int32
	Lower      Data
	Upper      Data
}

// RangeHint combines the control hints, the default code and the bounds.
// Missing bounds are reported as 0. HintBoundedBelow and HintBoundedAbove
// are added for each bound that is present, beyond the bits the author set
// with Hint.
func (p Port) RangeHint() RangeHint {
	rh := RangeHint{Descriptor: int32(p.Hint) | int32(p.Default)}
	if p.LowerBound != nil {
		rh.Descriptor |= HintBoundedBelow
		rh.Lower = *p.LowerBound
	}
	if p.UpperBound != nil {
		rh.Descriptor |= HintBoundedAbove
		rh.Upper = *p.UpperBound
	}
	return rh
}

func (rh RangeHint) BoundedBelow() bool { return rh.Descriptor&HintBoundedBelow != 0 }
func (rh RangeHint) BoundedAbove() bool { return rh.Descriptor&HintBoundedAbove != 0 }
func (rh RangeHint) Toggled() bool      { return rh.Descriptor&HintToggled != 0 }
func (rh RangeHint) SampleRate() bool   { return rh.Descriptor&HintSampleRate != 0 }
func (rh RangeHint) Logarithmic() bool  { return rh.Descriptor&HintLogarithmic != 0 }
func (rh RangeHint) Integer() bool      { return rh.Descriptor&HintInteger != 0 }

// DefaultCode returns the symbolic default encoded in the hint.
func (rh RangeHint) DefaultCode() DefaultValue {
	return DefaultValue(rh.Descriptor & HintDefaultMask)
}

// Default resolves the symbolic default to a value for the given sample
// rate. It returns false when the hint carries no default or the bounds it
// depends on are missing.
func (rh RangeHint) Default(sampleRate uint64) (Data, bool) {
	lo, hi := float64(rh.Lower), float64(rh.Upper)
	if rh.SampleRate() {
		lo *= float64(sampleRate)
		hi *= float64(sampleRate)
	}

	interp := func(wLo, wHi float64) float64 {
		if rh.Logarithmic() && lo > 0 && hi > 0 {
			return math.Exp(math.Log(lo)*wLo + math.Log(hi)*wHi)
		}
		return lo*wLo + hi*wHi
	}

	var v float64
	code := rh.DefaultCode()
	needLo, needHi := code.NeedsBounds()
	if (needLo && !rh.BoundedBelow()) || (needHi && !rh.BoundedAbove()) {
		return 0, false
	}
	switch code {
	case DefaultMinimum:
		v = lo
	case DefaultLow:
		v = interp(0.75, 0.25)
	case DefaultMiddle:
		v = interp(0.5, 0.5)
	case DefaultHigh:
		v = interp(0.25, 0.75)
	case DefaultMaximum:
		v = hi
	case Default0:
		v = 0
	case Default1:
		v = 1
	case Default100:
		v = 100
	case Default440:
		v = 440
	default:
		return 0, false
	}
	if rh.Integer() {
		v = math.Round(v)
	}
	return Data(v), true
}

// PortBuilder assembles a Port.
type PortBuilder struct {
	port Port
}

// NewPort starts building a port of the given kind.
func NewPort(name string, kind PortKind) *PortBuilder {
	return &PortBuilder{port: Port{Name: name, Kind: kind}}
}

// Hint adds control hints.
func (b *PortBuilder) Hint(h ControlHint) *PortBuilder {
	b.port.Hint |= h
	return b
}

// Default sets the symbolic default.
func (b *PortBuilder) Default(d DefaultValue) *PortBuilder {
	b.port.Default = d
	return b
}

// Min sets the lower bound.
func (b *PortBuilder) Min(v Data) *PortBuilder {
	b.port.LowerBound = &v
	return b
}

// Max sets the upper bound.
func (b *PortBuilder) Max(v Data) *PortBuilder {
	b.port.UpperBound = &v
	return b
}

// Range sets both bounds.
func (b *PortBuilder) Range(lo, hi Data) *PortBuilder {
	return b.Min(lo).Max(hi)
}

// Build returns the port.
func (b *PortBuilder) Build() Port {
	return b.port
}

// Factory creates a plugin instance for a host sample rate.
type Factory func(desc *Descriptor, sampleRate uint64) Plugin

// Descriptor is the metadata of one plugin in a library.
type Descriptor struct {
	UniqueID   uint64
	Label      string
	Properties Properties
	Name       string
	Maker      string
	Copyright  string
	Ports      []Port
	New        Factory
}

// Validate reports every problem that would make the descriptor impossible
// to expose through the C interface.
func (d *Descriptor) Validate() error {
	var result *multierror.Error

	checkString := func(field, s string) {
		if strings.IndexByte(s, 0) >= 0 {
			result = multierror.Append(result, fmt.Errorf("%s %q contains a NUL byte", field, s))
		}
	}
	checkString("label", d.Label)
	checkString("name", d.Name)
	checkString("maker", d.Maker)
	checkString("copyright", d.Copyright)

	if d.New == nil {
		result = multierror.Append(result, fmt.Errorf("plugin %q has no factory", d.Label))
	}

	for i, p := range d.Ports {
		checkString(fmt.Sprintf("port %d name", i), p.Name)
		if !p.Kind.Valid() {
			result = multierror.Append(result, fmt.Errorf("port %d (%s) has invalid kind %d", i, p.Name, p.Kind))
		}
	}

	return result.ErrorOrNil()
}

// UnresolvedDefaults returns the numbers of the ports whose symbolic default
// depends on a bound they do not have. Such ports are legal; hosts simply
// cannot compute their default.
func (d *Descriptor) UnresolvedDefaults() []int {
	var ports []int
	for i, p := range d.Ports {
		needLo, needHi := p.Default.NeedsBounds()
		if (needLo && p.LowerBound == nil) || (needHi && p.UpperBound == nil) {
			ports = append(ports, i)
		}
	}
	return ports
}

// Clone returns a deep copy of the descriptor.
func (d *Descriptor) Clone() *Descriptor {
	c := *d
	c.Ports = make([]Port, len(d.Ports))
	for i, p := range d.Ports {
		if p.LowerBound != nil {
			lo := *p.LowerBound
			p.LowerBound = &lo
		}
		if p.UpperBound != nil {
			hi := *p.UpperBound
			p.UpperBound = &hi
		}
		c.Ports[i] = p
	}
	return &c
}

// PortCount returns the number of ports.
func (d *Descriptor) PortCount() int {
	return len(d.Ports)
}

// CountPorts returns how many ports have the given kind.
func (d *Descriptor) CountPorts(kind PortKind) int {
	n := 0
	for _, p := range d.Ports {
		if p.Kind == kind {
			n++
		}
	}
	return n
}
