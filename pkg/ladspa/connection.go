package ladspa

import (
	"fmt"
	"unsafe"
)

// AudioView is a run of host-owned samples. The host hands over only a base
// pointer; the length becomes known per block and is refreshed on every
// run call rather than cached.
type AudioView struct {
	base *Data
	n    int
}

// Base returns the pointer the view currently refers to.
func (v *AudioView) Base() *Data {
	return v.base
}

// Len returns the current length.
func (v *AudioView) Len() int {
	return v.n
}

// Resize sets the length, keeping the base pointer.
func (v *AudioView) Resize(n int) {
	v.n = n
}

// Redirect points the view at another buffer.
func (v *AudioView) Redirect(base *Data, n int) {
	v.base = base
	v.n = n
}

// Samples returns the view as a slice over the referenced memory.
func (v *AudioView) Samples() []Data {
	if v.base == nil || v.n == 0 {
		return nil
	}
	return unsafe.Slice(v.base, v.n)
}

// PortConnection binds a port to the memory the host connected it to.
// Audio ports hold an AudioView; control ports hold a pointer to a single
// value. Output views are redirected in place by the run-adding engine, so
// the same *PortConnection stays valid across redirection.
type PortConnection struct {
	Port Port

	audio   AudioView
	control *Data
}

// Connect creates a connection for port at location. Audio views start with
// length 0. A port kind outside the four legal kinds is a contract violation
// and panics.
func Connect(port Port, location *Data) *PortConnection {
	c := &PortConnection{Port: port}
	switch port.Kind {
	case PortAudioInput, PortAudioOutput:
		c.audio = AudioView{base: location}
	case PortControlInput, PortControlOutput:
		c.control = location
	default:
		panic(fmt.Sprintf("ladspa: port %q has invalid kind %d", port.Name, port.Kind))
	}
	return c
}

// Kind returns the port kind.
func (c *PortConnection) Kind() PortKind {
	return c.Port.Kind
}

// View returns the mutable audio view of an audio port, or nil.
func (c *PortConnection) View() *AudioView {
	if !c.Port.Kind.IsAudio() {
		return nil
	}
	return &c.audio
}

// Audio returns the samples of an audio input port.
func (c *PortConnection) Audio() []Data {
	if c.Port.Kind != PortAudioInput {
		panic("ladspa: Audio called on a port that is not an audio input")
	}
	return c.audio.Samples()
}

// AudioOut returns the writable samples of an audio output port.
func (c *PortConnection) AudioOut() []Data {
	if c.Port.Kind != PortAudioOutput {
		panic("ladspa: AudioOut called on a port that is not an audio output")
	}
	return c.audio.Samples()
}

// Control returns the value of a control port.
func (c *PortConnection) Control() Data {
	if !c.Port.Kind.IsControl() {
		panic("ladspa: Control called on a port that is not a control port")
	}
	if c.control == nil {
		return 0
	}
	return *c.control
}

// SetControl writes the value of a control output port.
func (c *PortConnection) SetControl(v Data) {
	if c.Port.Kind != PortControlOutput {
		panic("ladspa: SetControl called on a port that is not a control output")
	}
	if c.control != nil {
		*c.control = v
	}
}
