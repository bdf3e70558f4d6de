package host

/*
#include <stdint.h>
#include "ladspa.h"

// Handles stay integers on the Go side; plugins are free to return small
// values that are not real addresses.
static uintptr_t lg_instantiate(const LADSPA_Descriptor *d, unsigned long rate) {
	return (uintptr_t)d->instantiate(d, rate);
}

static void lg_connect_port(const LADSPA_Descriptor *d, uintptr_t h, unsigned long port, LADSPA_Data *loc) {
	d->connect_port((LADSPA_Handle)h, port, loc);
}

static void lg_activate(const LADSPA_Descriptor *d, uintptr_t h) {
	if (d->activate) d->activate((LADSPA_Handle)h);
}

static void lg_run(const LADSPA_Descriptor *d, uintptr_t h, unsigned long n) {
	d->run((LADSPA_Handle)h, n);
}

static void lg_run_adding(const LADSPA_Descriptor *d, uintptr_t h, unsigned long n) {
	d->run_adding((LADSPA_Handle)h, n);
}

static void lg_set_run_adding_gain(const LADSPA_Descriptor *d, uintptr_t h, LADSPA_Data gain) {
	d->set_run_adding_gain((LADSPA_Handle)h, gain);
}

static void lg_deactivate(const LADSPA_Descriptor *d, uintptr_t h) {
	if (d->deactivate) d->deactivate((LADSPA_Handle)h);
}

static void lg_cleanup(const LADSPA_Descriptor *d, uintptr_t h) {
	d->cleanup((LADSPA_Handle)h);
}
*/
import "C"
import (
	"errors"
	"fmt"

	"github.com/justyntemme/ladspago/pkg/ladspa"
)

// ErrNoRunAdding is returned by RunAdding and SetRunAddingGain when the
// plugin does not provide them.
var ErrNoRunAdding = errors.New("plugin does not support run_adding")

// Instance is one instantiation of a descriptor. Calls on an instance must
// not be made concurrently.
type Instance struct {
	desc   *Descriptor
	handle C.uintptr_t
	active bool
}

// Instantiate creates an instance for the given sample rate.
func (d *Descriptor) Instantiate(sampleRate uint64) (*Instance, error) {
	h := C.lg_instantiate(d.c, C.ulong(sampleRate))
	if h == 0 {
		return nil, fmt.Errorf("instantiate %s at %d Hz failed", d.Label, sampleRate)
	}
	return &Instance{desc: d, handle: h}, nil
}

// Descriptor returns the descriptor the instance was created from.
func (in *Instance) Descriptor() *Descriptor {
	return in.desc
}

func (in *Instance) port(port int, audio bool) error {
	if port < 0 || port >= len(in.desc.Ports) {
		return fmt.Errorf("%s: port %d out of range", in.desc.Label, port)
	}
	if in.desc.Ports[port].Kind.IsAudio() != audio {
		return fmt.Errorf("%s: port %d (%s) is a %s port", in.desc.Label, port,
			in.desc.Ports[port].Name, in.desc.Ports[port].Kind)
	}
	return nil
}

// Connect attaches an audio port to buf.
func (in *Instance) Connect(port int, buf *Buffer) error {
	if err := in.port(port, true); err != nil {
		return err
	}
	C.lg_connect_port(in.desc.c, in.handle, C.ulong(port), buf.p)
	return nil
}

// ConnectControl attaches a control port to c.
func (in *Instance) ConnectControl(port int, c *Control) error {
	if err := in.port(port, false); err != nil {
		return err
	}
	C.lg_connect_port(in.desc.c, in.handle, C.ulong(port), c.p)
	return nil
}

// Activate calls activate if the plugin provides it.
func (in *Instance) Activate() {
	C.lg_activate(in.desc.c, in.handle)
	in.active = true
}

// Run processes sampleCount samples.
func (in *Instance) Run(sampleCount int) {
	C.lg_run(in.desc.c, in.handle, C.ulong(sampleCount))
}

// RunAdding processes sampleCount samples, mixing into the output buffers.
func (in *Instance) RunAdding(sampleCount int) error {
	if !in.desc.HasRunAdding() {
		return ErrNoRunAdding
	}
	C.lg_run_adding(in.desc.c, in.handle, C.ulong(sampleCount))
	return nil
}

// SetRunAddingGain sets the gain used by RunAdding.
func (in *Instance) SetRunAddingGain(gain ladspa.Data) error {
	if !in.desc.HasRunAdding() {
		return ErrNoRunAdding
	}
	C.lg_set_run_adding_gain(in.desc.c, in.handle, C.LADSPA_Data(gain))
	return nil
}

// Deactivate calls deactivate if the plugin provides it.
func (in *Instance) Deactivate() {
	C.lg_deactivate(in.desc.c, in.handle)
	in.active = false
}

// Cleanup deactivates the instance if needed and releases it. The instance
// must not be used afterwards.
func (in *Instance) Cleanup() {
	if in.handle == 0 {
		return
	}
	if in.active {
		in.Deactivate()
	}
	C.lg_cleanup(in.desc.c, in.handle)
	in.handle = 0
}
