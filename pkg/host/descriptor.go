package host

// #include "ladspa.h"
import "C"
import (
	"unsafe"

	"github.com/justyntemme/ladspago/pkg/ladspa"
)

// PortInfo is a snapshot of one port of a descriptor.
type PortInfo struct {
	Name string
	Kind ladspa.PortKind
	Hint ladspa.RangeHint
}

// Info is a Go copy of the metadata in a C descriptor.
type Info struct {
	UniqueID   uint64
	Label      string
	Properties ladspa.Properties
	Name       string
	Maker      string
	Copyright  string
	Ports      []PortInfo
}

// Descriptor is one plugin of a library.
type Descriptor struct {
	Info
	Index uint64

	lib *Library
	c   *C.LADSPA_Descriptor
}

func newDescriptor(lib *Library, index uint64, d *C.LADSPA_Descriptor) *Descriptor {
	return &Descriptor{Info: readInfo(d), Index: index, lib: lib, c: d}
}

func readInfo(d *C.LADSPA_Descriptor) Info {
	info := Info{
		UniqueID:   uint64(d.UniqueID),
		Label:      goString(d.Label),
		Properties: ladspa.Properties(d.Properties),
		Name:       goString(d.Name),
		Maker:      goString(d.Maker),
		Copyright:  goString(d.Copyright),
	}

	n := int(d.PortCount)
	if n == 0 {
		return info
	}
	kinds := unsafe.Slice(d.PortDescriptors, n)
	names := unsafe.Slice(d.PortNames, n)
	var hints []C.LADSPA_PortRangeHint
	if d.PortRangeHints != nil {
		hints = unsafe.Slice(d.PortRangeHints, n)
	}

	info.Ports = make([]PortInfo, n)
	for i := range info.Ports {
		p := PortInfo{Name: goString(names[i]), Kind: ladspa.PortKind(kinds[i])}
		if hints != nil {
			p.Hint = ladspa.RangeHint{
				Descriptor: int32(hints[i].HintDescriptor),
				Lower:      ladspa.Data(hints[i].LowerBound),
				Upper:      ladspa.Data(hints[i].UpperBound),
			}
		}
		info.Ports[i] = p
	}
	return info
}

func goString(s *C.char) string {
	if s == nil {
		return ""
	}
	return C.GoString(s)
}

// HasRunAdding reports whether the plugin supports run_adding.
func (d *Descriptor) HasRunAdding() bool {
	return d.c.run_adding != nil && d.c.set_run_adding_gain != nil
}

// PortsOf returns the numbers of the ports of the given kind, in order.
func (d *Descriptor) PortsOf(kind ladspa.PortKind) []int {
	var out []int
	for i, p := range d.Ports {
		if p.Kind == kind {
			out = append(out, i)
		}
	}
	return out
}
