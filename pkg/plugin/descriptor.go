package plugin

// #cgo CFLAGS: -I${SRCDIR} -I${SRCDIR}/../../include
// #include "bridge.h"
import "C"
import (
	"unsafe"

	"github.com/justyntemme/ladspago/pkg/framework/debug"
	"github.com/justyntemme/ladspago/pkg/ladspa"
)

const ptrSize = unsafe.Sizeof(uintptr(0))

// buildDescriptor flattens meta into a C descriptor allocated from h.
//
// Allocation order: the record, label, name, maker, copyright, the port kind
// array, the port name array followed by each name, the range hint array,
// and finally the boxed metadata. A descriptor without ports has NULL
// arrays. freeDescriptor releases the same blocks in exactly the reverse
// order; keep the two in step.
func buildDescriptor(h heap, meta *ladspa.Descriptor) *C.LADSPA_Descriptor {
	if err := meta.Validate(); err != nil {
		debug.Fatal("invalid plugin descriptor %q: %v", meta.Label, err)
	}
	for _, i := range meta.UnresolvedDefaults() {
		debug.Warn("plugin %q port %d (%s): default %s has no bound to resolve against",
			meta.Label, i, meta.Ports[i].Name, meta.Ports[i].Default)
	}
	meta = meta.Clone()

	d := (*C.LADSPA_Descriptor)(h.malloc(uintptr(C.sizeof_LADSPA_Descriptor)))
	*d = C.LADSPA_Descriptor{}

	d.UniqueID = C.ulong(meta.UniqueID)
	d.Label = cString(h, meta.Label)
	d.Properties = C.LADSPA_Properties(meta.Properties)
	d.Name = cString(h, meta.Name)
	d.Maker = cString(h, meta.Maker)
	d.Copyright = cString(h, meta.Copyright)

	n := len(meta.Ports)
	d.PortCount = C.ulong(n)
	if n > 0 {
		kinds := unsafe.Slice((*C.LADSPA_PortDescriptor)(
			h.malloc(uintptr(n)*uintptr(C.sizeof_LADSPA_PortDescriptor))), n)
		for i, p := range meta.Ports {
			kinds[i] = C.LADSPA_PortDescriptor(p.Kind)
		}
		d.PortDescriptors = &kinds[0]

		names := unsafe.Slice((**C.char)(h.malloc(uintptr(n)*ptrSize)), n)
		for i, p := range meta.Ports {
			names[i] = cString(h, p.Name)
		}
		d.PortNames = &names[0]

		hints := unsafe.Slice((*C.LADSPA_PortRangeHint)(
			h.malloc(uintptr(n)*uintptr(C.sizeof_LADSPA_PortRangeHint))), n)
		for i, p := range meta.Ports {
			rh := p.RangeHint()
			hints[i] = C.LADSPA_PortRangeHint{
				HintDescriptor: C.LADSPA_PortRangeHintDescriptor(rh.Descriptor),
				LowerBound:     C.LADSPA_Data(rh.Lower),
				UpperBound:     C.LADSPA_Data(rh.Upper),
			}
		}
		d.PortRangeHints = &hints[0]
	}

	C.ladspago_set_box(d, C.uintptr_t(h.box(meta)))
	C.ladspago_bind(d)
	return d
}

// freeDescriptor releases everything buildDescriptor allocated for d.
func freeDescriptor(h heap, d *C.LADSPA_Descriptor) {
	h.release(uintptr(C.ladspago_get_box(d)))
	C.ladspago_set_box(d, 0)

	if n := int(d.PortCount); n > 0 {
		h.free(unsafe.Pointer(d.PortRangeHints))

		names := unsafe.Slice(d.PortNames, n)
		for i := n - 1; i >= 0; i-- {
			h.free(unsafe.Pointer(names[i]))
		}
		h.free(unsafe.Pointer(d.PortNames))

		h.free(unsafe.Pointer(d.PortDescriptors))
	}

	h.free(unsafe.Pointer(d.Copyright))
	h.free(unsafe.Pointer(d.Maker))
	h.free(unsafe.Pointer(d.Name))
	h.free(unsafe.Pointer(d.Label))
	h.free(unsafe.Pointer(d))
}
