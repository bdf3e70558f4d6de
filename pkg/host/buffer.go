package host

// #include <stdlib.h>
// #include "ladspa.h"
import "C"
import (
	"unsafe"

	"github.com/justyntemme/ladspago/pkg/ladspa"
)

// Buffer is a block of samples in C memory. Plugins keep the pointers they
// are connected to between calls, so the storage cannot live in the Go heap.
type Buffer struct {
	p *C.LADSPA_Data
	n int
}

// NewBuffer allocates a zeroed buffer of n samples.
func NewBuffer(n int) *Buffer {
	if n < 1 {
		n = 1
	}
	p := C.calloc(C.size_t(n), C.size_t(unsafe.Sizeof(C.LADSPA_Data(0))))
	if p == nil {
		panic("host: out of memory")
	}
	return &Buffer{p: (*C.LADSPA_Data)(p), n: n}
}

// Len returns the capacity in samples.
func (b *Buffer) Len() int {
	return b.n
}

// Samples returns the buffer contents.
func (b *Buffer) Samples() []ladspa.Data {
	if b.p == nil {
		return nil
	}
	return unsafe.Slice((*ladspa.Data)(unsafe.Pointer(b.p)), b.n)
}

// Free releases the memory. The buffer must be disconnected or its instance
// cleaned up first.
func (b *Buffer) Free() {
	if b.p != nil {
		C.free(unsafe.Pointer(b.p))
		b.p, b.n = nil, 0
	}
}

// Control is a single control value in C memory.
type Control struct {
	p *C.LADSPA_Data
}

// NewControl allocates a control value.
func NewControl(v ladspa.Data) *Control {
	p := (*C.LADSPA_Data)(C.malloc(C.size_t(unsafe.Sizeof(C.LADSPA_Data(0)))))
	if p == nil {
		panic("host: out of memory")
	}
	*p = C.LADSPA_Data(v)
	return &Control{p: p}
}

// Value returns the current value.
func (c *Control) Value() ladspa.Data {
	return ladspa.Data(*c.p)
}

// Set changes the value.
func (c *Control) Set(v ladspa.Data) {
	*c.p = C.LADSPA_Data(v)
}

// Free releases the memory.
func (c *Control) Free() {
	if c.p != nil {
		C.free(unsafe.Pointer(c.p))
		c.p = nil
	}
}
