package plugin

// #include <stdlib.h>
// #include "bridge.h"
import "C"
import (
	"runtime/cgo"
	"unsafe"

	"github.com/justyntemme/ladspago/pkg/ladspa"
)

// heap is where descriptor memory comes from. Everything reachable from a
// descriptor is read by C code, so it must live outside the Go heap; the
// metadata the descriptor carries back to Go is boxed instead.
type heap interface {
	malloc(n uintptr) unsafe.Pointer
	free(p unsafe.Pointer)
	box(meta *ladspa.Descriptor) uintptr
	release(box uintptr)
}

// cHeap allocates with the C allocator and boxes with cgo handles.
type cHeap struct{}

func (cHeap) malloc(n uintptr) unsafe.Pointer {
	p := C.malloc(C.size_t(n))
	if p == nil {
		panic("ladspago: out of memory")
	}
	return p
}

func (cHeap) free(p unsafe.Pointer) {
	C.free(p)
}

func (cHeap) box(meta *ladspa.Descriptor) uintptr {
	return uintptr(cgo.NewHandle(meta))
}

func (cHeap) release(box uintptr) {
	cgo.Handle(box).Delete()
}

// unbox returns the metadata stored in a descriptor's ImplementationData.
func unbox(d *C.LADSPA_Descriptor) *ladspa.Descriptor {
	box := uintptr(C.ladspago_get_box(d))
	if box == 0 {
		return nil
	}
	meta, _ := cgo.Handle(box).Value().(*ladspa.Descriptor)
	return meta
}

// cString copies s, NUL-terminated, into memory from h.
func cString(h heap, s string) *C.char {
	p := h.malloc(uintptr(len(s) + 1))
	buf := unsafe.Slice((*byte)(p), len(s)+1)
	copy(buf, s)
	buf[len(s)] = 0
	return (*C.char)(p)
}
