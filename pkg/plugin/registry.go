package plugin

// #include "bridge.h"
import "C"
import (
	"sync"
	"unsafe"

	"github.com/justyntemme/ladspago/pkg/framework/debug"
	"github.com/justyntemme/ladspago/pkg/framework/guard"
	"github.com/justyntemme/ladspago/pkg/ladspa"
)

// Describer returns the plugin at index, or nil when index is past the last
// plugin. It is called at most once per index, with the registry lock held,
// so it must not call Lookup or ladspa_descriptor itself; doing so deadlocks.
type Describer func(index uint64) *ladspa.Descriptor

// registry caches the C descriptors handed to the host. A descriptor built
// for an index is returned again on every later lookup of that index and is
// freed only by teardown.
type registry struct {
	mu       sync.Mutex
	heap     heap
	describe Describer
	onInit   func()

	initialized bool
	closed      bool
	entries     map[uint64]*C.LADSPA_Descriptor
	order       []uint64
}

func newRegistry(h heap, describe Describer, onInit func()) *registry {
	return &registry{
		heap:     h,
		describe: describe,
		onInit:   onInit,
		entries:  make(map[uint64]*C.LADSPA_Descriptor),
	}
}

func (r *registry) get(index uint64) *C.LADSPA_Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		r.initialized = true
		if r.onInit != nil {
			r.onInit()
		}
	}
	if r.closed {
		return nil
	}
	if d, ok := r.entries[index]; ok {
		return d
	}
	if r.describe == nil {
		return nil
	}

	meta := guard.Value("describe", (*ladspa.Descriptor)(nil), func() *ladspa.Descriptor {
		return r.describe(index)
	})
	if meta == nil {
		return nil
	}

	d := buildDescriptor(r.heap, meta)
	r.entries[index] = d
	r.order = append(r.order, index)
	debug.Default().Debug("built descriptor %d: %s (%d ports)", index, meta.Label, len(meta.Ports))
	return d
}

// teardown frees every cached descriptor, newest first. Lookups after
// teardown return nil.
func (r *registry) teardown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	for i := len(r.order) - 1; i >= 0; i-- {
		index := r.order[i]
		freeDescriptor(r.heap, r.entries[index])
		delete(r.entries, index)
	}
	r.order = nil
	r.closed = true
}

func (r *registry) setDescriber(d Describer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.describe = d
}

var global = newRegistry(cHeap{}, nil, initLibrary)

// initLibrary runs on the first descriptor lookup.
func initLibrary() {
	cfg, err := debug.LoadConfig()
	if err == nil {
		err = debug.Configure(cfg)
	}
	if err != nil {
		debug.Warn("logging configuration ignored: %v", err)
	}
	C.ladspago_register_teardown()
}

// Register installs the function that describes the library's plugins.
// Call it from an init function of the plugin's main package.
func Register(d Describer) {
	global.setDescriber(d)
}

// RegisterDescriptors registers a fixed list of plugins; the plugin at
// position i is returned for index i.
func RegisterDescriptors(descs ...*ladspa.Descriptor) {
	Register(func(index uint64) *ladspa.Descriptor {
		if index >= uint64(len(descs)) {
			return nil
		}
		return descs[index]
	})
}

// Lookup returns the C descriptor for index, or nil. It is what the exported
// ladspa_descriptor returns and lets a host in the same process use the
// library without loading it.
func Lookup(index uint64) unsafe.Pointer {
	return unsafe.Pointer(global.get(index))
}
