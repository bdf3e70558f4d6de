package plugin

// #include "bridge.h"
import "C"
import (
	"sync"
	"unsafe"

	"github.com/justyntemme/ladspago/pkg/framework/debug"
	"github.com/justyntemme/ladspago/pkg/framework/guard"
	"github.com/justyntemme/ladspago/pkg/framework/instance"
	"github.com/justyntemme/ladspago/pkg/ladspa"
)

var (
	// Live instances indexed by the ID handed to the host as its handle.
	instances   = make(map[uintptr]*instance.Instance)
	instancesMu sync.RWMutex
	nextID      uintptr = 1
)

func registerInstance(in *instance.Instance) uintptr {
	instancesMu.Lock()
	defer instancesMu.Unlock()
	id := nextID
	nextID++
	instances[id] = in
	return id
}

func unregisterInstance(id uintptr) *instance.Instance {
	instancesMu.Lock()
	defer instancesMu.Unlock()
	in := instances[id]
	delete(instances, id)
	return in
}

func getInstance(h C.uintptr_t) *instance.Instance {
	id := uintptr(h)
	if id == 0 {
		return nil
	}

	instancesMu.RLock()
	defer instancesMu.RUnlock()
	return instances[id]
}

//export ladspa_descriptor
func ladspa_descriptor(index C.ulong) *C.LADSPA_Descriptor {
	return global.get(uint64(index))
}

//export ladspagoTeardown
func ladspagoTeardown() {
	global.teardown()
}

//export ladspagoInstantiate
func ladspagoInstantiate(desc *C.LADSPA_Descriptor, sampleRate C.ulong) C.uintptr_t {
	if desc == nil {
		return 0
	}
	meta := unbox(desc)
	if meta == nil {
		return 0
	}

	p := guard.Value("instantiate", ladspa.Plugin(nil), func() ladspa.Plugin {
		return meta.New(meta, uint64(sampleRate))
	})
	if p == nil {
		debug.Default().With("plugin", meta.Label).Warn("instantiate produced no plugin")
		return 0
	}

	return C.uintptr_t(registerInstance(instance.New(meta, p)))
}

//export ladspagoConnectPort
func ladspagoConnectPort(h C.uintptr_t, port C.ulong, location *C.LADSPA_Data) {
	if in := getInstance(h); in != nil {
		in.Connect(int(port), (*ladspa.Data)(unsafe.Pointer(location)))
	}
}

//export ladspagoActivate
func ladspagoActivate(h C.uintptr_t) {
	if in := getInstance(h); in != nil {
		in.Activate()
	}
}

//export ladspagoRun
func ladspagoRun(h C.uintptr_t, sampleCount C.ulong) {
	if in := getInstance(h); in != nil {
		in.Run(int(sampleCount))
	}
}

//export ladspagoRunAdding
func ladspagoRunAdding(h C.uintptr_t, sampleCount C.ulong) {
	if in := getInstance(h); in != nil {
		in.RunAdding(int(sampleCount))
	}
}

//export ladspagoSetRunAddingGain
func ladspagoSetRunAddingGain(h C.uintptr_t, gain C.LADSPA_Data) {
	if in := getInstance(h); in != nil {
		in.SetRunAddingGain(ladspa.Data(gain))
	}
}

//export ladspagoDeactivate
func ladspagoDeactivate(h C.uintptr_t) {
	if in := getInstance(h); in != nil {
		in.Deactivate()
	}
}

//export ladspagoCleanup
func ladspagoCleanup(h C.uintptr_t) {
	if in := unregisterInstance(uintptr(h)); in != nil {
		in.Release()
	}
}
