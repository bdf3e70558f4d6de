// Package instance holds the per-instantiation state behind a LADSPA handle
// and implements the run and run-adding execution paths.
//
// The host contract is trusted: connect is called for every port before
// activate or run, calls on one instance are not concurrent, and nothing is
// called after Release. Different instances share no mutable state.
package instance

import (
	"github.com/justyntemme/ladspago/pkg/framework/debug"
	"github.com/justyntemme/ladspago/pkg/framework/guard"
	"github.com/justyntemme/ladspago/pkg/ladspa"
)

// Instance is the state created by one instantiate call.
type Instance struct {
	desc   *ladspa.Descriptor
	plugin ladspa.Plugin

	// table is indexed by port number; connected counts non-nil entries.
	table     []*ladspa.PortConnection
	connected int

	// ports is the list handed to the plugin. It stays empty until every
	// port has been connected.
	ports []*ladspa.PortConnection

	gain    ladspa.Data
	outputs int

	// Used only inside RunAdding.
	scratch [][]ladspa.Data
	saved   []*ladspa.Data

	warnedIncomplete bool
}

// New wraps a plugin created for desc.
func New(desc *ladspa.Descriptor, p ladspa.Plugin) *Instance {
	n := desc.PortCount()
	return &Instance{
		desc:    desc,
		plugin:  p,
		table:   make([]*ladspa.PortConnection, n),
		ports:   make([]*ladspa.PortConnection, 0, n),
		gain:    1,
		outputs: desc.CountPorts(ladspa.PortAudioOutput),
		saved:   make([]*ladspa.Data, 0, desc.CountPorts(ladspa.PortAudioOutput)),
	}
}

// Descriptor returns the metadata the instance was created from.
func (in *Instance) Descriptor() *ladspa.Descriptor {
	return in.desc
}

// Plugin returns the author's plugin object.
func (in *Instance) Plugin() ladspa.Plugin {
	return in.plugin
}

// Connect binds port to location. Once every port number has been supplied
// the ordered list is rebuilt; ports are expected to be reconnected as a
// group rather than replaced one at a time mid-session.
func (in *Instance) Connect(port int, location *ladspa.Data) {
	conn := ladspa.Connect(in.desc.Ports[port], location)
	if in.table[port] == nil {
		in.connected++
	}
	in.table[port] = conn

	if in.connected == len(in.table) {
		in.ports = append(in.ports[:0], in.table...)
	}
}

// Ports returns the ordered connection list, or an empty list while ports
// are still missing.
func (in *Instance) Ports() []*ladspa.PortConnection {
	return in.ports
}

// Complete reports whether every port is connected.
func (in *Instance) Complete() bool {
	return in.connected == len(in.table)
}

// Activate calls the plugin's Activate.
func (in *Instance) Activate() {
	guard.Do("activate", func() { in.plugin.Activate() })
}

// Deactivate calls the plugin's Deactivate.
func (in *Instance) Deactivate() {
	guard.Do("deactivate", func() { in.plugin.Deactivate() })
}

// SetRunAddingGain sets the gain applied by the next RunAdding call.
func (in *Instance) SetRunAddingGain(gain ladspa.Data) {
	in.gain = gain
}

// RunAddingGain returns the current run-adding gain. It is 1 until set.
func (in *Instance) RunAddingGain() ladspa.Data {
	return in.gain
}

// Release drops every reference the instance holds, including the host
// pointers, so nothing is touched after cleanup.
func (in *Instance) Release() {
	in.plugin = nil
	in.table = nil
	in.ports = nil
	in.scratch = nil
	in.saved = nil
	in.connected = 0
}

// ready reports whether plugin code may run. The plugin never sees a partial
// connection list.
func (in *Instance) ready(op string) bool {
	if len(in.ports) == len(in.table) && in.plugin != nil {
		return true
	}
	if !in.warnedIncomplete {
		in.warnedIncomplete = true
		debug.Default().With("op", op).Warn(
			"%s called with %d of %d ports connected; plugin %q not run",
			op, in.connected, len(in.table), in.desc.Label)
	}
	return false
}
