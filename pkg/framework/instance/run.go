package instance

import (
	"github.com/justyntemme/ladspago/pkg/dsp"
	"github.com/justyntemme/ladspago/pkg/framework/guard"
	"github.com/justyntemme/ladspago/pkg/ladspa"
)

// Run processes one block, writing outputs straight into host memory.
func (in *Instance) Run(sampleCount int) {
	for _, conn := range in.table {
		if view := viewOf(conn); view != nil {
			view.Resize(sampleCount)
		}
	}

	if !in.ready("run") {
		return
	}
	guard.Do("run", func() {
		in.plugin.Run(sampleCount, in.ports)
	})
}

// RunAdding processes one block and mixes the plugin's audio outputs into
// the host buffers, scaled by the run-adding gain, instead of overwriting
// them. Outputs are temporarily redirected to scratch buffers; the two
// passes below walk the table in the same order so that saved host pointers
// and scratch buffers pair up by position.
func (in *Instance) RunAdding(sampleCount int) {
	if len(in.scratch) < in.outputs {
		in.scratch = append(in.scratch, make([][]ladspa.Data, in.outputs-len(in.scratch))...)
	}
	for i := range in.scratch {
		in.scratch[i] = dsp.Grow(in.scratch[i], sampleCount)
	}

	in.saved = in.saved[:0]
	next := 0
	for _, conn := range in.table {
		view := viewOf(conn)
		if view == nil {
			continue
		}
		if conn.Kind() == ladspa.PortAudioOutput {
			in.saved = append(in.saved, view.Base())
			buf := in.scratch[next][:sampleCount]
			next++
			dsp.Clear(buf)
			view.Redirect(first(buf), sampleCount)
		} else {
			view.Resize(sampleCount)
		}
	}

	if in.ready("run_adding") {
		guard.Do("run_adding", func() {
			in.plugin.Run(sampleCount, in.ports)
		})
	}

	// Always restore, even if the plugin panicked.
	next = 0
	for _, conn := range in.table {
		if conn == nil || conn.Kind() != ladspa.PortAudioOutput {
			continue
		}
		host := in.saved[next]
		scratch := in.scratch[next][:sampleCount]
		next++

		view := conn.View()
		view.Redirect(host, sampleCount)
		dsp.AddScaled(view.Samples(), scratch, in.gain)
	}
}

func viewOf(conn *ladspa.PortConnection) *ladspa.AudioView {
	if conn == nil {
		return nil
	}
	return conn.View()
}

func first(buf []ladspa.Data) *ladspa.Data {
	if len(buf) == 0 {
		return nil
	}
	return &buf[0]
}
