package main

import (
	"fmt"
	"strconv"

	"github.com/justyntemme/ladspago/pkg/host"
	"github.com/justyntemme/ladspago/pkg/ladspa"
)

// ProcessOptions control how a clip is run through a plugin.
type ProcessOptions struct {
	BlockSize int
	// Adding uses run_adding with Gain instead of run.
	Adding bool
	Gain   ladspa.Data
}

// controlValues returns one value per control input: the value given on the
// command line in port order, else the hinted default, else the lower bound,
// else 0.
func controlValues(d *host.Descriptor, args []string, sampleRate uint64) ([]ladspa.Data, error) {
	ports := d.PortsOf(ladspa.PortControlInput)
	if len(args) > len(ports) {
		return nil, fmt.Errorf("%s has %d control inputs, got %d values", d.Label, len(ports), len(args))
	}

	values := make([]ladspa.Data, len(ports))
	for i, port := range ports {
		if i < len(args) {
			v, err := strconv.ParseFloat(args[i], 32)
			if err != nil {
				return nil, fmt.Errorf("control %q: %w", d.Ports[port].Name, err)
			}
			values[i] = ladspa.Data(v)
			continue
		}
		rh := d.Ports[port].Hint
		if v, ok := rh.Default(sampleRate); ok {
			values[i] = v
		} else if rh.BoundedBelow() {
			values[i] = rh.Lower
		}
	}
	return values, nil
}

// process runs clip through the plugin block by block and returns the
// output channels, one per audio output port.
func process(d *host.Descriptor, clip *Clip, controls []ladspa.Data, opts ProcessOptions) (*Clip, error) {
	ins := d.PortsOf(ladspa.PortAudioInput)
	outs := d.PortsOf(ladspa.PortAudioOutput)
	if len(ins) > 0 && len(ins) != len(clip.Channels) {
		return nil, fmt.Errorf("%s has %d audio inputs but the input has %d channels",
			d.Label, len(ins), len(clip.Channels))
	}
	if len(outs) == 0 {
		return nil, fmt.Errorf("%s has no audio outputs", d.Label)
	}
	if opts.BlockSize <= 0 {
		return nil, fmt.Errorf("block size must be positive")
	}

	inst, err := d.Instantiate(uint64(clip.SampleRate))
	if err != nil {
		return nil, err
	}
	defer inst.Cleanup()

	buffers := make(map[int]*host.Buffer)
	controlCells := make(map[int]*host.Control)
	defer func() {
		for _, b := range buffers {
			b.Free()
		}
		for _, c := range controlCells {
			c.Free()
		}
	}()

	next := 0
	for i, p := range d.Ports {
		switch {
		case p.Kind.IsAudio():
			buffers[i] = host.NewBuffer(opts.BlockSize)
			err = inst.Connect(i, buffers[i])
		case p.Kind == ladspa.PortControlInput:
			controlCells[i] = host.NewControl(controls[next])
			next++
			err = inst.ConnectControl(i, controlCells[i])
		default:
			controlCells[i] = host.NewControl(0)
			err = inst.ConnectControl(i, controlCells[i])
		}
		if err != nil {
			return nil, err
		}
	}

	if opts.Adding {
		if err := inst.SetRunAddingGain(opts.Gain); err != nil {
			return nil, err
		}
	}

	frames := clip.Frames()
	out := &Clip{
		Channels:   make([][]ladspa.Data, len(outs)),
		SampleRate: clip.SampleRate,
		BitDepth:   clip.BitDepth,
	}
	for ch := range out.Channels {
		out.Channels[ch] = make([]ladspa.Data, frames)
	}

	inst.Activate()
	for pos := 0; pos < frames; pos += opts.BlockSize {
		n := min(opts.BlockSize, frames-pos)
		for ch, port := range ins {
			copy(buffers[port].Samples(), clip.Channels[ch][pos:pos+n])
		}
		if opts.Adding {
			for _, port := range outs {
				clear(buffers[port].Samples()[:n])
			}
			if err := inst.RunAdding(n); err != nil {
				return nil, err
			}
		} else {
			inst.Run(n)
		}
		for ch, port := range outs {
			copy(out.Channels[ch][pos:pos+n], buffers[port].Samples()[:n])
		}
	}
	inst.Deactivate()

	return out, nil
}
