package plugin_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/ladspago/pkg/framework/debug"
	"github.com/justyntemme/ladspago/pkg/host"
	"github.com/justyntemme/ladspago/pkg/ladspa"
	"github.com/justyntemme/ladspago/pkg/plugin"
)

// scale multiplies its input by a control value and reports the output
// peak. A negative factor makes it panic.
type scale struct {
	ladspa.Base
}

func (scale) Run(n int, ports []*ladspa.PortConnection) {
	in, out := ports[0].Audio(), ports[1].AudioOut()
	k := ports[2].Control()
	if k < 0 {
		panic("negative factor")
	}
	var peak ladspa.Data
	for i := 0; i < n; i++ {
		out[i] = in[i] * k
		peak = max(peak, out[i], -out[i])
	}
	ports[3].SetControl(peak)
}

var scaleDescriptor = &ladspa.Descriptor{
	UniqueID:   4711,
	Label:      "scale",
	Properties: ladspa.PropHardRealtimeCapable,
	Name:       "Scale",
	Maker:      "ladspago",
	Copyright:  "None",
	Ports: []ladspa.Port{
		ladspa.NewPort("Input", ladspa.PortAudioInput).Build(),
		ladspa.NewPort("Output", ladspa.PortAudioOutput).Build(),
		ladspa.NewPort("Factor", ladspa.PortControlInput).Range(-1, 4).Default(ladspa.Default1).Build(),
		ladspa.NewPort("Peak", ladspa.PortControlOutput).Build(),
	},
	New: func(*ladspa.Descriptor, uint64) ladspa.Plugin { return scale{} },
}

var brokenDescriptor = &ladspa.Descriptor{
	UniqueID: 4712,
	Label:    "broken",
	Name:     "Broken",
	New: func(*ladspa.Descriptor, uint64) ladspa.Plugin {
		panic("cannot instantiate")
	},
}

func TestMain(m *testing.M) {
	plugin.RegisterDescriptors(scaleDescriptor, brokenDescriptor)
	os.Exit(m.Run())
}

func library() *host.Library {
	return host.InProcess("in-process", plugin.Lookup)
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	debug.SetOutput(&buf)
	t.Cleanup(func() { debug.SetOutput(os.Stderr) })
	return &buf
}

type rig struct {
	inst   *host.Instance
	in     *host.Buffer
	out    *host.Buffer
	factor *host.Control
	peak   *host.Control
}

func newRig(t *testing.T, size int) *rig {
	t.Helper()
	d, err := library().Find("scale")
	require.NoError(t, err)
	inst, err := d.Instantiate(48000)
	require.NoError(t, err)

	r := &rig{
		inst:   inst,
		in:     host.NewBuffer(size),
		out:    host.NewBuffer(size),
		factor: host.NewControl(2),
		peak:   host.NewControl(0),
	}
	require.NoError(t, inst.Connect(0, r.in))
	require.NoError(t, inst.Connect(1, r.out))
	require.NoError(t, inst.ConnectControl(2, r.factor))
	require.NoError(t, inst.ConnectControl(3, r.peak))
	inst.Activate()

	t.Cleanup(func() {
		inst.Cleanup()
		r.in.Free()
		r.out.Free()
		r.factor.Free()
		r.peak.Free()
	})
	return r
}

func TestDescriptorTable(t *testing.T) {
	lib := library()
	descs := lib.Descriptors()
	require.Len(t, descs, 2)

	want := host.Info{
		UniqueID:   4711,
		Label:      "scale",
		Properties: ladspa.PropHardRealtimeCapable,
		Name:       "Scale",
		Maker:      "ladspago",
		Copyright:  "None",
		Ports: []host.PortInfo{
			{Name: "Input", Kind: ladspa.PortAudioInput},
			{Name: "Output", Kind: ladspa.PortAudioOutput},
			{Name: "Factor", Kind: ladspa.PortControlInput, Hint: ladspa.RangeHint{
				Descriptor: ladspa.HintBoundedBelow | ladspa.HintBoundedAbove | int32(ladspa.Default1),
				Lower:      -1,
				Upper:      4,
			}},
			{Name: "Peak", Kind: ladspa.PortControlOutput},
		},
	}
	if diff := cmp.Diff(want, descs[0].Info); diff != "" {
		t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, descs[0].HasRunAdding())
	assert.Equal(t, []int{0}, descs[0].PortsOf(ladspa.PortAudioInput))

	assert.Empty(t, descs[1].Ports)
}

func TestLookupIsIdempotent(t *testing.T) {
	first := plugin.Lookup(0)
	require.NotNil(t, first)
	assert.Equal(t, first, plugin.Lookup(0))
	assert.Equal(t, plugin.Lookup(1), plugin.Lookup(1))
	assert.Nil(t, plugin.Lookup(2))
	assert.Nil(t, plugin.Lookup(1<<40))
}

func TestRun(t *testing.T) {
	r := newRig(t, 8)
	copy(r.in.Samples(), []ladspa.Data{1, -2, 3, -4, 5, -6, 7, -8})

	r.inst.Run(8)

	assert.Equal(t, []ladspa.Data{2, -4, 6, -8, 10, -12, 14, -16}, r.out.Samples())
	assert.Equal(t, ladspa.Data(16), r.peak.Value())
}

func TestRunRefreshesLength(t *testing.T) {
	r := newRig(t, 128)
	for i := range r.in.Samples() {
		r.in.Samples()[i] = 1
	}

	r.inst.Run(64)
	assert.Equal(t, ladspa.Data(2), r.out.Samples()[63])
	assert.Equal(t, ladspa.Data(0), r.out.Samples()[64])

	r.inst.Run(128)
	assert.Equal(t, ladspa.Data(2), r.out.Samples()[127])
}

func TestRunAdding(t *testing.T) {
	t.Run("DefaultGain", func(t *testing.T) {
		r := newRig(t, 4)
		copy(r.in.Samples(), []ladspa.Data{1, 2, 3, 4})
		copy(r.out.Samples(), []ladspa.Data{10, 10, 10, 10})

		require.NoError(t, r.inst.RunAdding(4))
		assert.Equal(t, []ladspa.Data{12, 14, 16, 18}, r.out.Samples())
	})

	t.Run("ScaledAndRestored", func(t *testing.T) {
		r := newRig(t, 4)
		copy(r.in.Samples(), []ladspa.Data{1, 2, 3, 4})
		copy(r.out.Samples(), []ladspa.Data{1, 1, 1, 1})

		require.NoError(t, r.inst.SetRunAddingGain(0.5))
		require.NoError(t, r.inst.RunAdding(4))
		assert.Equal(t, []ladspa.Data{2, 3, 4, 5}, r.out.Samples())

		// A plain run afterwards must overwrite the host buffer again.
		r.inst.Run(4)
		assert.Equal(t, []ladspa.Data{2, 4, 6, 8}, r.out.Samples())
	})
}

func TestFailureIsolation(t *testing.T) {
	t.Run("Run", func(t *testing.T) {
		logs := captureLog(t)
		r := newRig(t, 4)
		copy(r.in.Samples(), []ladspa.Data{1, 2, 3, 4})

		r.factor.Set(-1)
		assert.NotPanics(t, func() { r.inst.Run(4) })
		assert.Contains(t, logs.String(), "negative factor")

		r.factor.Set(1)
		r.inst.Run(4)
		assert.Equal(t, []ladspa.Data{1, 2, 3, 4}, r.out.Samples())
	})

	t.Run("Instantiate", func(t *testing.T) {
		logs := captureLog(t)
		d, err := library().Find("broken")
		require.NoError(t, err)

		_, err = d.Instantiate(44100)
		assert.Error(t, err)
		assert.Contains(t, logs.String(), "cannot instantiate")
	})
}

func TestInstancesAreIndependent(t *testing.T) {
	a := newRig(t, 2)
	b := newRig(t, 2)
	copy(a.in.Samples(), []ladspa.Data{1, 1})
	copy(b.in.Samples(), []ladspa.Data{1, 1})
	b.factor.Set(3)

	a.inst.Run(2)
	b.inst.Run(2)
	assert.Equal(t, []ladspa.Data{2, 2}, a.out.Samples())
	assert.Equal(t, []ladspa.Data{3, 3}, b.out.Samples())

	a.inst.Cleanup()
	b.inst.Run(2)
	assert.Equal(t, []ladspa.Data{3, 3}, b.out.Samples())
}
