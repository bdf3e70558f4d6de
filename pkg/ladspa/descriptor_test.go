package ladspa

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopPlugin struct{ Base }

func (nopPlugin) Run(int, []*PortConnection) {}

func nopFactory(*Descriptor, uint64) Plugin { return nopPlugin{} }

func TestPortRangeHint(t *testing.T) {
	tests := []struct {
		name string
		port Port
		want RangeHint
	}{
		{
			name: "audio",
			port: NewPort("In", PortAudioInput).Build(),
			want: RangeHint{},
		},
		{
			name: "bounded",
			port: NewPort("Gain", PortControlInput).Range(0, 2).Default(Default1).Build(),
			want: RangeHint{Descriptor: HintBoundedBelow | HintBoundedAbove | int32(Default1), Lower: 0, Upper: 2},
		},
		{
			name: "lower only",
			port: NewPort("Freq", PortControlInput).Min(20).Hint(Logarithmic).Build(),
			want: RangeHint{Descriptor: HintBoundedBelow | HintLogarithmic, Lower: 20},
		},
		{
			name: "hints combine",
			port: NewPort("Steps", PortControlInput).Hint(IntegerValued).Hint(SampleRateScaled).Max(0.5).Build(),
			want: RangeHint{Descriptor: HintInteger | HintSampleRate | HintBoundedAbove, Upper: 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.port.RangeHint())
		})
	}
}

func TestRangeHintDefault(t *testing.T) {
	tests := []struct {
		name string
		port Port
		rate uint64
		want Data
		ok   bool
	}{
		{"none", NewPort("x", PortControlInput).Range(0, 1).Build(), 44100, 0, false},
		{"minimum", NewPort("x", PortControlInput).Range(2, 10).Default(DefaultMinimum).Build(), 44100, 2, true},
		{"maximum", NewPort("x", PortControlInput).Range(2, 10).Default(DefaultMaximum).Build(), 44100, 10, true},
		{"low", NewPort("x", PortControlInput).Range(0, 4).Default(DefaultLow).Build(), 44100, 1, true},
		{"middle", NewPort("x", PortControlInput).Range(0, 4).Default(DefaultMiddle).Build(), 44100, 2, true},
		{"high", NewPort("x", PortControlInput).Range(0, 4).Default(DefaultHigh).Build(), 44100, 3, true},
		{"log middle", NewPort("x", PortControlInput).Range(10, 1000).Hint(Logarithmic).Default(DefaultMiddle).Build(), 44100, 100, true},
		{"rate scaled", NewPort("x", PortControlInput).Range(0, 0.5).Hint(SampleRateScaled).Default(DefaultMaximum).Build(), 48000, 24000, true},
		{"integer", NewPort("x", PortControlInput).Range(0, 3).Hint(IntegerValued).Default(DefaultLow).Build(), 44100, 1, true},
		{"440", NewPort("x", PortControlInput).Default(Default440).Build(), 44100, 440, true},
		{"missing bound", NewPort("x", PortControlInput).Min(0).Default(DefaultMiddle).Build(), 44100, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.port.RangeHint().Default(tt.rate)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-3)
		})
	}
}

func validDescriptor() *Descriptor {
	return &Descriptor{
		UniqueID:   1,
		Label:      "valid",
		Properties: PropRealtime | PropHardRealtimeCapable,
		Name:       "Valid",
		Maker:      "ladspago",
		Copyright:  "None",
		Ports: []Port{
			NewPort("In", PortAudioInput).Build(),
			NewPort("Out", PortAudioOutput).Build(),
			NewPort("Gain", PortControlInput).Range(0, 1).Default(DefaultMiddle).Build(),
		},
		New: nopFactory,
	}
}

func TestValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, validDescriptor().Validate())
	})

	t.Run("NoPorts", func(t *testing.T) {
		d := validDescriptor()
		d.Ports = nil
		assert.NoError(t, d.Validate())
	})

	t.Run("CollectsEveryProblem", func(t *testing.T) {
		d := validDescriptor()
		d.Label = "bad\x00label"
		d.New = nil
		d.Ports = append(d.Ports,
			Port{Name: "Broken", Kind: PortKind(PortAudio | PortControl)},
			NewPort("Level", PortControlInput).Default(DefaultHigh).Build(),
		)

		err := d.Validate()
		require.Error(t, err)

		var merr *multierror.Error
		require.ErrorAs(t, err, &merr)
		assert.Len(t, merr.Errors, 3)
		assert.Contains(t, err.Error(), "NUL byte")
		assert.Contains(t, err.Error(), "no factory")
		assert.Contains(t, err.Error(), "invalid kind")
	})

	t.Run("DefaultWithoutBounds", func(t *testing.T) {
		d := validDescriptor()
		d.Ports = append(d.Ports, NewPort("Level", PortControlInput).Default(DefaultMiddle).Build())

		assert.NoError(t, d.Validate())
		assert.Equal(t, []int{3}, d.UnresolvedDefaults())

		rh := d.Ports[3].RangeHint()
		assert.Equal(t, RangeHint{Descriptor: int32(DefaultMiddle)}, rh)
		_, ok := rh.Default(48000)
		assert.False(t, ok)
	})
}

func TestClone(t *testing.T) {
	d := validDescriptor()
	c := d.Clone()

	ignoreFactory := cmpopts.IgnoreFields(Descriptor{}, "New")
	if diff := cmp.Diff(d, c, ignoreFactory); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	*c.Ports[2].UpperBound = 9
	c.Ports[0].Name = "Changed"
	assert.Equal(t, Data(1), *d.Ports[2].UpperBound)
	assert.Equal(t, "In", d.Ports[0].Name)
}

func TestCountPorts(t *testing.T) {
	d := validDescriptor()
	assert.Equal(t, 3, d.PortCount())
	assert.Equal(t, 1, d.CountPorts(PortAudioInput))
	assert.Equal(t, 1, d.CountPorts(PortAudioOutput))
	assert.Equal(t, 1, d.CountPorts(PortControlInput))
	assert.Zero(t, d.CountPorts(PortControlOutput))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "realtime|hard-rt-capable", (PropRealtime | PropHardRealtimeCapable).String())
	assert.Equal(t, "none", PropNone.String())
	assert.Equal(t, "control output", PortControlOutput.String())
	assert.Equal(t, "invalid", PortInvalid.String())
	assert.Equal(t, "middle", DefaultMiddle.String())
}
