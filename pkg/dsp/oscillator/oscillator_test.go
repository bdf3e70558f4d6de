package oscillator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSine(t *testing.T) {
	o := New(8)
	o.SetFrequency(1)

	buf := make([]float32, 8)
	o.Fill(buf, 1)

	want := []float32{0, 0.7071, 1, 0.7071, 0, -0.7071, -1, -0.7071}
	assert.InDeltaSlice(t, want, buf, 1e-4)
}

func TestWaveforms(t *testing.T) {
	tests := []struct {
		shape Waveform
		want  []float32
	}{
		{Saw, []float32{-1, -0.5, 0, 0.5}},
		{Square, []float32{1, 1, -1, -1}},
		{Triangle, []float32{-1, 0, 1, 0}},
	}

	for _, tt := range tests {
		o := New(4)
		o.SetFrequency(1)
		o.SetWaveform(tt.shape)
		buf := make([]float32, 4)
		o.Fill(buf, 1)
		assert.InDeltaSlice(t, tt.want, buf, 1e-6, "waveform %d", tt.shape)
	}
}

func TestFrequencyClamp(t *testing.T) {
	o := New(48000)
	o.SetFrequency(30000)
	assert.InDelta(t, 24000, o.Frequency(), 1e-9)

	o.SetFrequency(-100)
	assert.InDelta(t, 100, o.Frequency(), 1e-9)
}

func TestAmplitudeAndReset(t *testing.T) {
	o := New(4)
	o.SetFrequency(1)
	o.SetWaveform(Square)

	buf := make([]float32, 3)
	o.Fill(buf, 0.25)
	assert.Equal(t, []float32{0.25, 0.25, -0.25}, buf)

	o.Reset()
	assert.Equal(t, float32(1), o.Next())
}
