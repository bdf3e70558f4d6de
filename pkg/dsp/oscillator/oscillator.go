// Package oscillator provides a phase-accumulating oscillator.
package oscillator

import "math"

// Waveform selects the oscillator shape.
type Waveform int

const (
	Sine Waveform = iota
	Saw
	Square
	Triangle
)

// Oscillator generates a periodic waveform. Phase runs from 0 to 1.
type Oscillator struct {
	sampleRate float64
	phase      float64
	inc        float64
	shape      Waveform
}

// New creates a sine oscillator at 440 Hz.
func New(sampleRate float64) *Oscillator {
	o := &Oscillator{sampleRate: sampleRate}
	o.SetFrequency(440)
	return o
}

// SetFrequency sets the frequency in Hz. Frequencies above Nyquist are
// clamped.
func (o *Oscillator) SetFrequency(hz float64) {
	o.inc = math.Min(math.Abs(hz), o.sampleRate/2) / o.sampleRate
}

// Frequency returns the frequency in Hz.
func (o *Oscillator) Frequency() float64 {
	return o.inc * o.sampleRate
}

// SetWaveform changes the shape without resetting the phase.
func (o *Oscillator) SetWaveform(w Waveform) {
	o.shape = w
}

// Reset sets the phase back to 0.
func (o *Oscillator) Reset() {
	o.phase = 0
}

// Next returns the current sample and advances the phase.
func (o *Oscillator) Next() float32 {
	var v float64
	switch o.shape {
	case Saw:
		v = 2*o.phase - 1
	case Square:
		v = 1
		if o.phase >= 0.5 {
			v = -1
		}
	case Triangle:
		v = 1 - 4*math.Abs(o.phase-0.5)
	default:
		v = math.Sin(2 * math.Pi * o.phase)
	}

	o.phase += o.inc
	if o.phase >= 1 {
		o.phase -= math.Floor(o.phase)
	}
	return float32(v)
}

// Fill writes len(buf) samples scaled by amplitude.
func (o *Oscillator) Fill(buf []float32, amplitude float32) {
	for i := range buf {
		buf[i] = o.Next() * amplitude
	}
}
