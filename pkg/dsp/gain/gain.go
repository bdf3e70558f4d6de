// Package gain converts between decibels and linear amplitude and applies
// gain to sample blocks.
package gain

import "math"

// MinDB stands in for minus infinity.
const MinDB = -200.0

// ToLinear converts decibels to a linear factor. Anything at or below MinDB
// is silence.
func ToLinear(db float32) float32 {
	if db <= MinDB {
		return 0
	}
	return float32(math.Pow(10, float64(db)/20))
}

// ToDB converts a linear factor to decibels, clamping at MinDB.
func ToDB(linear float32) float32 {
	if linear <= 0 {
		return MinDB
	}
	return max(MinDB, float32(20*math.Log10(float64(linear))))
}

// ApplyTo writes src scaled by factor into dst over their common length.
// dst and src may be the same slice.
func ApplyTo(dst, src []float32, factor float32) {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = src[i] * factor
	}
}

// Ramp is a one-pole smoother for a gain factor, so control changes between
// blocks do not click.
type Ramp struct {
	current float32
	coeff   float32
}

// NewRamp returns a ramp that settles in roughly timeMs milliseconds.
func NewRamp(sampleRate float64, timeMs float64, initial float32) *Ramp {
	r := &Ramp{current: initial, coeff: 1}
	if samples := timeMs * sampleRate / 1000; samples > 1 {
		r.coeff = float32(1 - math.Exp(-1/samples))
	}
	return r
}

// Value returns the current factor.
func (r *Ramp) Value() float32 {
	return r.current
}

// Reset jumps to v.
func (r *Ramp) Reset(v float32) {
	r.current = v
}

// ApplyTo writes src into dst while moving the factor towards target.
func (r *Ramp) ApplyTo(dst, src []float32, target float32) {
	n := min(len(dst), len(src))
	g := r.current
	for i := 0; i < n; i++ {
		g += (target - g) * r.coeff
		dst[i] = src[i] * g
	}
	r.current = g
}
