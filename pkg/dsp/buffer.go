// Package dsp provides the buffer operations used on the audio path. None of
// them allocate except Grow.
package dsp

import "math"

// Clear zeroes a buffer
func Clear(buffer []float32) {
	for i := range buffer {
		buffer[i] = 0
	}
}

// Add adds source to destination
func Add(dst, src []float32) {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] += src[i]
	}
}

// AddScaled adds scaled source to destination. Only the common length is
// processed.
func AddScaled(dst, src []float32, scale float32) {
	n := min(len(dst), len(src))
	if scale == 1 {
		Add(dst[:n], src[:n])
		return
	}
	for i := 0; i < n; i++ {
		dst[i] += src[i] * scale
	}
}

// Scale multiplies buffer by a constant
func Scale(buffer []float32, scale float32) {
	for i := range buffer {
		buffer[i] *= scale
	}
}

// Fill sets every sample to v
func Fill(buffer []float32, v float32) {
	for i := range buffer {
		buffer[i] = v
	}
}

// Grow returns buf extended to at least n samples. Existing contents are
// kept and the buffer never shrinks, so steady-state callers stop allocating
// after the largest block has been seen.
func Grow(buf []float32, n int) []float32 {
	if len(buf) >= n {
		return buf
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	grown := make([]float32, n)
	copy(grown, buf)
	return grown
}

// Peak finds the maximum absolute value in a buffer
func Peak(buffer []float32) float32 {
	peak := float32(0)
	for _, sample := range buffer {
		abs := float32(math.Abs(float64(sample)))
		if abs > peak {
			peak = abs
		}
	}
	return peak
}

// Clip limits samples to [-limit, limit]
func Clip(buffer []float32, limit float32) {
	for i := range buffer {
		if buffer[i] > limit {
			buffer[i] = limit
		} else if buffer[i] < -limit {
			buffer[i] = -limit
		}
	}
}
