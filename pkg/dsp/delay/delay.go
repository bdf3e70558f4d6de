// Package delay provides a circular delay line.
package delay

// Line is a fixed-capacity delay line. Its buffer is allocated once, so
// Process is safe to call from the audio thread.
type Line struct {
	buf []float32
	pos int
}

// New creates a line holding up to maxSamples of history.
func New(maxSamples int) *Line {
	return &Line{buf: make([]float32, max(maxSamples, 1)+1)}
}

// MaxDelay returns the longest delay the line supports, in samples.
func (l *Line) MaxDelay() int {
	return len(l.buf) - 1
}

// Reset silences the line.
func (l *Line) Reset() {
	clear(l.buf)
	l.pos = 0
}

// Read returns the sample written delay samples ago, with delay clamped to
// [1, MaxDelay].
func (l *Line) Read(delay int) float32 {
	delay = min(max(delay, 1), l.MaxDelay())
	i := l.pos - delay
	if i < 0 {
		i += len(l.buf)
	}
	return l.buf[i]
}

// Write pushes one sample.
func (l *Line) Write(v float32) {
	l.buf[l.pos] = v
	l.pos++
	if l.pos == len(l.buf) {
		l.pos = 0
	}
}

// Process runs a feedback echo over src into dst: each output is the dry
// input mixed with the delayed signal, and the delayed signal is fed back
// scaled by feedback. dst and src may alias.
func (l *Line) Process(dst, src []float32, delay int, feedback, mix float32) {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		in := src[i]
		wet := l.Read(delay)
		l.Write(in + wet*feedback)
		dst[i] = in*(1-mix) + wet*mix
	}
}
