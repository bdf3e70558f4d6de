package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/justyntemme/ladspago/pkg/ladspa"
)

// Clip is the PCM audio the tool reads and writes, one slice per channel.
type Clip struct {
	Channels   [][]ladspa.Data
	SampleRate int
	BitDepth   int
}

// Frames returns the number of samples per channel.
func (c *Clip) Frames() int {
	if len(c.Channels) == 0 {
		return 0
	}
	return len(c.Channels[0])
}

func supportedDepth(bits int) bool {
	return bits == 16 || bits == 24 || bits == 32
}

func readWav(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s: not a valid WAV file", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read PCM data: %w", path, err)
	}
	bits := int(dec.BitDepth)
	if !supportedDepth(bits) {
		return nil, fmt.Errorf("%s: unsupported bit depth %d", path, bits)
	}

	nch := buf.Format.NumChannels
	if nch == 0 {
		return nil, fmt.Errorf("%s: no channels", path)
	}
	frames := len(buf.Data) / nch
	scale := 1 / (float64(audio.IntMaxSignedValue(bits)) + 1)

	clip := &Clip{
		Channels:   make([][]ladspa.Data, nch),
		SampleRate: buf.Format.SampleRate,
		BitDepth:   bits,
	}
	for ch := range clip.Channels {
		clip.Channels[ch] = make([]ladspa.Data, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < nch; ch++ {
			clip.Channels[ch][i] = ladspa.Data(float64(buf.Data[i*nch+ch]) * scale)
		}
	}
	return clip, nil
}

func writeWav(path string, clip *Clip) error {
	if !supportedDepth(clip.BitDepth) {
		return fmt.Errorf("unsupported bit depth %d", clip.BitDepth)
	}
	nch, frames := len(clip.Channels), clip.Frames()
	if nch == 0 {
		return fmt.Errorf("%s: nothing to write", path)
	}

	peak := float64(audio.IntMaxSignedValue(clip.BitDepth))
	data := make([]int, frames*nch)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < nch; ch++ {
			v := float64(clip.Channels[ch][i]) * (peak + 1)
			data[i*nch+ch] = int(math.Max(-peak-1, math.Min(peak, math.Round(v))))
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := wav.NewEncoder(f, clip.SampleRate, clip.BitDepth, nch, 1)
	err = enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: nch, SampleRate: clip.SampleRate},
		Data:           data,
		SourceBitDepth: clip.BitDepth,
	})
	if cerr := enc.Close(); err == nil {
		err = cerr
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s: failed to write WAV: %w", path, err)
	}
	return nil
}
