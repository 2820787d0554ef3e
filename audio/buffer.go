// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	goaudio "github.com/go-audio/audio"
)

// AnyBuffer is a sample buffer whose element type is only known at runtime.
// It is implemented by *Buffer[T] for every Sample type.
type AnyBuffer interface {
	NumChannels() int
	NumFrames() int
	Rate() int
	SampleType() SampleType
	ToGoAudio() goaudio.Buffer
}

// Buffer holds channel-major samples: Data[c][f] is frame f of channel c.
// Every channel has the same length.
type Buffer[T Sample] struct {
	SampleRate int
	Data       [][]T
}

var (
	_ AnyBuffer = (*Buffer[int16])(nil)
	_ AnyBuffer = (*Buffer[int32])(nil)
	_ AnyBuffer = (*Buffer[float32])(nil)
	_ AnyBuffer = (*Buffer[float64])(nil)
)

// NewBuffer allocates a zeroed buffer of the given shape.
func NewBuffer[T Sample](channels, frames, sampleRate int) *Buffer[T] {
	data := make([][]T, channels)
	for c := range data {
		data[c] = make([]T, frames)
	}

	return &Buffer[T]{SampleRate: sampleRate, Data: data}
}

func (b *Buffer[T]) NumChannels() int { return len(b.Data) }
func (b *Buffer[T]) Rate() int        { return b.SampleRate }

func (b *Buffer[T]) SampleType() SampleType { return SampleTypeOf[T]() }

func (b *Buffer[T]) NumFrames() int {
	if len(b.Data) == 0 {
		return 0
	}

	return len(b.Data[0])
}

// Resize sets every channel to frames samples, keeping existing content.
// Growth reallocates with headroom so repeated calls stay amortised.
func (b *Buffer[T]) Resize(frames int) {
	for c, plane := range b.Data {
		if cap(plane) < frames {
			grown := make([]T, frames, max(frames, 2*cap(plane)))
			copy(grown, plane)
			b.Data[c] = grown

			continue
		}
		b.Data[c] = plane[:frames]
	}
}

// Interleaved returns the samples in frame order.
func (b *Buffer[T]) Interleaved() []T {
	out := make([]T, b.NumFrames()*b.NumChannels())
	if len(out) > 0 {
		Interleave(out, b.Data, 0, b.NumFrames())
	}

	return out
}

// ToGoAudio converts the buffer to the interleaved go-audio representation:
// *audio.IntBuffer for integer samples, *audio.Float32Buffer for float32 and
// *audio.FloatBuffer for float64.
func (b *Buffer[T]) ToGoAudio() goaudio.Buffer {
	format := &goaudio.Format{NumChannels: b.NumChannels(), SampleRate: b.SampleRate}

	switch samples := any(b.Interleaved()).(type) {
	case []int16:
		data := make([]int, len(samples))
		for i, s := range samples {
			data[i] = int(s)
		}

		return &goaudio.IntBuffer{Format: format, Data: data, SourceBitDepth: 16}
	case []int32:
		data := make([]int, len(samples))
		for i, s := range samples {
			data[i] = int(s)
		}

		return &goaudio.IntBuffer{Format: format, Data: data, SourceBitDepth: 32}
	case []float32:
		return &goaudio.Float32Buffer{Format: format, Data: samples, SourceBitDepth: 32}
	case []float64:
		return &goaudio.FloatBuffer{Format: format, Data: samples}
	}

	return nil
}

// FromGoAudio converts an interleaved go-audio buffer to a channel-major
// Buffer. Integer buffers become Int16 when their source bit depth is 16 or
// less and Int32 otherwise.
func FromGoAudio(buf goaudio.Buffer) (AnyBuffer, error) {
	if buf == nil || buf.PCMFormat() == nil {
		return nil, fmt.Errorf("%w: missing format", ErrInvalidDescriptor)
	}

	format := buf.PCMFormat()
	if format.NumChannels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidDescriptor, format.NumChannels)
	}

	switch b := buf.(type) {
	case *goaudio.IntBuffer:
		if b.SourceBitDepth > 0 && b.SourceBitDepth <= 16 {
			return planar(b.Data, format, func(v int) int16 { return int16(v) }), nil
		}

		return planar(b.Data, format, func(v int) int32 { return int32(v) }), nil
	case *goaudio.Float32Buffer:
		return planar(b.Data, format, func(v float32) float32 { return v }), nil
	case *goaudio.FloatBuffer:
		return planar(b.Data, format, func(v float64) float64 { return v }), nil
	default:
		fb := buf.AsFloatBuffer()
		return planar(fb.Data, format, func(v float64) float64 { return v }), nil
	}
}

func planar[S any, T Sample](data []S, format *goaudio.Format, conv func(S) T) *Buffer[T] {
	channels := format.NumChannels
	frames := len(data) / channels
	out := NewBuffer[T](channels, frames, format.SampleRate)

	for f := range frames {
		for c := range channels {
			out.Data[c][f] = conv(data[f*channels+c])
		}
	}

	return out
}
