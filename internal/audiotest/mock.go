// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides a scripted codec and signal generators for
// tests.
package audiotest

import (
	"io"
	"math"
	"sync"

	"github.com/ik5/sndstream/audio"
)

// Waveform returns the value of one sample in [-1, 1].
type Waveform func(frame, channel int) float64

// Silence generates all zeros.
func Silence(frame, channel int) float64 { return 0 }

// Sine generates a sine wave of frequency Hz at sampleRate. Every channel
// carries the same signal.
func Sine(sampleRate int, frequency float64) Waveform {
	return func(frame, _ int) float64 {
		t := float64(frame) / float64(sampleRate)
		return math.Sin(2 * math.Pi * frequency * t)
	}
}

// Constant generates value on every sample.
func Constant(value float64) Waveform {
	return func(int, int) float64 { return value }
}

// Ramp generates a distinct value per sample so reordering is detectable.
func Ramp(channels int) Waveform {
	return func(frame, channel int) float64 {
		return float64((frame*channels+channel)%2000-1000) / 1000
	}
}

// Scale converts a value in [-1, 1] to T, clamping out of range input.
func Scale[T audio.Sample](v float64) T {
	v = max(-1, min(1, v))

	var out T
	switch p := any(&out).(type) {
	case *int16:
		*p = int16(math.Round(v * math.MaxInt16))
	case *int32:
		*p = int32(math.Round(v * math.MaxInt32))
	case *float32:
		*p = float32(v)
	case *float64:
		*p = v
	}

	return out
}

// Fill returns a buffer of the given shape generated by w.
func Fill[T audio.Sample](channels, frames, sampleRate int, w Waveform) *audio.Buffer[T] {
	buf := audio.NewBuffer[T](channels, frames, sampleRate)
	for c := range channels {
		for f := range frames {
			buf.Data[c][f] = Scale[T](w(f, c))
		}
	}

	return buf
}

// Codec is a scripted audio.Codec. Read handles deliver Waveform samples
// for the descriptor in Info; write handles record what they are given.
// The zero value of every knob means "behave normally".
type Codec struct {
	// Info is reported by read opens.
	Info     audio.Info
	Waveform Waveform

	// Available limits the frames a reader delivers; zero means Info.Frames.
	Available int64
	// MaxPerCall caps the frames moved by one ReadFrames or WriteFrames call.
	MaxPerCall int
	// ReadErr is returned once ReadErrAfter frames have been delivered.
	ReadErr      error
	ReadErrAfter int64
	// WriteLimit caps the total frames a writer accepts; zero is unlimited.
	WriteLimit int64
	// WriteErr is returned by every WriteFrames call.
	WriteErr error

	OpenErr   error
	CloseErr  error
	NilHandle bool

	mu      sync.Mutex
	opens   []audio.Mode
	staged  []audio.SampleType
	closes  int
	calls   int
	written any
}

var _ audio.Codec = (*Codec)(nil)

func (c *Codec) Open(path string, mode audio.Mode, info *audio.Info) (audio.Handle, error) {
	c.mu.Lock()
	c.opens = append(c.opens, mode)
	c.mu.Unlock()

	if c.OpenErr != nil {
		return nil, c.OpenErr
	}
	if c.NilHandle {
		return nil, nil
	}

	if mode == audio.ModeRead {
		*info = c.Info
	}

	st, err := audio.NativeEncodingToSampleType(info.Format)
	if err != nil {
		return &handle{codec: c}, nil
	}

	return c.handleFor(st, mode, *info), nil
}

func (c *Codec) handleFor(st audio.SampleType, mode audio.Mode, info audio.Info) audio.Handle {
	switch st {
	case audio.Int16:
		return newHandle[int16](c, mode, info)
	case audio.Int32:
		return newHandle[int32](c, mode, info)
	case audio.Float32:
		return newHandle[float32](c, mode, info)
	default:
		return newHandle[float64](c, mode, info)
	}
}

// Staged wraps Codec as an audio.StagedCodec: write handles take the
// sample type asked for on open instead of the one the format code maps to.
type Staged struct {
	*Codec
}

var _ audio.StagedCodec = Staged{}

func (s Staged) OpenStaged(path string, info *audio.Info, st audio.SampleType) (audio.Handle, error) {
	c := s.Codec

	c.mu.Lock()
	c.opens = append(c.opens, audio.ModeWrite)
	c.staged = append(c.staged, st)
	c.mu.Unlock()

	if c.OpenErr != nil {
		return nil, c.OpenErr
	}
	if c.NilHandle {
		return nil, nil
	}

	return c.handleFor(st, audio.ModeWrite, *info), nil
}

// StagedTypes returns the sample types OpenStaged was called with.
func (c *Codec) StagedTypes() []audio.SampleType {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]audio.SampleType(nil), c.staged...)
}

// Opens returns the modes Open was called with.
func (c *Codec) Opens() []audio.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]audio.Mode(nil), c.opens...)
}

// Closes returns how many handles have been closed.
func (c *Codec) Closes() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closes
}

// Calls returns how many ReadFrames and WriteFrames calls reached a handle.
func (c *Codec) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.calls
}

// Written returns the interleaved samples accepted by write handles.
func Written[T audio.Sample](c *Codec) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, _ := c.written.([]T)

	return append([]T(nil), w...)
}

// handle is returned for format codes no sample type maps to.
type handle struct {
	codec *Codec
}

func (h *handle) Close() error {
	h.codec.mu.Lock()
	h.codec.closes++
	h.codec.mu.Unlock()

	return h.codec.CloseErr
}

type typedHandle[T audio.Sample] struct {
	handle
	channels  int
	available int64
	pos       int64
	accepted  int64
	waveform  Waveform
}

func newHandle[T audio.Sample](c *Codec, mode audio.Mode, info audio.Info) *typedHandle[T] {
	h := &typedHandle[T]{
		handle:   handle{codec: c},
		channels: max(info.Channels, 1),
		waveform: c.Waveform,
	}

	if h.waveform == nil {
		h.waveform = Silence
	}

	h.available = c.Available
	if h.available == 0 {
		h.available = info.Frames
	}

	if mode == audio.ModeWrite {
		c.mu.Lock()
		c.written = []T(nil)
		c.mu.Unlock()
	}

	return h
}

func (h *typedHandle[T]) ReadFrames(dst []T) (int, error) {
	c := h.codec

	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	want := len(dst) / h.channels
	if c.MaxPerCall > 0 {
		want = min(want, c.MaxPerCall)
	}

	limit := h.available
	if c.ReadErr != nil {
		limit = min(limit, c.ReadErrAfter)
	}

	n := int(max(min(int64(want), limit-h.pos), 0))

	for i := range n {
		for ch := range h.channels {
			dst[i*h.channels+ch] = Scale[T](h.waveform(int(h.pos)+i, ch))
		}
	}
	h.pos += int64(n)

	if c.ReadErr != nil && h.pos >= c.ReadErrAfter {
		return n, c.ReadErr
	}
	if h.pos >= h.available && n < len(dst)/h.channels {
		return n, io.EOF
	}

	return n, nil
}

func (h *typedHandle[T]) WriteFrames(src []T) (int, error) {
	c := h.codec

	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls++

	if c.WriteErr != nil {
		return 0, c.WriteErr
	}

	n := len(src) / h.channels
	if c.MaxPerCall > 0 {
		n = min(n, c.MaxPerCall)
	}
	if c.WriteLimit > 0 {
		n = int(max(min(int64(n), c.WriteLimit-h.accepted), 0))
	}

	w, _ := c.written.([]T)
	c.written = append(w, src[:n*h.channels]...)
	h.accepted += int64(n)

	return n, nil
}
