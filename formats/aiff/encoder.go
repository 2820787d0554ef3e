// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/sndstream/audio"
)

// sink widens T samples into the int buffer the go-audio encoder takes.
type sink[T int16 | int32] struct {
	f      *os.File
	enc    *aiff.Encoder
	format *goaudio.Format
	buf    *goaudio.IntBuffer
	frames int64
}

func (s *sink[T]) WriteFrames(src []T) (int, error) {
	n := len(src) / s.format.NumChannels
	want := n * s.format.NumChannels

	if cap(s.buf.Data) < want {
		s.buf.Data = make([]int, want)
	}
	s.buf.Data = s.buf.Data[:want]

	for i, v := range src[:want] {
		s.buf.Data[i] = int(v)
	}

	if err := s.enc.Write(s.buf); err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	s.frames += int64(n)

	return n, nil
}

func (s *sink[T]) Close() error {
	var errs []error

	if s.frames == 0 {
		// The encoder only emits its headers on the first write.
		if err := s.enc.Write(&goaudio.IntBuffer{Format: s.format}); err != nil {
			errs = append(errs, err)
		}
	}

	if err := s.enc.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.f.Close(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func openWriter(path string, info *audio.Info) (audio.Handle, error) {
	var depth int

	switch sub := info.Subformat(); sub {
	case audio.SubformatPCM16:
		depth = 16
	case audio.SubformatPCM32:
		depth = 32
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSubformat, audio.SubformatName(sub))
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	format := &goaudio.Format{NumChannels: info.Channels, SampleRate: info.SampleRate}
	enc := aiff.NewEncoder(f, info.SampleRate, depth, info.Channels)

	info.Frames = 0
	info.Sections = 1
	info.Seekable = true

	buf := &goaudio.IntBuffer{Format: format, SourceBitDepth: depth}

	if depth == 16 {
		return &sink[int16]{f: f, enc: enc, format: format, buf: buf}, nil
	}

	return &sink[int32]{f: f, enc: enc, format: format, buf: buf}, nil
}
