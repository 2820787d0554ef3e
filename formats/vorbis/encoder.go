// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/sndstream/audio"
)

const (
	// defaultQuality is the VBR quality handed to libvorbisenc, in [-0.1, 1].
	defaultQuality = 0.4
	maxChannels    = 255
)

// encoder is one Vorbis analysis stream paginated into Ogg.
type encoder interface {
	// begin writes the header pages to w. Later pages go to w as well.
	begin(w io.Writer) error
	// buffer returns one plane per channel with room for frames samples.
	buffer(frames int) [][]float32
	// wrote submits the first frames samples of the planes and writes the
	// pages that became complete.
	wrote(frames int) error
	// finish marks the end of stream and writes the remaining pages.
	finish() error
	release()
}

// sink deinterleaves T frames into the encoder's float planes.
type sink[T audio.Sample] struct {
	enc      encoder
	closer   io.Closer
	channels int
	err      error
}

func (s *sink[T]) WriteFrames(src []T) (int, error) {
	if s.err != nil {
		return 0, s.err
	}

	n := len(src) / s.channels
	if n == 0 {
		return 0, nil
	}

	planes := s.enc.buffer(n)

	switch in := any(src).(type) {
	case []int16:
		deinterleave(planes, in, n, func(v int16) float32 { return float32(v) / (1 << 15) })
	case []int32:
		deinterleave(planes, in, n, func(v int32) float32 { return float32(float64(v) / (1 << 31)) })
	case []float32:
		deinterleave(planes, in, n, func(v float32) float32 { return v })
	case []float64:
		deinterleave(planes, in, n, func(v float64) float32 { return float32(v) })
	}

	if err := s.enc.wrote(n); err != nil {
		s.err = fmt.Errorf("encoding: %w", err)

		return 0, s.err
	}

	return n, nil
}

func (s *sink[T]) Close() error {
	var errs []error

	if s.err != nil {
		errs = append(errs, s.err)
	} else if err := s.enc.finish(); err != nil {
		errs = append(errs, fmt.Errorf("finishing stream: %w", err))
	}

	s.enc.release()

	if err := s.closer.Close(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func deinterleave[S audio.Sample](planes [][]float32, src []S, frames int, conv func(S) float32) {
	channels := len(planes)
	for ch, plane := range planes {
		for i := range frames {
			plane[i] = conv(src[i*channels+ch])
		}
	}
}

// OpenStaged creates an Ogg Vorbis file whose handle accepts frames of the
// Go type for st. The encoder is set up before the file is created, so a
// refused descriptor leaves nothing behind.
func (Codec) OpenStaged(path string, info *audio.Info, st audio.SampleType) (audio.Handle, error) {
	if sub := info.Subformat(); sub != audio.SubformatVorbis {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSubformat, audio.SubformatName(sub))
	}
	if info.Channels < 1 || info.Channels > maxChannels {
		return nil, fmt.Errorf("%w: %d channels", ErrEncoderSetup, info.Channels)
	}

	switch st {
	case audio.Int16:
		return openWriter[int16](path, info)
	case audio.Int32:
		return openWriter[int32](path, info)
	case audio.Float32:
		return openWriter[float32](path, info)
	case audio.Float64:
		return openWriter[float64](path, info)
	default:
		return nil, fmt.Errorf("%w: %v", audio.ErrUnsupportedSampleType, st)
	}
}

func openWriter[T audio.Sample](path string, info *audio.Info) (audio.Handle, error) {
	enc, err := newEncoder(info.Channels, info.SampleRate, defaultQuality)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		enc.release()

		return nil, fmt.Errorf("%w", err)
	}

	if err := enc.begin(f); err != nil {
		enc.release()
		_ = f.Close()

		return nil, fmt.Errorf("writing headers: %w", err)
	}

	info.Frames = 0
	info.Sections = 1
	info.Seekable = true

	return &sink[T]{enc: enc, closer: f, channels: info.Channels}, nil
}
