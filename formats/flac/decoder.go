// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	goflac "github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/sndstream/audio"
	"github.com/ik5/sndstream/utils"
)

// source streams samples out of a FLAC stream. Each parsed frame is held
// until the caller has drained it.
type source[T audio.Sample] struct {
	stream   *goflac.Stream
	channels int
	convert  func(int32) T

	cur *frame.Frame
	off int
	eof bool
}

func (s *source[T]) Close() error {
	if err := s.stream.Close(); err != nil {
		return fmt.Errorf("closing flac stream: %w", err)
	}

	return nil
}

func (s *source[T]) ReadFrames(dst []T) (int, error) {
	want := len(dst) / s.channels
	n := 0

	for n < want {
		if s.cur == nil || s.off >= int(s.cur.BlockSize) {
			if s.eof {
				return n, io.EOF
			}

			f, err := s.stream.ParseNext()
			if errors.Is(err, io.EOF) {
				s.eof = true
				s.cur = nil

				return n, io.EOF
			}
			if err != nil {
				return n, fmt.Errorf("%w: %w", ErrReadFailure, err)
			}

			s.cur = f
			s.off = 0
		}

		take := min(want-n, int(s.cur.BlockSize)-s.off)
		pos := n * s.channels

		for i := range take {
			for ch := range s.channels {
				dst[pos] = s.convert(s.cur.Subframes[ch].Samples[s.off+i])
				pos++
			}
		}

		s.off += take
		n += take
	}

	return n, nil
}

func openReader(path string, info *audio.Info) (audio.Handle, error) {
	stream, err := goflac.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}

	h, err := newSource(stream, info)
	if err != nil {
		_ = stream.Close()

		return nil, err
	}

	return h, nil
}

func newSource(stream *goflac.Stream, info *audio.Info) (audio.Handle, error) {
	si := stream.Info
	depth := int(si.BitsPerSample)

	sub, err := subformat(depth)
	if err != nil {
		return nil, err
	}

	*info = audio.Info{
		Frames:     int64(si.NSamples),
		SampleRate: int(si.SampleRate),
		Channels:   int(si.NChannels),
		Format:     audio.FormatFLAC | sub,
		Sections:   1,
		Seekable:   true,
	}

	st, err := audio.NativeEncodingToSampleType(sub)
	if err != nil {
		return nil, err
	}

	channels := int(si.NChannels)

	if st == audio.Int16 {
		return &source[int16]{
			stream:   stream,
			channels: channels,
			convert:  func(v int32) int16 { return utils.JustifyInt16(v, depth) },
		}, nil
	}

	return &source[int32]{
		stream:   stream,
		channels: channels,
		convert:  func(v int32) int32 { return utils.JustifyInt32(v, depth) },
	}, nil
}
