// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/sndstream/audio"
	"github.com/ik5/sndstream/utils"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio aiff.Decoder and narrows its int samples to T.
type source[T audio.Sample] struct {
	dec      aiffReader
	closer   io.Closer
	channels int
	format   *goaudio.Format
	convert  func(int) T
	intBuf   *goaudio.IntBuffer
}

func (s *source[T]) Close() error {
	if s.closer == nil {
		return nil
	}

	return s.closer.Close()
}

func (s *source[T]) ReadFrames(dst []T) (int, error) {
	want := (len(dst) / s.channels) * s.channels
	if want == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < want {
		s.intBuf = &goaudio.IntBuffer{Format: s.format, Data: make([]int, want)}
	} else {
		s.intBuf.Data = s.intBuf.Data[:want]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	frames := n / s.channels

	for i := range frames * s.channels {
		dst[i] = s.convert(s.intBuf.Data[i])
	}

	if n == 0 && err == nil {
		return 0, io.EOF
	}

	// If we got fewer samples than requested and no error, we're at EOF
	if n < want && err == nil {
		return frames, io.EOF
	}
	if err != nil && err != io.EOF {
		return frames, fmt.Errorf("%w", err)
	}

	return frames, err
}

func openReader(path string, info *audio.Info) (audio.Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	h, err := newReader(f, info)
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	return h, nil
}

func newReader(f *os.File, info *audio.Info) (audio.Handle, error) {
	if !Detect(f) {
		return nil, ErrNotAiffFile
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	dec := aiff.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	depth := int(dec.BitDepth)

	sub, err := subformat(depth)
	if err != nil {
		return nil, err
	}

	*info = audio.Info{
		Frames:     int64(dec.NumSampleFrames),
		SampleRate: format.SampleRate,
		Channels:   format.NumChannels,
		Format:     audio.FormatAIFF | sub,
		Sections:   1,
		Seekable:   true,
	}

	st, err := audio.NativeEncodingToSampleType(sub)
	if err != nil {
		return nil, err
	}

	if st == audio.Int16 {
		return &source[int16]{
			dec:      dec,
			closer:   f,
			channels: format.NumChannels,
			format:   format,
			convert:  func(v int) int16 { return utils.JustifyInt16(int32(v), depth) },
		}, nil
	}

	return &source[int32]{
		dec:      dec,
		closer:   f,
		channels: format.NumChannels,
		format:   format,
		convert:  func(v int) int32 { return utils.JustifyInt32(int32(v), depth) },
	}, nil
}
