// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/sndstream/audio"
)

// bufferedFile batches the encoder's small writes. Seek flushes first so
// header patching lands on disk in order.
type bufferedFile struct {
	f *os.File
	w *bufio.Writer
}

func (b *bufferedFile) Write(p []byte) (int, error) { return b.w.Write(p) }

func (b *bufferedFile) Seek(offset int64, whence int) (int64, error) {
	if err := b.w.Flush(); err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	return b.f.Seek(offset, whence)
}

type sink[T audio.Sample] struct {
	out      *bufferedFile
	enc      *wav.Encoder
	channels int
	frames   int64
}

func (s *sink[T]) WriteFrames(src []T) (int, error) {
	n := len(src) / s.channels
	for i := range n {
		if err := s.enc.WriteFrame(src[i*s.channels : (i+1)*s.channels]); err != nil {
			return i, fmt.Errorf("%w", err)
		}
		s.frames++
	}

	return n, nil
}

func (s *sink[T]) Close() error {
	var errs []error

	if s.frames == 0 {
		// The encoder only emits its headers on the first write.
		empty := &goaudio.IntBuffer{
			Format: &goaudio.Format{NumChannels: s.channels, SampleRate: s.enc.SampleRate},
		}
		if err := s.enc.Write(empty); err != nil {
			errs = append(errs, err)
		}
	}

	if err := s.enc.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.out.w.Flush(); err != nil {
		errs = append(errs, err)
	}
	if err := s.out.f.Close(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func openWriter(path string, info *audio.Info) (audio.Handle, error) {
	tag, depth, err := fmtTag(info.Subformat())
	if err != nil {
		return nil, err
	}

	st, err := audio.NativeEncodingToSampleType(info.Subformat())
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	out := &bufferedFile{f: f, w: bufio.NewWriterSize(f, 64*1024)}
	enc := wav.NewEncoder(out, info.SampleRate, depth, info.Channels, tag)

	info.Frames = 0
	info.Sections = 1
	info.Seekable = true

	switch st {
	case audio.Int16:
		return &sink[int16]{out: out, enc: enc, channels: info.Channels}, nil
	case audio.Int32:
		return &sink[int32]{out: out, enc: enc, channels: info.Channels}, nil
	case audio.Float32:
		return &sink[float32]{out: out, enc: enc, channels: info.Channels}, nil
	default:
		return &sink[float64]{out: out, enc: enc, channels: info.Channels}, nil
	}
}

var _ io.WriteSeeker = (*bufferedFile)(nil)
