// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"os"

	goflac "github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"

	"github.com/ik5/sndstream/audio"
)

const (
	defaultBlockSize = 4096
	bitsPerSample    = 16
)

// sink buffers interleaved int16 frames into fixed size verbatim blocks.
// The trailing partial block is flushed on Close. After a failed flush
// the block is dropped and every later call returns the same error.
type sink struct {
	f          *os.File
	enc        *goflac.Encoder
	channels   int
	sampleRate int

	block  [][]int32
	filled int
	num    uint64
	err    error
}

// WriteFrames reports the frames of src that reached a written block or
// are still buffered. Frames of a block whose write failed are not counted.
func (s *sink) WriteFrames(src []int16) (int, error) {
	if s.err != nil {
		return 0, s.err
	}

	n := len(src) / s.channels
	pos := 0
	flushed := 0

	for i := range n {
		for ch := range s.channels {
			s.block[ch][s.filled] = int32(src[pos])
			pos++
		}
		s.filled++

		if s.filled == defaultBlockSize {
			if err := s.flush(); err != nil {
				return flushed, err
			}
			flushed = i + 1
		}
	}

	return n, nil
}

func (s *sink) flush() error {
	if s.filled == 0 {
		return nil
	}

	subframes := make([]*frame.Subframe, s.channels)
	for ch := range s.channels {
		subframes[ch] = &frame.Subframe{
			SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
			Samples:   s.block[ch][:s.filled],
			NSamples:  s.filled,
		}
	}

	f := &frame.Frame{
		Header: frame.Header{
			HasFixedBlockSize: true,
			BlockSize:         uint16(s.filled),
			SampleRate:        uint32(s.sampleRate),
			Channels:          frame.Channels(s.channels - 1),
			BitsPerSample:     bitsPerSample,
			Num:               s.num,
		},
		Subframes: subframes,
	}

	if err := s.enc.WriteFrame(f); err != nil {
		s.filled = 0
		s.err = fmt.Errorf("writing frame: %w", err)

		return s.err
	}

	s.num++
	s.filled = 0

	return nil
}

func (s *sink) Close() error {
	var errs []error

	if s.err != nil {
		errs = append(errs, s.err)
	} else if err := s.flush(); err != nil {
		errs = append(errs, err)
	}

	// The encoder closes the file it writes to.
	if err := s.enc.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing encoder: %w", err))
	}
	if err := s.f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func openWriter(path string, info *audio.Info) (audio.Handle, error) {
	if sub := info.Subformat(); sub != audio.SubformatPCM16 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSubformat, audio.SubformatName(sub))
	}
	if info.Channels > 8 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedSubformat, info.Channels)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	si := &meta.StreamInfo{
		BlockSizeMin:  defaultBlockSize,
		BlockSizeMax:  defaultBlockSize,
		SampleRate:    uint32(info.SampleRate),
		NChannels:     uint8(info.Channels),
		BitsPerSample: bitsPerSample,
	}

	enc, err := goflac.NewEncoder(f, si)
	if err != nil {
		_ = f.Close()

		return nil, fmt.Errorf("creating encoder: %w", err)
	}

	block := make([][]int32, info.Channels)
	for ch := range block {
		block[ch] = make([]int32, defaultBlockSize)
	}

	info.Frames = 0
	info.Sections = 1
	info.Seekable = true

	return &sink{
		f:          f,
		enc:        enc,
		channels:   info.Channels,
		sampleRate: info.SampleRate,
		block:      block,
	}, nil
}
