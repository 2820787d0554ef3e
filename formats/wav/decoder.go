// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/sndstream/audio"
	"github.com/ik5/sndstream/utils"
)

type source[T audio.Sample] struct {
	f              *os.File
	pcm            io.Reader
	channels       int
	bytesPerSample int
	buf            []byte
	decode         func([]byte) T
}

func (s *source[T]) Close() error { return s.f.Close() }

func (s *source[T]) ReadFrames(dst []T) (int, error) {
	frameSize := s.channels * s.bytesPerSample
	need := (len(dst) / s.channels) * frameSize
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	buf := s.buf[:need]

	n, err := io.ReadFull(s.pcm, buf)
	frames := n / frameSize

	for i := range frames * s.channels {
		dst[i] = s.decode(buf[i*s.bytesPerSample:])
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return frames, io.EOF
	}
	if err != nil {
		return frames, fmt.Errorf("%w", err)
	}

	return frames, nil
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
		return nil, ErrNotWavFile
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if dec.NumChans == 0 {
		return nil, ErrNotWavFile
	}

	sub, err := subformat(dec.WavAudioFormat, dec.BitDepth)
	if err != nil {
		return nil, err
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPCMChunkNotFound, err)
	}
	if dec.PCMChunk == nil {
		return nil, ErrPCMChunkNotFound
	}

	channels := int(dec.NumChans)
	bytesPerSample := int(dec.BitDepth) / 8
	frames := int64(dec.PCMSize / (channels * bytesPerSample))

	*info = audio.Info{
		Frames:     frames,
		SampleRate: int(dec.SampleRate),
		Channels:   channels,
		Format:     audio.FormatWAV | sub,
		Sections:   1,
		Seekable:   true,
	}

	pcm := io.LimitReader(dec.PCMChunk, frames*int64(channels*bytesPerSample))

	st, err := audio.NativeEncodingToSampleType(sub)
	if err != nil {
		return nil, err
	}

	switch st {
	case audio.Int16:
		return newSource[int16](f, pcm, channels, bytesPerSample, sub)
	case audio.Int32:
		return newSource[int32](f, pcm, channels, bytesPerSample, sub)
	case audio.Float32:
		return newSource[float32](f, pcm, channels, bytesPerSample, sub)
	default:
		return newSource[float64](f, pcm, channels, bytesPerSample, sub)
	}
}

func newSource[T audio.Sample](f *os.File, pcm io.Reader, channels, bytesPerSample, sub int) (*source[T], error) {
	decode, ok := sampleDecodeFunc(sub).(func([]byte) T)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedWavFormat, audio.SubformatName(sub))
	}

	return &source[T]{
		f:              f,
		pcm:            pcm,
		channels:       channels,
		bytesPerSample: bytesPerSample,
		decode:         decode,
	}, nil
}

// sampleDecodeFunc returns a func([]byte) T decoding one little-endian
// sample of subformat sub, where T is the sample type sub maps to.
func sampleDecodeFunc(sub int) any {
	switch sub {
	case audio.SubformatPCMU8:
		return func(b []byte) int16 { return utils.Uint8ToInt16(b[0]) }
	case audio.SubformatPCM16:
		return func(b []byte) int16 { return int16(binary.LittleEndian.Uint16(b)) }
	case audio.SubformatPCM24:
		return func(b []byte) int32 { return utils.JustifyInt32(goaudio.Int24LETo32(b[:3]), 24) }
	case audio.SubformatPCM32:
		return func(b []byte) int32 { return int32(binary.LittleEndian.Uint32(b)) }
	case audio.SubformatFloat:
		return func(b []byte) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b)) }
	case audio.SubformatDouble:
		return func(b []byte) float64 { return math.Float64frombits(binary.LittleEndian.Uint64(b)) }
	default:
		return nil
	}
}
